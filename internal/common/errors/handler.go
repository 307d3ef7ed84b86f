package errors

// Absorber records failures that degrade a request without failing it.
// Nothing is logged unless debug mode is on.
type Absorber struct {
	logger Logger
	debug  bool
}

type Logger interface {
	Debug(msg string, fields map[string]interface{})
}

func NewAbsorber(logger Logger, debug bool) *Absorber {
	return &Absorber{logger: logger, debug: debug}
}

// Debug reports whether absorbed failures are logged.
func (a *Absorber) Debug() bool {
	return a != nil && a.debug
}

// Absorb normalizes err and logs it when debug is enabled. A nil error yields nil.
func (a *Absorber) Absorb(stage string, err error) *StandardError {
	if err == nil {
		return nil
	}
	stdErr := normalizeError(err)
	if a.Debug() && a.logger != nil {
		a.logError(stage, stdErr)
	}
	return stdErr
}

// normalizeError ensures we always have a StandardError
func normalizeError(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	return NewInternalError(err)
}

func (a *Absorber) logError(stage string, stdErr *StandardError) {
	fields := map[string]interface{}{
		"stage":         stage,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	for k, v := range stdErr.Metadata {
		fields[k] = v
	}
	a.logger.Debug("absorbed failure", fields)
}
