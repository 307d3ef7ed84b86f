package emailsend

import "context"

// Message is one outbound HTML email with an optional file attachment.
type Message struct {
	FromName   string      `json:"fromName"`
	From       string      `json:"from"`
	To         string      `json:"to"`
	ReplyTo    string      `json:"replyTo,omitempty"`
	Subject    string      `json:"subject"`
	HTMLBody   string      `json:"htmlBody"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// Attachment is read from Path at send time.
type Attachment struct {
	Path        string `json:"path"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

// Transport delivers a message. Errors are TRANSPORT_FAILED StandardErrors.
type Transport interface {
	Send(ctx context.Context, msg *Message) error
	Name() string
}

// Recipients lists the envelope recipients of msg.
func (m *Message) Recipients() []string {
	return []string{m.To}
}
