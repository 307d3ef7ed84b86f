package abusegate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	commonhttp "application-intake/internal/common/http"
)

// TurnstileVerifier validates Cloudflare Turnstile tokens.
type TurnstileVerifier struct {
	secret   string
	endpoint string
	maxBody  int64
	client   *commonhttp.Client
}

func NewTurnstileVerifier(config *Config) *TurnstileVerifier {
	return &TurnstileVerifier{
		secret:   config.SecretKey,
		endpoint: config.VerifyURL,
		maxBody:  config.MaxResponseBytes,
		client:   commonhttp.NewClient(config.Timeout),
	}
}

// Verify returns false without calling out when the token or secret is empty.
func (v *TurnstileVerifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if token == "" || v.secret == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	status, body, err := v.client.PostForm(ctx, v.endpoint, form, v.maxBody)
	if err != nil {
		return false, fmt.Errorf("turnstile request failed: %w", err)
	}
	if status < 200 || status > 299 {
		return false, fmt.Errorf("turnstile returned status %d", status)
	}

	var resp turnstileResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, fmt.Errorf("turnstile response decode failed: %w", err)
	}
	return resp.Success, nil
}
