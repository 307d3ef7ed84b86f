package abusegate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerifier(url, secret string) *TurnstileVerifier {
	cfg := DefaultConfig()
	cfg.VerifyURL = url
	cfg.SecretKey = secret
	cfg.Timeout = 2 * time.Second
	return NewTurnstileVerifier(cfg)
}

func TestTurnstile_SendsFormAndDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "s3cret", r.PostForm.Get("secret"))
		assert.Equal(t, "tok", r.PostForm.Get("response"))
		assert.Equal(t, "198.51.100.2", r.PostForm.Get("remoteip"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"error-codes":[],"hostname":"example.com"}`))
	}))
	defer server.Close()

	ok, err := newVerifier(server.URL, "s3cret").Verify(context.Background(), "tok", "198.51.100.2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTurnstile_Declined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	}))
	defer server.Close()

	ok, err := newVerifier(server.URL, "s3cret").Verify(context.Background(), "tok", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTurnstile_NoNetworkWithoutTokenOrSecret(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	ok, err := newVerifier(server.URL, "s3cret").Verify(context.Background(), "", "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = newVerifier(server.URL, "").Verify(context.Background(), "tok", "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestTurnstile_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"not json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>gateway</html>"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			ok, err := newVerifier(server.URL, "s3cret").Verify(context.Background(), "tok", "")
			assert.Error(t, err)
			assert.False(t, ok)
		})
	}
}

func TestTurnstile_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.VerifyURL = server.URL
	cfg.SecretKey = "s3cret"
	cfg.Timeout = 50 * time.Millisecond

	ok, err := NewTurnstileVerifier(cfg).Verify(context.Background(), "tok", "")
	assert.Error(t, err)
	assert.False(t, ok)
}
