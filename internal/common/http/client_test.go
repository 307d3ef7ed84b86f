package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_PostForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "abc", r.PostForm.Get("response"))
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"success":true,"padding":"0123456789"}`))
	}))
	defer srv.Close()

	c := NewClient(time.Second)
	status, body, err := c.PostForm(context.Background(), srv.URL, url.Values{"response": {"abc"}}, 16)
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, status)
	assert.Len(t, body, 16)
}

func TestClient_PostForm_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewClient(time.Second).PostForm(ctx, srv.URL, url.Values{}, 1024)
	assert.Error(t, err)
}

func TestClient_PostForm_BadURL(t *testing.T) {
	_, _, err := NewClient(time.Second).PostForm(context.Background(), "://bad", url.Values{}, 1024)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build request")
}
