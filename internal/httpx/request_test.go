package httpx

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SetsHeadersAndLogs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "v", r.Header.Get("X-Extra"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		b, _ := io.ReadAll(r.Body)
		_, _ = w.Write(b)
	}))
	defer srv.Close()

	var logs bytes.Buffer
	log := zerolog.New(&logs).Level(zerolog.DebugLevel)

	h := make(http.Header)
	h.Set("X-Extra", "v")
	resp, err := Do(context.Background(), srv.Client(), &log, Request{
		Method:      http.MethodPost,
		URL:         srv.URL,
		Header:      h,
		ContentType: "application/json",
		Body:        io.NopCloser(bytes.NewReader([]byte(`{"a":1}`))),
	})
	require.NoError(t, err)

	body, err := ReadBody(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(body))
	assert.True(t, IsSuccess(resp.StatusCode))

	assert.Contains(t, logs.String(), `"status":200`)
	assert.Contains(t, logs.String(), `"request_id"`)
	// The caller's header map is not modified.
	assert.Empty(t, h.Get(RequestIDHeader))
}

func TestDo_KeepsCallerRequestID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-1", r.Header.Get(RequestIDHeader))
	}))
	defer srv.Close()

	h := make(http.Header)
	h.Set(RequestIDHeader, "req-1")
	resp, err := Do(context.Background(), srv.Client(), nil, Request{Method: http.MethodPost, URL: srv.URL, Header: h})
	require.NoError(t, err)
	_, _ = ReadBody(resp)
}

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestDo_ClosesBodyOnBadURL(t *testing.T) {
	body := &closeRecorder{Reader: bytes.NewReader(nil)}

	_, err := Do(context.Background(), nil, nil, Request{Method: http.MethodPost, URL: "://bad", Body: body})
	require.Error(t, err)
	assert.True(t, body.closed)
}

func TestIsSuccess(t *testing.T) {
	assert.True(t, IsSuccess(http.StatusOK))
	assert.True(t, IsSuccess(http.StatusNoContent))
	assert.False(t, IsSuccess(http.StatusMultipleChoices))
	assert.False(t, IsSuccess(http.StatusBadRequest))
}
