package httpx

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Client-Request-Id"

// Request is a single outbound call. Body is consumed at most once; when it
// is an io.Closer, Do closes it on every path.
type Request struct {
	Method      string
	URL         string
	Header      http.Header
	ContentType string
	Body        io.Reader
}

// Do sends req with client in one attempt. Callers must close the returned
// response body.
func Do(ctx context.Context, client *http.Client, log *zerolog.Logger, req Request) (*http.Response, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, req.Body)
	if err != nil {
		if c, ok := req.Body.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, err
	}
	httpReq.Header = req.Header.Clone()
	if httpReq.Header == nil {
		httpReq.Header = make(http.Header)
	}
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}
	requestID := httpReq.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
		httpReq.Header.Set(RequestIDHeader, requestID)
	}

	start := time.Now()
	resp, err := client.Do(httpReq)
	event := log.Debug().
		Str("method", req.Method).
		Str("url", req.URL).
		Str("request_id", requestID).
		Dur("duration", time.Since(start))
	if err != nil {
		event.Err(err).Msg("request failed")
		return nil, err
	}
	event.Int("status", resp.StatusCode).Msg("request completed")
	return resp, nil
}

// ReadBody drains and closes resp.Body.
func ReadBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func IsSuccess(status int) bool {
	return status >= 200 && status <= 299
}
