package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bitop-dev/imagegen/internal/httpx"
	"github.com/bitop-dev/imagegen/internal/schema"
	"github.com/bitop-dev/imagegen/openai"
)

var errorEnvelope = schema.MustCompile("error_envelope.json", json.RawMessage(`{
	"type": "object",
	"required": ["error"],
	"properties": {
		"error": {
			"type": "object",
			"required": ["message", "type"],
			"properties": {
				"message": {"type": "string"},
				"type": {"type": "string"}
			}
		}
	}
}`))

func postJSON[T any](ctx context.Context, c *openai.Client, path string, shape *schema.Validator, payload any) (*T, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	resp, err := send(ctx, c, httpx.Request{
		Method:      http.MethodPost,
		URL:         c.URL(path),
		Header:      c.Headers(),
		ContentType: "application/json",
		Body:        bytes.NewReader(body),
	})
	if err != nil {
		return nil, err
	}
	return decodeResponse[T](resp, shape)
}

// postForm sends form and takes ownership of it: its files are closed once
// the call returns.
func postForm[T any](ctx context.Context, c *openai.Client, path string, shape *schema.Validator, form *Form) (*T, error) {
	defer form.Close()
	resp, err := send(ctx, c, httpx.Request{
		Method:      http.MethodPost,
		URL:         c.URL(path),
		Header:      c.Headers(),
		ContentType: form.ContentType(),
		Body:        form.Body(),
	})
	if err != nil {
		return nil, err
	}
	return decodeResponse[T](resp, shape)
}

func send(ctx context.Context, c *openai.Client, req httpx.Request) (*http.Response, error) {
	cfg := c.Config()
	resp, err := httpx.Do(ctx, cfg.HTTPClient, cfg.Logger, req)
	if err != nil {
		// A local file that failed mid-upload surfaces through the transport.
		var readErr *ImageReadError
		if errors.As(err, &readErr) {
			return nil, readErr
		}
		return nil, &TransportError{Cause: err}
	}
	return resp, nil
}

func decodeResponse[T any](resp *http.Response, shape *schema.Validator) (*T, error) {
	body, err := httpx.ReadBody(resp)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	return decodeBody[T](resp.StatusCode, body, shape)
}

// decodeBody maps a response to the expected payload or one error kind. Error
// statuses are read as the error envelope only. Success statuses try the
// payload first and fall back to the envelope.
func decodeBody[T any](status int, body []byte, shape *schema.Validator) (*T, error) {
	if !httpx.IsSuccess(status) {
		apiErr, err := decodeAPIError(body)
		if err != nil {
			return nil, &DecodeError{
				Message: fmt.Sprintf("unexpected status %d: %v", status, err),
				Body:    body,
				Cause:   err,
			}
		}
		apiErr.StatusCode = status
		return nil, apiErr
	}

	out, err := decodeShape[T](body, shape)
	if err == nil {
		return out, nil
	}
	if apiErr, envErr := decodeAPIError(body); envErr == nil {
		apiErr.StatusCode = status
		return nil, apiErr
	}
	return nil, &DecodeError{Message: err.Error(), Body: body, Cause: err}
}

func decodeShape[T any](body []byte, shape *schema.Validator) (*T, error) {
	if err := shape.Validate(body); err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func decodeAPIError(body []byte) (*APIError, error) {
	w, err := decodeShape[wrappedError](body, errorEnvelope)
	if err != nil {
		return nil, err
	}
	return w.Error, nil
}
