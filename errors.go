package imagegen

import (
	"errors"
	"fmt"
)

// Error is implemented by exactly the five failure kinds an image call can
// produce: *TransportError, *APIError, *DecodeError, *ImageSaveError and
// *ImageReadError. Match on it with a type switch.
type Error interface {
	error
	isImageError()
}

// TransportError reports a failure below the API: connection, TLS, context
// cancellation, or an interrupted response body.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	if e == nil || e.Cause == nil {
		return "transport error"
	}
	return e.Cause.Error()
}

func (e *TransportError) Unwrap() error { return e.Cause }

// APIError is the object the API returns under the "error" key.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   any    `json:"param,omitempty"`
	Code    any    `json:"code,omitempty"`

	// StatusCode is the HTTP status the error arrived with.
	StatusCode int `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

type wrappedError struct {
	Error *APIError `json:"error"`
}

// DecodeError reports a response body that matched neither the expected
// payload nor the error envelope.
type DecodeError struct {
	Message string
	Body    []byte
	Cause   error
}

func (e *DecodeError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// ImageSaveError reports a failure writing a returned image to disk.
type ImageSaveError struct {
	Message string
	Cause   error
}

func (e *ImageSaveError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *ImageSaveError) Unwrap() error { return e.Cause }

// ImageReadError reports a local image that could not be named, opened or read.
type ImageReadError struct {
	Message string
	Cause   error
}

func (e *ImageReadError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *ImageReadError) Unwrap() error { return e.Cause }

func (*TransportError) isImageError() {}
func (*APIError) isImageError()       {}
func (*DecodeError) isImageError()    {}
func (*ImageSaveError) isImageError() {}
func (*ImageReadError) isImageError() {}

// IsTransport reports whether err is or wraps a *TransportError.
func IsTransport(err error) bool {
	var e *TransportError
	return errors.As(err, &e)
}

// IsAPIError reports whether err is or wraps an *APIError.
func IsAPIError(err error) bool {
	var e *APIError
	return errors.As(err, &e)
}

// IsDecode reports whether err is or wraps a *DecodeError.
func IsDecode(err error) bool {
	var e *DecodeError
	return errors.As(err, &e)
}

// IsImageSave reports whether err is or wraps an *ImageSaveError.
func IsImageSave(err error) bool {
	var e *ImageSaveError
	return errors.As(err, &e)
}

// IsImageRead reports whether err is or wraps an *ImageReadError.
func IsImageRead(err error) bool {
	var e *ImageReadError
	return errors.As(err, &e)
}

func imageReadErr(err error) *ImageReadError {
	return &ImageReadError{Message: err.Error(), Cause: err}
}

func imageSaveErr(err error) *ImageSaveError {
	return &ImageSaveError{Message: err.Error(), Cause: err}
}
