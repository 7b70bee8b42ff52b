package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrBadRequest        = errors.New("request rejected by backend")
	ErrBusy              = fmt.Errorf("operation already in progress: %w", ErrValidation)
	ErrDeviceUnavailable = errors.New("camera device unavailable")
	ErrNotFound          = errors.New("identity not found")
	ErrPermissionDenied  = errors.New("camera permission denied")
	ErrTransport         = errors.New("transport failure")
	ErrValidation        = errors.New("validation failed")
)

// ErrorKind is a stable classification of an error, used for status texts,
// the attempt journal and metric labels
type ErrorKind string

const (
	KindBadRequest        ErrorKind = "bad_request"
	KindCancelled         ErrorKind = "cancelled"
	KindDeviceUnavailable ErrorKind = "device_unavailable"
	KindNone              ErrorKind = ""
	KindNotFound          ErrorKind = "not_found"
	KindPermissionDenied  ErrorKind = "permission_denied"
	KindTransport         ErrorKind = "transport"
	KindUnknown           ErrorKind = "unknown"
	KindValidation        ErrorKind = "validation"
)

// KindOf classifies err. A nil error has KindNone.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrPermissionDenied):
		return KindPermissionDenied
	case errors.Is(err, ErrDeviceUnavailable):
		return KindDeviceUnavailable
	case errors.Is(err, ErrBadRequest):
		return KindBadRequest
	case errors.Is(err, context.Canceled):
		return KindCancelled
	case errors.Is(err, ErrTransport):
		return KindTransport
	default:
		return KindUnknown
	}
}

// BackendError is returned by the API adapters for non-2xx responses
type BackendError struct {
	Err     error // one of the sentinel errors above
	Message string
	Status  int
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%v (status %d): %s", e.Err, e.Status, e.Message)
	}
	return fmt.Sprintf("%v (status %d)", e.Err, e.Status)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// BackendMessage returns the server supplied message carried by err, if any
func BackendMessage(err error) string {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Message
	}
	return ""
}
