// Package apperrors defines the error kinds the HTTP layer knows how to render.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindUnsupportedMedia
	KindPayloadTooLarge
	KindStorage
	KindRateLimited
)

// Error is a classified failure. Err keeps the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status for the error kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the errorCode string sent to clients.
func (e *Error) Code() string {
	switch e.Kind {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindAuthentication:
		return "AUTHENTICATION_ERROR"
	case KindAuthorization:
		return "AUTHORIZATION_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindUnsupportedMedia:
		return "UNSUPPORTED_MEDIA_TYPE"
	case KindPayloadTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case KindStorage:
		return "STORAGE_ERROR"
	case KindRateLimited:
		return "RATE_LIMITED"
	default:
		return "INTERNAL_ERROR"
	}
}

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return newf(KindValidation, format, args...)
}

func Authentication(message string) *Error {
	return newf(KindAuthentication, "%s", message)
}

func Authorization(message string) *Error {
	return newf(KindAuthorization, "%s", message)
}

// NotFound builds "<resource> not found".
func NotFound(resource string) *Error {
	return newf(KindNotFound, "%s not found", resource)
}

func Conflict(format string, args ...any) *Error {
	return newf(KindConflict, format, args...)
}

func UnsupportedMedia(mimeType string) *Error {
	return newf(KindUnsupportedMedia, "Unsupported media type: %s", mimeType)
}

func PayloadTooLarge(limitBytes int64) *Error {
	return newf(KindPayloadTooLarge, "File exceeds the maximum size of %d MB", limitBytes/(1<<20))
}

// Storage wraps a failure from the remote media store.
func Storage(message string, err error) *Error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

func RateLimited() *Error {
	return newf(KindRateLimited, "Too many requests, please slow down")
}

// Wrap attaches a kind and message to err. A nil err yields nil.
func Wrap(err error, kind Kind, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

// As extracts an *Error from the chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
