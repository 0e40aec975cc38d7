package errprocess

import (
	"errors"
	"fmt"
	"net/http"

	"devconnect_backend/pkg/logger"
)

// Kind classifies an application error for the boundary layer.
type Kind int

const (
	// KindValidation malformed identifiers or payloads
	KindValidation Kind = iota + 1
	// KindAuthorization acting on a resource the caller doesn't own
	KindAuthorization
	// KindNotFound referenced resource does not exist
	KindNotFound
	// KindDegraded cache or bus unavailable, never surfaced to callers
	KindDegraded
	// KindPersistence store unavailable or write rejected, fatal to the operation
	KindPersistence
)

// AppError error with a Kind attached
type AppError struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

// Unwrap expose the wrapped error
func (e *AppError) Unwrap() error { return e.Err }

// Validation build a validation error
func Validation(msg string) error {
	return &AppError{Kind: KindValidation, Msg: msg}
}

// Authorization build an authorization error, logged at warning level
func Authorization(msg string) error {
	logger.Log.Warn(msg)
	return &AppError{Kind: KindAuthorization, Msg: msg}
}

// NotFound build a not-found error
func NotFound(msg string) error {
	return &AppError{Kind: KindNotFound, Msg: msg}
}

// Persistence wrap a store failure
func Persistence(msg string, err error) error {
	logger.Log.Errorf(msg, err)
	return &AppError{Kind: KindPersistence, Msg: msg, Err: err}
}

// KindOf report the Kind of err, 0 when untyped
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return 0
}

// HTTPStatus map the error Kind to an HTTP status code
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}
