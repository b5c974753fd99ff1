package exception

import (
	"errors"
	"fmt"
)

// Kind classifies an application error so callers can decide how to surface it.
type Kind string

const (
	// KindValidation is a local input problem, it never reaches the network.
	KindValidation Kind = "validation"
	// KindAuth is a missing or expired credential.
	KindAuth Kind = "auth"
	// KindTransport is a failed call to the booking API.
	KindTransport Kind = "transport"
	// KindUnexpected is anything we did not anticipate.
	KindUnexpected Kind = "unexpected"
)

// ApplicationError handles application level errors.
type ApplicationError struct {
	Message    string
	StatusCode int
	Kind       Kind
	Cause      error
}

// Error interface implementation.
func (e ApplicationError) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Message, e.Cause)
}

func (e ApplicationError) Unwrap() error {
	if e.Cause == nil {
		return errors.New(e.Message)
	}

	return e.Cause
}

func (e ApplicationError) Is(target error) bool {
	var targetErr ApplicationError

	if !errors.As(target, &targetErr) {
		return false
	}

	return e.Cause == targetErr.Cause &&
		e.Message == targetErr.Message
}

// ErrorCode returns error code for an application error.
func (e ApplicationError) ErrorCode() int {
	return e.StatusCode
}

// WithCause returns a copy of the error carrying cause.
func (e ApplicationError) WithCause(cause error) ApplicationError {
	e.Cause = cause

	return e
}

// KindOf reports the kind of err, KindUnexpected when err is not an ApplicationError.
func KindOf(err error) Kind {
	var appErr ApplicationError
	if errors.As(err, &appErr) && appErr.Kind != "" {
		return appErr.Kind
	}

	return KindUnexpected
}

// MessageOf returns the user facing message of err or fallback when err carries none.
func MessageOf(err error, fallback string) string {
	var appErr ApplicationError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}

	return fallback
}
