package errors

import (
	"errors"
	"fmt"
)

// Failure modes of the Instagram integration.
var (
	ErrNotAuthorized = errors.New("user is not authorized")
	ErrRemoteRequest = errors.New("remote request failed")
	ErrRemoteAPI     = errors.New("remote api error")
	ErrNoData        = errors.New("no media data")
	ErrRefreshFailed = errors.New("token refresh failed")
)

// Error carries an optional code alongside a message and a wrapped cause.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new error with a message
func New(message string) error {
	return &Error{
		Message: message,
	}
}

// Wrap wraps an error with additional message
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: message,
		Err:     err,
	}
}

// WrapWithCode wraps an error with a code and message
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join wraps errors.Join
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// GetCode returns the error code if it exists
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsNotAuthorized returns true when no account exists for the user
func IsNotAuthorized(err error) bool {
	return errors.Is(err, ErrNotAuthorized)
}

// IsNoData returns true when a well-formed response carried no media
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData)
}

// IsRemoteAPI returns true when the response body carried an error object
func IsRemoteAPI(err error) bool {
	return errors.Is(err, ErrRemoteAPI)
}
