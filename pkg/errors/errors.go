// Package errors provides the coded errors shown to CLI and API users.
//
// Packages below the user surface return plain sentinel errors
// (curriculum.ErrCycle, solver.ErrNoSolution, ...). The CLI and the HTTP
// server turn them into an [*Error] with [Classify], which picks a [Code]
// and a message fit for users; the HTTP layer maps codes to status codes
// with [HTTPStatus].
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // ...
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidInstance, cause, "load %s", path)
package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/matzehuels/curricula/pkg/curriculum"
	"github.com/matzehuels/curricula/pkg/solver"
)

// Code is a machine-readable error code.
type Code string

const (
	// Input errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidInstance Code = "INVALID_INSTANCE"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidID       Code = "INVALID_ID"

	// Outcome errors
	ErrCodeInfeasible   Code = "INFEASIBLE"
	ErrCodeLimitReached Code = "LIMIT_REACHED"
	ErrCodeCanceled     Code = "CANCELED"

	// Resource errors
	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeUnavailable Code = "UNAVAILABLE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err carries code anywhere in its chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode returns the code of err, or "" if it has none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of a coded error without its code, or the
// plain error text otherwise.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil && e.Code.isInput() {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

func (c Code) isInput() bool {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidInstance, ErrCodeInvalidFormat, ErrCodeInvalidID:
		return true
	}
	return false
}

// Classify converts a domain error into a coded Error. Errors that already
// carry a code are returned unchanged; nil stays nil.
//
// Domain wipeout never reaches users as such: it means the same as "no
// schedule exists" and is reported as ErrCodeInfeasible.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}

	switch {
	case errors.Is(err, solver.ErrNoSolution), errors.Is(err, solver.ErrWipeout):
		return Wrap(ErrCodeInfeasible, err, "no schedule found")
	case errors.Is(err, solver.ErrLimitReached), errors.Is(err, context.DeadlineExceeded):
		return Wrap(ErrCodeLimitReached, err, "search stopped before finding a schedule")
	case errors.Is(err, context.Canceled):
		return Wrap(ErrCodeCanceled, err, "canceled")
	case errors.Is(err, curriculum.ErrUnknownFormat):
		return Wrap(ErrCodeInvalidFormat, err, "unsupported instance format")
	case errors.Is(err, fs.ErrNotExist):
		return Wrap(ErrCodeNotFound, err, "file not found")
	case isInstanceError(err):
		return Wrap(ErrCodeInvalidInstance, err, "invalid instance")
	}
	return Wrap(ErrCodeInternal, err, "internal error")
}

func isInstanceError(err error) bool {
	for _, target := range []error{
		curriculum.ErrMalformed,
		curriculum.ErrNoPeriods,
		curriculum.ErrNoCourses,
		curriculum.ErrCourseNumbering,
		curriculum.ErrInvalidCredits,
		curriculum.ErrUnknownCourse,
		curriculum.ErrSelfPrerequisite,
		curriculum.ErrDuplicatePrerequisite,
		curriculum.ErrCycle,
		curriculum.ErrInvalidLimits,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// HTTPStatus maps the code of err to an HTTP status.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidInstance, ErrCodeInvalidFormat, ErrCodeInvalidID:
		return http.StatusBadRequest
	case ErrCodeInfeasible:
		return http.StatusUnprocessableEntity
	case ErrCodeLimitReached:
		return http.StatusGatewayTimeout
	case ErrCodeCanceled:
		return 499 // client closed request
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
