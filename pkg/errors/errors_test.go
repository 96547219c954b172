package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"testing"

	"github.com/matzehuels/curricula/pkg/curriculum"
	"github.com/matzehuels/curricula/pkg/solver"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "unknown format: %s", "xml")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFormat)
	}
	if err.Message != "unknown format: xml" {
		t.Errorf("Message = %v, want %v", err.Message, "unknown format: xml")
	}
	if want := "INVALID_FORMAT: unknown format: xml"; err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeUnavailable, cause, "connect redis")

	if err.Code != ErrCodeUnavailable {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnavailable)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeInvalidInput, "test"), ErrCodeInvalidInput, true},
		{"non-matching code", New(ErrCodeInvalidInput, "test"), ErrCodeNotFound, false},
		{"outer code wins", Wrap(ErrCodeInternal, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeInternal, true},
		{"fmt wrapped", fmt.Errorf("ctx: %w", New(ErrCodeNotFound, "x")), ErrCodeNotFound, true},
		{"plain error", errors.New("plain error"), ErrCodeInvalidInput, false},
		{"nil error", nil, ErrCodeInvalidInput, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInfeasible, "x")); got != ErrCodeInfeasible {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInfeasible)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"coded", New(ErrCodeInfeasible, "no schedule found"), "no schedule found"},
		{"plain", errors.New("plain error"), "plain error"},
		{"input cause shown", Wrap(ErrCodeInvalidInstance, curriculum.ErrCycle, "invalid instance"),
			"invalid instance: " + curriculum.ErrCycle.Error()},
		{"internal cause hidden", Wrap(ErrCodeInternal, errors.New("nil map"), "internal error"), "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"no solution", solver.ErrNoSolution, ErrCodeInfeasible},
		{"wipeout", &solver.WipeoutError{Var: "x"}, ErrCodeInfeasible},
		{"limit", fmt.Errorf("solve: %w", solver.ErrLimitReached), ErrCodeLimitReached},
		{"deadline", context.DeadlineExceeded, ErrCodeLimitReached},
		{"canceled", context.Canceled, ErrCodeCanceled},
		{"cycle", fmt.Errorf("x.toml: %w: [1 2]", curriculum.ErrCycle), ErrCodeInvalidInstance},
		{"malformed", curriculum.ErrMalformed, ErrCodeInvalidInstance},
		{"format", curriculum.ErrUnknownFormat, ErrCodeInvalidFormat},
		{"missing file", fs.ErrNotExist, ErrCodeNotFound},
		{"already coded", New(ErrCodeInvalidID, "bad"), ErrCodeInvalidID},
		{"other", errors.New("boom"), ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if GetCode(got) != tt.want {
				t.Errorf("GetCode(Classify()) = %v, want %v", GetCode(got), tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("Classify() lost the cause %v", tt.err)
			}
		})
	}
	if Classify(nil) != nil {
		t.Error("Classify(nil) should be nil")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeInvalidInstance, http.StatusBadRequest},
		{ErrCodeInvalidID, http.StatusBadRequest},
		{ErrCodeInfeasible, http.StatusUnprocessableEntity},
		{ErrCodeLimitReached, http.StatusGatewayTimeout},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeUnavailable, http.StatusServiceUnavailable},
		{ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(New(tt.code, "x")); got != tt.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
	if got := HTTPStatus(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("HTTPStatus(plain) = %d", got)
	}
}
