package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime  Category = "runtime"
	CategoryConfig   Category = "config"
	CategoryProtocol Category = "protocol"
	CategoryCLI      Category = "cli"
)

// FeatherError is a structured error with a registered code and a fix hint.
type FeatherError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (runtime, config, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *FeatherError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *FeatherError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a *FeatherError with the same code.
func (e *FeatherError) Is(target error) bool {
	t, ok := target.(*FeatherError)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *FeatherError) WithSuggestion(s string) *FeatherError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *FeatherError) WithDetail(d string) *FeatherError {
	e.Detail = d
	return e
}

// WithDetailf is WithDetail with fmt formatting.
func (e *FeatherError) WithDetailf(format string, args ...any) *FeatherError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *FeatherError) Wrap(err error) *FeatherError {
	e.Wrapped = err
	return e
}

// New creates a FeatherError from a registered error code.
func New(code string) *FeatherError {
	template, ok := registry[code]
	if !ok {
		return &FeatherError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &FeatherError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new FeatherError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *FeatherError {
	return &FeatherError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a FeatherError.
func FromError(err error, code string) *FeatherError {
	if err == nil {
		return nil
	}
	if fe, ok := err.(*FeatherError); ok {
		return fe
	}
	return New(code).Wrap(err)
}

// FromPanic converts a recovered panic value into a FeatherError.
// Error values are wrapped so errors.Is keeps working through the panic.
func FromPanic(code string, r any) *FeatherError {
	fe := New(code)
	if err, ok := r.(error); ok {
		return fe.Wrap(err)
	}
	return fe.Wrap(fmt.Errorf("panic: %v", r))
}

// CodeOf returns the code of the first FeatherError in err's chain, or "".
func CodeOf(err error) string {
	for err != nil {
		if fe, ok := err.(*FeatherError); ok {
			return fe.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
