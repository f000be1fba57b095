package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryReactive Category = "reactive"
	CategoryTree     Category = "tree"
	CategoryConfig   Category = "config"
	CategoryServer   Category = "server"
	CategoryCLI      Category = "cli"
)

// RdomError is a structured error with a registered code, an optional
// explanation and a fix suggestion.
type RdomError struct {
	// Code is a unique error identifier (e.g., "R001").
	Code string

	// Category is the error type.
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
func (e *RdomError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *RdomError) Unwrap() error {
	return e.Wrapped
}

// Is matches another *RdomError with the same code.
func (e *RdomError) Is(target error) bool {
	t, ok := target.(*RdomError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *RdomError) WithSuggestion(s string) *RdomError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *RdomError) WithDetail(d string) *RdomError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted explanation to the error.
func (e *RdomError) WithDetailf(format string, args ...any) *RdomError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *RdomError) Wrap(err error) *RdomError {
	e.Wrapped = err
	return e
}

// New creates an RdomError from a registered error code.
func New(code string) *RdomError {
	template, ok := registry[code]
	if !ok {
		return &RdomError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &RdomError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
	}
}

// Newf creates a new RdomError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *RdomError {
	return &RdomError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an RdomError.
// Errors that already are (or wrap) an *RdomError are returned as is.
func FromError(err error, code string) *RdomError {
	if err == nil {
		return nil
	}
	var re *RdomError
	if stderrors.As(err, &re) {
		return re
	}
	return New(code).Wrap(err)
}

// CodeOf returns the code of the first *RdomError in err's chain.
func CodeOf(err error) string {
	var re *RdomError
	if stderrors.As(err, &re) {
		return re.Code
	}
	return ""
}
