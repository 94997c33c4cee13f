package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryUsage   Category = "usage"
	CategoryBinding Category = "binding"
	CategoryConfig  Category = "config"
	CategoryCLI     Category = "cli"
)

// UishkaError is a structured error with a registered code, the component it concerns,
// and a suggestion for fixing it.
type UishkaError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (usage, binding, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Kind is the component kind involved, if any.
	Kind string

	// Subject names the property, selector or key the error is about.
	Subject string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *UishkaError) Error() string {
	msg := e.Message
	if e.Kind != "" && e.Subject != "" {
		msg = fmt.Sprintf("%s (%s %q)", msg, e.Kind, e.Subject)
	} else if e.Kind != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Kind)
	} else if e.Subject != "" {
		msg = fmt.Sprintf("%s (%q)", msg, e.Subject)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *UishkaError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a UishkaError carrying the same code.
// Sentinels created with New can therefore be matched with errors.Is.
func (e *UishkaError) Is(target error) bool {
	t, ok := target.(*UishkaError)
	if !ok || t.Code == "" {
		return false
	}
	return e.Code == t.Code
}

// WithKind records the component kind the error concerns.
func (e *UishkaError) WithKind(kind string) *UishkaError {
	e.Kind = kind
	return e
}

// WithSubject records the property, selector or key the error concerns.
func (e *UishkaError) WithSubject(s string) *UishkaError {
	e.Subject = s
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *UishkaError) WithSuggestion(s string) *UishkaError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *UishkaError) WithDetail(d string) *UishkaError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *UishkaError) Wrap(err error) *UishkaError {
	e.Wrapped = err
	return e
}

// New creates a UishkaError from a registered error code.
func New(code string) *UishkaError {
	template, ok := registry[code]
	if !ok {
		return &UishkaError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &UishkaError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new UishkaError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *UishkaError {
	return &UishkaError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError returns the UishkaError in err's chain, or wraps err in a new
// error with code.
func FromError(err error, code string) *UishkaError {
	if err == nil {
		return nil
	}
	var ue *UishkaError
	if stderrors.As(err, &ue) {
		return ue
	}
	return New(code).Wrap(err)
}
