package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRouting Category = "routing"
	CategoryConfig  Category = "config"
	CategoryDev     Category = "dev"
	CategoryPublish Category = "publish"
	CategoryCLI     Category = "cli"
)

// ArborError is a structured error with a stable code, route or file
// context, and a fix suggestion.
type ArborError struct {
	// Code is a unique error identifier (e.g. "R002").
	Code string

	// Category is the error type (routing, config, ...).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Path is the route, file or URL the error refers to.
	Path string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ArborError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ArborError) Unwrap() error {
	return e.Wrapped
}

// WithPath adds route or file context to the error.
func (e *ArborError) WithPath(path string) *ArborError {
	e.Path = path
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *ArborError) WithDetail(d string) *ArborError {
	e.Detail = d
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ArborError) WithSuggestion(s string) *ArborError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *ArborError) Wrap(err error) *ArborError {
	e.Wrapped = err
	return e
}

// New creates an error from a registered code. Unknown codes produce a
// generic CLI error carrying the code, never a panic.
func New(code string) *ArborError {
	if tmpl, ok := registry[code]; ok {
		return &ArborError{
			Code:     code,
			Category: tmpl.Category,
			Message:  tmpl.Message,
			Detail:   tmpl.Detail,
			DocURL:   tmpl.DocURL,
		}
	}
	return &ArborError{
		Code:     code,
		Category: CategoryCLI,
		Message:  "unknown error",
	}
}

// Newf creates an ad-hoc error without a registered code.
func Newf(category Category, format string, args ...any) *ArborError {
	return &ArborError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// As is a pass-through to the standard library, so callers that import
// this package do not also need the stdlib errors package.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Is is a pass-through to the standard library.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
