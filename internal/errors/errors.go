// Package errors provides a lightweight structured error type (ScrubError)
// for category-based classification in the HTTP adapter and CLI.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the category of a ScrubError for classification.
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Document processing errors
	CategoryMarkdown   ErrorCategory = "markdown"
	CategoryFileSystem ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// ScrubError is a structured error with category, severity, and context.
type ScrubError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for ScrubError.
type ContextFields map[string]any

// Error implements the error interface.
func (e *ScrubError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling.
func (e *ScrubError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error.
func (e *ScrubError) WithContext(key string, value any) *ScrubError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new ScrubError.
func New(category ErrorCategory, severity ErrorSeverity, message string) *ScrubError {
	return &ScrubError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new ScrubError that wraps an existing error.
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *ScrubError {
	return &ScrubError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// AsScrubError extracts a *ScrubError from an error chain, if present.
func AsScrubError(err error) (*ScrubError, bool) {
	var se *ScrubError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// CategoryOf returns the category of an error, or CategoryInternal for
// unclassified errors.
func CategoryOf(err error) ErrorCategory {
	if se, ok := AsScrubError(err); ok {
		return se.Category
	}
	return CategoryInternal
}
