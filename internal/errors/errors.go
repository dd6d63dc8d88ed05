// Package errors provides a lightweight structured error type (FixupError)
// for category-based classification in the pipeline and CLI.
package errors

import "fmt"

// ErrorCategory represents the category of a fixup error for classification
type ErrorCategory string

const (
	// User-facing invocation and configuration errors
	CategoryUsage  ErrorCategory = "usage"
	CategoryConfig ErrorCategory = "config"

	// Output-tree and document generation errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryRender     ErrorCategory = "render"

	// Everything else
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// FixupError is a structured error with category, severity, and context
type FixupError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for FixupError
type ContextFields map[string]any

// Error implements the error interface
func (e *FixupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *FixupError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *FixupError) WithContext(key string, value any) *FixupError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new FixupError
func New(category ErrorCategory, severity ErrorSeverity, message string) *FixupError {
	return &FixupError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new FixupError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *FixupError {
	return &FixupError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// UsageError creates a fatal invocation error (bad arguments, missing output dir).
func UsageError(message string) *FixupError {
	return New(CategoryUsage, SeverityFatal, message)
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if fe, ok := err.(*FixupError); ok {
		return fe.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a FixupError
func GetCategory(err error) ErrorCategory {
	if fe, ok := err.(*FixupError); ok {
		return fe.Category
	}
	return CategoryInternal
}
