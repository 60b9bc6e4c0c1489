package agui

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies a failure by how the runtime should handle it.
type ErrorCategory string

const (
	// ErrorConfiguration indicates a misconfigured tool or client.
	// Never retried; reported to monitoring.
	ErrorConfiguration ErrorCategory = "configuration"

	// ErrorUserInput indicates invalid input that must be corrected by the
	// caller. Never retried; not reported.
	ErrorUserInput ErrorCategory = "user_input"

	// ErrorSecurity indicates an authorization or policy failure.
	// Never retried; reported to monitoring.
	ErrorSecurity ErrorCategory = "security"

	// ErrorTransient indicates a temporary failure such as a timeout or a
	// network error. Always retried, up to the configured attempt limit.
	ErrorTransient ErrorCategory = "transient"

	// ErrorResource indicates resource exhaustion (quota, memory, handles).
	// Retried when the retry policy allows it.
	ErrorResource ErrorCategory = "resource"

	// ErrorUnknown is the fallback for unclassified failures.
	ErrorUnknown ErrorCategory = "unknown"
)

// shouldReport maps each category to whether the failure is worth
// surfacing to monitoring, as opposed to being the caller's problem.
var shouldReport = map[ErrorCategory]bool{
	ErrorConfiguration: true,
	ErrorUserInput:     false,
	ErrorSecurity:      true,
	ErrorTransient:     false,
	ErrorResource:      true,
	ErrorUnknown:       true,
}

// ShouldReportCategory returns whether failures of the given category
// should be surfaced to monitoring.
func ShouldReportCategory(cat ErrorCategory) bool {
	return shouldReport[cat]
}

// CategorizedError is an error carrying handling metadata.
type CategorizedError interface {
	error
	Category() ErrorCategory
	// ShouldReport returns whether the failure should be surfaced to monitoring.
	ShouldReport() bool
}

// Error is a categorized error with an optional cause.
type Error struct {
	Msg   string
	Cat   ErrorCategory
	Cause error
}

// Error returns the error message, including the cause when present.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Category returns the error category.
func (e *Error) Category() ErrorCategory {
	return e.Cat
}

// ShouldReport returns whether the failure should be surfaced to monitoring.
func (e *Error) ShouldReport() bool {
	return shouldReport[e.Cat]
}

// NewConfigurationError creates an error for misconfiguration.
func NewConfigurationError(msg string, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorConfiguration, Cause: cause}
}

// NewUserInputError creates an error for invalid caller input.
func NewUserInputError(msg string, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorUserInput, Cause: cause}
}

// NewSecurityError creates an error for authorization or policy failures.
func NewSecurityError(msg string, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorSecurity, Cause: cause}
}

// NewTransientError creates an error for temporary failures worth retrying.
func NewTransientError(msg string, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorTransient, Cause: cause}
}

// NewResourceError creates an error for resource exhaustion.
func NewResourceError(msg string, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorResource, Cause: cause}
}

// CategoryOf returns the category of err, or ErrorUnknown if err (and its
// chain) carries no categorization.
func CategoryOf(err error) ErrorCategory {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category()
	}
	return ErrorUnknown
}

// IsTransient returns true if err is categorized as transient.
func IsTransient(err error) bool {
	return CategoryOf(err) == ErrorTransient
}

// ShouldReport returns whether err should be surfaced to monitoring.
// Uncategorized errors report by default.
func ShouldReport(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.ShouldReport()
	}
	return true
}
