// Package errors provides structured error handling for ccrefactor with categorization,
// severity levels, and contextual information so callers can tell failure outcomes apart.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// ErrorTypeUnknown represents an unknown error type
	ErrorTypeUnknown ErrorType = iota

	// ErrorTypeInputNotFound represents a missing target path or file
	ErrorTypeInputNotFound

	// ErrorTypeInvalidShape represents a file where a directory was expected, or the reverse
	ErrorTypeInvalidShape

	// ErrorTypeGuardRejected represents a rewrite refused by the logic-preservation guard
	ErrorTypeGuardRejected

	// ErrorTypeUnsupportedRule represents a requested rule name without a handler
	ErrorTypeUnsupportedRule

	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation

	// ErrorTypeAuthentication represents authentication errors
	ErrorTypeAuthentication

	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration

	// ErrorTypeFileSystem represents file system errors
	ErrorTypeFileSystem

	// ErrorTypeGit represents git operation errors
	ErrorTypeGit

	// ErrorTypeGitHub represents GitHub API errors
	ErrorTypeGitHub
)

// String returns a string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeInputNotFound:
		return "input_not_found"
	case ErrorTypeInvalidShape:
		return "invalid_shape"
	case ErrorTypeGuardRejected:
		return "guard_rejected"
	case ErrorTypeUnsupportedRule:
		return "unsupported_rule"
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeAuthentication:
		return "authentication"
	case ErrorTypeConfiguration:
		return "configuration"
	case ErrorTypeFileSystem:
		return "filesystem"
	case ErrorTypeGit:
		return "git"
	case ErrorTypeGitHub:
		return "github"
	default:
		return "unknown"
	}
}

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow represents low severity errors (warnings)
	SeverityLow Severity = iota

	// SeverityMedium represents medium severity errors (recoverable)
	SeverityMedium

	// SeverityHigh represents high severity errors (critical)
	SeverityHigh
)

// String returns a string representation of the severity
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// refactorError represents a structured error with additional context
type refactorError struct {
	errorType   ErrorType
	severity    Severity
	message     string
	cause       error
	context     map[string]interface{}
	suggestions []string
}

// Error implements the error interface
func (e *refactorError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("[%s:%s]", e.errorType.String(), e.severity.String()))
	parts = append(parts, e.message)

	if e.cause != nil {
		parts = append(parts, fmt.Sprintf("caused by: %s", e.cause.Error()))
	}

	return strings.Join(parts, " ")
}

// Type returns the error type
func (e *refactorError) Type() ErrorType {
	return e.errorType
}

// Severity returns the error severity
func (e *refactorError) Severity() Severity {
	return e.severity
}

// Message returns the human-readable message without type prefix or cause
func (e *refactorError) Message() string {
	return e.message
}

// Cause returns the underlying cause of the error
func (e *refactorError) Cause() error {
	return e.cause
}

// Context returns the error context
func (e *refactorError) Context() map[string]interface{} {
	return e.context
}

// Suggestions returns suggested actions to resolve the error
func (e *refactorError) Suggestions() []string {
	return e.suggestions
}

// Unwrap returns the underlying error for compatibility with errors.Unwrap
func (e *refactorError) Unwrap() error {
	return e.cause
}

// ErrorBuilder helps construct structured errors
type ErrorBuilder struct {
	errorType   ErrorType
	severity    Severity
	message     string
	cause       error
	context     map[string]interface{}
	suggestions []string
}

// NewError creates a new error builder
func NewError(errorType ErrorType) *ErrorBuilder {
	return &ErrorBuilder{
		errorType:   errorType,
		severity:    SeverityMedium,
		context:     make(map[string]interface{}),
		suggestions: []string{},
	}
}

// WithMessage sets the error message
func (eb *ErrorBuilder) WithMessage(message string) *ErrorBuilder {
	eb.message = message
	return eb
}

// WithMessagef sets the error message with formatting
func (eb *ErrorBuilder) WithMessagef(format string, args ...interface{}) *ErrorBuilder {
	eb.message = fmt.Sprintf(format, args...)
	return eb
}

// WithCause sets the underlying cause of the error
func (eb *ErrorBuilder) WithCause(cause error) *ErrorBuilder {
	eb.cause = cause
	return eb
}

// WithSeverity sets the error severity
func (eb *ErrorBuilder) WithSeverity(severity Severity) *ErrorBuilder {
	eb.severity = severity
	return eb
}

// WithContext adds context information
func (eb *ErrorBuilder) WithContext(key string, value interface{}) *ErrorBuilder {
	eb.context[key] = value
	return eb
}

// WithSuggestion adds a suggested action
func (eb *ErrorBuilder) WithSuggestion(suggestion string) *ErrorBuilder {
	eb.suggestions = append(eb.suggestions, suggestion)
	return eb
}

// Build creates the final error
func (eb *ErrorBuilder) Build() error {
	return &refactorError{
		errorType:   eb.errorType,
		severity:    eb.severity,
		message:     eb.message,
		cause:       eb.cause,
		context:     eb.context,
		suggestions: eb.suggestions,
	}
}

// InputNotFoundError reports a target path or file that does not exist
func InputNotFoundError(path string) error {
	return NewError(ErrorTypeInputNotFound).
		WithMessagef("%s does not exist", path).
		WithSeverity(SeverityMedium).
		WithContext("path", path).
		WithSuggestion("Check the path and revision").
		Build()
}

// InvalidShapeError reports a path whose kind differs from what the operation expects
func InvalidShapeError(path, expected string) error {
	return NewError(ErrorTypeInvalidShape).
		WithMessagef("%s is not a %s", path, expected).
		WithSeverity(SeverityMedium).
		WithContext("path", path).
		WithContext("expected", expected).
		Build()
}

// GuardRejectedError reports a rewrite that failed the logic-preservation guard
func GuardRejectedError(path, reason string) error {
	return NewError(ErrorTypeGuardRejected).
		WithMessagef("refactoring of %s rejected: %s", path, reason).
		WithSeverity(SeverityHigh).
		WithContext("path", path).
		WithContext("reason", reason).
		WithSuggestion("Run with fewer rules or without --preserve-logic after reviewing the diff").
		Build()
}

// UnsupportedRuleError reports a rule name that has no handler
func UnsupportedRuleError(name string) error {
	return NewError(ErrorTypeUnsupportedRule).
		WithMessagef("unsupported refactoring rule %q", name).
		WithSeverity(SeverityLow).
		WithContext("rule", name).
		Build()
}

// ValidationError creates a validation error
func ValidationError(message string) error {
	return NewError(ErrorTypeValidation).
		WithMessage(message).
		WithSeverity(SeverityLow).
		Build()
}

// ConfigurationError creates a configuration error
func ConfigurationError(message string) error {
	return NewError(ErrorTypeConfiguration).
		WithMessage(message).
		WithSeverity(SeverityHigh).
		WithSuggestion("Check your configuration file").
		WithSuggestion("Run 'ccrefactor config validate' to verify settings").
		Build()
}

// FileSystemError wraps a failed filesystem operation on a path
func FileSystemError(operation, path string, cause error) error {
	return NewError(ErrorTypeFileSystem).
		WithMessagef("%s %s failed", operation, path).
		WithCause(cause).
		WithSeverity(SeverityMedium).
		WithContext("operation", operation).
		WithContext("path", path).
		Build()
}

// GitError creates a git operation error
func GitError(operation string, cause error) error {
	return NewError(ErrorTypeGit).
		WithMessagef("git %s failed", operation).
		WithCause(cause).
		WithSeverity(SeverityMedium).
		WithContext("operation", operation).
		WithSuggestion("Check git repository status").
		Build()
}

// GitHubError creates a GitHub API error
func GitHubError(operation string, cause error) error {
	return NewError(ErrorTypeGitHub).
		WithMessagef("GitHub %s failed", operation).
		WithCause(cause).
		WithSeverity(SeverityMedium).
		WithContext("operation", operation).
		WithSuggestion("Check GitHub authentication").
		WithSuggestion("Verify repository permissions").
		Build()
}

// AuthenticationError creates an authentication error
func AuthenticationError(service string) error {
	return NewError(ErrorTypeAuthentication).
		WithMessagef("authentication failed for %s", service).
		WithSeverity(SeverityHigh).
		WithContext("service", service).
		WithSuggestion(fmt.Sprintf("Re-authenticate with %s", service)).
		Build()
}

// asRefactorError finds the first structured error in the chain
func asRefactorError(err error) (*refactorError, bool) {
	var re *refactorError
	if stderrors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsType checks if an error, or any error it wraps, is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if re, ok := asRefactorError(err); ok {
		return re.Type() == errorType
	}
	return false
}

// TypeOf returns the type of the first structured error in the chain
func TypeOf(err error) ErrorType {
	if re, ok := asRefactorError(err); ok {
		return re.Type()
	}
	return ErrorTypeUnknown
}

// IsSeverity checks if an error has a specific severity
func IsSeverity(err error, severity Severity) bool {
	if re, ok := asRefactorError(err); ok {
		return re.Severity() == severity
	}
	return false
}

// GetSuggestions extracts suggestions from an error
func GetSuggestions(err error) []string {
	if re, ok := asRefactorError(err); ok {
		return re.Suggestions()
	}
	return []string{}
}

// GetContext extracts context from an error
func GetContext(err error) map[string]interface{} {
	if re, ok := asRefactorError(err); ok {
		return re.Context()
	}
	return map[string]interface{}{}
}

// FormatUserFriendly renders an error with its suggestions for terminal output
func FormatUserFriendly(err error) string {
	re, ok := asRefactorError(err)
	if !ok {
		return err.Error()
	}

	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(re.message)
	if re.cause != nil {
		b.WriteString("\n  cause: ")
		b.WriteString(re.cause.Error())
	}
	if len(re.suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, s := range re.suggestions {
			b.WriteString("\n  - ")
			b.WriteString(s)
		}
	}
	return b.String()
}
