package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput          = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON         = errors.New("invalid JSON format")
	ErrFileNotFound        = errors.New("file not found")
	ErrFileEmpty           = errors.New("file is empty")
	ErrInvalidFilePath     = errors.New("invalid file path")
	ErrUnknownSolution     = errors.New("no solution registered under that name")
	ErrInvalidSignature    = errors.New("solution signature is not supported")
	ErrInconsistentFixture = errors.New("fixture records disagree on argument types")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeIO            ErrorType = "io"
	ErrorTypeSyntax        ErrorType = "syntax"
	ErrorTypeSchema        ErrorType = "schema"
	ErrorTypeArgumentCount ErrorType = "argument_count"
	ErrorTypeCoercion      ErrorType = "coercion"
	ErrorTypeComparison    ErrorType = "comparison"
	ErrorTypeTypeMismatch  ErrorType = "type_mismatch"
	ErrorTypeConfig        ErrorType = "config"
	ErrorTypeOutput        ErrorType = "output"
	ErrorTypeUnknown       ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison. Two AppErrors match when their
// types match.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// Category sentinels for errors.Is.
var (
	IOError               = &AppError{Type: ErrorTypeIO}
	SyntaxError           = &AppError{Type: ErrorTypeSyntax}
	SchemaError           = &AppError{Type: ErrorTypeSchema}
	ArgumentCountMismatch = &AppError{Type: ErrorTypeArgumentCount}
	UnsupportedCoercion   = &AppError{Type: ErrorTypeCoercion}
	UnsupportedComparison = &AppError{Type: ErrorTypeComparison}
	TypeMismatch          = &AppError{Type: ErrorTypeTypeMismatch}
	ConfigError           = &AppError{Type: ErrorTypeConfig}
)

// NewIOError creates a new error related to reading fixture or config files
func NewIOError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeIO,
		Message: message,
		Err:     err,
	}
}

// NewSyntaxError creates a new error for malformed JSON text
func NewSyntaxError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeSyntax,
		Message: message,
		Err:     err,
	}
}

// NewSchemaError creates a new error for well-formed fixtures with the wrong shape
func NewSchemaError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeSchema,
		Message: message,
		Err:     err,
	}
}

// NewArgumentCountError creates a new error for input arrays that do not match the solution arity
func NewArgumentCountError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeArgumentCount,
		Message: message,
		Err:     err,
	}
}

// NewCoercionError creates a new error for JSON values with no mapping to the target type
func NewCoercionError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeCoercion,
		Message: message,
		Err:     err,
	}
}

// NewComparisonError creates a new error for values that cannot be compared
func NewComparisonError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeComparison,
		Message: message,
		Err:     err,
	}
}

// NewTypeMismatchError creates a new error for accessor calls on the wrong variant
func NewTypeMismatchError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeTypeMismatch,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to configuration or solution binding
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// Annotate prefixes the message of an application error with a location,
// keeping its type and cause. Other errors are wrapped with %w.
func Annotate(prefix string, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fmt.Errorf("%s: %w", prefix, err)
	}
	return &AppError{
		Type:    appErr.Type,
		Message: prefix + ": " + appErr.Message,
		Err:     appErr.Err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		msg := appErr.Message
		switch appErr.Type {
		case ErrorTypeIO:
			return fmt.Sprintf("I/O error: %s", msg)
		case ErrorTypeSyntax:
			return fmt.Sprintf("JSON syntax error: %s", msg)
		case ErrorTypeSchema:
			return fmt.Sprintf("Fixture schema error: %s", msg)
		case ErrorTypeArgumentCount:
			return fmt.Sprintf("Argument count mismatch: %s", msg)
		case ErrorTypeCoercion:
			return fmt.Sprintf("Unsupported coercion: %s", msg)
		case ErrorTypeComparison:
			return fmt.Sprintf("Unsupported comparison: %s", msg)
		case ErrorTypeTypeMismatch:
			return fmt.Sprintf("Type mismatch: %s", msg)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", msg)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", msg)
		default:
			return fmt.Sprintf("Error: %s", msg)
		}
	}

	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide valid JSON data."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with valid JSON content."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}
	if errors.Is(err, ErrUnknownSolution) {
		return "Error: No solution is registered under that name. Run 'dsa list' to see them."
	}

	return fmt.Sprintf("Error: %v", err)
}
