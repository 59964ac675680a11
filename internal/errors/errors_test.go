package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "error with wrapped error",
			appError: &AppError{
				Type:    ErrorTypeIO,
				Message: "failed to read fixture",
				Err:     errors.New("file not found"),
			},
			expected: "io: failed to read fixture: file not found",
		},
		{
			name: "error without wrapped error",
			appError: &AppError{
				Type:    ErrorTypeSyntax,
				Message: "expected ':' at offset 7, got '1'",
				Err:     nil,
			},
			expected: "syntax: expected ':' at offset 7, got '1'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	wrappedErr := errors.New("wrapped error")
	appErr := &AppError{
		Type:    ErrorTypeIO,
		Message: "test message",
		Err:     wrappedErr,
	}

	assert.Equal(t, wrappedErr, appErr.Unwrap())
}

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		target   error
		expected bool
	}{
		{
			name:     "same type",
			appError: NewSchemaError("missing expected", nil),
			target:   NewSchemaError("different message", errors.New("some error")),
			expected: true,
		},
		{
			name:     "different type",
			appError: NewSchemaError("missing expected", nil),
			target:   NewSyntaxError("missing expected", nil),
			expected: false,
		},
		{
			name:     "not an AppError",
			appError: NewIOError("test message", nil),
			target:   errors.New("standard error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appError.Is(tt.target))
		})
	}
}

func TestCategorySentinels(t *testing.T) {
	err := fmt.Errorf("loading case 3: %w", NewArgumentCountError("input has 2 values, solution takes 1", nil))

	assert.True(t, errors.Is(err, ArgumentCountMismatch))
	assert.False(t, errors.Is(err, UnsupportedCoercion))

	wrapped := NewIOError("file 'x.json' not found", ErrFileNotFound)
	assert.True(t, errors.Is(wrapped, IOError))
	assert.True(t, errors.Is(wrapped, ErrFileNotFound))
}

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "io error",
			err:      NewIOError("file 'cases.json' not found", ErrFileNotFound),
			expected: "I/O error: file 'cases.json' not found",
		},
		{
			name:     "syntax error",
			err:      NewSyntaxError("unexpected character 'x' at offset 0", nil),
			expected: "JSON syntax error: unexpected character 'x' at offset 0",
		},
		{
			name:     "schema error",
			err:      NewSchemaError("case 0 is missing 'expected'", nil),
			expected: "Fixture schema error: case 0 is missing 'expected'",
		},
		{
			name:     "argument count error",
			err:      NewArgumentCountError("case 0: got 2 inputs, want 1", nil),
			expected: "Argument count mismatch: case 0: got 2 inputs, want 1",
		},
		{
			name:     "coercion error",
			err:      NewCoercionError("cannot use 4.5 as int", nil),
			expected: "Unsupported coercion: cannot use 4.5 as int",
		},
		{
			name:     "comparison error",
			err:      NewComparisonError("cannot compare map with int", nil),
			expected: "Unsupported comparison: cannot compare map with int",
		},
		{
			name:     "config error",
			err:      NewConfigError("solution must be a function", nil),
			expected: "Configuration error: solution must be a function",
		},
		{
			name:     "standard error - empty input",
			err:      ErrEmptyInput,
			expected: "Error: The input is empty. Please provide valid JSON data.",
		},
		{
			name:     "standard error - unknown solution",
			err:      fmt.Errorf("lookup: %w", ErrUnknownSolution),
			expected: "Error: No solution is registered under that name. Run 'dsa list' to see them.",
		},
		{
			name:     "unknown error",
			err:      errors.New("some unknown error"),
			expected: "Error: some unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserFriendlyError(tt.err))
		})
	}
}

func TestAnnotate(t *testing.T) {
	cause := errors.New("boom")
	err := Annotate("case /2 input 1", NewTypeMismatchError("int conflicts with string", cause))

	assert.True(t, errors.Is(err, TypeMismatch))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "Type mismatch: case /2 input 1: int conflicts with string", UserFriendlyError(err))

	nested := Annotate("case abc", Annotate("argument 0", NewCoercionError("cannot coerce", nil)))
	assert.Equal(t, "Unsupported coercion: case abc: argument 0: cannot coerce", UserFriendlyError(nested))

	plain := Annotate("case 1", cause)
	assert.Equal(t, "case 1: boom", plain.Error())
	assert.True(t, errors.Is(plain, cause))
}
