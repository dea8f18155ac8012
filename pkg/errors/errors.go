// Package errors provides structured error handling for framedoc
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeInternal represents internal system errors
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeFormat represents unsupported file format errors
	ErrorTypeFormat ErrorType = "format"
	// ErrorTypeFile represents file read or parse errors
	ErrorTypeFile ErrorType = "file"
	// ErrorTypeColumn represents missing column errors
	ErrorTypeColumn ErrorType = "missing_column"
	// ErrorTypeConversion represents row conversion errors
	ErrorTypeConversion ErrorType = "row_conversion"
)

// Error represents a structured error with context
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error with the given type and message
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	// If already our error type, preserve the stack
	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsType checks if the error is of the given type
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// NewUnsupportedFormat creates an error for a format that is not in the
// backend's enumerated set.
func NewUnsupportedFormat(backend, format string, supported []string) *Error {
	return New(ErrorTypeFormat,
		fmt.Sprintf("unsupported file format %q for backend %q (supported: %s)",
			format, backend, strings.Join(supported, ", "))).
		WithDetail("backend", backend).
		WithDetail("format", format).
		WithDetail("supported_formats", supported)
}

// NewMissingColumns creates an error naming every column that is absent from
// the frame, so callers can fix all mistakes in one pass.
func NewMissingColumns(missing []string) *Error {
	return New(ErrorTypeColumn,
		fmt.Sprintf("columns not found in frame: %s", strings.Join(missing, ", "))).
		WithDetail("missing_columns", missing)
}

// NewFileRead wraps a parser or I/O failure for the given file path.
func NewFileRead(path string, cause error) *Error {
	return Wrap(cause, ErrorTypeFile, fmt.Sprintf("failed to read file %q", path)).
		WithDetail("path", path)
}

// NewRowConversion creates an error for a cell that could not be rendered to
// text, identifying the row index and column name.
func NewRowConversion(row int, column string, cause error) *Error {
	return Wrap(cause, ErrorTypeConversion,
		fmt.Sprintf("cannot convert row %d, column %q", row, column)).
		WithDetail("row", row).
		WithDetail("column", column)
}

// MissingColumns returns the column names carried by a missing-column error,
// or nil when err is not one.
func MissingColumns(err error) []string {
	var e *Error
	if !errors.As(err, &e) || e.Type != ErrorTypeColumn {
		return nil
	}
	cols, _ := e.Details["missing_columns"].([]string)
	return cols
}

// captureStack captures the current call stack
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
