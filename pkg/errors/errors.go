// Package errors provides structured error types for the sentree tools.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library callers
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND_*: Resource not found
//   - DANGLING_REFERENCE: A document names an identifier it does not contain
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidOrder, "layer %s cannot move to %d", id, idx)
//	if errors.Is(err, errors.ErrCodeInvalidOrder) {
//	    // Handle validation error
//	}
//
//	// Attach a code to a sentinel error from the graph packages
//	err = errors.Classify(g.MoveLayerToIndex(id, idx))
package errors

import (
	"errors"
	"fmt"
	"io/fs"

	sio "github.com/matzehuels/sentree/pkg/io"
	"github.com/matzehuels/sentree/pkg/sentence"
	"github.com/matzehuels/sentree/pkg/store"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidOrder    Code = "INVALID_ORDER"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidGraph    Code = "INVALID_GRAPH"
	ErrCodeInvalidKey      Code = "INVALID_KEY"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Reference errors
	ErrCodeDanglingReference Code = "DANGLING_REFERENCE"

	// Resource not found errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeLayerNotFound Code = "LAYER_NOT_FOUND"
	ErrCodeWordNotFound  Code = "WORD_NOT_FOUND"

	// Storage errors
	ErrCodeStorage Code = "STORAGE_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// classes maps sentinel errors of the graph and store packages to codes. The first
// match in the chain wins.
var classes = []struct {
	target error
	code   Code
}{
	{sentence.ErrOrderOutOfRange, ErrCodeInvalidOrder},
	{sentence.ErrOrderNotDense, ErrCodeInvalidOrder},
	{sentence.ErrUnknownLayer, ErrCodeLayerNotFound},
	{sentence.ErrUnknownWord, ErrCodeWordNotFound},
	{sentence.ErrDanglingReference, ErrCodeDanglingReference},
	{sio.ErrDanglingReference, ErrCodeDanglingReference},
	{sentence.ErrInvalidID, ErrCodeInvalidDocument},
	{sentence.ErrDuplicateID, ErrCodeInvalidDocument},
	{sentence.ErrLayerNotEmpty, ErrCodeInvalidInput},
	{sentence.ErrLinkCycle, ErrCodeInvalidGraph},
	{sentence.ErrAsymmetricLink, ErrCodeInvalidGraph},
	{sentence.ErrOwnership, ErrCodeInvalidGraph},
	{sentence.ErrInvalidParent, ErrCodeInvalidGraph},
	{sentence.ErrParentCycle, ErrCodeInvalidGraph},
	{store.ErrNotFound, ErrCodeNotFound},
	{store.ErrCorrupt, ErrCodeInvalidDocument},
	{store.ErrNetwork, ErrCodeStorage},
	{store.ErrUnknownBackend, ErrCodeInvalidInput},
	{fs.ErrNotExist, ErrCodeFileNotFound},
}

// Classify attaches a code to err based on the sentinel errors it wraps.
// It returns nil for nil, err unchanged if it already carries a code, and
// an ErrCodeInternal error for anything unrecognized.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if GetCode(err) != "" {
		return err
	}
	for _, c := range classes {
		if errors.Is(err, c.target) {
			return &Error{Code: c.code, Message: c.target.Error(), Cause: err}
		}
	}
	return Wrap(ErrCodeInternal, err, "unexpected error")
}
