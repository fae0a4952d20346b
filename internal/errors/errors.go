// Package errors defines the stable error taxonomy for bralign.
// Every failure mode surfaces as a Code so callers and scripts can match on
// the code instead of the message text.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Code represents a stable error code for a failure mode
type Code string

const (
	// FileNotFound indicates an input report path does not exist
	FileNotFound Code = "FILE_NOT_FOUND"
	// NoModulesFound indicates the module delimiter never matched in a non-empty report
	NoModulesFound Code = "NO_MODULES_FOUND"
	// MalformedReport indicates a module block without a recognizable name token
	MalformedReport Code = "MALFORMED_REPORT"
	// StructuralMismatch indicates the rewritten report does not round-trip to the
	// same module/library counts as the input
	StructuralMismatch Code = "STRUCTURAL_MISMATCH"
	// InternalError indicates an unexpected error
	InternalError Code = "INTERNAL_ERROR"
)

// Error is a bralign error with a stable code, message, and optional cause.
type Error struct {
	Code    Code        `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error
}

// New creates a new Error
func New(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Errorf creates a new Error with a formatted message
func Errorf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// CodeOf extracts the error code from err, or InternalError when err carries none.
func CodeOf(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return InternalError
}

// Hints maps error codes to a short remediation hint shown to the user.
var Hints = map[Code]string{
	FileNotFound:       "check the report path; both input reports must exist before anything is parsed",
	NoModulesFound:     "the file does not look like a build report; no module delimiter was found",
	MalformedReport:    "a module block is missing its 'Module Name:' line; regenerate the report",
	StructuralMismatch: "the written output did not round-trip; inspect the output files left on disk",
}

// HintFor returns the remediation hint for an error code, if any
func HintFor(code Code) string {
	return Hints[code]
}
