package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// NotFound indicates a file, module, or documentation entry is absent
	NotFound ErrorCode = "NOT_FOUND"
	// ParseFailure indicates malformed source text, manifest JSON, or documentation JSON
	ParseFailure ErrorCode = "PARSE_FAILURE"
	// Unresolvable indicates no owning project exists for a contextual path
	Unresolvable ErrorCode = "UNRESOLVABLE"
	// Ambiguous is reserved for same-named modules across dependencies.
	// Lookups take the first match in dependency order and never report this
	// code today; it exists so callers have a stable name if detection is added.
	Ambiguous ErrorCode = "AMBIGUOUS"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// EcbError represents an ECB error with a stable code and message.
//
// Resolution and completion paths swallow these at the boundary where they
// occur and degrade to an absence value; the type exists so the swallowing
// site can log a classified, wrapped cause instead of a bare string.
type EcbError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	cause   error     // Underlying error (not exported to JSON)
}

// New creates a new EcbError
func New(code ErrorCode, message string, cause error) *EcbError {
	return &EcbError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *EcbError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *EcbError) Unwrap() error {
	return e.cause
}

// CodeOf extracts the ErrorCode from err, or InternalError for foreign errors.
func CodeOf(err error) ErrorCode {
	for err != nil {
		if ee, ok := err.(*EcbError); ok {
			return ee.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return InternalError
}
