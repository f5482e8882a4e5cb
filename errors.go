package qtdoc

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are mapped to transport-level failure kinds by the MCP and CLI
// layers. Any error without a code is reported as EINTERNAL.
const (
	EINVALID     = "invalid"     // malformed input (URL, query syntax)
	ENOTALLOWED  = "not_allowed" // outside the corpus boundary or wrong host/scheme
	ENOTFOUND    = "not_found"   // page absent from the corpus
	EPARSE       = "parse_error" // source HTML cannot be parsed
	EUNAVAILABLE = "unavailable" // search index missing or not yet built
	EINTERNAL    = "internal"    // unexpected internal error
)

// Error represents an application-specific error. Errors carry a machine
// readable code and a human readable message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("qtdoc error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode returns the code of the root error, if available.
// Otherwise returns EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the root error, if available.
// Otherwise returns a generic error message.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
