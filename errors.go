package welstory

import (
	"errors"
	"fmt"
)

// Error type constants used in ClientError.Type.
const (
	// ErrorTypeTransport marks network/connection-level failures.
	ErrorTypeTransport = "Transport"
	// ErrorTypeHTTP marks a non-2xx status on an operation that requires success.
	ErrorTypeHTTP = "HTTP"
	// ErrorTypeParse marks a body that is not valid JSON where JSON is required.
	ErrorTypeParse = "Parse"
	// ErrorTypeShape marks a parsed payload with required fields missing or mistyped.
	ErrorTypeShape = "Shape"
	// ErrorTypeAuth marks a login that succeeded at the HTTP level but returned no token.
	ErrorTypeAuth = "Authentication"
	// ErrorTypeToken marks a stored token that cannot be decoded or lacks an expiry.
	ErrorTypeToken = "TokenDecode"
	// ErrorTypeState marks an operation rejected by the client's own state
	// (register when already registered, unregister when not).
	ErrorTypeState = "StateConflict"
	// ErrorTypeUnavailable marks the absence of any usable transport primitive.
	ErrorTypeUnavailable = "TransportUnavailable"
)

// ErrTransportUnavailable is returned when no transport strategy in the
// fallback chain could be constructed for this process.
var ErrTransportUnavailable = errors.New("welstory: no usable transport")

// ClientError represents an error from the client. Type carries the failure
// class, Op the logical operation that produced it, and Payload the offending
// body or status text where one is available.
type ClientError struct {
	Type       string
	Op         string
	Message    string
	StatusCode int
	Payload    string
	Cause      error
}

// Error implements error interface.
func (e *ClientError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Op != "" {
		msg = fmt.Sprintf("[%s] %s", e.Op, msg)
	}
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ClientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error types for errors.Is.
func (e *ClientError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*ClientError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// IsAuthError reports whether err is an authentication failure
// (login returned no Authorization header).
func IsAuthError(err error) bool {
	return hasErrorType(err, ErrorTypeAuth)
}

// IsStateConflict reports whether err is a registration-state conflict.
func IsStateConflict(err error) bool {
	return hasErrorType(err, ErrorTypeState)
}

// IsShapeError reports whether err is a payload shape-validation failure.
func IsShapeError(err error) bool {
	return hasErrorType(err, ErrorTypeShape)
}

func hasErrorType(err error, errorType string) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == errorType
	}
	return false
}
