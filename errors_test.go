package welstory

import (
	"errors"
	"fmt"
	"testing"
)

func TestClientError(t *testing.T) {
	// Test error without cause
	err := &ClientError{
		Type:    ErrorTypeTransport,
		Message: "connection timeout",
	}

	expectedMsg := "Transport: connection timeout"
	if err.Error() != expectedMsg {
		t.Errorf("Expected '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test error with op, status and cause
	cause := errors.New("underlying error")
	errWithCause := &ClientError{
		Type:       ErrorTypeHTTP,
		Op:         "login",
		Message:    "unexpected status",
		StatusCode: 500,
		Cause:      cause,
	}

	expectedMsgWithCause := "[login] HTTP: unexpected status (status 500) (underlying error)"
	if errWithCause.Error() != expectedMsgWithCause {
		t.Errorf("Expected '%s', got '%s'", expectedMsgWithCause, errWithCause.Error())
	}
}

func TestClientErrorUnwrap(t *testing.T) {
	cause := errors.New("original error")
	err := &ClientError{
		Type:    ErrorTypeTransport,
		Message: "test message",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Expected unwrapped error to be %v, got %v", cause, unwrapped)
	}

	errNoCause := &ClientError{Type: ErrorTypeParse, Message: "test message"}
	if unwrapped := errNoCause.Unwrap(); unwrapped != nil {
		t.Errorf("Expected unwrapped error to be nil, got %v", unwrapped)
	}
}

func TestClientErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &ClientError{Type: ErrorTypeState, Message: "already registered"})

	if !errors.Is(err, &ClientError{Type: ErrorTypeState}) {
		t.Error("Expected errors.Is to match on Type")
	}
	if errors.Is(err, &ClientError{Type: ErrorTypeAuth}) {
		t.Error("Expected errors.Is not to match a different Type")
	}
}

func TestErrorPredicates(t *testing.T) {
	testCases := []struct {
		err   error
		auth  bool
		state bool
		shape bool
	}{
		{&ClientError{Type: ErrorTypeAuth}, true, false, false},
		{&ClientError{Type: ErrorTypeState}, false, true, false},
		{&ClientError{Type: ErrorTypeShape}, false, false, true},
		{&ClientError{Type: ErrorTypeTransport}, false, false, false},
		{errors.New("plain"), false, false, false},
		{nil, false, false, false},
	}

	for _, tc := range testCases {
		if got := IsAuthError(tc.err); got != tc.auth {
			t.Errorf("IsAuthError(%v) = %v, want %v", tc.err, got, tc.auth)
		}
		if got := IsStateConflict(tc.err); got != tc.state {
			t.Errorf("IsStateConflict(%v) = %v, want %v", tc.err, got, tc.state)
		}
		if got := IsShapeError(tc.err); got != tc.shape {
			t.Errorf("IsShapeError(%v) = %v, want %v", tc.err, got, tc.shape)
		}
	}
}
