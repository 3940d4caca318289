package session

import (
	"errors"
	"fmt"

	"github.com/meetwire/meetwire-go/pkg/wire"
)

// ConnectionError is a classified attempt failure.
type ConnectionError struct {
	// Code is the wire error code, compared literally for retry
	// eligibility.
	Code wire.ErrorCode

	// Message is the human-readable failure detail.
	Message string

	// Credentials are the credentials in use when the attempt failed,
	// if the backend echoed them.
	Credentials *Credentials

	// Details carries extra failure context from the backend.
	Details map[string]any
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("connection failed: %s", e.Code)
	}
	return fmt.Sprintf("connection failed: %s: %s", e.Code, e.Message)
}

// Fatal reports whether the failure permanently ends listening for the
// attempt.
func (e *ConnectionError) Fatal() bool {
	return IsFatal(e.Code)
}

// CodeOf extracts the wire error code from an attempt error.
// Returns false if err does not wrap a ConnectionError.
func CodeOf(err error) (wire.ErrorCode, bool) {
	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return connErr.Code, true
	}
	return "", false
}

// IsPasswordRequired reports whether err is a password-required failure,
// the only failure kind eligible for re-authentication.
func IsPasswordRequired(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == wire.CodePasswordRequired
}
