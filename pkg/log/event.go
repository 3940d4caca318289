package log

import (
	"time"
)

// Event represents a driver log event captured during session establishment.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID uniquely identifies the connection attempt (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Room is the target room name, when known.
	Room string `cbor:"3,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Type-specific payload (one of these will be set).
	StateChange *StateChangeEvent `cbor:"5,keyasint,omitempty"` // State machine transitions
	Failure     *FailureEvent     `cbor:"6,keyasint,omitempty"` // Attempt failures
	Auth        *AuthEvent        `cbor:"7,keyasint,omitempty"` // Credential resolution steps
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState is a connection state machine transition.
	CategoryState Category = 1

	// CategoryFailure is a failed connection attempt.
	CategoryFailure Category = 2

	// CategoryAuth is a credential resolution step (override applied,
	// token fetched, re-authentication started).
	CategoryAuth Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryFailure:
		return "FAILURE"
	case CategoryAuth:
		return "AUTH"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures a connection state machine transition.
type StateChangeEvent struct {
	// From is the previous state name.
	From string `cbor:"1,keyasint"`

	// To is the new state name.
	To string `cbor:"2,keyasint"`
}

// FailureEvent captures a failed connection attempt.
type FailureEvent struct {
	// Code is the wire error code.
	Code string `cbor:"1,keyasint"`

	// Message is the human-readable failure detail.
	Message string `cbor:"2,keyasint,omitempty"`

	// Fatal indicates the failure classification.
	Fatal bool `cbor:"3,keyasint"`
}

// AuthEvent captures a credential resolution step.
type AuthEvent struct {
	// Step names the resolution step (e.g. "override-applied",
	// "token-fetched", "reauth-prompt", "external-handoff").
	Step string `cbor:"1,keyasint"`

	// TokenPresent indicates whether a tenant token was available
	// after the step.
	TokenPresent bool `cbor:"2,keyasint"`
}

// NewStateChange creates a state transition event.
func NewStateChange(connID, room, from, to string) Event {
	return Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Room:         room,
		Category:     CategoryState,
		StateChange:  &StateChangeEvent{From: from, To: to},
	}
}

// NewFailure creates a failure event.
func NewFailure(connID, room, code, message string, fatal bool) Event {
	return Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Room:         room,
		Category:     CategoryFailure,
		Failure:      &FailureEvent{Code: code, Message: message, Fatal: fatal},
	}
}

// NewAuth creates a credential resolution event.
func NewAuth(connID, room, step string, tokenPresent bool) Event {
	return Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Room:         room,
		Category:     CategoryAuth,
		Auth:         &AuthEvent{Step: step, TokenPresent: tokenPresent},
	}
}
