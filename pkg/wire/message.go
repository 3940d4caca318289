package wire

import (
	"fmt"
)

// EventType identifies the kind of a ServerEvent.
type EventType uint8

const (
	// EventEstablished indicates the session handshake completed.
	EventEstablished EventType = 1

	// EventFailed indicates the handshake failed; Code is set.
	EventFailed EventType = 2

	// EventDisplayNameRequired indicates room policy requires the
	// participant to set a display name before joining. Not an error:
	// the attempt remains pending.
	EventDisplayNameRequired EventType = 3
)

// IsValid returns true if the event type is known.
func (t EventType) IsValid() bool {
	return t >= EventEstablished && t <= EventDisplayNameRequired
}

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventEstablished:
		return "ESTABLISHED"
	case EventFailed:
		return "FAILED"
	case EventDisplayNameRequired:
		return "DISPLAY_NAME_REQUIRED"
	default:
		return "UNKNOWN"
	}
}

// ConnectRequest is the client's opening message to the backend.
//
// CBOR encoding:
//
//	{
//	  1: id,        // tstr: participant identity, may be empty (anonymous)
//	  2: password,  // tstr: room password, may be empty
//	  3: token,     // tstr: tenant-issued JWT, may be empty
//	  4: room,      // tstr: target room name
//	  5: features   // [tstr]: advertised feature URIs
//	}
type ConnectRequest struct {
	ID       string   `cbor:"1,keyasint,omitempty"`
	Password string   `cbor:"2,keyasint,omitempty"`
	Token    string   `cbor:"3,keyasint,omitempty"`
	Room     string   `cbor:"4,keyasint,omitempty"`
	Features []string `cbor:"5,keyasint,omitempty"`
}

// ServerEvent is a backend lifecycle message for one connection attempt.
//
// CBOR encoding:
//
//	{
//	  1: type,       // uint8: 1=established, 2=failed, 3=display-name-required
//	  2: sessionId,  // tstr: set when type=established
//	  3: code,       // tstr: error code, set when type=failed
//	  4: message,    // tstr: human-readable detail
//	  5: details     // map: extra failure context
//	}
type ServerEvent struct {
	Type      EventType      `cbor:"1,keyasint"`
	SessionID string         `cbor:"2,keyasint,omitempty"`
	Code      ErrorCode      `cbor:"3,keyasint,omitempty"`
	Message   string         `cbor:"4,keyasint,omitempty"`
	Details   map[string]any `cbor:"5,keyasint,omitempty"`
}

// Validate checks if the event is well-formed.
func (e *ServerEvent) Validate() error {
	if !e.Type.IsValid() {
		return fmt.Errorf("invalid event type: %d", e.Type)
	}
	if e.Type == EventFailed && !e.Code.IsValid() {
		return fmt.Errorf("failed event with unknown code: %q", e.Code)
	}
	if e.Type == EventEstablished && e.SessionID == "" {
		return fmt.Errorf("established event without session id")
	}
	return nil
}
