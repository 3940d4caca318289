package session

import (
	"context"
	"time"

	"github.com/meetwire/meetwire-go/pkg/wire"
)

// EventKind identifies a connection lifecycle event.
type EventKind uint8

const (
	// KindEstablished fires when the handshake completes.
	KindEstablished EventKind = iota + 1

	// KindFailed fires when the handshake fails.
	KindFailed

	// KindDisplayNameRequired fires when room policy requires a display
	// name before joining.
	KindDisplayNameRequired
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case KindEstablished:
		return "ESTABLISHED"
	case KindFailed:
		return "FAILED"
	case KindDisplayNameRequired:
		return "DISPLAY_NAME_REQUIRED"
	default:
		return "UNKNOWN"
	}
}

// Credentials is the identity/secret pair used for one attempt.
// Either field may be empty (anonymous access).
type Credentials struct {
	ID       string
	Password string
}

// Event is a connection lifecycle event delivered to listeners.
type Event struct {
	// Kind identifies the event.
	Kind EventKind

	// Handle is set for KindEstablished.
	Handle *Handle

	// Failure fields, set for KindFailed.
	Code        wire.ErrorCode
	Message     string
	Credentials *Credentials
	Details     map[string]any
}

// ListenerID identifies a registered listener for removal.
type ListenerID uint64

// Connection is the transport collaborator driven by this package.
// Implemented by transport.Conn; tests use in-memory fakes.
type Connection interface {
	// AddFeature advertises a feature URI in the connect request.
	// Must be called before Connect.
	AddFeature(uri string)

	// AddListener registers a listener for the given event kind and
	// returns its ID. Listeners are invoked in registration order.
	AddListener(kind EventKind, fn func(Event)) ListenerID

	// RemoveListener removes a listener. Safe to call on absent IDs.
	RemoveListener(id ListenerID)

	// Connect initiates the handshake with the given credentials.
	// Listeners must already be registered: implementations may deliver
	// failure events before Connect returns.
	Connect(ctx context.Context, creds Credentials) error

	// Close tears down the connection.
	Close() error
}

// Handle is an established session.
type Handle struct {
	// SessionID is the backend-assigned session identifier.
	SessionID string

	// Conn is the underlying connection carrying the session.
	Conn Connection

	// EstablishedAt is when the attempt resolved.
	EstablishedAt time.Time
}

// RecorderFeature is the feature URI advertised by automated recorder
// participants.
const RecorderFeature = "urn:meetwire:feature:recorder"

// Options is the immutable per-attempt snapshot derived from process-wide
// configuration plus the resolved tenant token. Build a fresh value for
// every attempt; never mutate one after passing it to a Dialer.
type Options struct {
	// ServerURL is the backend signaling endpoint.
	ServerURL string

	// Room is the target room name.
	Room string

	// Token is the tenant-issued JWT, empty when not provisioned.
	Token string
}

// Dialer constructs one Connection per attempt.
// Implemented by transport.Dialer; tests use fakes.
type Dialer interface {
	Dial(ctx context.Context, opts Options) (Connection, error)
}
