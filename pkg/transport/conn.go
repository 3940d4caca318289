package transport

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/meetwire/meetwire-go/pkg/session"
	"github.com/meetwire/meetwire-go/pkg/wire"
)

// Conn is a WebSocket-backed session.Connection.
type Conn struct {
	id   string
	ws   *websocket.Conn
	opts session.Options

	mu        sync.Mutex
	nextID    session.ListenerID
	listeners []listener
	features  []string
	creds     session.Credentials
	connected bool
	closed    bool
}

type listener struct {
	id   session.ListenerID
	kind session.EventKind
	fn   func(session.Event)
}

func newConn(ws *websocket.Conn, opts session.Options) *Conn {
	return &Conn{
		id:   uuid.NewString(),
		ws:   ws,
		opts: opts,
	}
}

// ID returns the connection correlation ID.
func (c *Conn) ID() string {
	return c.id
}

// AddFeature advertises a feature URI in the connect request.
// Must be called before Connect.
func (c *Conn) AddFeature(uri string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.features = append(c.features, uri)
}

// AddListener registers a lifecycle listener and returns its ID.
func (c *Conn) AddListener(kind session.EventKind, fn func(session.Event)) session.ListenerID {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	c.listeners = append(c.listeners, listener{id: c.nextID, kind: kind, fn: fn})
	return c.nextID
}

// RemoveListener removes a listener. Safe to call on absent IDs.
func (c *Conn) RemoveListener(id session.ListenerID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, l := range c.listeners {
		if l.id == id {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			return
		}
	}
}

// Connect sends the connect request and starts the event read loop.
func (c *Conn) Connect(ctx context.Context, creds session.Credentials) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return fmt.Errorf("connection already started")
	}
	c.connected = true
	c.creds = creds
	req := wire.ConnectRequest{
		ID:       creds.ID,
		Password: creds.Password,
		Token:    c.opts.Token,
		Room:     c.opts.Room,
		Features: c.features,
	}
	c.mu.Unlock()

	data, err := wire.Marshal(&req)
	if err != nil {
		return fmt.Errorf("encode connect request: %w", err)
	}
	if err := c.ws.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return fmt.Errorf("send connect request: %w", err)
	}

	go c.readLoop()
	return nil
}

// Close tears down the socket. The read loop exits without reporting a
// dropped connection.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()
	return c.ws.Close()
}

func (c *Conn) readLoop() {
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			c.mu.Lock()
			closed := c.closed
			c.mu.Unlock()
			if !closed {
				c.emit(session.Event{
					Kind:    session.KindFailed,
					Code:    wire.CodeConnectionDropped,
					Message: err.Error(),
				})
			}
			return
		}

		var ev wire.ServerEvent
		if err := wire.Unmarshal(data, &ev); err != nil {
			continue
		}
		if err := ev.Validate(); err != nil {
			continue
		}

		switch ev.Type {
		case wire.EventEstablished:
			c.emit(session.Event{
				Kind:   session.KindEstablished,
				Handle: &session.Handle{SessionID: ev.SessionID, Conn: c},
			})
		case wire.EventFailed:
			creds := c.attemptCreds()
			c.emit(session.Event{
				Kind:        session.KindFailed,
				Code:        ev.Code,
				Message:     ev.Message,
				Credentials: creds,
				Details:     ev.Details,
			})
		case wire.EventDisplayNameRequired:
			c.emit(session.Event{Kind: session.KindDisplayNameRequired})
		}
	}
}

// attemptCreds returns a copy of the credentials used for the attempt,
// or nil when the attempt was anonymous.
func (c *Conn) attemptCreds() *session.Credentials {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.creds == (session.Credentials{}) {
		return nil
	}
	creds := c.creds
	return &creds
}

// emit delivers an event to matching listeners in registration order.
func (c *Conn) emit(ev session.Event) {
	c.mu.Lock()
	snapshot := make([]listener, len(c.listeners))
	copy(snapshot, c.listeners)
	c.mu.Unlock()

	for _, l := range snapshot {
		if l.kind == ev.Kind {
			l.fn(ev)
		}
	}
}

// Compile-time interface satisfaction check.
var _ session.Connection = (*Conn)(nil)
