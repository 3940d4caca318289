package transport

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/meetwire/meetwire-go/pkg/session"
)

// Dialer constructs WebSocket connections to the backend.
type Dialer struct {
	// WS is the underlying WebSocket dialer. Defaults to
	// websocket.DefaultDialer.
	WS *websocket.Dialer
}

// NewDialer creates a dialer with default settings.
func NewDialer() *Dialer {
	return &Dialer{}
}

// Dial opens a WebSocket to opts.ServerURL and wraps it as a
// session.Connection. The signaling handshake does not start until
// Connect is called on the returned connection.
func (d *Dialer) Dial(ctx context.Context, opts session.Options) (session.Connection, error) {
	wsDialer := d.WS
	if wsDialer == nil {
		wsDialer = websocket.DefaultDialer
	}

	ws, _, err := wsDialer.DialContext(ctx, opts.ServerURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", opts.ServerURL, err)
	}
	return newConn(ws, opts), nil
}

// Compile-time interface satisfaction check.
var _ session.Dialer = (*Dialer)(nil)
