// Package transport implements the session.Connection collaborator over
// WebSocket.
//
// A Conn sends one CBOR-encoded wire.ConnectRequest when the handshake
// starts and translates incoming wire.ServerEvent messages into session
// lifecycle events for registered listeners. Listeners are invoked from
// the read-loop goroutine in registration order.
//
// An unexpected socket close before a terminal event is surfaced as a
// CONNECTION_DROPPED failure event, matching how the backend reports a
// dropped handshake.
package transport
