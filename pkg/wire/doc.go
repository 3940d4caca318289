// Package wire defines the CBOR wire format for Meetwire session signaling.
//
// Meetwire uses CBOR (RFC 8949) with integer keys for efficient encoding.
// Signaling messages are exchanged over a WebSocket connection to the
// backend; each WebSocket binary message carries exactly one CBOR map.
//
// # Message Types
//
// Session establishment involves two message types:
//   - ConnectRequest: Client to backend (credentials and advertised features)
//   - ServerEvent: Backend to client (established, failed, policy notices)
//
// # Error Codes
//
// Failure events carry an ErrorCode string. Codes are wire literals: the
// driver compares them directly when deciding whether a failure is fatal
// or eligible for re-authentication.
package wire
