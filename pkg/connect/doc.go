// Package connect is the top-level entry point for opening a session to
// the Meetwire backend.
//
// Connector.Open drives the whole establishment flow as a small state
// machine:
//
//	Idle → ResolvingCredentials → Attempting →
//	    Established                      (terminal)
//	  | FailedFatal                      (terminal)
//	  | FailedCredentials                (terminal, no retry requested)
//	  | Reauthenticating →
//	        Redirected                   (terminal, external handoff)
//	      | Established                  (prompt re-entry succeeded)
//
// Re-authentication runs only when the caller opted into retry, the
// failure code is exactly PASSWORD_REQUIRED, and no tenant token is
// present in process-wide state.
//
// The driver imposes no timeout of its own: a hung handshake leaves Open
// blocked until its context is cancelled. Callers needing bounded
// latency wrap the context themselves.
package connect
