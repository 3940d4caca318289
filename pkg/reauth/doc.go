// Package reauth coordinates re-authentication after a password-required
// failure.
//
// The orchestrator is invoked only when the caller opted into retry, the
// failure code is exactly PASSWORD_REQUIRED, and no tenant token is
// present. It decides between two flows:
//
//   - Token auth enabled: control is handed to an external
//     authentication service via redirect. The redirect has no return
//     contract; RequestAuth reports the handoff as the terminal
//     ErrExternalHandoff instead of blocking forever, so callers and
//     test doubles can assert on it.
//   - Otherwise: the credential-entry surface is opened and its
//     successful re-entry yields the new session handle. The surface
//     owns any further retry UI; the orchestrator re-enters exactly once.
package reauth
