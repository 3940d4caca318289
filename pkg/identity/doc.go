// Package identity resolves the credentials used for a connection attempt.
//
// Resolution applies, in order:
//
//  1. Caller-supplied id/password from the connect request.
//  2. Persisted local overrides (username/password read from a JSON file
//     before every attempt); non-empty overrides always win.
//  3. Tenant token provisioning for hosted rooms: fetch tenant metadata,
//     then request a token only when none is present in process-wide
//     state. Recorder and gateway participants skip provisioning
//     unconditionally.
//
// Tenant provisioning failures propagate to the caller of the top-level
// connect operation; they are not caught here.
package identity
