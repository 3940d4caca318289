// Package session drives a single connection attempt against the Meetwire
// backend.
//
// The driver does not implement the transport itself. It operates on the
// Connection interface: it registers lifecycle listeners, initiates the
// handshake, and resolves exactly one terminal outcome per attempt (an
// established Handle or a classified *ConnectionError).
//
// # Listener Lifecycle
//
// Every attempt registers four listeners before the handshake starts, so
// no lifecycle event can be missed:
//
//   - established: resolves the attempt with a Handle
//   - failed (reporter): emits a failure side effect for every failure
//     event, and removes itself once a failure is classified fatal
//   - failed (resolver): rejects the attempt on the first failure
//   - display-name-required: emits a policy side effect; the attempt
//     stays pending
//
// The resolver pair (established + failed resolver) is removed
// unconditionally on the first terminal event, before the outcome is
// delivered. The reporter intentionally outlives the resolver for
// non-fatal failures: status reporting is less strict than outcome
// resolution, and late redundant failure events still produce reports
// until a fatal classification is seen.
//
// # Classification
//
// IsFatal is a pure function over the wire error codes. Fatal codes end
// all listening for an attempt; PASSWORD_REQUIRED and NOT_AUTHORIZED are
// recoverable and eligible for the re-authentication path.
package session
