// Package appstate holds the process-wide state the connection driver
// reads and reports into.
//
// The driver never mutates shared state directly. It emits typed
// Actions through a Dispatcher; the Store applies them to an in-memory
// snapshot. This keeps every read and check-then-write explicit, so the
// narrow race on the tenant-token slot (two concurrent top-level connects
// both observing an absent token) is visible and testable rather than
// hidden behind ambient globals.
//
// Recorder is a Dispatcher test double that logs actions in dispatch
// order, which tests use to assert side-effect ordering.
package appstate
