// Package log provides structured event logging for the Meetwire
// connection driver.
//
// The driver emits an Event for every observable step of session
// establishment: state machine transitions, attempt failures, and
// credential resolution. Applications choose where events go by
// supplying a Logger implementation:
//
//   - SlogAdapter: forwards events to a log/slog logger (console output)
//   - FileLogger: appends events to a file in CBOR format
//   - MultiLogger: fans out to several loggers at once
//   - NoopLogger: discards everything
//
// Events use CBOR integer keys so that captured logs stay compact and
// can be replayed by diagnostic tooling.
package log
