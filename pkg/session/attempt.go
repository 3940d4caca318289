package session

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Hooks are the side effects an attempt emits independently of its
// returned outcome. All hooks are optional. They fire from the goroutine
// delivering connection events.
type Hooks struct {
	// OnEstablished fires when the handshake completes, before the
	// attempt resolves.
	OnEstablished func(h *Handle, at time.Time)

	// OnFailure fires for every failure event, fatal or not, regardless
	// of whether it affects the returned outcome.
	OnFailure func(err *ConnectionError)

	// OnDisplayNameRequired fires when room policy requires a display
	// name. A policy signal, not an error: the attempt stays pending.
	OnDisplayNameRequired func()
}

// AttemptOptions configures a single connection attempt.
type AttemptOptions struct {
	// Recorder advertises the recorder feature on the connection.
	Recorder bool

	// Hooks receive attempt side effects.
	Hooks Hooks

	// Clock supplies the established timestamp. Defaults to the real
	// clock; tests inject a fake.
	Clock clockwork.Clock
}

// Attempt opens one connection attempt and waits for its terminal event.
// It resolves exactly once: with an established Handle, or with a
// *ConnectionError carrying the failure code. Cancelling ctx abandons
// the attempt and tears down all listeners.
//
// All four lifecycle listeners are registered before the handshake is
// initiated, so a synchronously delivered failure cannot be missed.
func Attempt(ctx context.Context, conn Connection, creds Credentials, opts AttemptOptions) (*Handle, error) {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	if opts.Recorder {
		conn.AddFeature(RecorderFeature)
	}

	res := newOneshot()

	var (
		establishedID ListenerID
		reporterID    ListenerID
		resolverID    ListenerID
		displayNameID ListenerID
	)

	// The resolver pair is removed before the outcome is delivered so a
	// late terminal event cannot re-enter.
	removeResolverPair := func() {
		conn.RemoveListener(establishedID)
		conn.RemoveListener(resolverID)
	}

	establishedID = conn.AddListener(KindEstablished, func(ev Event) {
		h := ev.Handle
		h.EstablishedAt = clock.Now()
		removeResolverPair()
		if opts.Hooks.OnEstablished != nil {
			opts.Hooks.OnEstablished(h, h.EstablishedAt)
		}
		res.resolve(h)
	})

	// Status reporter: fires for every failure event and removes itself
	// only once a failure is classified fatal. Registered before the
	// resolver so the report side effect is emitted even for the event
	// that rejects the attempt.
	reporterID = conn.AddListener(KindFailed, func(ev Event) {
		connErr := &ConnectionError{
			Code:        ev.Code,
			Message:     ev.Message,
			Credentials: ev.Credentials,
			Details:     ev.Details,
		}
		if opts.Hooks.OnFailure != nil {
			opts.Hooks.OnFailure(connErr)
		}
		if IsFatal(ev.Code) {
			conn.RemoveListener(reporterID)
		}
	})

	resolverID = conn.AddListener(KindFailed, func(ev Event) {
		removeResolverPair()
		res.reject(&ConnectionError{
			Code:        ev.Code,
			Message:     ev.Message,
			Credentials: ev.Credentials,
			Details:     ev.Details,
		})
	})

	displayNameID = conn.AddListener(KindDisplayNameRequired, func(Event) {
		if opts.Hooks.OnDisplayNameRequired != nil {
			opts.Hooks.OnDisplayNameRequired()
		}
	})

	if err := conn.Connect(ctx, creds); err != nil {
		conn.RemoveListener(establishedID)
		conn.RemoveListener(reporterID)
		conn.RemoveListener(resolverID)
		conn.RemoveListener(displayNameID)
		return nil, err
	}

	handle, err := res.wait(ctx)

	switch {
	case err == nil:
		// Success: release everything still registered.
		conn.RemoveListener(reporterID)
		conn.RemoveListener(displayNameID)
	case ctx.Err() != nil:
		// External cancellation: full teardown.
		conn.RemoveListener(establishedID)
		conn.RemoveListener(reporterID)
		conn.RemoveListener(resolverID)
		conn.RemoveListener(displayNameID)
	default:
		if code, ok := CodeOf(err); ok && IsFatal(code) {
			// Reporter already removed itself on the fatal event.
			conn.RemoveListener(displayNameID)
		}
		// Non-fatal rejection: the reporter and display-name listeners
		// intentionally stay registered. Status reporting is less strict
		// than outcome resolution; late redundant failure events still
		// produce reports until a fatal classification is seen.
	}

	return handle, err
}
