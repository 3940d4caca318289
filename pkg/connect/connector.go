package connect

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/meetwire/meetwire-go/pkg/appstate"
	"github.com/meetwire/meetwire-go/pkg/identity"
	"github.com/meetwire/meetwire-go/pkg/log"
	"github.com/meetwire/meetwire-go/pkg/reauth"
	"github.com/meetwire/meetwire-go/pkg/session"
	"github.com/meetwire/meetwire-go/pkg/wire"
)

// Request are the caller-supplied inputs to Open.
type Request struct {
	// ID and Password are optional caller credentials.
	ID       string
	Password string

	// Room is the target room name.
	Room string

	// Retry gates whether a password-required failure triggers the
	// re-authentication flow.
	Retry bool
}

// Connector opens sessions against one configured backend.
type Connector struct {
	// Resolver produces the credentials for each attempt.
	Resolver *identity.Resolver

	// Dialer constructs one Connection per attempt.
	Dialer session.Dialer

	// Reauth runs the re-authentication flow. Required only when
	// callers request retry.
	Reauth *reauth.Orchestrator

	// State is the process-wide state snapshot.
	State *appstate.Store

	// Bus receives report actions. Defaults to State when nil.
	Bus appstate.Dispatcher

	// ServerURL is the backend signaling endpoint.
	ServerURL string

	// Recorder and Gateway mark this client as an automated participant.
	Recorder bool
	Gateway  bool

	// Clock supplies timestamps; defaults to the real clock.
	Clock clockwork.Clock

	// Logger records driver events; nil disables logging.
	Logger log.Logger

	// OnStateChange is invoked for every state machine transition.
	OnStateChange func(oldState, newState State)
}

// Open establishes a session to req.Room. It resolves exactly once: with
// an established handle, or with an error carrying the failure cause.
//
// Tenant provisioning errors propagate unwrapped by classification: they
// are not connection failures. A password-required failure with
// req.Retry set and no tenant token present re-enters through the
// re-authentication orchestrator; reauth.ErrExternalHandoff marks the
// redirect flow's terminal handoff.
func (c *Connector) Open(ctx context.Context, req Request) (*session.Handle, error) {
	connID := uuid.NewString()
	state := StateIdle

	transition := func(to State) {
		from := state
		state = to
		if c.Logger != nil {
			c.Logger.Log(log.NewStateChange(connID, req.Room, from.String(), to.String()))
		}
		if c.OnStateChange != nil {
			c.OnStateChange(from, to)
		}
	}

	transition(StateResolvingCredentials)
	resolved, err := c.Resolver.Resolve(ctx, identity.Request{
		ID:       req.ID,
		Password: req.Password,
		Room:     req.Room,
		Recorder: c.Recorder,
		Gateway:  c.Gateway,
	})
	if err != nil {
		return nil, err
	}

	opts := session.Options{
		ServerURL: c.ServerURL,
		Room:      req.Room,
		Token:     resolved.Token,
	}

	transition(StateAttempting)
	handle, err := c.attempt(ctx, connID, opts, resolved.Credentials)
	if err == nil {
		transition(StateEstablished)
		return handle, nil
	}

	code, classified := session.CodeOf(err)
	switch {
	case !classified:
		// Transport or cancellation error; never retried here.
		return nil, err

	case session.IsFatal(code):
		transition(StateFailedFatal)
		return nil, err

	case code == wire.CodePasswordRequired && req.Retry && c.State.Token() == "":
		transition(StateReauthenticating)
		handle, rerr := c.Reauth.RequestAuth(ctx, req.Room)
		if errors.Is(rerr, reauth.ErrExternalHandoff) {
			transition(StateRedirected)
			return nil, rerr
		}
		if rerr != nil {
			return nil, rerr
		}
		transition(StateEstablished)
		return handle, nil

	default:
		transition(StateFailedCredentials)
		return nil, err
	}
}

// Attempt runs a single connection attempt with explicit credentials,
// reusing the token currently present in process-wide state. The
// credential-entry surface uses it for re-entry after a rejection.
func (c *Connector) Attempt(ctx context.Context, room string, creds session.Credentials) (*session.Handle, error) {
	opts := session.Options{
		ServerURL: c.ServerURL,
		Room:      room,
		Token:     c.State.Token(),
	}
	return c.attempt(ctx, uuid.NewString(), opts, creds)
}

func (c *Connector) attempt(ctx context.Context, connID string, opts session.Options, creds session.Credentials) (*session.Handle, error) {
	conn, err := c.Dialer.Dial(ctx, opts)
	if err != nil {
		return nil, err
	}

	bus := c.dispatcher()
	hooks := session.Hooks{
		OnEstablished: func(h *session.Handle, at time.Time) {
			bus.Dispatch(appstate.ConnectionEstablished{SessionID: h.SessionID, At: at})
		},
		OnFailure: func(e *session.ConnectionError) {
			bus.Dispatch(appstate.ConnectionFailed{
				Code:        e.Code,
				Message:     e.Message,
				Credentials: e.Credentials,
				Details:     e.Details,
			})
			if c.Logger != nil {
				c.Logger.Log(log.NewFailure(connID, opts.Room, e.Code.String(), e.Message, e.Fatal()))
			}
		},
		OnDisplayNameRequired: func() {
			bus.Dispatch(appstate.RequireDisplayName{})
		},
	}

	return session.Attempt(ctx, conn, creds, session.AttemptOptions{
		Recorder: c.Recorder,
		Hooks:    hooks,
		Clock:    c.Clock,
	})
}

func (c *Connector) dispatcher() appstate.Dispatcher {
	if c.Bus != nil {
		return c.Bus
	}
	return c.State
}
