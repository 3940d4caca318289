package reauth

import (
	"context"
	"errors"

	"github.com/meetwire/meetwire-go/pkg/appstate"
	"github.com/meetwire/meetwire-go/pkg/log"
	"github.com/meetwire/meetwire-go/pkg/session"
)

// ErrExternalHandoff is the terminal outcome of the redirect flow:
// control left this process for an external authentication service and
// no session will resolve locally.
var ErrExternalHandoff = errors.New("authentication handed off to external service")

// ErrNoCredentialPrompt indicates re-authentication was requested but no
// credential-entry surface is wired.
var ErrNoCredentialPrompt = errors.New("no credential prompt configured")

// CredentialPrompt is the credential-entry surface collaborator. It
// blocks until the user completes a successful re-entry and reports the
// new session handle; repeated password failures are handled by the
// surface's own retry UI.
type CredentialPrompt interface {
	RequestCredentials(ctx context.Context, room string) (*session.Handle, error)
}

// RedirectFunc initiates the redirect to the external authentication
// service. It has no return contract: in a browser-like host the
// navigation terminates this execution context.
type RedirectFunc func(room string)

// Orchestrator decides how a rejected attempt gets new credentials.
type Orchestrator struct {
	// TokenAuthEnabled selects the redirect flow for this deployment.
	TokenAuthEnabled bool

	// Redirect starts the external auth flow. Only used when
	// TokenAuthEnabled is set.
	Redirect RedirectFunc

	// Prompt is the credential-entry surface.
	Prompt CredentialPrompt

	// Bus receives the OpenCredentialDialog action; may be nil.
	Bus appstate.Dispatcher

	// Logger records auth steps; nil disables logging.
	Logger log.Logger
}

// RequestAuth runs the re-authentication flow for room.
func (o *Orchestrator) RequestAuth(ctx context.Context, room string) (*session.Handle, error) {
	if o.TokenAuthEnabled {
		o.logStep(room, "external-handoff")
		if o.Redirect != nil {
			o.Redirect(room)
		}
		return nil, ErrExternalHandoff
	}

	o.logStep(room, "credential-prompt")
	if o.Bus != nil {
		o.Bus.Dispatch(appstate.OpenCredentialDialog{Room: room})
	}
	if o.Prompt == nil {
		return nil, ErrNoCredentialPrompt
	}
	return o.Prompt.RequestCredentials(ctx, room)
}

func (o *Orchestrator) logStep(room, step string) {
	if o.Logger == nil {
		return
	}
	o.Logger.Log(log.NewAuth("", room, step, false))
}
