package identity

import (
	"context"
	"fmt"

	"github.com/meetwire/meetwire-go/pkg/appstate"
	"github.com/meetwire/meetwire-go/pkg/session"
	"github.com/meetwire/meetwire-go/pkg/tenant"
)

// Request carries the caller-supplied inputs for one resolution.
type Request struct {
	// ID and Password are the caller-supplied credentials; either may be
	// empty (anonymous access).
	ID       string
	Password string

	// Room is the target room name.
	Room string

	// Recorder and Gateway mark automated participants. They skip
	// tenant-token provisioning unconditionally.
	Recorder bool
	Gateway  bool
}

// Resolved is the final identity/secret/token triple for an attempt.
type Resolved struct {
	Credentials session.Credentials
	Token       string
}

// Resolver produces the credentials for the next connection attempt.
type Resolver struct {
	// Overrides is consulted before every attempt; nil disables
	// override lookup.
	Overrides *OverrideStore

	// Tenant provisions hosted-room tokens; nil marks a self-hosted
	// deployment with no tenant API.
	Tenant tenant.Provisioner

	// State is the process-wide auth slot read for the token-absent check.
	State *appstate.Store

	// Bus receives state actions. Defaults to State when nil.
	Bus appstate.Dispatcher
}

func (r *Resolver) dispatcher() appstate.Dispatcher {
	if r.Bus != nil {
		return r.Bus
	}
	return r.State
}

// Resolve applies overrides and provisions a tenant token if needed.
//
// The token-absent check against process-wide state is check-then-set,
// not a transaction: two concurrent top-level connects against the same
// tenant may both fetch a token. The second write wins and both tokens
// are valid, so the window is accepted.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Resolved, error) {
	creds := session.Credentials{ID: req.ID, Password: req.Password}

	if r.Overrides != nil {
		ov, err := r.Overrides.Load()
		if err != nil {
			return Resolved{}, fmt.Errorf("load credential overrides: %w", err)
		}
		if ov.Username != "" {
			creds.ID = ov.Username
		}
		if ov.Password != "" {
			creds.Password = ov.Password
		}
	}

	// Automated participants authenticate out of band.
	if req.Recorder || req.Gateway {
		return Resolved{Credentials: creds, Token: r.State.Token()}, nil
	}

	if r.Tenant != nil {
		meta, err := r.Tenant.FetchMetadata(ctx, req.Room)
		if err != nil {
			return Resolved{}, fmt.Errorf("fetch tenant metadata: %w", err)
		}
		r.dispatcher().Dispatch(appstate.TenantMetadataFetched{
			TenantID:      meta.TenantID,
			Hosted:        meta.Hosted,
			TokenEndpoint: meta.TokenEndpoint,
		})

		if meta.Hosted && r.State.Token() == "" {
			token, err := r.Tenant.IssueToken(ctx, req.Room, meta)
			if err != nil {
				return Resolved{}, fmt.Errorf("issue tenant token: %w", err)
			}
			r.dispatcher().Dispatch(appstate.SetTenantToken{Token: token})
		}
	}

	return Resolved{Credentials: creds, Token: r.State.Token()}, nil
}
