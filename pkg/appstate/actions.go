package appstate

import (
	"time"

	"github.com/meetwire/meetwire-go/pkg/session"
	"github.com/meetwire/meetwire-go/pkg/wire"
)

// Action is a typed state mutation or report dispatched by the driver.
type Action interface {
	// Name returns a stable action identifier for logs and test
	// assertions.
	Name() string
}

// Dispatcher receives driver actions. Implemented by Store and by the
// Recorder test double.
type Dispatcher interface {
	Dispatch(action Action)
}

// ConnectionEstablished reports a successful attempt.
type ConnectionEstablished struct {
	SessionID string
	At        time.Time
}

// Name implements Action.
func (ConnectionEstablished) Name() string { return "connection/established" }

// ConnectionFailed reports a failed attempt. Emitted for every failure
// event regardless of whether it resolves the attempt: observability is
// independent of control flow.
type ConnectionFailed struct {
	Code        wire.ErrorCode
	Message     string
	Credentials *session.Credentials
	Details     map[string]any
}

// Name implements Action.
func (ConnectionFailed) Name() string { return "connection/failed" }

// SetTenantToken persists a tenant-issued token in the process-wide
// auth slot.
type SetTenantToken struct {
	Token string
}

// Name implements Action.
func (SetTenantToken) Name() string { return "auth/set-token" }

// TenantMetadataFetched records hosted-tenant metadata for the target
// room.
type TenantMetadataFetched struct {
	TenantID      string
	Hosted        bool
	TokenEndpoint string
}

// Name implements Action.
func (TenantMetadataFetched) Name() string { return "tenant/metadata-fetched" }

// RequireDisplayName asks the prejoin surface to mark the display name
// as mandatory.
type RequireDisplayName struct{}

// Name implements Action.
func (RequireDisplayName) Name() string { return "prejoin/require-display-name" }

// OpenCredentialDialog asks the UI layer to open the credential-entry
// surface for the given room.
type OpenCredentialDialog struct {
	Room string
}

// Name implements Action.
func (OpenCredentialDialog) Name() string { return "auth/open-credential-dialog" }
