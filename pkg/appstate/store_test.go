package appstate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/meetwire/meetwire-go/pkg/wire"
)

func TestStoreAppliesActions(t *testing.T) {
	s := NewStore()
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	s.Dispatch(TenantMetadataFetched{TenantID: "acme", Hosted: true, TokenEndpoint: "https://auth.example/token"})
	s.Dispatch(SetTenantToken{Token: "jwt-1"})
	s.Dispatch(ConnectionEstablished{SessionID: "sess-1", At: at})
	s.Dispatch(RequireDisplayName{})
	s.Dispatch(OpenCredentialDialog{Room: "standup"})

	tenantID, hosted, endpoint := s.TenantMetadata()
	assert.Equal(t, "acme", tenantID)
	assert.True(t, hosted)
	assert.Equal(t, "https://auth.example/token", endpoint)
	assert.Equal(t, "jwt-1", s.Token())
	assert.Equal(t, "sess-1", s.SessionID())
	assert.Equal(t, at, s.EstablishedAt())
	assert.True(t, s.DisplayNameRequired())
	assert.Equal(t, "standup", s.CredentialDialogRoom())
}

func TestStoreFailureReport(t *testing.T) {
	s := NewStore()

	s.Dispatch(ConnectionFailed{Code: wire.CodePasswordRequired, Message: "wrong password"})
	assert.Equal(t, wire.CodePasswordRequired, s.LastFailureCode())

	// Reports overwrite: only the latest failure is retained.
	s.Dispatch(ConnectionFailed{Code: wire.CodeServerError})
	assert.Equal(t, wire.CodeServerError, s.LastFailureCode())
}

func TestRecorderOrdering(t *testing.T) {
	inner := NewStore()
	r := NewRecorder(inner)

	r.Dispatch(SetTenantToken{Token: "jwt-1"})
	r.Dispatch(ConnectionFailed{Code: wire.CodeOtherError})

	assert.Equal(t, []string{"auth/set-token", "connection/failed"}, r.Names())
	assert.Equal(t, "jwt-1", inner.Token(), "recorder forwards to inner dispatcher")
}
