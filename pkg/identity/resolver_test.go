package identity

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetwire/meetwire-go/pkg/appstate"
	"github.com/meetwire/meetwire-go/pkg/tenant"
)

// fakeProvisioner scripts tenant API responses and counts calls.
type fakeProvisioner struct {
	meta       *tenant.Metadata
	metaErr    error
	token      string
	tokenErr   error
	metaCalls  int
	tokenCalls int
}

func (f *fakeProvisioner) FetchMetadata(ctx context.Context, room string) (*tenant.Metadata, error) {
	f.metaCalls++
	return f.meta, f.metaErr
}

func (f *fakeProvisioner) IssueToken(ctx context.Context, room string, meta *tenant.Metadata) (string, error) {
	f.tokenCalls++
	return f.token, f.tokenErr
}

func savedOverrides(t *testing.T, ov *Overrides) *OverrideStore {
	t.Helper()
	store := NewOverrideStore(filepath.Join(t.TempDir(), "overrides.json"))
	require.NoError(t, store.Save(ov))
	return store
}

func TestResolveOverridesWin(t *testing.T) {
	r := &Resolver{
		Overrides: savedOverrides(t, &Overrides{Username: "override-user", Password: "override-pass"}),
		State:     appstate.NewStore(),
	}

	got, err := r.Resolve(context.Background(), Request{ID: "caller", Password: "caller-pass", Room: "standup"})
	require.NoError(t, err)
	assert.Equal(t, "override-user", got.Credentials.ID)
	assert.Equal(t, "override-pass", got.Credentials.Password)
}

func TestResolveEmptyOverridesIgnored(t *testing.T) {
	tests := []struct {
		name      string
		overrides *Overrides
		wantID    string
		wantPass  string
	}{
		{"no override file contents", &Overrides{}, "caller", "caller-pass"},
		{"username only", &Overrides{Username: "override-user"}, "override-user", "caller-pass"},
		{"password only", &Overrides{Password: "override-pass"}, "caller", "override-pass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Resolver{
				Overrides: savedOverrides(t, tt.overrides),
				State:     appstate.NewStore(),
			}

			got, err := r.Resolve(context.Background(), Request{ID: "caller", Password: "caller-pass"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.Credentials.ID)
			assert.Equal(t, tt.wantPass, got.Credentials.Password)
		})
	}
}

func TestResolveMissingOverrideFile(t *testing.T) {
	r := &Resolver{
		Overrides: NewOverrideStore(filepath.Join(t.TempDir(), "absent.json")),
		State:     appstate.NewStore(),
	}

	got, err := r.Resolve(context.Background(), Request{ID: "caller"})
	require.NoError(t, err)
	assert.Equal(t, "caller", got.Credentials.ID)
}

func TestResolveRecorderSkipsProvisioning(t *testing.T) {
	prov := &fakeProvisioner{meta: &tenant.Metadata{Hosted: true}, token: "jwt-1"}
	r := &Resolver{
		Tenant: prov,
		State:  appstate.NewStore(),
	}

	got, err := r.Resolve(context.Background(), Request{Room: "standup", Recorder: true})
	require.NoError(t, err)
	assert.Empty(t, got.Token)
	assert.Zero(t, prov.metaCalls, "recorder must not touch the tenant API")
	assert.Zero(t, prov.tokenCalls)
}

func TestResolveHostedRoomFetchesTokenOnce(t *testing.T) {
	prov := &fakeProvisioner{
		meta:  &tenant.Metadata{TenantID: "acme", Hosted: true},
		token: "jwt-1",
	}
	state := appstate.NewStore()
	rec := appstate.NewRecorder(state)
	r := &Resolver{Tenant: prov, State: state, Bus: rec}

	got, err := r.Resolve(context.Background(), Request{Room: "standup"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", got.Token)
	assert.Equal(t, 1, prov.tokenCalls)
	assert.Equal(t, []string{"tenant/metadata-fetched", "auth/set-token"}, rec.Names())

	// Second resolution sees the persisted token and skips issuance.
	got, err = r.Resolve(context.Background(), Request{Room: "standup"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", got.Token)
	assert.Equal(t, 1, prov.tokenCalls, "token issued at most once while present")
	assert.Equal(t, 2, prov.metaCalls, "metadata refetched per resolution")
}

func TestResolveNonHostedRoomSkipsToken(t *testing.T) {
	prov := &fakeProvisioner{meta: &tenant.Metadata{TenantID: "acme", Hosted: false}}
	state := appstate.NewStore()
	r := &Resolver{Tenant: prov, State: state}

	got, err := r.Resolve(context.Background(), Request{Room: "standup"})
	require.NoError(t, err)
	assert.Empty(t, got.Token)
	assert.Zero(t, prov.tokenCalls)
}

func TestResolveTenantErrorsPropagate(t *testing.T) {
	metaErr := errors.New("tenant lookup down")
	r := &Resolver{
		Tenant: &fakeProvisioner{metaErr: metaErr},
		State:  appstate.NewStore(),
	}

	_, err := r.Resolve(context.Background(), Request{Room: "standup"})
	assert.ErrorIs(t, err, metaErr)

	tokenErr := errors.New("issuer down")
	r = &Resolver{
		Tenant: &fakeProvisioner{meta: &tenant.Metadata{Hosted: true}, tokenErr: tokenErr},
		State:  appstate.NewStore(),
	}

	_, err = r.Resolve(context.Background(), Request{Room: "standup"})
	assert.ErrorIs(t, err, tokenErr)
}

func TestOverrideStoreRoundTrip(t *testing.T) {
	store := NewOverrideStore(filepath.Join(t.TempDir(), "nested", "overrides.json"))

	require.NoError(t, store.Save(&Overrides{Username: "u", Password: "p"}))

	ov, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "u", ov.Username)
	assert.Equal(t, "p", ov.Password)
}
