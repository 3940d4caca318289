package appstate

import (
	"sync"
	"time"

	"github.com/meetwire/meetwire-go/pkg/wire"
)

// Store is the in-memory process-wide state snapshot.
// It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	// Auth slot
	token string

	// Tenant metadata for the current target room
	tenantID      string
	hosted        bool
	tokenEndpoint string

	// Last reported connection outcome
	establishedAt   time.Time
	sessionID       string
	lastFailureCode wire.ErrorCode

	// UI policy signals
	displayNameRequired  bool
	credentialDialogRoom string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Dispatch applies an action to the store.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch a := action.(type) {
	case ConnectionEstablished:
		s.sessionID = a.SessionID
		s.establishedAt = a.At
	case ConnectionFailed:
		s.lastFailureCode = a.Code
	case SetTenantToken:
		s.token = a.Token
	case TenantMetadataFetched:
		s.tenantID = a.TenantID
		s.hosted = a.Hosted
		s.tokenEndpoint = a.TokenEndpoint
	case RequireDisplayName:
		s.displayNameRequired = true
	case OpenCredentialDialog:
		s.credentialDialogRoom = a.Room
	}
}

// Token returns the tenant token, or empty if none is present.
// The provisioning path reads this before fetching a new token
// (check-then-set: best effort, not a transaction).
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// TenantMetadata returns the recorded tenant metadata.
func (s *Store) TenantMetadata() (tenantID string, hosted bool, tokenEndpoint string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tenantID, s.hosted, s.tokenEndpoint
}

// SessionID returns the last reported established session ID.
func (s *Store) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// EstablishedAt returns the last reported established timestamp.
func (s *Store) EstablishedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.establishedAt
}

// LastFailureCode returns the most recently reported failure code.
func (s *Store) LastFailureCode() wire.ErrorCode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastFailureCode
}

// DisplayNameRequired reports whether room policy demanded a display name.
func (s *Store) DisplayNameRequired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.displayNameRequired
}

// CredentialDialogRoom returns the room for which the credential-entry
// surface was requested, or empty.
func (s *Store) CredentialDialogRoom() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credentialDialogRoom
}

// Compile-time interface satisfaction check.
var _ Dispatcher = (*Store)(nil)
