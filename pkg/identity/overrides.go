package identity

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Overrides are locally persisted credential overrides. Empty fields are
// ignored during resolution.
type Overrides struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// OverrideStore manages persistence of credential overrides to a JSON file.
type OverrideStore struct {
	mu   sync.Mutex
	path string
}

// NewOverrideStore creates an override store backed by the given path.
func NewOverrideStore(path string) *OverrideStore {
	return &OverrideStore{path: path}
}

// Load reads the persisted overrides. A missing file yields empty
// overrides, not an error.
func (s *OverrideStore) Load() (*Overrides, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Overrides{}, nil
		}
		return nil, err
	}

	var ov Overrides
	if err := json.Unmarshal(data, &ov); err != nil {
		return nil, err
	}
	return &ov, nil
}

// Save persists the overrides to disk.
func (s *OverrideStore) Save(ov *Overrides) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(ov, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}
