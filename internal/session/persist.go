package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Identity is the only session data that survives a restart.
type Identity struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
}

// IdentityPersister reads and writes the identity file.
type IdentityPersister struct {
	path string
}

func NewIdentityPersister(path string) *IdentityPersister {
	return &IdentityPersister{path: path}
}

// Load returns the persisted identity, or nil if none has been saved yet.
func (p *IdentityPersister) Load() (*Identity, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read identity file: %w", err)
	}

	var identity Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, fmt.Errorf("failed to parse identity file: %w", err)
	}
	return &identity, nil
}

// Save writes the identity file, creating parent directories as needed.
// The write goes through a temp file and rename so a crash mid-write
// cannot truncate an existing identity.
func (p *IdentityPersister) Save(identity *Identity) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create identity dir: %w", err)
	}

	data, err := json.MarshalIndent(identity, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal identity: %w", err)
	}

	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write identity file: %w", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("failed to replace identity file: %w", err)
	}
	return nil
}
