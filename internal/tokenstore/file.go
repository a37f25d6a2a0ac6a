package tokenstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// FilePersister stores the pair as JSON in a single file, created 0600.
type FilePersister struct {
	Path string
}

var _ Persister = (*FilePersister)(nil)

// Load reads the persisted pair. A missing file yields an empty pair.
func (f *FilePersister) Load() (Pair, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Pair{}, nil
	}
	if err != nil {
		return Pair{}, err
	}
	var p Pair
	if err := json.Unmarshal(b, &p); err != nil {
		return Pair{}, err
	}
	return p, nil
}

// Save writes the pair, creating parent directories as needed.
func (f *FilePersister) Save(p Pair) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, b, 0o600)
}

// Clear removes the persisted file; a missing file is not an error.
func (f *FilePersister) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
