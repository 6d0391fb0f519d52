package badger

import (
	"encoding/json"
	"fmt"

	"github.com/poiesic/codi/storage"
)

// Store implements storage.Store on a BadgerDB backend.
type Store struct {
	backend *Backend
}

var _ storage.Store = (*Store)(nil)

// Open opens or creates a BadgerDB store in dir.
//
// Returns storage.Store interface (not *Store) so callers stay independent
// of the backend in use.
func Open(dir string) (storage.Store, error) {
	backend, err := OpenBackend(dir, false)
	if err != nil {
		return nil, err
	}
	return NewStore(backend), nil
}

// NewStore creates a Store on an already opened backend. Closing the store
// closes the backend.
func NewStore(backend *Backend) *Store {
	return &Store{backend: backend}
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	if s.backend.IsClosed() {
		return nil
	}
	return s.backend.Close()
}

func marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return data, nil
}

func unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return nil
}
