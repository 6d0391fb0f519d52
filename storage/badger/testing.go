package badger

import "github.com/poiesic/codi/storage"

// OpenMemory creates an in-memory store for testing.
// Caller must close the store when done.
func OpenMemory() (storage.Store, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	return NewStore(backend), nil
}
