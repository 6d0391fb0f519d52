package badger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/codi/core"
	"github.com/poiesic/codi/storage"
)

// indexMeta points at the generation holding the current index. Its
// absence means no index was ever saved.
type indexMeta struct {
	Generation uint64    `json:"generation"`
	Records    int       `json:"records"`
	SavedAt    time.Time `json:"saved_at"`
}

// readMeta returns the current index metadata, or nil if none was saved.
func readMeta(tx *badger.Txn) (*indexMeta, error) {
	item, err := tx.Get([]byte(indexMetaKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var meta indexMeta
	if err := item.Value(func(val []byte) error {
		return unmarshal(val, &meta)
	}); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadIndex returns the records of the current generation in walk order.
func (s *Store) LoadIndex(ctx context.Context) ([]*core.FileRecord, error) {
	var records []*core.FileRecord

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		meta, err := readMeta(tx)
		if err != nil {
			return err
		}
		if meta == nil {
			return storage.ErrNotFound
		}

		records = make([]*core.FileRecord, 0, meta.Records)
		return scanPrefix(tx, generationPrefix(meta.Generation), func(_, val []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var record core.FileRecord
			if err := unmarshal(val, &record); err != nil {
				return err
			}
			records = append(records, &record)
			return nil
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return records, nil
}

// SaveIndex replaces the stored index with records.
//
// Records go into a fresh generation through a write batch, so the index
// size is not bound by Badger's transaction limit. The metadata key is
// switched to the new generation only after every record is flushed, and
// readers keep seeing the previous index until then. Older generations are
// removed afterwards.
func (s *Store) SaveIndex(ctx context.Context, records []*core.FileRecord) error {
	var current uint64
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		meta, err := readMeta(tx)
		if meta != nil {
			current = meta.Generation
		}
		return err
	}, false)
	if err != nil {
		return err
	}
	next := current + 1

	// Leftovers of an interrupted save may sit under the next generation.
	if err := s.purgeGenerations(current); err != nil {
		return err
	}

	err = s.backend.WithBatch(func(wb *badger.WriteBatch) error {
		for i, record := range records {
			if err := ctx.Err(); err != nil {
				return err
			}
			value, err := marshal(record)
			if err != nil {
				return err
			}
			if err := wb.Set(makeFileRecordKey(next, i), value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("writing index records: %w", err)
	}

	meta, err := marshal(indexMeta{Generation: next, Records: len(records), SavedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	err = s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(indexMetaKey), meta); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	if err := s.purgeGenerations(next); err != nil {
		// The new index is already live; the next save retries the cleanup.
		s.backend.logger.Warn("failed to remove old index records", "err", err)
	}
	return nil
}

// purgeGenerations deletes every file record outside generation keep.
func (s *Store) purgeGenerations(keep uint64) error {
	keepPrefix := generationPrefix(keep)
	var stale [][]byte
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		scanKeys(tx, []byte(fileRecordPrefix), func(key []byte) {
			if !bytes.HasPrefix(key, keepPrefix) {
				stale = append(stale, key)
			}
		})
		return nil
	}, false)
	if err != nil || len(stale) == 0 {
		return err
	}

	return s.backend.WithBatch(func(wb *badger.WriteBatch) error {
		for _, key := range stale {
			if err := wb.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}
