package badger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/codi/storage"
)

// Backend owns the Badger database behind a Store.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

// slogAdapter routes Badger's printf-style log lines to slog.
type slogAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*slogAdapter)(nil)

func (a *slogAdapter) log(level slog.Level, format string, args ...any) {
	// Badger terminates most messages with a newline.
	a.logger.Log(context.Background(), level, strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

func (a *slogAdapter) Errorf(format string, args ...any) { a.log(slog.LevelError, format, args...) }

func (a *slogAdapter) Warningf(format string, args ...any) { a.log(slog.LevelWarn, format, args...) }

// Infof demotes Badger's startup and compaction chatter to debug.
func (a *slogAdapter) Infof(format string, args ...any) { a.log(slog.LevelDebug, format, args...) }

func (a *slogAdapter) Debugf(format string, args ...any) { a.log(slog.LevelDebug, format, args...) }

// OpenBackend opens the database in dir, creating the directory when
// needed. With inMemory set dir is ignored and nothing touches the disk.
func OpenBackend(dir string, inMemory bool) (*Backend, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	if !inMemory {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
		opts = badger.DefaultOptions(dir)
	}

	logger := slog.Default().With("component", "badger")
	opts = opts.
		WithLogger(&slogAdapter{logger: logger}).
		WithCompression(options.None)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Backend{db: db, logger: logger}, nil
}

// Close closes the database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed reports whether the database has been closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

func (b *Backend) ensureOpen() error {
	if b.db.IsClosed() {
		return storage.ErrStorageClosed
	}
	return nil
}

// WithTx runs fn in a transaction that is discarded afterwards. Write
// transactions must be committed by fn.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	if err := b.ensureOpen(); err != nil {
		return err
	}
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// WithBatch runs fn against a write batch and flushes it. Batches split
// themselves into as many transactions as needed, so they are not bound by
// the single transaction size limit, but they are not atomic either.
func (b *Backend) WithBatch(fn func(wb *badger.WriteBatch) error) error {
	if err := b.ensureOpen(); err != nil {
		return err
	}
	wb := b.db.NewWriteBatch()
	if err := fn(wb); err != nil {
		wb.Cancel()
		return err
	}
	return wb.Flush()
}

// scanPrefix calls fn with the key and value of every item under prefix,
// in key order.
func scanPrefix(tx *badger.Txn, prefix []byte, fn func(key, val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		item := iter.Item()
		key := item.KeyCopy(nil)
		err := item.Value(func(val []byte) error {
			return fn(key, val)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// scanKeys calls fn with a copy of every key under prefix without reading
// values.
func scanKeys(tx *badger.Txn, prefix []byte, fn func(key []byte)) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		fn(iter.Item().KeyCopy(nil))
	}
}
