// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/poiesic/codi/core"
	"github.com/poiesic/codi/storage"
)

// File names inside the store directory.
const (
	IndexFile = "index.json"
	TasksFile = "tasks.json"
	LockFile  = "codi.lock"
)

const lockRetryDelay = 50 * time.Millisecond

// documentMode is the permission of index.json and tasks.json.
const documentMode fs.FileMode = 0o644

// Store implements storage.Store as two JSON documents in one directory.
// Every write replaces a whole document: the new content goes to a temporary
// file that is renamed over the old one while an advisory lock is held.
type Store struct {
	dir    string
	lock   *flock.Flock
	mu     sync.Mutex
	closed bool
	logger *slog.Logger
}

var _ storage.Store = (*Store)(nil)

// Open opens the store rooted at dir, creating the directory if needed.
//
// Returns storage.Store interface (not *Store) so callers stay independent
// of the backend in use.
func Open(dir string) (storage.Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &Store{
		dir:    dir,
		lock:   flock.New(filepath.Join(dir, LockFile)),
		logger: slog.Default().With("component", "jsonfile", "dir", dir),
	}, nil
}

// Close marks the store closed and releases the lock file handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.lock.Close()
}

// LoadIndex reads index.json.
func (s *Store) LoadIndex(ctx context.Context) ([]*core.FileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, storage.ErrStorageClosed
	}

	var records []*core.FileRecord
	if err := s.read(IndexFile, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []*core.FileRecord{}
	}
	return records, nil
}

// SaveIndex rewrites index.json with records.
func (s *Store) SaveIndex(ctx context.Context, records []*core.FileRecord) error {
	if records == nil {
		records = []*core.FileRecord{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStorageClosed
	}

	return s.withLock(ctx, func() error {
		return s.write(IndexFile, records)
	})
}

// GetTask reads one task from tasks.json.
func (s *Store) GetTask(ctx context.Context, id string) (*core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, storage.ErrStorageClosed
	}

	tasks, err := s.readTasks()
	if err != nil {
		return nil, err
	}
	task, ok := tasks[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	task.ID = id
	return task, nil
}

// PutTask stores task in tasks.json, replacing any entry with the same ID.
func (s *Store) PutTask(ctx context.Context, task *core.Task) error {
	if err := core.ValidateTask(task); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStorageClosed
	}

	return s.withLock(ctx, func() error {
		tasks, err := s.readTasks()
		if err != nil {
			return err
		}
		tasks[task.ID] = task
		return s.write(TasksFile, tasks)
	})
}

// ListTasks returns all tasks ordered by ID.
func (s *Store) ListTasks(ctx context.Context) ([]*core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, storage.ErrStorageClosed
	}

	tasks, err := s.readTasks()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(tasks))
	for id := range tasks {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]*core.Task, 0, len(ids))
	for _, id := range ids {
		task := tasks[id]
		task.ID = id
		out = append(out, task)
	}
	return out, nil
}

// readTasks loads tasks.json. A missing file is an empty store.
func (s *Store) readTasks() (map[string]*core.Task, error) {
	tasks := make(map[string]*core.Task)
	err := s.read(TasksFile, &tasks)
	if errors.Is(err, storage.ErrNotFound) {
		return make(map[string]*core.Task), nil
	}
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = make(map[string]*core.Task)
	}
	return tasks, nil
}

// read decodes the named document into v. Returns storage.ErrNotFound when
// the file does not exist.
func (s *Store) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %w", storage.ErrSerializationFailed, name, err)
	}
	return nil
}

// write replaces the named document with v, indented by two spaces.
func (s *Store) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", storage.ErrSerializationFailed, name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	// CreateTemp makes the file 0600 and rename keeps that mode.
	if err := tmp.Chmod(documentMode); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", name, err)
	}

	s.logger.Debug("wrote document", "file", name, "bytes", len(data))
	return nil
}

// withLock runs fn while holding the advisory lock on the store directory.
func (s *Store) withLock(ctx context.Context, fn func() error) error {
	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquiring store lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("acquiring store lock: %s", s.lock.Path())
	}
	defer func() { _ = s.lock.Unlock() }()
	return fn()
}
