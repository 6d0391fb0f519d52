package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/codi/core"
	"github.com/poiesic/codi/storage"
)

// GetTask retrieves a task by ID.
func (s *Store) GetTask(ctx context.Context, id string) (*core.Task, error) {
	var task *core.Task
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		task, err = readTask(tx, id)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, storage.ErrNotFound
	}
	return task, nil
}

// PutTask stores task under its ID, replacing any prior entry.
func (s *Store) PutTask(ctx context.Context, task *core.Task) error {
	if err := core.ValidateTask(task); err != nil {
		return err
	}
	value, err := marshal(task)
	if err != nil {
		return err
	}
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeTaskKey(task.ID), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ListTasks returns every task ordered by ID.
func (s *Store) ListTasks(ctx context.Context) ([]*core.Task, error) {
	tasks := make([]*core.Task, 0)
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		return scanPrefix(tx, []byte(taskPrefix), func(key, val []byte) error {
			var task core.Task
			if err := unmarshal(val, &task); err != nil {
				return err
			}
			task.ID = taskIDFromKey(key)
			tasks = append(tasks, &task)
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// readTask reads a task from the transaction. Returns nil if not found.
func readTask(tx *badger.Txn, id string) (*core.Task, error) {
	item, err := tx.Get(makeTaskKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var task core.Task
	err = item.Value(func(val []byte) error {
		return unmarshal(val, &task)
	})
	if err != nil {
		return nil, err
	}
	task.ID = id
	return &task, nil
}
