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

package storage

import (
	"context"

	"github.com/poiesic/codi/core"
)

// IndexRepository persists the project index as a single unit.
// Implementations must be thread-safe and support concurrent access.
type IndexRepository interface {
	// LoadIndex returns the records of the last saved index in walk order.
	// Returns ErrNotFound if no index has been saved.
	LoadIndex(ctx context.Context) ([]*core.FileRecord, error)

	// SaveIndex replaces the stored index with records.
	// The previous snapshot is discarded entirely.
	SaveIndex(ctx context.Context, records []*core.FileRecord) error
}

// TaskRepository provides operations for managing tasks.
type TaskRepository interface {
	// GetTask retrieves a task by its ID.
	// Returns ErrNotFound if the task doesn't exist.
	GetTask(ctx context.Context, id string) (*core.Task, error)

	// PutTask stores task under task.ID, replacing any prior entry.
	PutTask(ctx context.Context, task *core.Task) error

	// ListTasks returns every stored task ordered by ID.
	ListTasks(ctx context.Context) ([]*core.Task, error)
}

// Store combines the repositories a workspace needs.
type Store interface {
	IndexRepository
	TaskRepository

	// Close releases resources held by the store.
	Close() error
}
