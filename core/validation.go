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

package core

import (
	"fmt"
	"path"
)

// ValidateFileRecord validates a FileRecord according to domain rules.
//
// Validation rules:
//   - Path must not be empty
//   - Path must be relative (no leading slash)
//
// NOT validated (model output is best effort):
//   - Semantic (may be the empty fallback)
//   - Functions (may be empty)
func ValidateFileRecord(record *FileRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidFileRecord)
	}

	if record.Path == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFileRecord, ErrEmptyPath)
	}

	if path.IsAbs(record.Path) {
		return fmt.Errorf("%w: %w: %s", ErrInvalidFileRecord, ErrAbsolutePath, record.Path)
	}

	return nil
}

// ValidateIndex validates every record and checks that paths are unique.
func ValidateIndex(records []*FileRecord) error {
	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		if err := ValidateFileRecord(record); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidIndex, err)
		}
		if _, dup := seen[record.Path]; dup {
			return fmt.Errorf("%w: %w: %s", ErrInvalidIndex, ErrDuplicatePath, record.Path)
		}
		seen[record.Path] = struct{}{}
	}
	return nil
}

// ValidateTask validates a Task according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Description must not be empty
//   - Every match must have a positive score
func ValidateTask(task *Task) error {
	if task == nil {
		return fmt.Errorf("%w: task is nil", ErrInvalidTask)
	}

	if task.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTask, ErrEmptyTaskID)
	}

	if task.Description == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTask, ErrEmptyDescription)
	}

	for _, m := range task.Matches {
		if m.Score <= 0 {
			return fmt.Errorf("%w: %w: %s", ErrInvalidTask, ErrNonPositiveScore, m.File)
		}
	}

	return nil
}
