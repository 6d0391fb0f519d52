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

import "errors"

// Domain validation errors
var (
	// ErrInvalidFileRecord indicates a FileRecord failed validation.
	ErrInvalidFileRecord = errors.New("invalid file record")

	// ErrInvalidIndex indicates an index snapshot failed validation.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrInvalidTask indicates a Task failed validation.
	ErrInvalidTask = errors.New("invalid task")

	// ErrEmptyPath indicates the FileRecord Path field is empty.
	ErrEmptyPath = errors.New("path cannot be empty")

	// ErrAbsolutePath indicates a FileRecord Path is not project-relative.
	ErrAbsolutePath = errors.New("path must be relative to the project root")

	// ErrDuplicatePath indicates two records in one snapshot share a path.
	ErrDuplicatePath = errors.New("duplicate path")

	// ErrEmptyTaskID indicates the Task ID field is empty.
	ErrEmptyTaskID = errors.New("task id cannot be empty")

	// ErrEmptyDescription indicates the Task Description field is empty.
	ErrEmptyDescription = errors.New("task description cannot be empty")

	// ErrNonPositiveScore indicates a stored match has a score of zero or less.
	ErrNonPositiveScore = errors.New("match score must be positive")
)
