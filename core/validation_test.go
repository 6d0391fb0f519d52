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
	"errors"
	"testing"
)

func TestValidateFileRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *FileRecord
		wantErr error
	}{
		{
			name:    "valid record",
			record:  &FileRecord{Path: "src/auth.js"},
			wantErr: nil,
		},
		{
			name:    "valid record with empty semantic",
			record:  &FileRecord{Path: "src/auth.js", Semantic: Fallback()},
			wantErr: nil,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidFileRecord,
		},
		{
			name:    "empty path",
			record:  &FileRecord{},
			wantErr: ErrEmptyPath,
		},
		{
			name:    "absolute path",
			record:  &FileRecord{Path: "/etc/passwd"},
			wantErr: ErrAbsolutePath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileRecord(tt.record)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateFileRecord() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateFileRecord() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFileRecord() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateIndex(t *testing.T) {
	t.Run("unique paths", func(t *testing.T) {
		records := []*FileRecord{{Path: "a.js"}, {Path: "b.js"}}
		if err := ValidateIndex(records); err != nil {
			t.Errorf("ValidateIndex() error = %v, want nil", err)
		}
	})

	t.Run("empty index", func(t *testing.T) {
		if err := ValidateIndex(nil); err != nil {
			t.Errorf("ValidateIndex() error = %v, want nil", err)
		}
	})

	t.Run("duplicate path", func(t *testing.T) {
		records := []*FileRecord{{Path: "a.js"}, {Path: "a.js"}}
		err := ValidateIndex(records)
		if !errors.Is(err, ErrDuplicatePath) {
			t.Errorf("ValidateIndex() error = %v, want %v", err, ErrDuplicatePath)
		}
		if !errors.Is(err, ErrInvalidIndex) {
			t.Errorf("ValidateIndex() error = %v, want %v", err, ErrInvalidIndex)
		}
	})

	t.Run("invalid record", func(t *testing.T) {
		err := ValidateIndex([]*FileRecord{{Path: ""}})
		if !errors.Is(err, ErrEmptyPath) {
			t.Errorf("ValidateIndex() error = %v, want %v", err, ErrEmptyPath)
		}
	})
}

func TestValidateTask(t *testing.T) {
	tests := []struct {
		name    string
		task    *Task
		wantErr error
	}{
		{
			name:    "valid task without matches",
			task:    &Task{ID: "add-email", Description: "validate email format"},
			wantErr: nil,
		},
		{
			name: "valid task with matches",
			task: &Task{
				ID:          "add-email",
				Description: "validate email format",
				Matches:     []Match{{File: "a.js", Score: 0.5}},
			},
			wantErr: nil,
		},
		{
			name:    "nil task",
			task:    nil,
			wantErr: ErrInvalidTask,
		},
		{
			name:    "empty id",
			task:    &Task{Description: "something"},
			wantErr: ErrEmptyTaskID,
		},
		{
			name:    "empty description",
			task:    &Task{ID: "x"},
			wantErr: ErrEmptyDescription,
		},
		{
			name: "zero score match",
			task: &Task{
				ID:          "x",
				Description: "something",
				Matches:     []Match{{File: "a.js", Score: 0}},
			},
			wantErr: ErrNonPositiveScore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTask(tt.task)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateTask() error = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTask() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
