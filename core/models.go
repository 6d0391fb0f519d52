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
	"encoding/hex"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Digest returns the hex-encoded BLAKE2b-256 hash of content.
// Identical content always produces the same digest.
func Digest(content string) string {
	h, _ := blake2b.New(32, nil) // 32 bytes = 256 bits
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}

// FileRecord is the indexed representation of one project file.
type FileRecord struct {
	// Path is the slash-separated path relative to the project root.
	// It is unique within an index snapshot.
	Path string `json:"path"`

	// Semantic holds the model-derived metadata. It is empty when extraction
	// degraded to the fallback object.
	Semantic SemanticMetadata `json:"semantic"`

	// Keywords is a copy of Semantic.Keywords.
	Keywords []string `json:"keywords"`

	// Functions holds the deduplicated symbol names found in the file.
	Functions []string `json:"functions"`

	// RelatedFiles lists paths of records sharing at least two keywords
	// with this one, as computed per ordered pair.
	RelatedFiles []string `json:"related_files"`

	// Digest is the content hash at index time. Informational only.
	Digest string `json:"digest,omitempty"`
}

// Match is one ranked file for a task.
type Match struct {
	File         string           `json:"file"`
	Score        float64          `json:"score"`
	Functions    []string         `json:"functions"`
	Keywords     []string         `json:"keywords"`
	Semantic     SemanticMetadata `json:"semantic"`
	RelatedFiles []string         `json:"related_files"`
}

// NewMatch builds a Match from a scored record.
func NewMatch(record *FileRecord, score float64) Match {
	return Match{
		File:         record.Path,
		Score:        score,
		Functions:    record.Functions,
		Keywords:     record.Keywords,
		Semantic:     record.Semantic,
		RelatedFiles: record.RelatedFiles,
	}
}

// Task is a user-named unit of work and its ranked matches.
type Task struct {
	// ID is the user-supplied key. It lives in the storage key, not the body.
	ID          string    `json:"-"`
	Description string    `json:"description"`
	Keywords    []string  `json:"keywords"`
	Matches     []Match   `json:"matches"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

// Top returns at most n of the highest ranked matches.
func (t *Task) Top(n int) []Match {
	if n < 0 {
		n = 0
	}
	if len(t.Matches) < n {
		return t.Matches
	}
	return t.Matches[:n]
}

// Best returns the highest ranked match, if any.
func (t *Task) Best() (Match, bool) {
	if len(t.Matches) == 0 {
		return Match{}, false
	}
	return t.Matches[0], true
}
