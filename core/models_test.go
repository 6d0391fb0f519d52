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
	"encoding/json"
	"slices"
	"testing"
)

func TestDigest_Deterministic(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "simple content", content: "function login() {}"},
		{name: "empty string", content: ""},
		{name: "multibyte content", content: "héllo wörld ✓"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d1 := Digest(tt.content)
			d2 := Digest(tt.content)

			if d1 != d2 {
				t.Errorf("Digest() produced different values for same content: %s vs %s", d1, d2)
			}
			if len(d1) != 64 {
				t.Errorf("Digest() length = %d, want 64", len(d1))
			}
		})
	}
}

func TestDigest_Different(t *testing.T) {
	if Digest("content1") == Digest("content2") {
		t.Errorf("Digest() produced same value for different content")
	}
}

func TestTask_Top(t *testing.T) {
	task := &Task{Matches: []Match{
		{File: "a", Score: 0.9},
		{File: "b", Score: 0.8},
		{File: "c", Score: 0.7},
	}}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{name: "fewer than available", n: 2, want: 2},
		{name: "exactly available", n: 3, want: 3},
		{name: "more than available", n: 5, want: 3},
		{name: "zero", n: 0, want: 0},
		{name: "negative", n: -1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(task.Top(tt.n)); got != tt.want {
				t.Errorf("Top(%d) returned %d matches, want %d", tt.n, got, tt.want)
			}
		})
	}
}

func TestTask_Best(t *testing.T) {
	empty := &Task{}
	if _, ok := empty.Best(); ok {
		t.Errorf("Best() on empty task reported a match")
	}

	task := &Task{Matches: []Match{{File: "a", Score: 0.9}, {File: "b", Score: 0.1}}}
	best, ok := task.Best()
	if !ok || best.File != "a" {
		t.Errorf("Best() = %v, %v, want a, true", best.File, ok)
	}
}

func TestNewMatch(t *testing.T) {
	record := &FileRecord{
		Path:         "src/auth.js",
		Keywords:     []string{"auth"},
		Functions:    []string{"login"},
		RelatedFiles: []string{"src/token.js"},
		Semantic:     SemanticMetadata{Keywords: []string{"auth"}},
	}

	m := NewMatch(record, 0.42)
	if m.File != record.Path || m.Score != 0.42 {
		t.Errorf("NewMatch() = %+v", m)
	}
	if !slices.Equal(m.RelatedFiles, record.RelatedFiles) {
		t.Errorf("NewMatch() related files = %v, want %v", m.RelatedFiles, record.RelatedFiles)
	}
}

func TestSemanticMetadata_Unmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		keywords []string
		risks    []string
	}{
		{
			name:     "all lists",
			input:    `{"keywords":["auth","login"],"risks":["token leak"]}`,
			keywords: []string{"auth", "login"},
			risks:    []string{"token leak"},
		},
		{
			name:     "missing fields read as empty",
			input:    `{}`,
			keywords: nil,
			risks:    nil,
		},
		{
			name:     "bare string becomes one element",
			input:    `{"keywords":"auth"}`,
			keywords: []string{"auth"},
		},
		{
			name:     "wrong shape reads as empty",
			input:    `{"keywords":{"a":1},"risks":42}`,
			keywords: []string{},
			risks:    []string{},
		},
		{
			name:     "non-string elements dropped",
			input:    `{"keywords":["auth",3,null,"login"]}`,
			keywords: []string{"auth", "login"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m SemanticMetadata
			if err := json.Unmarshal([]byte(tt.input), &m); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if !slices.Equal(m.Keywords, tt.keywords) {
				t.Errorf("Keywords = %v, want %v", m.Keywords, tt.keywords)
			}
			if !slices.Equal(m.Risks, tt.risks) {
				t.Errorf("Risks = %v, want %v", m.Risks, tt.risks)
			}
		})
	}
}

func TestSemanticMetadata_PreservesUnknownFields(t *testing.T) {
	input := `{"keywords":["auth"],"confidence":0.8,"notes":{"a":"b"}}`

	var m SemanticMetadata
	if err := json.Unmarshal([]byte(input), &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(m.Extra) != 2 {
		t.Fatalf("Extra has %d entries, want 2", len(m.Extra))
	}

	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["confidence"] != 0.8 {
		t.Errorf("confidence = %v, want 0.8", decoded["confidence"])
	}
	for _, name := range SemanticFields {
		if _, ok := decoded[name]; !ok {
			t.Errorf("marshaled object missing %q", name)
		}
	}
}

func TestSemanticMetadata_Signal(t *testing.T) {
	m := SemanticMetadata{
		Keywords:             []string{"k"},
		Capabilities:         []string{"c"},
		SideEffects:          []string{"s"},
		Inputs:               []string{"i"},
		Outputs:              []string{"o"},
		Risks:                []string{"r"},
		Patterns:             []string{"p"},
		DataEntities:         []string{"ignored"},
		ExternalDependencies: []string{"ignored"},
	}

	want := []string{"k", "c", "s", "i", "o", "r", "p"}
	if got := m.Signal(); !slices.Equal(got, want) {
		t.Errorf("Signal() = %v, want %v", got, want)
	}
}

func TestSemanticMetadata_IsEmpty(t *testing.T) {
	fallback := Fallback()
	if !fallback.IsEmpty() {
		t.Errorf("Fallback().IsEmpty() = false, want true")
	}

	m := SemanticMetadata{DataEntities: []string{"user"}}
	if m.IsEmpty() {
		t.Errorf("IsEmpty() = true for metadata with data entities")
	}
}
