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

package indexer

import (
	"testing"

	"github.com/poiesic/codi/core"
	"github.com/stretchr/testify/assert"
)

func withKeywords(path string, keywords ...string) *core.FileRecord {
	return &core.FileRecord{Path: path, Keywords: keywords, RelatedFiles: []string{}}
}

func TestLink_SharedKeywordThreshold(t *testing.T) {
	a := withKeywords("fileA", "auth", "login", "token")
	b := withKeywords("fileB", "auth", "login")
	c := withKeywords("fileC", "auth")

	Link([]*core.FileRecord{a, b, c})

	assert.Equal(t, []string{"fileB"}, a.RelatedFiles)
	assert.Equal(t, []string{"fileA"}, b.RelatedFiles)
	assert.Empty(t, c.RelatedFiles)
	assert.NotNil(t, c.RelatedFiles)
}

func TestLink_CaseSensitive(t *testing.T) {
	a := withKeywords("a.js", "Auth", "Login")
	b := withKeywords("b.js", "auth", "login")

	Link([]*core.FileRecord{a, b})

	assert.Empty(t, a.RelatedFiles)
	assert.Empty(t, b.RelatedFiles)
}

func TestLink_DuplicateKeywordsCountOnce(t *testing.T) {
	a := withKeywords("a.js", "auth", "auth")
	b := withKeywords("b.js", "auth", "auth", "login")

	Link([]*core.FileRecord{a, b})

	assert.Empty(t, a.RelatedFiles)
	assert.Empty(t, b.RelatedFiles)
}

func TestLink_PreservesRecordOrder(t *testing.T) {
	records := []*core.FileRecord{
		withKeywords("a.js", "x", "y"),
		withKeywords("b.js", "x", "y"),
		withKeywords("c.js", "x", "y", "z"),
	}

	Link(records)

	assert.Equal(t, []string{"b.js", "c.js"}, records[0].RelatedFiles)
	assert.Equal(t, []string{"a.js", "c.js"}, records[1].RelatedFiles)
	assert.Equal(t, []string{"a.js", "b.js"}, records[2].RelatedFiles)
}

func TestLink_RecomputesFromScratch(t *testing.T) {
	a := withKeywords("a.js", "x", "y")
	b := withKeywords("b.js", "x", "y")
	a.RelatedFiles = []string{"stale.js"}
	records := []*core.FileRecord{a, b}

	Link(records)
	Link(records)

	assert.Equal(t, []string{"b.js"}, a.RelatedFiles)
	assert.Equal(t, []string{"a.js"}, b.RelatedFiles)
}

func TestLink_Empty(t *testing.T) {
	assert.NotPanics(t, func() { Link(nil) })
}
