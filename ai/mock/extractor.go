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

package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/codi/ai"
	"github.com/poiesic/codi/core"
)

// MockSemanticExtractor is a test double for ai.SemanticExtractor.
type MockSemanticExtractor struct {
	// ExtractFunc is called by Extract if set.
	// If nil, uses default simple word extraction.
	ExtractFunc func(ctx context.Context, text string, mode ai.Mode) (core.SemanticMetadata, error)

	mu        sync.Mutex
	callCount int
	modes     []ai.Mode
}

// NewMockSemanticExtractor creates a mock extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockSemanticExtractor() *MockSemanticExtractor {
	return &MockSemanticExtractor{}
}

// Extract returns simple mock metadata for text.
// Default behavior: the first five distinct lowercased words become keywords.
func (m *MockSemanticExtractor) Extract(ctx context.Context, text string, mode ai.Mode) (core.SemanticMetadata, error) {
	m.mu.Lock()
	m.callCount++
	m.modes = append(m.modes, mode)
	m.mu.Unlock()

	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, text, mode)
	}

	seen := make(map[string]bool)
	keywords := make([]string, 0, 5)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:\"'()[]{}=<>/-")
		if word == "" || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
		if len(keywords) == 5 {
			break
		}
	}

	return core.SemanticMetadata{Keywords: keywords}, nil
}

// Respond makes every Extract call parse the given raw model reply, the way
// the production extractor does.
func (m *MockSemanticExtractor) Respond(reply string) *MockSemanticExtractor {
	m.ExtractFunc = func(context.Context, string, ai.Mode) (core.SemanticMetadata, error) {
		return ai.ParseMetadata(reply), nil
	}
	return m
}

// CallCount returns the number of times Extract was called.
func (m *MockSemanticExtractor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Modes returns the mode of every Extract call, in call order.
func (m *MockSemanticExtractor) Modes() []ai.Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ai.Mode(nil), m.modes...)
}

// Reset clears the call count and custom functions.
func (m *MockSemanticExtractor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.modes = nil
	m.ExtractFunc = nil
}
