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

package ai

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/poiesic/codi/core"
)

var errNoObject = errors.New("no JSON object found")

// ParseMetadata extracts SemanticMetadata from raw model output.
// It never fails: anything unusable yields core.Fallback().
func ParseMetadata(text string) core.SemanticMetadata {
	meta, _ := DecodeMetadata(text)
	return meta
}

// DecodeMetadata behaves like ParseMetadata but also reports why the
// fallback was used. The returned error always wraps ErrMalformedResponse
// and the returned metadata is always usable.
//
// The first balanced top-level {...} span is located by brace matching,
// so prose or code fences around the object are tolerated. If no span
// decodes, the text gets one repair pass and the search is repeated.
func DecodeMetadata(text string) (core.SemanticMetadata, error) {
	lastErr := errNoObject
	for _, candidate := range []string{text, repairJSON(text)} {
		span, ok := locateObject(candidate)
		if !ok {
			continue
		}
		var meta core.SemanticMetadata
		if err := json.Unmarshal([]byte(span), &meta); err != nil {
			lastErr = err
			continue
		}
		return meta, nil
	}
	return core.Fallback(), fmt.Errorf("%w: %w", ErrMalformedResponse, lastErr)
}

// locateObject returns the first balanced top-level object in s.
// Braces inside string literals are ignored.
func locateObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString, escaped := false, false

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if start < 0 {
			if ch == '{' {
				start = i
				depth = 1
			}
			continue
		}

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
