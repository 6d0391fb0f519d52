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

import "unicode"

// repairJSON fixes the key quoting and trailing comma mistakes small models
// tend to make. String literals are copied untouched.
//
//	{keywords: ["a"]}   -> {"keywords": ["a"]}
//	{"a": [], risks": []} -> {"a": [], "risks": []}
//	{"keywords": ["a",]} -> {"keywords": ["a"]}
func repairJSON(s string) string {
	in := []rune(s)
	out := make([]rune, 0, len(in)+16)
	inString, escaped := false, false

	i := 0
	for i < len(in) {
		ch := in[i]

		if inString {
			out = append(out, ch)
			i++
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
			out = append(out, ch)
			i++
		case ',':
			if j := skipSpace(in, i+1); j < len(in) && (in[j] == '}' || in[j] == ']') {
				i++
				continue
			}
			out = append(out, ch)
			out, i = repairKey(in, i+1, out)
		case '{':
			out = append(out, ch)
			out, i = repairKey(in, i+1, out)
		default:
			out = append(out, ch)
			i++
		}
	}

	return string(out)
}

// repairKey copies whitespace starting at i, then quotes an object key that
// is missing its opening quote or both quotes. Bare words that are not keys
// (true, null, ...) are copied as they are. Returns the grown output and the
// index of the next unread rune.
func repairKey(in []rune, i int, out []rune) ([]rune, int) {
	for i < len(in) && unicode.IsSpace(in[i]) {
		out = append(out, in[i])
		i++
	}
	if i >= len(in) || !(isLetter(in[i]) || in[i] == '_') {
		return out, i
	}

	start := i
	for i < len(in) && (isLetter(in[i]) || unicode.IsDigit(in[i]) || in[i] == '_') {
		i++
	}
	key := in[start:i]

	switch {
	case i+1 < len(in) && in[i] == '"' && in[i+1] == ':':
		out = append(out, '"')
		out = append(out, key...)
		out = append(out, '"')
		return out, i + 1
	case colonFollows(in, i):
		out = append(out, '"')
		out = append(out, key...)
		out = append(out, '"')
		return out, i
	}

	out = append(out, key...)
	return out, i
}

func colonFollows(in []rune, i int) bool {
	j := skipSpace(in, i)
	return j < len(in) && in[j] == ':'
}

func skipSpace(in []rune, i int) int {
	for i < len(in) && unicode.IsSpace(in[i]) {
		i++
	}
	return i
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
