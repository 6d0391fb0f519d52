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

package symbols

import (
	"regexp"
	"slices"
)

// rules are applied in order. Each captures one name; when a rule has more
// than one group the last group is the name.
var rules = []*regexp.Regexp{
	// function NAME
	regexp.MustCompile(`\bfunction\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
	// NAME = (...) =>
	regexp.MustCompile(`([a-zA-Z_][a-zA-Z0-9_]*)\s*=\s*\([^)]*\)\s*=>`),
	// export function NAME
	regexp.MustCompile(`\bexport function\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
	// class NAME
	regexp.MustCompile(`\bclass\s+([A-Za-z_][A-Za-z0-9_]*)`),
	// def NAME
	regexp.MustCompile(`\bdef\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
	// public|private|protected TYPE NAME(
	regexp.MustCompile(`(?:public|private|protected)\s+[a-zA-Z<>]+\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`),
}

// Extract returns the likely function, class and method names declared in
// content, deduplicated and sorted. The scan is a language-agnostic
// heuristic: it can both miss declarations and pick up false positives.
func Extract(content string) []string {
	seen := make(map[string]struct{})
	for _, rule := range rules {
		for _, groups := range rule.FindAllStringSubmatch(content, -1) {
			name := groups[len(groups)-1]
			if name == "" {
				continue
			}
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
