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

package relevance

import (
	"strings"

	"github.com/poiesic/codi/core"
)

// Score weights.
const (
	SemanticWeight        = 0.50
	KeywordOverlapWeight  = 0.30
	FunctionOverlapWeight = 0.20
)

// lowerSet lowercases items into a set.
func lowerSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = struct{}{}
	}
	return set
}

func intersectionSize(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

// KeywordOverlap is the share of distinct lowercased task keywords that also
// appear among the file's semantic keywords.
func KeywordOverlap(taskKeywords, fileKeywords []string) float64 {
	task := lowerSet(taskKeywords)
	file := lowerSet(fileKeywords)
	return float64(intersectionSize(task, file)) / float64(max(len(task), 1))
}

// FunctionOverlap is the number of distinct lowercased task keywords that
// equal a symbol name, divided by the number of distinct lowercased symbols.
func FunctionOverlap(taskKeywords, functions []string) float64 {
	task := lowerSet(taskKeywords)
	fns := lowerSet(functions)
	return float64(intersectionSize(task, fns)) / float64(max(len(fns), 1))
}

// Signal is everything that describes a file for embedding: the semantic
// signal fields followed by the extracted symbol names.
func Signal(record *core.FileRecord) []string {
	return append(record.Semantic.Signal(), record.Functions...)
}
