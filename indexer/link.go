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

import "github.com/poiesic/codi/core"

// MinSharedKeywords is the number of keywords two records must share to be
// linked.
const MinSharedKeywords = 2

// Link fills RelatedFiles for every record. For each ordered pair (a, b) with
// distinct paths, b's path is appended to a.RelatedFiles when the two share at
// least MinSharedKeywords keywords, compared case-sensitively. Pairs are
// evaluated independently so the relation is not forced to be symmetric.
// Related paths follow the order of records, and any previous links are
// discarded.
func Link(records []*core.FileRecord) {
	sets := make([]map[string]struct{}, len(records))
	for i, r := range records {
		set := make(map[string]struct{}, len(r.Keywords))
		for _, k := range r.Keywords {
			set[k] = struct{}{}
		}
		sets[i] = set
		r.RelatedFiles = []string{}
	}

	for i, a := range records {
		for j, b := range records {
			if a.Path == b.Path {
				continue
			}
			if shared(sets[i], sets[j]) >= MinSharedKeywords {
				a.RelatedFiles = append(a.RelatedFiles, b.Path)
			}
		}
	}
}

func shared(a, b map[string]struct{}) int {
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}
