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

// Package relevance ranks indexed files against a task's keywords.
//
// The score of a file is
//
//	0.50 * semantic + 0.30 * keyword overlap + 0.20 * function overlap
//
// rounded to three decimals. Semantic is the cosine similarity, clamped to
// [0, 1], between embeddings of the space-joined task keywords and of the
// file's combined signal (keywords, capabilities, side effects, inputs,
// outputs, risks, patterns and symbol names). Keyword overlap divides by the
// number of distinct task keywords; function overlap divides by the number
// of distinct symbols. Comparisons are case-insensitive.
package relevance
