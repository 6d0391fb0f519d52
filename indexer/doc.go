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

// Package indexer builds the semantic index of a project.
//
// A Builder walks the project root, pruning skipped directories and keeping
// only accepted text files, then for each file decodes the content, asks the
// semantic extractor for full metadata and scans it for symbol names. Once
// every file is processed, Link connects records sharing at least two
// keywords and the finished index replaces the stored one.
//
// Files are processed on an ants worker pool. The default size of one keeps
// the run sequential; larger pools still return records in walk order.
package indexer
