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

// Package storage provides the storage abstraction layer for codi.
//
// This package defines repository interfaces that decouple persistence from
// indexing and task scoring. Two backends implement them:
//
//   - jsonfile: plain JSON documents under the project's .codi folder,
//     rewritten atomically under an advisory file lock
//   - badger: a BadgerDB directory holding both the index and the tasks
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage.Store interface rather than the
// concrete backend type:
//
//	store, err := jsonfile.Open("/path/to/project/.codi") // returns storage.Store
//
// # Usage
//
// Use in tests with in-memory storage:
//
//	store, err := badger.OpenMemory()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
// # Semantics
//
// The index is saved and loaded as one unit; SaveIndex always replaces the
// previous snapshot. Tasks are keyed by their user supplied ID and PutTask
// overwrites. Last writer wins for both.
package storage
