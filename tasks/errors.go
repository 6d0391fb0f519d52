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

package tasks

import "errors"

var (
	// ErrUnknownTask is returned when re-running or fetching a task that was never created.
	ErrUnknownTask = errors.New("unknown task")

	// ErrIndexNotFound is returned when no index has been built yet.
	ErrIndexNotFound = errors.New("index not found, run init first")

	// ErrIndexRepositoryRequired is returned when an index repository is not provided.
	ErrIndexRepositoryRequired = errors.New("index repository required")

	// ErrTaskRepositoryRequired is returned when a task repository is not provided.
	ErrTaskRepositoryRequired = errors.New("task repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")
)
