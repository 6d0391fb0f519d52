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

import "errors"

var (
	// ErrMissingCredential is returned when the extraction service API key is absent.
	ErrMissingCredential = errors.New("missing AI credential")

	// ErrMissingConfig is returned when a required model or endpoint setting is absent.
	ErrMissingConfig = errors.New("missing AI configuration")

	// ErrTransport is returned when a remote AI service could not be reached
	// or answered with a non-success status. Calls are never retried.
	ErrTransport = errors.New("AI service transport failure")

	// ErrMalformedResponse marks an extraction response that held no usable
	// JSON object. Extractors recover from it by returning core.Fallback();
	// it is only ever logged.
	ErrMalformedResponse = errors.New("malformed AI response")
)
