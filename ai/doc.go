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

// Package ai provides abstractions for AI services used by codi.
//
// Two capabilities are modeled as interfaces so scoring and indexing never
// depend on a concrete SDK:
//
//   - Embedder: Generates vector embeddings from text
//   - SemanticExtractor: Turns file contents or task descriptions into
//     core.SemanticMetadata
//   - AIProvider: Aggregates both for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// INTERFACE types. Test constructors in ai/mock return CONCRETE types so tests
// can inject behavior and inspect call counts.
//
// # Errors
//
// Configuration problems surface from Config.Validate as ErrMissingCredential
// or ErrMissingConfig before any network call. Remote failures are wrapped in
// ErrTransport and are never retried. A model reply without a usable JSON
// object is not an error: extractors return core.Fallback().
//
// # Usage Example
//
//	cfg := ai.NewConfig(
//	    ai.WithAPIKey(os.Getenv(ai.EnvAPIKey)),
//	    ai.WithModel(os.Getenv(ai.EnvModel)),
//	    ai.WithURL(os.Getenv(ai.EnvURL)),
//	)
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	meta, err := provider.SemanticExtractor().Extract(ctx, source, ai.ModeFull)
package ai
