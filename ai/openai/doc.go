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

// Package openai implements the ai interfaces on top of OpenAI-compatible
// HTTP APIs through langchaingo.
//
// The semantic extractor talks to the chat completions endpoint named by
// AI_URL with the AI_API_KEY bearer token. The embedder talks to a separate
// /embeddings host, which defaults to a local Ollama-style server. Both
// clients share the configured request timeout and neither retries.
package openai
