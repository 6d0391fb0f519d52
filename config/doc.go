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

// Package config loads project settings from .codi/config.yaml and the
// environment.
//
// The extraction service is configured with AI_API_KEY, AI_MODEL and
// AI_URL; the embedding service with EMBEDDING_HOST, EMBEDDING_MODEL and
// EMBEDDING_API_KEY. Environment variables override values from the file.
package config
