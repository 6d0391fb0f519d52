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

import (
	"fmt"
	"strings"
	"time"
)

// Environment variables consulted for the extraction service.
const (
	EnvAPIKey = "AI_API_KEY"
	EnvModel  = "AI_MODEL"
	EnvURL    = "AI_URL"
)

// Config holds configuration for AI service providers.
type Config struct {
	// APIKey is the bearer token for the extraction service (AI_API_KEY).
	APIKey string

	// Model is the chat model identifier for extraction (AI_MODEL).
	// Example: "gpt-4o-mini", "qwen2.5:3b"
	Model string

	// URL is the extraction service endpoint (AI_URL). Either the API base
	// ("https://api.openai.com/v1") or the full chat completions endpoint is accepted.
	URL string

	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "all-minilm", "text-embedding-3-small"
	EmbeddingModel string

	// EmbeddingAPIKey is the bearer token for the embedding service.
	// Local servers usually ignore it.
	// Default: "none"
	EmbeddingAPIKey string

	// Timeout bounds every request to either service.
	// Default: 30s
	Timeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithAPIKey sets the extraction service credential.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithModel sets the extraction model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithURL sets the extraction service endpoint.
func WithURL(url string) ConfigOption {
	return func(c *Config) {
		c.URL = url
	}
}

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithEmbeddingAPIKey sets the embedding service credential.
func WithEmbeddingAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingAPIKey = key
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = d
	}
}

// DefaultConfig returns a Config with defaults for a local embedding server.
// The extraction credential, model and URL have no defaults.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingHost:   "http://localhost:11434/v1",
		EmbeddingModel:  "all-minilm",
		EmbeddingAPIKey: "none",
		Timeout:         30 * time.Second,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithAPIKey(os.Getenv("AI_API_KEY")),
//	    WithModel("gpt-4o-mini"),
//	    WithURL("https://api.openai.com/v1/chat/completions"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// URL is reduced to the API base by dropping a trailing /chat/completions,
// and EmbeddingHost gets the /v1 suffix most OpenAI-compatible servers expect.
func (c *Config) Normalize() {
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.Model = strings.TrimSpace(c.Model)

	if c.URL != "" {
		c.URL = strings.TrimSuffix(strings.TrimSpace(c.URL), "/")
		c.URL = strings.TrimSuffix(c.URL, "/chat/completions")
	}

	if c.EmbeddingHost != "" {
		c.EmbeddingHost = strings.TrimRight(strings.TrimSpace(c.EmbeddingHost), "/")
		if !strings.HasSuffix(c.EmbeddingHost, "/v1") {
			c.EmbeddingHost += "/v1"
		}
	}

	if c.EmbeddingAPIKey == "" {
		c.EmbeddingAPIKey = "none"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
// The credential is checked first so a missing key is always reported as
// ErrMissingCredential.
func (c *Config) Validate() error {
	c.Normalize()

	if c.APIKey == "" {
		return fmt.Errorf("%w: %s is required", ErrMissingCredential, EnvAPIKey)
	}
	if c.Model == "" {
		return fmt.Errorf("%w: %s is required", ErrMissingConfig, EnvModel)
	}
	if c.URL == "" {
		return fmt.Errorf("%w: %s is required", ErrMissingConfig, EnvURL)
	}
	return c.ValidateEmbedding()
}

// ValidateEmbedding checks only the settings the embedder needs.
func (c *Config) ValidateEmbedding() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return fmt.Errorf("%w: EmbeddingHost is required", ErrMissingConfig)
	}
	if c.EmbeddingModel == "" {
		return fmt.Errorf("%w: EmbeddingModel is required", ErrMissingConfig)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: Timeout must be positive", ErrMissingConfig)
	}
	return nil
}
