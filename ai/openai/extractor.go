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

package openai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/poiesic/codi/ai"
	"github.com/poiesic/codi/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// SemanticExtractor implements ai.SemanticExtractor using OpenAI-compatible chat APIs.
type SemanticExtractor struct {
	client llms.Model
	model  string
	logger *slog.Logger
}

// newSemanticExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSemanticExtractor(config *ai.Config) (*SemanticExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.URL),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
		openai.WithHTTPClient(&http.Client{Timeout: config.Timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrMissingConfig, err)
	}

	return &SemanticExtractor{
		client: client,
		model:  config.Model,
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewSemanticExtractor creates a new semantic extractor using the provided configuration.
// The configuration is validated before any network activity.
//
// Returns ai.SemanticExtractor interface to enforce abstraction.
func NewSemanticExtractor(config *ai.Config) (ai.SemanticExtractor, error) {
	return newSemanticExtractor(config)
}

// Extract sends one chat completion request and parses the reply.
// The request is never retried.
func (e *SemanticExtractor) Extract(ctx context.Context, text string, mode ai.Mode) (core.SemanticMetadata, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildPrompt(mode, sanitizeInput(text))),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(mode.Temperature()))
	if err != nil {
		e.logger.Error("extraction request failed", "mode", mode, "model", e.model, "err", err)
		return core.SemanticMetadata{}, fmt.Errorf("%w: %w", ai.ErrTransport, err)
	}

	if len(response.Choices) < 1 {
		e.logger.Warn("no choices returned from model", "mode", mode)
		return core.Fallback(), nil
	}

	meta, err := ai.DecodeMetadata(response.Choices[0].Content)
	if err != nil {
		e.logger.Warn("using fallback metadata",
			"mode", mode,
			"response", response.Choices[0].Content,
			"err", err)
		return meta, nil
	}

	e.logger.Debug("extracted metadata", "mode", mode, "keywords", len(meta.Keywords))
	return meta, nil
}
