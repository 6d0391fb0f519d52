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

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/codi/ai"
	"github.com/poiesic/codi/core"
	"github.com/poiesic/codi/relevance"
	"github.com/poiesic/codi/storage"
)

// TopN is the number of matches shown for a task.
const TopN = 5

// Processor creates, re-runs and lists tasks. Each run extracts keywords
// from the description, scores every indexed file and stores the ranked
// matches under the task ID.
type Processor struct {
	index     storage.IndexRepository
	tasks     storage.TaskRepository
	extractor ai.SemanticExtractor
	scorer    *relevance.Scorer
	monitor   relevance.RankMonitor
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithRankMonitor sets a monitor that observes every scoring pass.
func WithRankMonitor(monitor relevance.RankMonitor) Option {
	return func(p *Processor) error {
		p.monitor = monitor
		return nil
	}
}

// WithClock sets the time source used for Task.UpdatedAt.
// Default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) error {
		if now == nil {
			now = time.Now
		}
		p.now = now
		return nil
	}
}

// NewProcessor creates a new task processor.
func NewProcessor(
	index storage.IndexRepository,
	tasks storage.TaskRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Processor, error) {
	if index == nil {
		return nil, ErrIndexRepositoryRequired
	}
	if tasks == nil {
		return nil, ErrTaskRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	p := &Processor{
		index:     index,
		tasks:     tasks,
		extractor: provider.SemanticExtractor(),
		now:       time.Now,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	p.logger = p.logger.With("component", "tasks")

	scorer, err := relevance.NewScorer(provider.Embedder(), relevance.WithLogger(p.logger))
	if err != nil {
		return nil, err
	}
	p.scorer = scorer

	return p, nil
}

// CreateOrUpdate scores description against the index and stores the
// result under id, replacing any task already stored there.
func (p *Processor) CreateOrUpdate(ctx context.Context, id, description string) (*core.Task, error) {
	id = strings.TrimSpace(id)
	description = strings.TrimSpace(description)
	if id == "" {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidTask, core.ErrEmptyTaskID)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidTask, core.ErrEmptyDescription)
	}
	return p.run(ctx, id, description)
}

// Rerun scores the stored description of task id again against the current
// index. Returns ErrUnknownTask without contacting any service when the task
// was never created.
func (p *Processor) Rerun(ctx context.Context, id string) (*core.Task, error) {
	existing, err := p.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.run(ctx, existing.ID, existing.Description)
}

// Get returns the stored task id.
func (p *Processor) Get(ctx context.Context, id string) (*core.Task, error) {
	task, err := p.tasks.GetTask(ctx, strings.TrimSpace(id))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTask, id)
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// List returns all stored tasks ordered by ID.
func (p *Processor) List(ctx context.Context) ([]*core.Task, error) {
	return p.tasks.ListTasks(ctx)
}

func (p *Processor) run(ctx context.Context, id, description string) (*core.Task, error) {
	logger := p.logger.With("task", id)

	records, err := p.index.LoadIndex(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrIndexNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading index: %w", err)
	}

	metadata, err := p.extractor.Extract(ctx, description, ai.ModeKeywords)
	if err != nil {
		logger.Error("error extracting task keywords", "err", err)
		return nil, err
	}
	keywords := metadata.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	logger.Debug("extracted task keywords", "keywords", keywords)

	matches, err := p.scorer.RankWithMonitor(ctx, keywords, records, p.monitor)
	if err != nil {
		return nil, err
	}

	task := &core.Task{
		ID:          id,
		Description: description,
		Keywords:    keywords,
		Matches:     matches,
		UpdatedAt:   p.now().UTC(),
	}
	if err := p.tasks.PutTask(ctx, task); err != nil {
		return nil, fmt.Errorf("saving task: %w", err)
	}

	logger.Info("task scored", "files", len(records), "matches", len(matches))
	return task, nil
}
