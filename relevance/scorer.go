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

package relevance

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/codi/ai"
	"github.com/poiesic/codi/core"
)

// Breakdown holds the parts of one hybrid score.
type Breakdown struct {
	Semantic        float64
	KeywordOverlap  float64
	FunctionOverlap float64
	Score           float64
}

// Scorer computes hybrid relevance scores of task keywords against indexed files.
// Embeddings are requested on every call and never cached.
type Scorer struct {
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures a Scorer.
type Option func(*Scorer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scorer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewScorer creates a scorer that uses embedder for semantic similarity.
func NewScorer(embedder ai.Embedder, opts ...Option) (*Scorer, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Scorer{
		embedder: embedder,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "scorer")

	return s, nil
}

// Score returns the hybrid relevance of record for taskKeywords, in [0, 1]
// and rounded to three decimals.
func (s *Scorer) Score(ctx context.Context, taskKeywords []string, record *core.FileRecord) (float64, error) {
	b, err := s.Explain(ctx, taskKeywords, record)
	if err != nil {
		return 0, err
	}
	return b.Score, nil
}

// Explain computes the score together with its parts.
//
// The score is 0 without any embedding request when taskKeywords is empty or
// the record has no semantic signal. Otherwise both texts are embedded in one
// request and the cosine similarity, clamped to [0, 1], is combined with the
// keyword and function overlaps.
func (s *Scorer) Explain(ctx context.Context, taskKeywords []string, record *core.FileRecord) (Breakdown, error) {
	if len(taskKeywords) == 0 {
		return Breakdown{}, nil
	}
	signal := Signal(record)
	if len(signal) == 0 {
		return Breakdown{}, nil
	}

	b := Breakdown{
		KeywordOverlap:  KeywordOverlap(taskKeywords, record.Semantic.Keywords),
		FunctionOverlap: FunctionOverlap(taskKeywords, record.Functions),
	}

	vectors, err := s.embedder.EmbedTexts(ctx, []string{
		strings.Join(taskKeywords, " "),
		strings.Join(signal, " "),
	})
	if err != nil {
		return Breakdown{}, fmt.Errorf("embedding %s: %w", record.Path, err)
	}
	if len(vectors) != 2 {
		return Breakdown{}, fmt.Errorf("embedding %s: expected 2 vectors, got %d", record.Path, len(vectors))
	}

	similarity, err := Cosine(vectors[0], vectors[1])
	if err != nil {
		return Breakdown{}, fmt.Errorf("embedding %s: %w", record.Path, err)
	}
	b.Semantic = clamp01(similarity)

	b.Score = round3(SemanticWeight*b.Semantic +
		KeywordOverlapWeight*b.KeywordOverlap +
		FunctionOverlapWeight*b.FunctionOverlap)
	return b, nil
}

// Rank scores every record and returns the matches with a positive score,
// best first. Records with equal scores keep their index order.
func (s *Scorer) Rank(ctx context.Context, taskKeywords []string, records []*core.FileRecord) ([]core.Match, error) {
	return s.RankWithMonitor(ctx, taskKeywords, records, nil)
}

// RankWithMonitor is Rank with progress callbacks.
func (s *Scorer) RankWithMonitor(ctx context.Context, taskKeywords []string, records []*core.FileRecord, monitor RankMonitor) ([]core.Match, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(taskKeywords, len(records))

	matches := make([]core.Match, 0, len(records))
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		b, err := s.Explain(ctx, taskKeywords, record)
		if err != nil {
			s.logger.Error("error scoring file", "path", record.Path, "err", err)
			return nil, err
		}
		if b.Score <= 0 {
			monitor.Skipped(record.Path)
			continue
		}

		s.logger.Debug("scored file",
			"path", record.Path,
			"score", b.Score,
			"semantic", b.Semantic,
			"keywords", b.KeywordOverlap,
			"functions", b.FunctionOverlap)
		monitor.Scored(record.Path, b)
		matches = append(matches, core.NewMatch(record, b.Score))
	}

	slices.SortStableFunc(matches, func(a, b core.Match) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	monitor.Finish(matches)

	return matches, nil
}
