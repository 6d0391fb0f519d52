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

package indexer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/codi/ai"
	"github.com/poiesic/codi/core"
	"github.com/poiesic/codi/storage"
	"github.com/poiesic/codi/symbols"
)

// Builder walks a project tree and turns every accepted file into a
// core.FileRecord, then links records that share keywords.
type Builder struct {
	extractor  ai.SemanticExtractor
	repository storage.IndexRepository
	pool       *ants.Pool
	skipDirs   []string
	skipFiles  []string
	extensions []string
	filter     walkFilter
	logger     *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithPoolSize sets how many files are indexed concurrently.
// Default is 1, which indexes files one at a time in walk order.
func WithPoolSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if b.pool != nil {
			b.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		b.pool = pool
		return nil
	}
}

// WithSkipDirs replaces the directory names that are never descended into.
func WithSkipDirs(dirs ...string) Option {
	return func(b *Builder) error {
		b.skipDirs = dirs
		return nil
	}
}

// WithSkipFiles replaces the file names that are never indexed.
func WithSkipFiles(names ...string) Option {
	return func(b *Builder) error {
		b.skipFiles = names
		return nil
	}
}

// WithExtensions replaces the accepted file extensions.
func WithExtensions(exts ...string) Option {
	return func(b *Builder) error {
		b.extensions = exts
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates a new index builder.
func NewBuilder(
	extractor ai.SemanticExtractor,
	repository storage.IndexRepository,
	opts ...Option,
) (*Builder, error) {
	if extractor == nil {
		return nil, ErrSemanticExtractorRequired
	}
	if repository == nil {
		return nil, ErrIndexRepositoryRequired
	}

	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		extractor:  extractor,
		repository: repository,
		pool:       pool,
		skipDirs:   DefaultSkipDirs,
		skipFiles:  DefaultSkipFiles,
		extensions: DefaultExtensions,
		logger:     slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(b); optErr != nil {
			b.Release()
			return nil, optErr
		}
	}

	b.filter = newWalkFilter(b.skipDirs, b.skipFiles, b.extensions)
	b.logger = b.logger.With("component", "indexer")

	return b, nil
}

// Index builds the index for root and saves it, replacing any previous
// snapshot. Nothing is saved when the build fails.
func (b *Builder) Index(ctx context.Context, root string, monitor Monitor) ([]*core.FileRecord, error) {
	records, err := b.BuildWithMonitor(ctx, root, monitor)
	if err != nil {
		return nil, err
	}
	if err := core.ValidateIndex(records); err != nil {
		return nil, err
	}
	if err := b.repository.SaveIndex(ctx, records); err != nil {
		return nil, fmt.Errorf("saving index: %w", err)
	}
	return records, nil
}

// Build walks root and returns one linked record per indexed file, in walk
// order.
func (b *Builder) Build(ctx context.Context, root string) ([]*core.FileRecord, error) {
	return b.BuildWithMonitor(ctx, root, nil)
}

// BuildWithMonitor is Build with per-file progress reported to monitor.
//
// Unreadable files are skipped and files whose extraction fails for a
// non-fatal reason get fallback metadata. Transport, credential and
// configuration errors abort the run, as does cancelling ctx.
func (b *Builder) BuildWithMonitor(ctx context.Context, root string, monitor Monitor) ([]*core.FileRecord, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	run := uuid.NewString()
	logger := b.logger.With("run", run, "root", root)
	started := time.Now()

	paths, err := b.walk(ctx, root)
	if err != nil {
		return nil, err
	}
	logger.Info("starting index run", "files", len(paths))
	monitor.Start(run, len(paths))

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	slots := make([]*core.FileRecord, len(paths))
	var wg sync.WaitGroup
	for i, rel := range paths {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		submitErr := b.pool.Submit(func() {
			defer wg.Done()
			record, err := b.indexFile(ctx, root, rel, logger, monitor)
			if err != nil {
				cancel(err)
				return
			}
			slots[i] = record
		})
		if submitErr != nil {
			wg.Done()
			cancel(submitErr)
			break
		}
	}
	wg.Wait()

	if err := context.Cause(ctx); err != nil {
		logger.Error("index run aborted", "err", err)
		return nil, err
	}

	records := make([]*core.FileRecord, 0, len(slots))
	for _, record := range slots {
		if record != nil {
			records = append(records, record)
		}
	}
	Link(records)
	monitor.Finish(records)

	logger.Info("index run complete",
		"files", len(paths),
		"records", len(records),
		"elapsed", time.Since(started))
	return records, nil
}

// indexFile builds the record for one file. A nil record with a nil error
// means the file was skipped.
func (b *Builder) indexFile(ctx context.Context, root, rel string, logger *slog.Logger, monitor Monitor) (*core.FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		logger.Warn("skipping unreadable file", "path", rel, "err", err)
		monitor.FileSkipped(rel, err)
		return nil, nil
	}
	content := decode(raw)

	semantic := core.Fallback()
	if strings.TrimSpace(content) != "" {
		semantic, err = b.extractor.Extract(ctx, content, ai.ModeFull)
		if err != nil {
			if isFatal(err) {
				return nil, fmt.Errorf("indexing %s: %w", rel, err)
			}
			logger.Warn("extraction failed, using fallback metadata", "path", rel, "err", err)
			record := newRecord(rel, content, core.Fallback())
			monitor.FileDegraded(rel, err)
			return record, nil
		}
	}

	record := newRecord(rel, content, semantic)
	logger.Debug("indexed file",
		"path", rel,
		"keywords", len(record.Keywords),
		"functions", len(record.Functions))
	monitor.FileIndexed(record)
	return record, nil
}

func newRecord(path, content string, semantic core.SemanticMetadata) *core.FileRecord {
	keywords := slices.Clone(semantic.Keywords)
	if keywords == nil {
		keywords = []string{}
	}
	return &core.FileRecord{
		Path:         path,
		Semantic:     semantic,
		Keywords:     keywords,
		Functions:    symbols.Extract(content),
		RelatedFiles: []string{},
		Digest:       core.Digest(content),
	}
}

// isFatal reports whether err must abort the whole run rather than a single
// file.
func isFatal(err error) bool {
	return errors.Is(err, ai.ErrTransport) ||
		errors.Is(err, ai.ErrMissingCredential) ||
		errors.Is(err, ai.ErrMissingConfig) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// Release releases resources including the worker pool.
// The builder should not be used after calling Release.
func (b *Builder) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}
