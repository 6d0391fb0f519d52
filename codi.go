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

package codi

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/poiesic/codi/ai"
	"github.com/poiesic/codi/ai/openai"
	"github.com/poiesic/codi/config"
	"github.com/poiesic/codi/indexer"
	"github.com/poiesic/codi/storage"
	"github.com/poiesic/codi/storage/badger"
	"github.com/poiesic/codi/storage/jsonfile"
	"github.com/poiesic/codi/tasks"
)

// Version is the tool version reported by the CLI.
const Version = "0.2.0"

// Workspace ties a project root to its store and AI services.
type Workspace struct {
	root     string
	cfg      *config.Config
	store    storage.Store
	provider ai.AIProvider
	logger   *slog.Logger
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*workspaceOptions)

type workspaceOptions struct {
	provider ai.AIProvider
	store    storage.Store
	logger   *slog.Logger
}

// WithProvider uses provider instead of building an OpenAI-compatible one
// from the configuration.
func WithProvider(provider ai.AIProvider) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.provider = provider
	}
}

// WithStore uses store instead of opening the configured backend.
func WithStore(store storage.Store) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.store = store
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) WorkspaceOption {
	return func(o *workspaceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open prepares the workspace for the project at root. A nil cfg means
// config.Default(). The AI configuration is validated here, before any
// request is made.
func Open(root string, cfg *config.Config, opts ...WorkspaceOption) (*Workspace, error) {
	options := &workspaceOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(cfg.AIConfig())
		if err != nil {
			return nil, err
		}
	}

	store := options.store
	if store == nil {
		store, err = OpenStore(abs, cfg)
		if err != nil {
			provider.Close()
			return nil, err
		}
	}

	return &Workspace{
		root:     abs,
		cfg:      cfg,
		store:    store,
		provider: provider,
		logger:   options.logger,
	}, nil
}

// OpenStore opens the storage backend selected by cfg under root/.codi.
// It needs no AI configuration, so read-only commands can use it directly.
func OpenStore(root string, cfg *config.Config) (storage.Store, error) {
	dir := config.Dir(root)
	switch cfg.Storage {
	case config.StorageJSON:
		return jsonfile.Open(dir)
	case config.StorageBadger:
		return badger.Open(filepath.Join(dir, "db"))
	}
	return nil, fmt.Errorf("%w: %q", storage.ErrUnknownBackend, cfg.Storage)
}

// Close releases the store and the AI provider.
func (w *Workspace) Close() error {
	logger := w.logger.With("component", "workspace")
	var errs []error
	if err := w.provider.Close(); err != nil {
		logger.Error("error closing AI provider", "err", err)
		errs = append(errs, err)
	}
	if err := w.store.Close(); err != nil {
		logger.Error("error closing store", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Root returns the absolute project root.
func (w *Workspace) Root() string {
	return w.root
}

// Config returns the workspace configuration.
func (w *Workspace) Config() *config.Config {
	return w.cfg
}

// Store returns the workspace store.
func (w *Workspace) Store() storage.Store {
	return w.store
}

// NewIndexer creates an index builder configured from the workspace
// settings. Options given here take precedence. The caller must Release it.
func (w *Workspace) NewIndexer(opts ...indexer.Option) (*indexer.Builder, error) {
	base := []indexer.Option{
		indexer.WithPoolSize(w.cfg.PoolSize),
		indexer.WithSkipDirs(w.cfg.SkipDirs...),
		indexer.WithSkipFiles(w.cfg.SkipFiles...),
		indexer.WithExtensions(w.cfg.Extensions...),
		indexer.WithLogger(w.logger),
	}
	return indexer.NewBuilder(w.provider.SemanticExtractor(), w.store, append(base, opts...)...)
}

// NewTaskProcessor creates a task processor on the workspace store.
func (w *Workspace) NewTaskProcessor(opts ...tasks.Option) (*tasks.Processor, error) {
	base := []tasks.Option{tasks.WithLogger(w.logger)}
	return tasks.NewProcessor(w.store, w.store, w.provider, append(base, opts...)...)
}
