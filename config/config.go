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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/poiesic/codi/ai"
	"github.com/poiesic/codi/indexer"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// DirName is the per-project working folder.
	DirName = ".codi"

	// FileName is the config file inside DirName.
	FileName = "config.yaml"
)

// Storage backends.
const (
	StorageJSON   = "json"
	StorageBadger = "badger"
)

var (
	// ErrConfigExists is returned by WriteDefault when a config file is already present.
	ErrConfigExists = errors.New("config file already exists")

	// ErrInvalidConfig indicates a config value outside its allowed range.
	ErrInvalidConfig = errors.New("invalid config")
)

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"ai_api_key":        ai.EnvAPIKey,
	"ai_model":          ai.EnvModel,
	"ai_url":            ai.EnvURL,
	"embedding_host":    "EMBEDDING_HOST",
	"embedding_model":   "EMBEDDING_MODEL",
	"embedding_api_key": "EMBEDDING_API_KEY",
}

// Config is the project configuration.
type Config struct {
	AIAPIKey        string        `mapstructure:"ai_api_key" yaml:"ai_api_key"`
	AIModel         string        `mapstructure:"ai_model" yaml:"ai_model"`
	AIURL           string        `mapstructure:"ai_url" yaml:"ai_url"`
	EmbeddingHost   string        `mapstructure:"embedding_host" yaml:"embedding_host"`
	EmbeddingModel  string        `mapstructure:"embedding_model" yaml:"embedding_model"`
	EmbeddingAPIKey string        `mapstructure:"embedding_api_key" yaml:"embedding_api_key"`
	Timeout         time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// Storage selects the backend: "json" or "badger".
	Storage string `mapstructure:"storage" yaml:"storage"`

	// PoolSize is the number of files indexed concurrently.
	PoolSize int `mapstructure:"pool_size" yaml:"pool_size"`

	SkipDirs   []string `mapstructure:"skip_dirs" yaml:"skip_dirs"`
	SkipFiles  []string `mapstructure:"skip_files" yaml:"skip_files"`
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	aiDefaults := ai.DefaultConfig()
	return &Config{
		EmbeddingHost:   aiDefaults.EmbeddingHost,
		EmbeddingModel:  aiDefaults.EmbeddingModel,
		EmbeddingAPIKey: aiDefaults.EmbeddingAPIKey,
		Timeout:         aiDefaults.Timeout,
		Storage:         StorageJSON,
		PoolSize:        1,
		SkipDirs:        slices.Clone(indexer.DefaultSkipDirs),
		SkipFiles:       slices.Clone(indexer.DefaultSkipFiles),
		Extensions:      slices.Clone(indexer.DefaultExtensions),
	}
}

// Dir returns the working folder for the project at root.
func Dir(root string) string {
	return filepath.Join(root, DirName)
}

// Path returns the config file path for the project at root.
func Path(root string) string {
	return filepath.Join(Dir(root), FileName)
}

// Load reads root/.codi/config.yaml if it exists and applies environment
// overrides on top. Environment variables win over the file.
func Load(root string) (*Config, error) {
	defaults := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("embedding_host", defaults.EmbeddingHost)
	v.SetDefault("embedding_model", defaults.EmbeddingModel)
	v.SetDefault("embedding_api_key", defaults.EmbeddingAPIKey)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("storage", defaults.Storage)
	v.SetDefault("pool_size", defaults.PoolSize)
	v.SetDefault("skip_dirs", defaults.SkipDirs)
	v.SetDefault("skip_files", defaults.SkipFiles)
	v.SetDefault("extensions", defaults.Extensions)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	path := Path(root)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that have a fixed set of allowed settings.
// Service credentials are checked later by ai.Config.Validate.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageJSON, StorageBadger:
	default:
		return fmt.Errorf("%w: storage %q, want %q or %q", ErrInvalidConfig, c.Storage, StorageJSON, StorageBadger)
	}
	if c.PoolSize < 1 {
		return fmt.Errorf("%w: pool_size must be at least 1", ErrInvalidConfig)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("%w: extensions must not be empty", ErrInvalidConfig)
	}
	return nil
}

// AIConfig converts the service settings to an ai.Config.
func (c *Config) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithAPIKey(c.AIAPIKey),
		ai.WithModel(c.AIModel),
		ai.WithURL(c.AIURL),
		ai.WithEmbeddingHost(c.EmbeddingHost),
		ai.WithEmbeddingModel(c.EmbeddingModel),
		ai.WithEmbeddingAPIKey(c.EmbeddingAPIKey),
		ai.WithTimeout(c.Timeout),
	)
}

// WriteDefault writes a config file populated with the defaults to
// root/.codi/config.yaml and returns its path. An existing file is only
// replaced when force is set. The API key is left blank so it can come from
// the environment.
func WriteDefault(root string, force bool) (string, error) {
	path := Path(root)
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(Dir(root), 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", Dir(root), err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
