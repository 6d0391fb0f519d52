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
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSkipDirs are directory names never descended into.
var DefaultSkipDirs = []string{
	".codi",
	"node_modules", ".next", ".turbo",
	"dist", "build", "out",
	".git", ".husky", ".github", ".vscode", ".idea",
	".cache", ".vercel", "__pycache__",
	"public", "assets",
}

// DefaultSkipFiles are file names never indexed.
var DefaultSkipFiles = []string{
	"package.json", "package-lock.json", "yarn.lock", "pnpm-lock.yaml",
	".env", ".env.local", ".env.production", ".env.development",
	"next.config.js", "next.config.mjs", "next.config.ts", "next-env.d.ts",
	"tailwind.config.js", "postcss.config.js",
	"tsconfig.json", "jsconfig.json",
	"README.md",
}

// DefaultExtensions are the text file extensions indexed, compared
// case-insensitively.
var DefaultExtensions = []string{
	".py", ".js", ".ts", ".tsx", ".jsx",
	".java", ".go", ".cpp", ".c", ".h",
	".css", ".html", ".md", ".json",
	".yml", ".yaml", ".txt",
}

// walkFilter decides which entries of a project tree are indexed.
type walkFilter struct {
	skipDirs   map[string]struct{}
	skipFiles  map[string]struct{}
	extensions map[string]struct{}
}

func newWalkFilter(skipDirs, skipFiles, extensions []string) walkFilter {
	f := walkFilter{
		skipDirs:   make(map[string]struct{}, len(skipDirs)),
		skipFiles:  make(map[string]struct{}, len(skipFiles)),
		extensions: make(map[string]struct{}, len(extensions)),
	}
	for _, d := range skipDirs {
		f.skipDirs[d] = struct{}{}
	}
	for _, name := range skipFiles {
		f.skipFiles[name] = struct{}{}
	}
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		f.extensions[ext] = struct{}{}
	}
	return f
}

func (f walkFilter) skipDir(name string) bool {
	_, ok := f.skipDirs[name]
	return ok
}

func (f walkFilter) include(name string) bool {
	if _, ok := f.skipFiles[name]; ok {
		return false
	}
	_, ok := f.extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// walk returns the slash-separated paths, relative to root, of every file
// the filter accepts. Paths come back in lexical walk order.
func (b *Builder) walk(ctx context.Context, root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			// unreadable subtree
			b.logger.Warn("skipping unreadable path", "path", path, "err", walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && b.filter.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !b.filter.include(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil //nolint:nilerr // paths outside root are not indexed
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
