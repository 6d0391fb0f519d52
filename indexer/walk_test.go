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
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/codi/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files under root from a map of slash paths to contents.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestWalk_Filters(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/auth.js":               "function login() {}",
		"src/Util.PY":               "def helper(): pass",
		"src/image.png":             "binary",
		"node_modules/lib/index.js": "function lib() {}",
		".codi/index.json":          "[]",
		"package.json":              "{}",
		"docs/README.md":            "# readme",
		"docs/guide.md":             "# guide",
		"nested/public/app.js":      "function app() {}",
	})

	b := newTestBuilder(t, mock.NewMockSemanticExtractor())
	paths, err := b.walk(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/guide.md", "src/Util.PY", "src/auth.js"}, paths)
}

func TestWalk_CustomFilters(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.go":         "package a",
		"b.js":         "function b() {}",
		"vendor/c.go":  "package c",
		"generated.go": "package a",
		"public/d.go":  "package d",
	})

	b := newTestBuilder(t, mock.NewMockSemanticExtractor(),
		WithExtensions("go"),
		WithSkipDirs("vendor"),
		WithSkipFiles("generated.go"))
	paths, err := b.walk(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.go", "public/d.go"}, paths)
}

func TestWalk_RootErrors(t *testing.T) {
	b := newTestBuilder(t, mock.NewMockSemanticExtractor())

	t.Run("missing root", func(t *testing.T) {
		_, err := b.walk(context.Background(), filepath.Join(t.TempDir(), "missing"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("root is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file.js")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		_, err := b.walk(context.Background(), file)
		assert.ErrorIs(t, err, ErrNotDirectory)
	})
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{name: "plain utf-8", raw: []byte("héllo"), want: "héllo"},
		{name: "utf-8 bom stripped", raw: []byte("\xef\xbb\xbfconst x = 1"), want: "const x = 1"},
		{name: "utf-16le with bom", raw: []byte{0xff, 0xfe, 'h', 0, 'i', 0}, want: "hi"},
		{name: "utf-16be with bom", raw: []byte{0xfe, 0xff, 0, 'h', 0, 'i'}, want: "hi"},
		{name: "invalid bytes replaced", raw: []byte("ok\xff\xfeok"), want: "ok��ok"},
		{name: "empty", raw: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decode(tt.raw))
		})
	}
}
