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
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/codi/ai"
	"github.com/poiesic/codi/ai/mock"
	"github.com/poiesic/codi/core"
	"github.com/poiesic/codi/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memIndex is an in-memory storage.IndexRepository.
type memIndex struct {
	mu      sync.Mutex
	records []*core.FileRecord
	saves   int
}

var _ storage.IndexRepository = (*memIndex)(nil)

func (m *memIndex) LoadIndex(_ context.Context) ([]*core.FileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saves == 0 {
		return nil, storage.ErrNotFound
	}
	return m.records, nil
}

func (m *memIndex) SaveIndex(_ context.Context, records []*core.FileRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = records
	m.saves++
	return nil
}

// recordingMonitor captures monitor callbacks.
type recordingMonitor struct {
	mu       sync.Mutex
	run      string
	files    int
	indexed  []string
	degraded []string
	skipped  []string
	finished int
}

func (m *recordingMonitor) Start(run string, files int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.run = run
	m.files = files
}

func (m *recordingMonitor) FileIndexed(record *core.FileRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indexed = append(m.indexed, record.Path)
}

func (m *recordingMonitor) FileDegraded(path string, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.degraded = append(m.degraded, path)
}

func (m *recordingMonitor) FileSkipped(path string, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skipped = append(m.skipped, path)
}

func (m *recordingMonitor) Finish(records []*core.FileRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finished = len(records)
}

func newTestBuilder(t *testing.T, extractor ai.SemanticExtractor, opts ...Option) *Builder {
	t.Helper()
	b, err := NewBuilder(extractor, &memIndex{}, opts...)
	require.NoError(t, err)
	t.Cleanup(b.Release)
	return b
}

// keywordsByMarker returns an extractor that reads keywords from a
// "keywords:" comment line in the file content.
func keywordsByMarker() *mock.MockSemanticExtractor {
	m := mock.NewMockSemanticExtractor()
	m.ExtractFunc = func(_ context.Context, text string, _ ai.Mode) (core.SemanticMetadata, error) {
		for _, line := range strings.Split(text, "\n") {
			if rest, ok := strings.CutPrefix(line, "// keywords:"); ok {
				return core.SemanticMetadata{
					Keywords:     strings.Fields(rest),
					Capabilities: []string{"does things"},
				}, nil
			}
		}
		return core.Fallback(), nil
	}
	return m
}

func TestNewBuilder(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		b, err := NewBuilder(mock.NewMockSemanticExtractor(), &memIndex{})
		require.NoError(t, err)
		defer b.Release()
		assert.NotNil(t, b)
	})

	t.Run("with options", func(t *testing.T) {
		b, err := NewBuilder(mock.NewMockSemanticExtractor(), &memIndex{},
			WithPoolSize(4),
			WithPoolSize(0),
			WithLogger(nil),
			WithExtensions(".go"))
		require.NoError(t, err)
		defer b.Release()
		assert.Equal(t, 1, b.pool.Cap())
	})

	t.Run("nil extractor", func(t *testing.T) {
		_, err := NewBuilder(nil, &memIndex{})
		assert.Equal(t, ErrSemanticExtractorRequired, err)
	})

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewBuilder(mock.NewMockSemanticExtractor(), nil)
		assert.Equal(t, ErrIndexRepositoryRequired, err)
	})
}

func TestBuild_Records(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/auth.js":    "// keywords: auth login token\nfunction login() {}\nconst logout = () => {}\n",
		"src/session.js": "// keywords: auth login\nclass Session {}\n",
		"billing.py":     "// keywords: auth invoice\ndef charge(): pass\n",
	})

	extractor := keywordsByMarker()
	b := newTestBuilder(t, extractor)

	records, err := b.Build(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "billing.py", records[0].Path)
	assert.Equal(t, "src/auth.js", records[1].Path)
	assert.Equal(t, "src/session.js", records[2].Path)

	auth := records[1]
	assert.Equal(t, []string{"auth", "login", "token"}, auth.Keywords)
	assert.Equal(t, auth.Semantic.Keywords, auth.Keywords)
	assert.Equal(t, []string{"does things"}, auth.Semantic.Capabilities)
	assert.Equal(t, []string{"login", "logout"}, auth.Functions)
	assert.Equal(t, []string{"src/session.js"}, auth.RelatedFiles)
	assert.Len(t, auth.Digest, 64)

	assert.Equal(t, []string{"charge"}, records[0].Functions)
	assert.Empty(t, records[0].RelatedFiles)
	assert.Equal(t, []string{"src/auth.js"}, records[2].RelatedFiles)

	assert.Equal(t, 3, extractor.CallCount())
	for _, mode := range extractor.Modes() {
		assert.Equal(t, ai.ModeFull, mode)
	}
}

func TestBuild_KeywordsAreACopy(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.js": "// keywords: one two"})

	b := newTestBuilder(t, keywordsByMarker())
	records, err := b.Build(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, records, 1)

	records[0].Keywords[0] = "changed"
	assert.Equal(t, "one", records[0].Semantic.Keywords[0])
}

func TestBuild_PoolPreservesWalkOrder(t *testing.T) {
	root := t.TempDir()
	files := make(map[string]string)
	for i := range 20 {
		files[fmt.Sprintf("f%02d.js", i)] = fmt.Sprintf("// keywords: k%d\nfunction f%d() {}", i, i)
	}
	writeTree(t, root, files)

	extractor := keywordsByMarker()
	inner := extractor.ExtractFunc
	extractor.ExtractFunc = func(ctx context.Context, text string, mode ai.Mode) (core.SemanticMetadata, error) {
		// later files finish first
		time.Sleep(time.Duration(len(text)%7) * time.Millisecond)
		return inner(ctx, text, mode)
	}

	b := newTestBuilder(t, extractor, WithPoolSize(4))
	records, err := b.Build(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, records, 20)

	for i, record := range records {
		assert.Equal(t, fmt.Sprintf("f%02d.js", i), record.Path)
		assert.Equal(t, []string{fmt.Sprintf("f%d", i)}, record.Functions)
	}
}

func TestBuild_MalformedResponseFallsBack(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.js": "function a() {}"})

	extractor := mock.NewMockSemanticExtractor().Respond("I could not analyze this file, sorry.")
	b := newTestBuilder(t, extractor)

	records, err := b.Build(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.True(t, records[0].Semantic.IsEmpty())
	assert.Equal(t, []string{}, records[0].Keywords)
	assert.Equal(t, []string{"a"}, records[0].Functions)
}

func TestBuild_NonFatalErrorDegradesFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"bad.js":  "// keywords: x y\nfunction bad() {}",
		"good.js": "// keywords: x y\nfunction good() {}",
	})

	extractor := keywordsByMarker()
	inner := extractor.ExtractFunc
	extractor.ExtractFunc = func(ctx context.Context, text string, mode ai.Mode) (core.SemanticMetadata, error) {
		if strings.Contains(text, "bad") {
			return core.SemanticMetadata{}, errors.New("unexpected reply")
		}
		return inner(ctx, text, mode)
	}

	monitor := &recordingMonitor{}
	b := newTestBuilder(t, extractor)
	records, err := b.BuildWithMonitor(context.Background(), root, monitor)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{}, records[0].Keywords)
	assert.Equal(t, []string{"bad"}, records[0].Functions)
	assert.Empty(t, records[0].RelatedFiles)
	assert.Equal(t, []string{"x", "y"}, records[1].Keywords)

	assert.Equal(t, []string{"bad.js"}, monitor.degraded)
	assert.Equal(t, []string{"good.js"}, monitor.indexed)
}

func TestBuild_FatalErrorsAbort(t *testing.T) {
	for _, sentinel := range []error{ai.ErrTransport, ai.ErrMissingCredential, ai.ErrMissingConfig} {
		t.Run(sentinel.Error(), func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, map[string]string{"a.js": "a", "b.js": "b"})

			extractor := mock.NewMockSemanticExtractor()
			extractor.ExtractFunc = func(context.Context, string, ai.Mode) (core.SemanticMetadata, error) {
				return core.SemanticMetadata{}, fmt.Errorf("%w: connection refused", sentinel)
			}
			repo := &memIndex{}
			b, err := NewBuilder(extractor, repo)
			require.NoError(t, err)
			defer b.Release()

			records, err := b.Index(context.Background(), root, nil)
			assert.ErrorIs(t, err, sentinel)
			assert.Nil(t, records)
			assert.Equal(t, 1, extractor.CallCount(), "run stops at the first fatal error")
			assert.Zero(t, repo.saves, "a failed run must not replace the index")
		})
	}
}

func TestBuild_BlankFileSkipsExtraction(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"empty.js": "  \n\t"})

	extractor := mock.NewMockSemanticExtractor()
	b := newTestBuilder(t, extractor)

	records, err := b.Build(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Zero(t, extractor.CallCount())
	assert.Equal(t, []string{}, records[0].Keywords)
	assert.Equal(t, []string{}, records[0].Functions)
}

func TestBuild_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.js": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	extractor := mock.NewMockSemanticExtractor()
	b := newTestBuilder(t, extractor)
	_, err := b.Build(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, extractor.CallCount())
}

func TestBuild_CancelledMidRun(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.js": "a", "b.js": "b", "c.js": "c"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	extractor := mock.NewMockSemanticExtractor()
	extractor.ExtractFunc = func(ctx context.Context, _ string, _ ai.Mode) (core.SemanticMetadata, error) {
		cancel()
		return core.SemanticMetadata{}, ctx.Err()
	}
	b := newTestBuilder(t, extractor)

	_, err := b.Build(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, extractor.CallCount())
}

func TestBuild_EmptyProject(t *testing.T) {
	monitor := &recordingMonitor{}
	b := newTestBuilder(t, mock.NewMockSemanticExtractor())

	records, err := b.BuildWithMonitor(context.Background(), t.TempDir(), monitor)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, monitor.files)
	assert.NotEmpty(t, monitor.run)
}

func TestIndex_SavesSnapshot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.js": "// keywords: auth login\nfunction a() {}",
		"b.js": "// keywords: auth login\nfunction b() {}",
	})

	repo := &memIndex{}
	b, err := NewBuilder(keywordsByMarker(), repo)
	require.NoError(t, err)
	defer b.Release()

	monitor := &recordingMonitor{}
	records, err := b.Index(context.Background(), root, monitor)
	require.NoError(t, err)

	saved, err := repo.LoadIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, records, saved)
	assert.Equal(t, 1, repo.saves)
	assert.Equal(t, 2, monitor.files)
	assert.Equal(t, 2, monitor.finished)
	assert.ElementsMatch(t, []string{"a.js", "b.js"}, monitor.indexed)

	// rerunning replaces the snapshot wholesale
	writeTree(t, root, map[string]string{"c.js": "// keywords: other\n"})
	records, err = b.Index(context.Background(), root, nil)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, 2, repo.saves)
}
