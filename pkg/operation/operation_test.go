// Copyright 2025 walteh LLC
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

package operation

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/replacio/pkg/config"
	"github.com/walteh/replacio/pkg/log"
	"github.com/walteh/replacio/pkg/status"
	"github.com/walteh/replacio/pkg/text"
)

const poem = "Rust:\nsafe, fast, productive.\nPick three.\nDuct tape.\n"

// 🌳 setupTree writes a small fixture tree and returns its root
func setupTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string][]byte{
		"a.txt":     []byte(poem),
		"bin.dat":   {0xff, 0xfe, 0x00, 'd', 'u', 'c', 't'},
		"c.txt":     []byte("nothing here\n"),
		"sub/b.txt": []byte("duct duct\n"),
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, content, 0o644))
	}
	return root
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func testSettings(root string, dry bool) *config.Settings {
	return &config.Settings{
		Directory: root,
		Search: text.SearchConfig{
			Query:       "duct",
			Replacement: "Grape",
			IgnoreCase:  true,
			DryRun:      dry,
		},
	}
}

type harness struct {
	ctx     context.Context
	console *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	zlog := zerolog.New(zerolog.NewTestWriter(t))
	console := &bytes.Buffer{}
	logger := log.New(console, zlog)
	return &harness{
		ctx:     log.NewContext(zlog.WithContext(context.Background()), logger),
		console: console,
	}
}

func (h *harness) run(t *testing.T, settings *config.Settings, store Store) *Summary {
	t.Helper()
	if store == nil {
		store = status.New(zerolog.Ctx(h.ctx))
	}
	op, err := New(Options{Settings: settings, Store: store})
	require.NoError(t, err)

	summary, err := op.Run(h.ctx)
	require.NoError(t, err)
	return summary
}

func TestNew(t *testing.T) {
	store := status.New(nil)

	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{
			name: "missing_settings",
			opts: Options{Store: store},
		},
		{
			name: "missing_store",
			opts: Options{Settings: testSettings(".", false)},
		},
		{
			name: "empty_query",
			opts: Options{
				Settings: &config.Settings{Directory: ".", Search: text.SearchConfig{Replacement: "x"}},
				Store:    store,
			},
			wantErr: text.ErrEmptyQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := New(tt.opts)
			require.Error(t, err)
			assert.Nil(t, op)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRunReplace(t *testing.T) {
	root := setupTree(t)
	h := newHarness(t)

	summary := h.run(t, testSettings(root, false), nil)

	assert.Equal(t, log.ModeReplace, summary.Mode)
	assert.Equal(t, 2, summary.Updated)
	assert.Equal(t, 1, summary.Unchanged)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 2, summary.Reported())

	assert.Equal(t, "Rust:\nsafe, fast, proGrapeive.\nPick three.\nGrape tape.\n", readFile(t, filepath.Join(root, "a.txt")))
	assert.Equal(t, "Grape Grape\n", readFile(t, filepath.Join(root, "sub", "b.txt")))
	assert.Equal(t, "nothing here\n", readFile(t, filepath.Join(root, "c.txt")))

	paths := make([]string, 0, len(summary.Files))
	for _, f := range summary.Files {
		rel, err := filepath.Rel(root, f.Path)
		require.NoError(t, err)
		paths = append(paths, filepath.ToSlash(rel))
	}
	assert.Equal(t, []string{"a.txt", "bin.dat", "c.txt", "sub/b.txt"}, paths)

	out := h.console.String()
	assert.Contains(t, out, `Matches in "`+filepath.Join(root, "a.txt")+`":`)
	assert.Contains(t, out, `- "safe, fast, productive."`)
	assert.Contains(t, out, `- "Duct tape."`)
	assert.NotContains(t, out, "Pick three.")
	assert.Contains(t, out, "Updated 2 files")
}

func TestSummaryComesFromStore(t *testing.T) {
	root := setupTree(t)
	h := newHarness(t)

	store := status.New(nil)
	summary := h.run(t, testSettings(root, false), store)

	assert.Equal(t, store.ListFiles(h.ctx), summary.Files)
	assert.True(t, summary.HasProblems(), "bin.dat is skipped")
	assert.Equal(t, "4 visited: 1 unchanged, 0 matched, 2 updated, 1 skipped, 0 failed", summary.Breakdown())
}

func TestRunWithoutConsoleLoggerPanics(t *testing.T) {
	root := setupTree(t)
	op, err := New(Options{Settings: testSettings(root, true), Store: status.New(nil)})
	require.NoError(t, err)

	assert.Panics(t, func() {
		_, _ = op.Run(context.Background())
	})
}

func TestRunCaseSensitive(t *testing.T) {
	root := setupTree(t)
	h := newHarness(t)

	settings := testSettings(root, false)
	settings.Search.IgnoreCase = false
	summary := h.run(t, settings, nil)

	assert.Equal(t, 2, summary.Updated)
	assert.Equal(t, "Rust:\nsafe, fast, proGrapeive.\nPick three.\nDuct tape.\n", readFile(t, filepath.Join(root, "a.txt")))
}

func TestRunDryRunNeverWrites(t *testing.T) {
	root := setupTree(t)
	h := newHarness(t)

	before := map[string]string{}
	for _, name := range []string{"a.txt", "c.txt", filepath.Join("sub", "b.txt")} {
		before[name] = readFile(t, filepath.Join(root, name))
	}

	summary := h.run(t, testSettings(root, true), nil)

	assert.Equal(t, log.ModeDryRun, summary.Mode)
	assert.Equal(t, 2, summary.Matched)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 2, summary.Reported())

	for name, content := range before {
		assert.Equal(t, content, readFile(t, filepath.Join(root, name)), "%s must not change", name)
	}
	assert.Contains(t, h.console.String(), "Found matches in 2 files")
}

func TestDryRunReportsSameLinesAsReplace(t *testing.T) {
	reportedLines := func(t *testing.T, dry bool) []string {
		root := setupTree(t)
		h := newHarness(t)
		h.run(t, testSettings(root, dry), nil)

		var lines []string
		for _, line := range strings.Split(h.console.String(), "\n") {
			if strings.HasPrefix(line, "Matches in ") || strings.HasPrefix(line, "- ") {
				lines = append(lines, strings.ReplaceAll(line, root, "ROOT"))
			}
		}
		return lines
	}

	dry := reportedLines(t, true)
	replace := reportedLines(t, false)

	require.NotEmpty(t, dry)
	assert.Equal(t, dry, replace)
}

func TestRunOptions(t *testing.T) {
	t.Run("backup", func(t *testing.T) {
		root := setupTree(t)
		h := newHarness(t)

		settings := testSettings(root, false)
		settings.Backup = true
		h.run(t, settings, nil)

		assert.Equal(t, poem, readFile(t, filepath.Join(root, "a.txt.bak")))
		assert.Equal(t, "duct duct\n", readFile(t, filepath.Join(root, "sub", "b.txt.bak")))
		_, err := os.Stat(filepath.Join(root, "c.txt.bak"))
		assert.True(t, os.IsNotExist(err), "unchanged files get no backup")
	})

	t.Run("diff", func(t *testing.T) {
		root := setupTree(t)
		h := newHarness(t)

		settings := testSettings(root, false)
		settings.ShowDiff = true
		h.run(t, settings, nil)

		out := h.console.String()
		assert.Contains(t, out, "--- "+filepath.Join(root, "sub", "b.txt"))
		assert.Contains(t, out, "{+")
		assert.Contains(t, out, "[-")
	})

	t.Run("line_numbers", func(t *testing.T) {
		root := setupTree(t)
		h := newHarness(t)

		settings := testSettings(root, true)
		settings.LineNumbers = true
		h.run(t, settings, nil)

		out := h.console.String()
		assert.Contains(t, out, `- 2: "safe, fast, productive."`)
		assert.Contains(t, out, `- 4: "Duct tape."`)
	})

	t.Run("include", func(t *testing.T) {
		root := setupTree(t)
		h := newHarness(t)

		settings := testSettings(root, false)
		settings.Include = []string{"sub/**"}
		summary := h.run(t, settings, nil)

		assert.Equal(t, 1, summary.Updated)
		assert.Len(t, summary.Files, 1)
		assert.Equal(t, poem, readFile(t, filepath.Join(root, "a.txt")))
	})

	t.Run("exclude", func(t *testing.T) {
		root := setupTree(t)
		h := newHarness(t)

		settings := testSettings(root, false)
		settings.Exclude = []string{"sub"}
		summary := h.run(t, settings, nil)

		assert.Equal(t, 1, summary.Updated)
		assert.Equal(t, "duct duct\n", readFile(t, filepath.Join(root, "sub", "b.txt")))
	})
}

func TestRunMissingDirectory(t *testing.T) {
	h := newHarness(t)

	summary := h.run(t, testSettings(filepath.Join(t.TempDir(), "missing"), false), nil)

	assert.Empty(t, summary.Files)
	assert.Equal(t, 0, summary.Reported())
	out := h.console.String()
	assert.Contains(t, out, "⚠️")
	assert.Contains(t, out, "Updated 0 files")
}

// 🔧 failingStore fails writes for the paths it is told to
type failingStore struct {
	*status.Manager
	mock.Mock
}

func (s *failingStore) WriteFileAtomic(ctx context.Context, path string, content string) error {
	args := s.Called(ctx, path, content)
	if err := args.Error(0); err != nil {
		return err
	}
	return s.Manager.WriteFileAtomic(ctx, path, content)
}

func TestRunWriteFailureIsIsolated(t *testing.T) {
	root := setupTree(t)
	h := newHarness(t)

	aPath := filepath.Join(root, "a.txt")
	bPath := filepath.Join(root, "sub", "b.txt")

	store := &failingStore{Manager: status.New(nil)}
	store.On("WriteFileAtomic", mock.Anything, aPath, mock.Anything).Return(errors.New("disk full"))
	store.On("WriteFileAtomic", mock.Anything, bPath, mock.Anything).Return(nil)

	summary := h.run(t, testSettings(root, false), store)
	store.AssertExpectations(t)

	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 1, summary.Reported())

	require.NotEmpty(t, summary.Files)
	info := summary.Files[0]
	require.Equal(t, aPath, info.Path)
	assert.Equal(t, status.StatusFailed, info.Status)
	assert.Equal(t, 2, info.Matches)
	require.Error(t, info.Error)
	assert.Contains(t, info.Error.Error(), "disk full")

	assert.Equal(t, poem, readFile(t, aPath), "failed write leaves original content")
	assert.Equal(t, "Grape Grape\n", readFile(t, bPath))

	out := h.console.String()
	assert.Contains(t, out, `Matches in "`+aPath+`":`, "matches are reported even when the write fails")
	assert.Contains(t, out, "❌")
}

type listerFunc func(ctx context.Context, root string) ([]string, error)

func (f listerFunc) List(ctx context.Context, root string) ([]string, error) {
	return f(ctx, root)
}

func TestRunCancelledBetweenFiles(t *testing.T) {
	root := setupTree(t)
	h := newHarness(t)

	ctx, cancel := context.WithCancel(h.ctx)
	files := []string{filepath.Join(root, "a.txt"), filepath.Join(root, "c.txt")}

	store := status.New(nil)
	op, err := New(Options{
		Settings: testSettings(root, false),
		Store:    store,
		Lister: listerFunc(func(ctx context.Context, root string) ([]string, error) {
			cancel()
			return files, nil
		}),
	})
	require.NoError(t, err)

	summary, err := op.Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	require.NotNil(t, summary)
	assert.Empty(t, summary.Files)
	assert.Equal(t, poem, readFile(t, files[0]))
}

func TestRenderDiff(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name   string
		before string
		after  string
		want   string
	}{
		{
			name:   "single_word",
			before: "hello world",
			after:  "hello there",
			want:   "hello [-world-]{+there+}",
		},
		{
			name:   "identical",
			before: "same",
			after:  "same",
			want:   "same",
		},
		{
			name:   "elision_keeps_whole_runes",
			before: strings.Repeat("€", 20) + "X",
			after:  strings.Repeat("€", 20) + "Y",
			want:   "…" + strings.Repeat("€", 7) + "[-X-]{+Y+}",
		},
		{
			name:   "long_context_is_elided",
			before: strings.Repeat("a", 50) + "X" + strings.Repeat("b", 50),
			after:  strings.Repeat("a", 50) + "Y" + strings.Repeat("b", 50),
			want:   "…" + strings.Repeat("a", 20) + "[-X-]{+Y+}" + strings.Repeat("b", 20) + "…",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderDiff(tt.before, tt.after))
		})
	}
}
