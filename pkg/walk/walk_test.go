package walk

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

// 🧪 createTree writes files (slash separated, relative to a temp root) and returns the root
func createTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(f), 0644))
	}
	return root
}

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestList(t *testing.T) {
	tree := []string{
		"b.txt",
		"a/z.txt",
		"a/deep/er/file.md",
		"a/b.txt",
		"c/.hidden",
		"vendor/lib.go",
		"main.go",
	}

	tests := []struct {
		name string
		opts []Option
		want []string
	}{
		{
			name: "everything_in_preorder",
			want: []string{
				"a/b.txt",
				"a/deep/er/file.md",
				"a/z.txt",
				"b.txt",
				"c/.hidden",
				"main.go",
				"vendor/lib.go",
			},
		},
		{
			name: "include",
			opts: []Option{WithInclude("**/*.txt")},
			want: []string{"a/b.txt", "a/z.txt", "b.txt"},
		},
		{
			name: "exclude_prunes_directories",
			opts: []Option{WithExclude("vendor", "a/deep")},
			want: []string{"a/b.txt", "a/z.txt", "b.txt", "c/.hidden", "main.go"},
		},
		{
			name: "include_and_exclude",
			opts: []Option{WithInclude("**/*.go", "**/*.md"), WithExclude("vendor/**")},
			want: []string{"a/deep/er/file.md", "main.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := createTree(t, tree...)

			files, err := New(tt.opts...).List(testContext(t), root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rel(t, root, files))
		})
	}
}

func TestListEmptyDirectory(t *testing.T) {
	files, err := New().List(testContext(t), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.NotNil(t, files)
}

func TestListNotDirectory(t *testing.T) {
	root := createTree(t, "file.txt")

	tests := []struct {
		name string
		path string
	}{
		{name: "missing", path: filepath.Join(root, "nope")},
		{name: "regular_file", path: filepath.Join(root, "file.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := New().List(testContext(t), tt.path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNotDirectory))
			assert.Empty(t, files)
		})
	}
}

func TestListDeepTree(t *testing.T) {
	parts := make([]string, 0, 200)
	for i := 0; i < 200; i++ {
		parts = append(parts, "d")
	}
	deep := filepath.ToSlash(filepath.Join(parts...)) + "/leaf.txt"
	root := createTree(t, deep)

	files, err := New().List(testContext(t), root)
	require.NoError(t, err)
	assert.Equal(t, []string{deep}, rel(t, root, files))
}

func TestListDoesNotFollowSymlinkedDirectories(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	root := createTree(t, "real/file.txt")
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "loop")))

	files, err := New().List(testContext(t), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"loop", "real/file.txt"}, rel(t, root, files))
}

func TestListCancelled(t *testing.T) {
	root := createTree(t, "a.txt", "b/c.txt")
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	_, err := New().List(ctx, root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
