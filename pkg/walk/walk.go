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

// Package walk enumerates the files under a root directory.
package walk

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrNotDirectory is reported when the root is missing or is not a directory.
// List still returns an empty, usable listing alongside it.
var ErrNotDirectory = errors.Base("not a directory")

// 🔧 Option configures a Walker
type Option func(*Walker)

// WithInclude keeps only files whose root-relative path matches one of the patterns
func WithInclude(patterns ...string) Option {
	return func(w *Walker) {
		w.include = append(w.include, patterns...)
	}
}

// WithExclude prunes files and directories whose root-relative path matches one of the patterns
func WithExclude(patterns ...string) Option {
	return func(w *Walker) {
		w.exclude = append(w.exclude, patterns...)
	}
}

// 🚶 Walker lists files below a root with an explicit work stack instead of recursion,
// so tree depth never grows the call stack.
type Walker struct {
	include []string
	exclude []string
}

// 🏭 New creates a new walker
func New(opts ...Option) *Walker {
	w := &Walker{}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

type entry struct {
	path string
	rel  string // slash separated, relative to the root
	dir  bool
}

// 📂 List returns every non-directory entry below root, in the order a depth-first
// recursive listing would produce with entries sorted by name. Symlinks are listed
// as files and never descended. Subdirectories that cannot be read are skipped.
func (w *Walker) List(ctx context.Context, root string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	files := []string{}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		logger.Debug().Str("root", root).Err(err).Msg("root is not a directory")
		return files, errors.Errorf("listing %s: %w", root, ErrNotDirectory)
	}

	var stack []entry
	stack = w.push(ctx, stack, entry{path: root, dir: true})

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return files, errors.Errorf("listing %s: %w", root, err)
		}

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.dir {
			stack = w.push(ctx, stack, top)
			continue
		}

		if !w.included(top.rel) {
			continue
		}
		files = append(files, top.path)
	}

	logger.Debug().Str("root", root).Int("files", len(files)).Msg("listed files")
	return files, nil
}

// push reads dir and pushes its entries in reverse name order, so they pop in name order.
func (w *Walker) push(ctx context.Context, stack []entry, dir entry) []entry {
	entries, err := os.ReadDir(dir.path)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Str("dir", dir.path).Err(err).Msg("skipping unreadable directory")
		return stack
	}

	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		rel := e.Name()
		if dir.rel != "" {
			rel = dir.rel + "/" + e.Name()
		}
		if w.excluded(ctx, rel) {
			continue
		}
		stack = append(stack, entry{
			path: filepath.Join(dir.path, e.Name()),
			rel:  rel,
			dir:  e.IsDir(),
		})
	}
	return stack
}

// 🔍 excluded checks if a path should be pruned
func (w *Walker) excluded(ctx context.Context, rel string) bool {
	for _, pattern := range w.exclude {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Debug().Str("path", rel).Str("pattern", pattern).Msg("path excluded by pattern")
			return true
		}
	}
	return false
}

func (w *Walker) included(rel string) bool {
	if len(w.include) == 0 {
		return true
	}
	for _, pattern := range w.include {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}
