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
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/replacio/pkg/config"
	"github.com/walteh/replacio/pkg/log"
	"github.com/walteh/replacio/pkg/status"
	"github.com/walteh/replacio/pkg/text"
	"github.com/walteh/replacio/pkg/walk"
)

// 🎯 Operator runs one search or replace pass over a directory tree
type Operator interface {
	Run(ctx context.Context) (*Summary, error)
}

// 💾 Store reads and writes files and remembers their outcome
type Store interface {
	status.FileManager
	status.StatusReporter
}

// 📂 Lister enumerates the files under a root directory
type Lister interface {
	List(ctx context.Context, root string) ([]string, error)
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Settings is the resolved run configuration
	Settings *config.Settings
	// Store handles file I/O and outcome tracking
	Store Store
	// Lister enumerates files, defaults to a walk.Walker using the settings' filters
	Lister Lister
}

// 🏭 New creates a new operator with the given options.
// Run reads its console sink from the context (log.NewContext).
func New(opts Options) (Operator, error) {
	if opts.Settings == nil {
		return nil, errors.Errorf("settings are required")
	}
	if opts.Store == nil {
		return nil, errors.Errorf("store is required")
	}

	engine, err := text.NewEngine(opts.Settings.Search)
	if err != nil {
		return nil, errors.Errorf("creating engine: %w", err)
	}

	lister := opts.Lister
	if lister == nil {
		lister = walk.New(
			walk.WithInclude(opts.Settings.Include...),
			walk.WithExclude(opts.Settings.Exclude...),
		)
	}

	return &operator{
		settings: opts.Settings,
		engine:   engine,
		store:    opts.Store,
		lister:   lister,
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	settings *config.Settings
	engine   *text.Engine
	store    Store
	lister   Lister
}

func (o *operator) mode() log.Mode {
	if o.settings.Search.DryRun {
		return log.ModeDryRun
	}
	return log.ModeReplace
}
