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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/replacio/pkg/log"
	"github.com/walteh/replacio/pkg/status"
	"github.com/walteh/replacio/pkg/walk"
)

// 🏃 Run visits every file under the configured directory, one at a time.
// Per-file failures are recorded in the summary and never abort the run;
// cancellation is honored between files.
func (o *operator) Run(ctx context.Context) (*Summary, error) {
	logger := zerolog.Ctx(ctx)
	out := log.FromContext(ctx)
	mode := o.mode()

	files, err := o.lister.List(ctx, o.settings.Directory)
	if err != nil {
		if !errors.Is(err, walk.ErrNotDirectory) {
			return nil, errors.Errorf("listing files: %w", err)
		}
		out.Warningf("%s is not a readable directory", o.settings.Directory)
		logger.Debug().Err(err).Str("path", o.settings.Directory).Msg("nothing to visit")
	}

	logger.Debug().
		Str("query", o.settings.Search.Query).
		Int("count", len(files)).
		Str("mode", mode.String()).
		Msg("starting run")

	o.store.StartOperation(ctx, len(files))

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			o.store.FinishOperation(ctx)
			return o.summarize(ctx, mode), errors.Errorf("run cancelled after %d files: %w", i, err)
		}

		o.store.TrackFile(ctx, o.processFile(ctx, out, path))

		o.store.UpdateProgress(ctx, i+1)
	}

	o.store.FinishOperation(ctx)

	summary := o.summarize(ctx, mode)
	out.LogNewline()
	out.Summary(ctx, mode, summary.Reported())

	return summary, nil
}

// 🔄 processFile applies the engine to one file and returns its outcome
func (o *operator) processFile(ctx context.Context, out *log.Logger, path string) status.FileInfo {
	logger := zerolog.Ctx(ctx).With().Str("path", path).Logger()
	info := status.FileInfo{Path: path}

	content, err := o.store.ReadText(ctx, path)
	if err != nil {
		info.Status = status.StatusSkipped
		info.Error = err
		if errors.Is(err, status.ErrNotText) {
			logger.Debug().Err(err).Msg("skipping non-text file")
		} else {
			out.Warningf("skipping %s: %v", path, err)
		}
		return info
	}

	// lines are always reported from the original content
	lines := o.engine.Search(content)
	info.Matches = len(lines)
	out.FileMatches(ctx, path, lines, o.settings.LineNumbers)

	if o.settings.Search.DryRun {
		if len(lines) > 0 {
			info.Status = status.StatusMatched
		} else {
			info.Status = status.StatusUnchanged
		}
		return info
	}

	result := o.engine.Replace(content)
	if !result.Changed {
		info.Status = status.StatusUnchanged
		return info
	}
	info.Replacements = result.Count

	if o.settings.Backup {
		if err := o.store.BackupFile(ctx, path); err != nil {
			info.Status = status.StatusFailed
			info.Error = errors.Errorf("backing up: %w", err)
			out.Errorf("failed to back up %s: %v", path, err)
			return info
		}
	}

	if err := o.store.WriteFileAtomic(ctx, path, result.Text); err != nil {
		info.Status = status.StatusFailed
		info.Error = errors.Errorf("writing: %w", err)
		out.Errorf("failed to write %s: %v", path, err)
		return info
	}

	info.Status = status.StatusUpdated
	logger.Debug().Int("count", result.Count).Msg("file updated")
	out.FileUpdated(ctx, path, result.Count)

	if o.settings.ShowDiff {
		out.Diff(ctx, path, renderDiff(content, result.Text))
	}

	return info
}
