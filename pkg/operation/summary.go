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
	"fmt"

	"github.com/walteh/replacio/pkg/log"
	"github.com/walteh/replacio/pkg/status"
)

// 📊 Summary is the outcome of one run
type Summary struct {
	Mode  log.Mode
	Files []status.FileInfo // in visit order

	Unchanged int
	Matched   int
	Updated   int
	Skipped   int
	Failed    int
}

// summarize reads the tracked outcomes back from the store
func (o *operator) summarize(ctx context.Context, mode log.Mode) *Summary {
	counts := o.store.Counts(ctx)
	return &Summary{
		Mode:      mode,
		Files:     o.store.ListFiles(ctx),
		Unchanged: counts[status.StatusUnchanged],
		Matched:   counts[status.StatusMatched],
		Updated:   counts[status.StatusUpdated],
		Skipped:   counts[status.StatusSkipped],
		Failed:    counts[status.StatusFailed],
	}
}

// Reported is the number printed in the final summary line: files rewritten in
// replace mode, files with at least one match in a dry run.
func (s *Summary) Reported() int {
	if s.Mode == log.ModeDryRun {
		return s.Matched
	}
	return s.Updated
}

// HasProblems reports whether any file was skipped or failed
func (s *Summary) HasProblems() bool {
	return s.Skipped > 0 || s.Failed > 0
}

// Breakdown renders the per-status counts on one line
func (s *Summary) Breakdown() string {
	return fmt.Sprintf("%d visited: %d unchanged, %d matched, %d updated, %d skipped, %d failed",
		len(s.Files), s.Unchanged, s.Matched, s.Updated, s.Skipped, s.Failed)
}
