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

package status

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// 📊 FileStatus represents what a run did to one file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusUnchanged            // File was read but holds no occurrence
	StatusMatched              // File holds occurrences, nothing was written
	StatusUpdated              // File was rewritten with the replacement
	StatusSkipped              // File could not be read or is not text
	StatusFailed               // File could not be written back
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusMatched:
		return "matched"
	case StatusUpdated:
		return "updated"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 FileInfo records the outcome for one file
type FileInfo struct {
	Path         string     // Path as listed by the walker
	Status       FileStatus // Outcome
	Matches      int        // Number of matching lines
	Replacements int        // Number of substituted occurrences
	Error        error      // Any error associated with this file
}

// 📈 StatusReporter tracks file outcomes and reports progress
type StatusReporter interface {
	// Status tracking
	TrackFile(ctx context.Context, info FileInfo)
	ListFiles(ctx context.Context) []FileInfo
	Counts(ctx context.Context) map[FileStatus]int

	// Progress reporting
	StartOperation(ctx context.Context, total int)
	UpdateProgress(ctx context.Context, processed int)
	FinishOperation(ctx context.Context)
}

// 💾 FileManager reads and writes the files of a run
type FileManager interface {
	ReadText(ctx context.Context, path string) (string, error)
	WriteFileAtomic(ctx context.Context, path string, content string) error
	BackupFile(ctx context.Context, path string) error
}

var (
	_ StatusReporter = (*Manager)(nil)
	_ FileManager    = (*Manager)(nil)
)

// 🔧 Manager implements both FileManager and StatusReporter
type Manager struct {
	logger    *zerolog.Logger // Logger for status updates
	formatter FileFormatter   // Formatter for status messages

	// Status tracking
	mu    sync.RWMutex
	files map[string]FileInfo
	order []string

	// Progress tracking
	total     int
	processed int
}

// 🏭 New creates a new status manager
func New(logger *zerolog.Logger) *Manager {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Manager{
		logger:    logger,
		formatter: NewDefaultFileFormatter(),
		files:     make(map[string]FileInfo),
	}
}

// StatusReporter interface implementation

func (m *Manager) TrackFile(ctx context.Context, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[info.Path]; !ok {
		m.order = append(m.order, info.Path)
	}
	m.files[info.Path] = info

	msg := m.formatter.FormatFileOperation(info)
	if info.Error != nil {
		m.logger.Debug().
			Str("path", info.Path).
			Str("status", info.Status.String()).
			Msg(msg + " " + m.formatter.FormatError(info.Error))
		return
	}
	m.logger.Debug().
		Str("path", info.Path).
		Str("status", info.Status.String()).
		Int("matches", info.Matches).
		Int("replacements", info.Replacements).
		Msg(msg)
}

// ListFiles returns tracked files in the order they were first tracked
func (m *Manager) ListFiles(ctx context.Context) []FileInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]FileInfo, 0, len(m.order))
	for _, path := range m.order {
		files = append(files, m.files[path])
	}
	return files
}

// Counts returns the number of tracked files per status
func (m *Manager) Counts(ctx context.Context) map[FileStatus]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[FileStatus]int)
	for _, info := range m.files {
		counts[info.Status]++
	}
	return counts
}

func (m *Manager) StartOperation(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total = total
	m.processed = 0
	msg := m.formatter.FormatProgress(0, total)
	m.logger.Debug().Int("total", total).Msg(msg)
}

func (m *Manager) UpdateProgress(ctx context.Context, processed int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed = processed
	msg := m.formatter.FormatProgress(processed, m.total)
	m.logger.Trace().
		Int("processed", processed).
		Int("total", m.total).
		Msg(msg)
}

func (m *Manager) FinishOperation(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg := m.formatter.FormatProgress(m.processed, m.total)
	m.logger.Debug().
		Int("processed", m.processed).
		Int("total", m.total).
		Msg(msg)
}
