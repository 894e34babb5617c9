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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/walteh/replacio/pkg/text"
)

// 🎯 Mode selects the wording of a run summary
type Mode int

const (
	ModeReplace Mode = iota // files were rewritten
	ModeDryRun              // files were only searched
)

// String returns a string representation of Mode
func (m Mode) String() string {
	if m == ModeDryRun {
		return "dry-run"
	}
	return "replace"
}

// 🎯 Logger prints run events to the console and mirrors them to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger. Console events are mirrored to zlog at debug level.
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatMatchLine formats one reported line, optionally with its number.
// The line is wrapped in double quotes verbatim, without escaping.
func formatMatchLine(line text.MatchLine, lineNumbers bool) string {
	quoted := `"` + line.Text + `"`
	if lineNumbers {
		return fmt.Sprintf("- %s: %s",
			color.New(color.FgYellow).Sprint(line.Number),
			quoted)
	}
	return "- " + quoted
}

// 🔍 FileMatches prints the matching lines of one file
func (l *Logger) FileMatches(ctx context.Context, path string, lines []text.MatchLine, lineNumbers bool) {
	if len(lines) == 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "Matches in %s:\n", color.New(color.FgCyan).Sprint(`"`+path+`"`))
	for _, line := range lines {
		fmt.Fprintln(l.console, formatMatchLine(line, lineNumbers))
	}

	l.zlog.Debug().
		Str("path", path).
		Int("count", len(lines)).
		Msg("matches found")
}

// 📝 FileUpdated prints that a file was rewritten
func (l *Logger) FileUpdated(ctx context.Context, path string, replacements int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s %s %s\n",
		color.New(color.FgBlue).Sprint("⟳"),
		path,
		color.New(color.Faint).Sprintf("(%d replaced)", replacements))

	l.zlog.Debug().
		Str("path", path).
		Int("count", replacements).
		Msg("file updated")
}

// 📝 Diff prints a rendered diff of an updated file
func (l *Logger) Diff(ctx context.Context, path string, rendered string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s %s\n", color.New(color.Faint).Sprint("---"), path)
	fmt.Fprintln(l.console, rendered)
}

// 📊 Summary prints the final count of a run
func (l *Logger) Summary(ctx context.Context, mode Mode, n int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var msg string
	switch mode {
	case ModeDryRun:
		msg = fmt.Sprintf("Found matches in %d files", n)
	default:
		msg = fmt.Sprintf("Updated %d files", n)
	}

	fmt.Fprintln(l.console, color.New(color.Bold).Sprint(msg))

	l.zlog.Debug().
		Str("mode", mode.String()).
		Int("count", n).
		Msg(msg)
}

// 📦 Banner prints the run parameters before any file is visited
func (l *Logger) Banner(dir, query, replacement string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows := []struct {
		prefix string
		label  string
		value  string
	}{
		{"📁", "From directory", dir},
		{"🔍", "Searching for", query},
		{"✏️", "Replacing with", replacement},
	}

	for _, row := range rows {
		printer := pterm.Info.
			WithPrefix(pterm.Prefix{Text: row.prefix, Style: pterm.Info.Prefix.Style}).
			WithWriter(l.console)
		printer.Printfln("%s \"%s\"", row.label, row.value)
	}

	l.zlog.Debug().
		Str("directory", dir).
		Str("query", query).
		Str("replacement", replacement).
		Msg("starting run")
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}
