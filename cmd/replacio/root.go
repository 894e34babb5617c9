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

package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/term"

	"github.com/walteh/replacio/pkg/config"
	"github.com/walteh/replacio/pkg/log"
	"github.com/walteh/replacio/pkg/operation"
	"github.com/walteh/replacio/pkg/status"
)

// Words accepted after the three positional arguments
const (
	wordIgnoreCase = "ignore-case"
	wordDryRun     = "dry"
)

var ErrUnknownWord = errors.Base("unknown argument")

// 🧩 app holds the process dependencies of the command
type app struct {
	stdout    io.Writer
	stderr    io.Writer
	lookupEnv config.EnvLookup
	getwd     func() (string, error)
}

// 🚩 rootFlags holds the command line flags
type rootFlags struct {
	ignoreCase  bool
	dryRun      bool
	configFile  string
	include     []string
	exclude     []string
	backup      bool
	showDiff    bool
	lineNumbers bool
	debug       bool
}

// command builds the root command
func (a *app) command() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "replacio <directory> <query> <replacement> [ignore-case] [dry]",
		Short: "Search and replace text in every file under a directory",
		Long: `replacio walks a directory tree, prints every line containing the query and
replaces each occurrence with the replacement.

Options can also come from the environment (IGNORE_CASE, DRY) or from a
.replacio.{yaml,yml,hcl,json,toml} file. Flags win over the environment,
which wins over the config file.`,
		Example: `  replacio ./src duct Grape
  replacio ./src duct Grape ignore-case dry
  IGNORE_CASE=1 replacio ./src duct Grape --diff`,
		Args:          cobra.ArbitraryArgs,
		Version:       GetVersionInfo().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, flags, args)
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.SetVersionTemplate(FormatVersion())

	f := cmd.Flags()
	f.BoolVarP(&flags.ignoreCase, "ignore-case", "i", false, "match regardless of case")
	f.BoolVarP(&flags.dryRun, "dry", "n", false, "only report matches, never write")
	f.StringVarP(&flags.configFile, "config", "c", "", "config file path (default: .replacio.* in the working directory)")
	f.StringSliceVar(&flags.include, "include", nil, "only visit files matching these glob patterns")
	f.StringSliceVar(&flags.exclude, "exclude", nil, "skip files and directories matching these glob patterns")
	f.BoolVar(&flags.backup, "backup", false, "keep a .bak copy of every rewritten file")
	f.BoolVar(&flags.showDiff, "diff", false, "print a diff of every rewritten file")
	f.BoolVarP(&flags.lineNumbers, "line-number", "l", false, "prefix reported lines with their number")
	f.BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")

	return cmd
}

// 🏃 run resolves the configuration and drives one pass over the directory
func (a *app) run(cmd *cobra.Command, flags *rootFlags, args []string) error {
	ctx := a.setupLogging(cmd.Context(), flags.debug)
	logger := zerolog.Ctx(ctx)

	in, err := buildInput(cmd, flags, args)
	if err != nil {
		return err
	}

	file, err := a.loadConfigFile(ctx, flags.configFile)
	if err != nil {
		return err
	}

	settings, err := config.Resolve(in, file, a.lookupEnv)
	if err != nil {
		return errors.Errorf("resolving configuration: %w", err)
	}

	logger.Debug().
		Str("path", settings.Directory).
		Str("query", settings.Search.Query).
		Bool("ignore_case", settings.Search.IgnoreCase).
		Bool("dry_run", settings.Search.DryRun).
		Msg("configuration resolved")

	out := log.New(a.stdout, *logger)
	ctx = log.NewContext(ctx, out)

	out.Banner(settings.Directory, settings.Search.Query, settings.Search.Replacement)

	op, err := operation.New(operation.Options{
		Settings: settings,
		Store:    status.New(logger),
	})
	if err != nil {
		return errors.Errorf("creating operation: %w", err)
	}

	summary, err := op.Run(ctx)
	if err != nil {
		return errors.Errorf("running: %w", err)
	}

	if summary.HasProblems() || flags.debug {
		out.Info(summary.Breakdown())
	}

	return nil
}

// buildInput maps positional arguments, trailing words and flags to config.Input
func buildInput(cmd *cobra.Command, flags *rootFlags, args []string) (config.Input, error) {
	var in config.Input

	if len(args) > 0 {
		in.Directory = args[0]
	}
	if len(args) > 1 {
		in.Query = args[1]
	}
	if len(args) > 2 {
		replacement := args[2]
		in.Replacement = &replacement
	}

	if len(args) > 3 {
		for _, word := range args[3:] {
			switch strings.ToLower(word) {
			case wordIgnoreCase:
				in.IgnoreCase = config.SetBool(true)
			case wordDryRun:
				in.DryRun = config.SetBool(true)
			default:
				return config.Input{}, errors.Errorf("%q (expected %q or %q): %w", word, wordIgnoreCase, wordDryRun, ErrUnknownWord)
			}
		}
	}

	// explicit flags override the trailing words
	f := cmd.Flags()
	if f.Changed("ignore-case") {
		in.IgnoreCase = config.SetBool(flags.ignoreCase)
	}
	if f.Changed("dry") {
		in.DryRun = config.SetBool(flags.dryRun)
	}
	if f.Changed("backup") {
		in.Backup = config.SetBool(flags.backup)
	}
	if f.Changed("diff") {
		in.ShowDiff = config.SetBool(flags.showDiff)
	}
	if f.Changed("line-number") {
		in.LineNumbers = config.SetBool(flags.lineNumbers)
	}
	in.Include = flags.include
	in.Exclude = flags.exclude

	return in, nil
}

// 📄 loadConfigFile loads the explicit config file, or a discovered one, or nothing
func (a *app) loadConfigFile(ctx context.Context, path string) (*config.FileConfig, error) {
	logger := zerolog.Ctx(ctx)

	if path == "" {
		wd, err := a.getwd()
		if err != nil {
			return nil, errors.Errorf("getting working directory: %w", err)
		}
		found, ok := config.Discover(wd)
		if !ok {
			logger.Debug().Str("path", wd).Msg("no config file found")
			return nil, nil
		}
		path = found
	}

	logger.Debug().Str("path", path).Msg("loading config file")

	cfg, err := config.Load(ctx, path, a.lookupEnv)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// setupLogging attaches a zerolog logger to ctx. Structured logs only go to stderr
// with --debug; the console output of a run comes from pkg/log.
func (a *app) setupLogging(ctx context.Context, debug bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	if !isTerminal(a.stdout) {
		color.NoColor = true
		pterm.DisableStyling()
	}

	level := zerolog.Disabled
	if debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: a.stderr, NoColor: !isTerminal(a.stderr)}).
		Level(level).
		With().Timestamp().
		Logger()
	return logger.WithContext(ctx)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
