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

package config

import (
	"path/filepath"
	"strings"

	"github.com/walteh/replacio/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// Environment switches; presence of the variable enables the option.
const (
	EnvIgnoreCase = "IGNORE_CASE"
	EnvDryRun     = "DRY"
)

var (
	ErrMissingDirectory   = errors.Base("directory is required")
	ErrMissingQuery       = errors.Base("query is required")
	ErrMissingReplacement = errors.Base("replacement is required")
)

// EnvLookup reports the value of an environment variable and whether it is set
type EnvLookup func(key string) (string, bool)

// 🔘 OptionalBool is a boolean that remembers whether it was explicitly set
type OptionalBool struct {
	value bool
	set   bool
}

// SetBool returns an explicitly set OptionalBool
func SetBool(v bool) OptionalBool {
	return OptionalBool{value: v, set: true}
}

func (b OptionalBool) IsSet() bool { return b.set }
func (b OptionalBool) Value() bool { return b.value }

// 📥 Input is what the command line provides before resolution
type Input struct {
	Directory   string
	Query       string
	Replacement *string // nil when not given; an empty string is a valid replacement

	IgnoreCase  OptionalBool
	DryRun      OptionalBool
	Backup      OptionalBool
	ShowDiff    OptionalBool
	LineNumbers OptionalBool

	Include []string
	Exclude []string
}

// 📦 Settings is the resolved, read-only configuration of one run
type Settings struct {
	Directory   string
	Search      text.SearchConfig
	Include     []string
	Exclude     []string
	Backup      bool
	ShowDiff    bool
	LineNumbers bool
}

// 🧮 Resolve merges command line input, environment and an optional config file into
// Settings. Precedence for every option: explicit flag, then environment variable,
// then config file, then the zero value. Resolve has no side effects; env is only
// read through lookup, and a nil lookup means an empty environment.
func Resolve(in Input, file *FileConfig, lookup EnvLookup) (*Settings, error) {
	if file == nil {
		file = &FileConfig{}
	}
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}

	if strings.TrimSpace(in.Directory) == "" {
		return nil, errors.WithStack(ErrMissingDirectory)
	}
	if in.Query == "" {
		return nil, errors.WithStack(ErrMissingQuery)
	}
	if in.Replacement == nil {
		return nil, errors.WithStack(ErrMissingReplacement)
	}

	search, err := text.NewSearchConfig(
		in.Query,
		*in.Replacement,
		resolveBool(in.IgnoreCase, EnvIgnoreCase, file.IgnoreCase, lookup),
		resolveBool(in.DryRun, EnvDryRun, file.DryRun, lookup),
	)
	if err != nil {
		return nil, errors.Errorf("building search config: %w", err)
	}

	settings := &Settings{
		Directory:   filepath.Clean(in.Directory),
		Search:      search,
		Include:     firstNonEmpty(in.Include, file.Include),
		Exclude:     firstNonEmpty(in.Exclude, file.Exclude),
		Backup:      resolveBool(in.Backup, "", file.Backup, lookup),
		ShowDiff:    resolveBool(in.ShowDiff, "", file.ShowDiff, lookup),
		LineNumbers: resolveBool(in.LineNumbers, "", file.LineNumbers, lookup),
	}

	if err := validatePatterns("include", settings.Include); err != nil {
		return nil, err
	}
	if err := validatePatterns("exclude", settings.Exclude); err != nil {
		return nil, err
	}

	return settings, nil
}

func resolveBool(flag OptionalBool, envKey string, fileValue bool, lookup EnvLookup) bool {
	if flag.IsSet() {
		return flag.Value()
	}
	if envKey != "" {
		if _, ok := lookup(envKey); ok {
			return true
		}
	}
	return fileValue
}

func firstNonEmpty(a, b []string) []string {
	if len(a) > 0 {
		return a
	}
	return b
}
