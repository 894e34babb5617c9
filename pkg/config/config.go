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
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes; env feeds formats that can read the environment
	Parse(ctx context.Context, data []byte, env EnvLookup) (*FileConfig, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// DefaultBaseName is the config file name looked up in the working directory
const DefaultBaseName = ".replacio"

// defaultExtensions lists the formats tried by Discover, in order
var defaultExtensions = []string{".yaml", ".yml", ".hcl", ".json", ".toml"}

// 📚 FileConfig holds the defaults a config file may provide.
// Flags and environment variables take precedence over every field.
type FileConfig struct {
	IgnoreCase  bool     `json:"ignore_case,omitempty" yaml:"ignore_case,omitempty" hcl:"ignore_case,optional" toml:"ignore_case,omitempty"`
	DryRun      bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional" toml:"dry_run,omitempty"`
	Include     []string `json:"include,omitempty" yaml:"include,omitempty" hcl:"include,optional" toml:"include,omitempty"`
	Exclude     []string `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional" toml:"exclude,omitempty"`
	Backup      bool     `json:"backup,omitempty" yaml:"backup,omitempty" hcl:"backup,optional" toml:"backup,omitempty"`
	ShowDiff    bool     `json:"show_diff,omitempty" yaml:"show_diff,omitempty" hcl:"show_diff,optional" toml:"show_diff,omitempty"`
	LineNumbers bool     `json:"line_numbers,omitempty" yaml:"line_numbers,omitempty" hcl:"line_numbers,optional" toml:"line_numbers,omitempty"`
}

// 🎯 Load loads the configuration from a file. env is the environment visible to
// formats that evaluate expressions (HCL's env.IGNORE_CASE, env.DRY).
func Load(ctx context.Context, path string, env EnvLookup) (*FileConfig, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data, env)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔎 Discover returns the first default config file present in dir
func Discover(dir string) (string, bool) {
	for _, ext := range defaultExtensions {
		path := filepath.Join(dir, DefaultBaseName+ext)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// 🔍 Validate checks if the configuration is valid
func (cfg *FileConfig) Validate() error {
	if err := validatePatterns("include", cfg.Include); err != nil {
		return err
	}
	if err := validatePatterns("exclude", cfg.Exclude); err != nil {
		return err
	}
	return nil
}

func validatePatterns(field string, patterns []string) error {
	for i, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			return errors.Errorf("%s[%d]: pattern is empty", field, i)
		}
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("%s[%d]: invalid pattern %q", field, i, pattern)
		}
	}
	return nil
}
