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

package text

import (
	"gitlab.com/tozd/go/errors"
)

// ErrEmptyQuery is returned when a search is configured without a query.
var ErrEmptyQuery = errors.Base("query must not be empty")

// 🔍 SearchConfig holds the resolved search parameters for one invocation.
// It is a value type; copies are independent and nothing mutates it after construction.
type SearchConfig struct {
	Query       string // Substring to find, never empty once validated
	Replacement string // Substituted for every occurrence, may be empty
	IgnoreCase  bool   // Match using simple per-scalar lowercase folding
	DryRun      bool   // Never produce a mutation
}

// 🏭 NewSearchConfig builds a validated SearchConfig
func NewSearchConfig(query, replacement string, ignoreCase, dryRun bool) (SearchConfig, error) {
	cfg := SearchConfig{
		Query:       query,
		Replacement: replacement,
		IgnoreCase:  ignoreCase,
		DryRun:      dryRun,
	}
	if err := cfg.Validate(); err != nil {
		return SearchConfig{}, err
	}
	return cfg, nil
}

// ✅ Validate checks that the configuration can be handed to the engine
func (c SearchConfig) Validate() error {
	if c.Query == "" {
		return errors.WithStack(ErrEmptyQuery)
	}
	return nil
}

// 📄 MatchLine is one line of the source text containing at least one occurrence.
// Text is a substring of the source, so it shares the source's memory.
type MatchLine struct {
	Number int    // 1-based line number
	Text   string // Original line content without its terminator
}

// 📐 Span is the half-open byte range [Start, End) of one occurrence in the source text.
type Span struct {
	Start int
	End   int
}

// 🔄 ReplaceResult is the outcome of a replace call.
// Text is only meaningful when Changed is true.
type ReplaceResult struct {
	Changed bool
	Text    string
	Count   int
}
