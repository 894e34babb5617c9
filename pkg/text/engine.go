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

// 🎯 Engine applies one SearchConfig to any number of texts.
// It holds no state besides the configuration, so it is safe to share.
type Engine struct {
	cfg SearchConfig
}

// 🏭 NewEngine creates an engine for a validated configuration
func NewEngine(cfg SearchConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// 🔍 Search reports the lines of text matching the configured query
func (e *Engine) Search(text string) []MatchLine {
	return FindMatchingLines(e.cfg.Query, text, e.cfg.IgnoreCase)
}

// 🔎 Occurrences reports the spans the replacer would substitute
func (e *Engine) Occurrences(text string) []Span {
	return FindOccurrences(e.cfg.Query, text, e.cfg.IgnoreCase)
}

// 🔄 Replace substitutes the configured replacement into text.
// A dry-run engine never reports a change.
func (e *Engine) Replace(text string) ReplaceResult {
	if e.cfg.DryRun {
		return ReplaceResult{}
	}
	return ReplaceAll(e.cfg.Query, e.cfg.Replacement, text, e.cfg.IgnoreCase)
}
