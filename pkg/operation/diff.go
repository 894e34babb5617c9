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
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// 🎨 renderDiff renders a character diff in word-diff style: removed text as
// [-old-], inserted text as {+new+}. Unchanged runs longer than diffContext
// are elided around the edits.
func renderDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	removed := color.New(color.FgRed)
	inserted := color.New(color.FgGreen)

	var b strings.Builder
	for i, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString(removed.Sprint("[-" + d.Text + "-]"))
		case diffmatchpatch.DiffInsert:
			b.WriteString(inserted.Sprint("{+" + d.Text + "+}"))
		case diffmatchpatch.DiffEqual:
			b.WriteString(elide(d.Text, i == 0, i == len(diffs)-1))
		}
	}
	return b.String()
}

const diffContext = 20

// elide shortens an unchanged run, keeping diffContext bytes next to each edit
func elide(s string, first, last bool) string {
	if first && last {
		return s
	}
	keepHead, keepTail := diffContext, diffContext
	if first {
		keepHead = 0
	}
	if last {
		keepTail = 0
	}
	if len(s) <= keepHead+keepTail+len("…") {
		return s
	}

	head := cutRuneBoundary(s, keepHead, false)
	tail := cutRuneBoundary(s, len(s)-keepTail, true)
	return head + "…" + tail
}

// cutRuneBoundary returns s[:n] (or s[n:] when suffix is set), moving n back to
// the start of the rune it falls in
func cutRuneBoundary(s string, n int, suffix bool) string {
	for n > 0 && n < len(s) && !utf8.RuneStart(s[n]) {
		n--
	}
	if suffix {
		return s[n:]
	}
	return s[:n]
}
