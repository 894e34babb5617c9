package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// policy is the occurrence policy shared by the matcher and the replacer.
// Case-insensitive comparison uses simple folding: each scalar is lowered on its own
// with unicode.ToLower, so a folded text has exactly as many scalars as the original.
type policy struct {
	query      string
	folded     []rune
	ignoreCase bool
}

func newPolicy(query string, ignoreCase bool) policy {
	if query == "" {
		panic("text: empty query reached the engine")
	}
	p := policy{query: query, ignoreCase: ignoreCase}
	if ignoreCase {
		p.folded = foldRunes(query)
	}
	return p
}

func foldRunes(s string) []rune {
	out := make([]rune, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, unicode.ToLower(r))
	}
	return out
}

// scan returns a scanner over text positioned at its start.
func (p policy) scan(text string) scanner {
	if p.ignoreCase {
		return newFoldScanner(p.folded, text)
	}
	return &exactScanner{query: p.query, text: text}
}

// contains reports whether text holds at least one occurrence.
func (p policy) contains(text string) bool {
	if !p.ignoreCase {
		return strings.Contains(text, p.query)
	}
	_, ok := p.scan(text).next()
	return ok
}

// scanner yields successive non-overlapping occurrences, left to right.
// Every call starts strictly after the previous occurrence.
type scanner interface {
	next() (Span, bool)
}

// exactScanner compares bytes, which for valid UTF-8 is the same as comparing scalars.
type exactScanner struct {
	query  string
	text   string
	cursor int
}

func (s *exactScanner) next() (Span, bool) {
	i := strings.Index(s.text[s.cursor:], s.query)
	if i < 0 {
		s.cursor = len(s.text)
		return Span{}, false
	}
	span := Span{Start: s.cursor + i, End: s.cursor + i + len(s.query)}
	s.cursor = span.End
	return span, true
}

// foldScanner walks scalar indices of the folded text. offsets maps every scalar
// index (and the end of the text) back to a byte offset in the original, so spans
// always start and end on scalar boundaries even when folding changes byte length.
type foldScanner struct {
	query   []rune
	folded  []rune
	offsets []int
	cursor  int
}

func newFoldScanner(query []rune, text string) *foldScanner {
	n := utf8.RuneCountInString(text)
	s := &foldScanner{
		query:   query,
		folded:  make([]rune, 0, n),
		offsets: make([]int, 0, n+1),
	}
	for i, r := range text {
		s.offsets = append(s.offsets, i)
		s.folded = append(s.folded, unicode.ToLower(r))
	}
	s.offsets = append(s.offsets, len(text))
	return s
}

func (s *foldScanner) next() (Span, bool) {
	for ; s.cursor+len(s.query) <= len(s.folded); s.cursor++ {
		if !s.matchAt(s.cursor) {
			continue
		}
		span := Span{Start: s.offsets[s.cursor], End: s.offsets[s.cursor+len(s.query)]}
		s.cursor += len(s.query)
		return span, true
	}
	return Span{}, false
}

func (s *foldScanner) matchAt(i int) bool {
	for j, r := range s.query {
		if s.folded[i+j] != r {
			return false
		}
	}
	return true
}
