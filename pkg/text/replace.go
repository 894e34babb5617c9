package text

import (
	"fmt"
	"strings"
)

// ReplaceAll substitutes replacement for every non-overlapping occurrence of query in
// text. Occurrences are located in the original text only, so a replacement that itself
// contains the query is never substituted again.
//
// Unmatched spans are copied from the original text, never from a folded copy, and the
// replacement is inserted verbatim. The result reports Changed as soon as one occurrence
// existed, even when replacement equals query.
//
// query must not be empty.
func ReplaceAll(query, replacement, text string, ignoreCase bool) ReplaceResult {
	return substitute(text, replacement, newPolicy(query, ignoreCase).scan(text))
}

// substitute drives sc with an explicit source cursor (last) and output accumulator.
func substitute(text, replacement string, sc scanner) ReplaceResult {
	var out strings.Builder
	last, count := 0, 0
	for {
		span, ok := sc.next()
		if !ok {
			break
		}
		if span.Start < last || span.End <= span.Start || span.End > len(text) {
			panic(fmt.Sprintf("text: occurrence [%d,%d) is out of order after offset %d", span.Start, span.End, last))
		}
		if count == 0 {
			out.Grow(len(text))
		}
		out.WriteString(text[last:span.Start])
		out.WriteString(replacement)
		last = span.End
		count++
	}

	if count == 0 {
		return ReplaceResult{}
	}

	out.WriteString(text[last:])
	return ReplaceResult{
		Changed: true,
		Text:    out.String(),
		Count:   count,
	}
}
