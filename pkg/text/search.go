package text

import "strings"

// FindMatchingLines returns every line of text that contains query, in order.
//
// Lines are separated by '\n'; a trailing '\r' is dropped from each line and a final
// line without a terminator still counts. With ignoreCase the predicate compares folded
// copies, but the returned lines are always the original, unfolded substrings.
//
// query must not be empty.
func FindMatchingLines(query, text string, ignoreCase bool) []MatchLine {
	p := newPolicy(query, ignoreCase)

	var matches []MatchLine
	number := 0
	for rest := text; rest != ""; {
		number++
		line := rest
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i], rest[i+1:]
		} else {
			rest = ""
		}
		line = strings.TrimSuffix(line, "\r")

		if p.contains(line) {
			matches = append(matches, MatchLine{Number: number, Text: line})
		}
	}
	return matches
}

// FindOccurrences returns the byte spans of every non-overlapping occurrence of query
// in text, found by a single left-to-right scan of the original text.
//
// query must not be empty.
func FindOccurrences(query, text string, ignoreCase bool) []Span {
	sc := newPolicy(query, ignoreCase).scan(text)

	var spans []Span
	for {
		span, ok := sc.next()
		if !ok {
			return spans
		}
		spans = append(spans, span)
	}
}
