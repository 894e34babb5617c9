/*
Package text is the search and replace engine behind replacio.

	+-------------+       +-------------+
	|   Matcher   |       |  Replacer   |
	| (lines,     |       | (substitute |
	|  spans)     |       |  spans)     |
	+------+------+       +------+------+
	       |                     |
	       +---------+-----------+
	                 |
	          +------+------+
	          |   policy    |
	          | exact/fold  |
	          +-------------+

Both sides share one occurrence policy. The exact policy compares bytes. The fold
policy lowers each scalar with unicode.ToLower and scans scalar indices, mapping them
back to byte offsets of the original text, so output is always cut on scalar
boundaries and the unmatched text keeps its original casing.

Simple folding was chosen over full case folding: it maps one scalar to one scalar,
which keeps folded and original indices aligned. Full folding (for example "ß" to
"ss") is not applied.

Everything here is pure. File access, traversal and reporting live in other packages.
*/
package text
