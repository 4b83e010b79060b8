// Package markup splits quiz text into plain and inline-math segments.
//
// Question prompts and answer options interleave literal text with math
// expressions delimited by a dollar-sign pair ("Solve $x+1=2$ now"). The
// tokenizer partitions such a string into ordered segments; rendering each
// segment is the caller's concern.
package markup

import (
	"regexp"
	"strings"
)

// Delimiter opens and closes an inline math span.
const Delimiter = '$'

// Kind classifies a segment as plain text or a math expression.
type Kind int

const (
	// Plain marks literal text emitted verbatim.
	Plain Kind = iota
	// Math marks an inline math expression with delimiters stripped.
	Math
)

// Segment is one contiguous run of plain or math text.
type Segment struct {
	Kind Kind
	Text string
}

// Tokenize partitions text into plain and math segments.
//
// A math span is the delimiter, one or more non-delimiter characters, and the
// delimiter again. Empty plain runs between spans are dropped. An unmatched
// trailing delimiter is left literal inside a plain segment; tokenization
// never fails.
func Tokenize(text string) []Segment {
	var segments []Segment
	last := 0
	for _, span := range mathSpan.FindAllStringIndex(text, -1) {
		if span[0] > last {
			segments = append(segments, Segment{Kind: Plain, Text: text[last:span[0]]})
		}
		segments = append(segments, Segment{Kind: Math, Text: text[span[0]+1 : span[1]-1]})
		last = span[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Kind: Plain, Text: text[last:]})
	}
	return segments
}

// mathSpan matches a delimited math expression: $, one or more non-$, $.
var mathSpan = regexp.MustCompile(`\$[^$]+\$`)

// Join reconstructs the source string from segments, re-wrapping math spans in
// delimiters. For any input with balanced delimiters, Join(Tokenize(s)) == s.
func Join(segments []Segment) string {
	var builder strings.Builder
	for _, segment := range segments {
		if segment.Kind == Math {
			builder.WriteByte(Delimiter)
			builder.WriteString(segment.Text)
			builder.WriteByte(Delimiter)
			continue
		}
		builder.WriteString(segment.Text)
	}
	return builder.String()
}

// Flatten renders segments to display text using render for math spans and
// emitting plain spans verbatim.
func Flatten(segments []Segment, render func(string) string) string {
	var builder strings.Builder
	for _, segment := range segments {
		if segment.Kind == Math && render != nil {
			builder.WriteString(render(segment.Text))
			continue
		}
		builder.WriteString(segment.Text)
	}
	return builder.String()
}
