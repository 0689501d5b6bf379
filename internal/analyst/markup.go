package analyst

import "strings"

type Segment struct {
	Text     string
	Emphasis bool
}

// Segments splits text on "**" markers. Odd-indexed runs are emphasised, so
// an unbalanced marker emphasises the rest of the text.
func Segments(text string) []Segment {
	parts := strings.Split(text, "**")
	out := make([]Segment, 0, len(parts))
	for i, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, Segment{Text: p, Emphasis: i%2 == 1})
	}
	return out
}

// Plain drops the emphasis markers.
func Plain(text string) string {
	return strings.ReplaceAll(text, "**", "")
}
