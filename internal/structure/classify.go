package structure

import "strings"

// StyleKind is the structural role of a paragraph, derived from its style name.
type StyleKind int

const (
	Body StyleKind = iota
	Title
	Heading1
	Heading2
)

func (k StyleKind) String() string {
	switch k {
	case Title:
		return "title"
	case Heading1:
		return "heading1"
	case Heading2:
		return "heading2"
	}
	return "body"
}

// Classify maps a paragraph style name to its structural role by prefix.
// Matching is case-sensitive, so "Heading 10" counts as Heading1.
func Classify(style string) StyleKind {
	switch {
	case strings.HasPrefix(style, "Title"):
		return Title
	case strings.HasPrefix(style, "Heading 1"):
		return Heading1
	case strings.HasPrefix(style, "Heading 2"):
		return Heading2
	}
	return Body
}
