package mdoc

import (
	"strings"
	"unicode/utf8"
)

// InlinesLen returns the flattened length of an inline sequence in runes;
// a LineBreak counts as one.
func InlinesLen(in []Inline) int {
	n := 0
	for _, node := range in {
		n += inlineLen(node)
	}
	return n
}

func inlineLen(node Inline) int {
	switch node := node.(type) {
	case *Text:
		return utf8.RuneCountInString(node.Value)
	case *LineBreak:
		return 1
	case *Link:
		return InlinesLen(node.Children)
	}
	return 0
}

// InlineText flattens an inline sequence to plain text; LineBreaks become
// newlines.
func InlineText(in []Inline) string {
	var sb strings.Builder
	writeInlineText(&sb, in)
	return sb.String()
}

func writeInlineText(sb *strings.Builder, in []Inline) {
	for _, node := range in {
		switch node := node.(type) {
		case *Text:
			sb.WriteString(node.Value)
		case *LineBreak:
			sb.WriteByte('\n')
		case *Link:
			writeInlineText(sb, node.Children)
		}
	}
}

// SplitInlines splits an inline sequence at a flattened rune offset. Text
// runs and links straddling the offset are split in two, both halves keeping
// the original marks or href. The input nodes are not modified.
func SplitInlines(in []Inline, offset int) (before, after []Inline) {
	if offset <= 0 {
		return nil, CloneInlines(in)
	}
	pos := 0
	for i, node := range in {
		n := inlineLen(node)
		switch {
		case pos+n <= offset:
			before = append(before, CloneInlines(in[i:i+1])...)
		case pos >= offset:
			after = append(after, CloneInlines(in[i:i+1])...)
		default:
			at := offset - pos
			switch node := node.(type) {
			case *Text:
				cut := runeIndex(node.Value, at)
				before = append(before, &Text{Value: node.Value[:cut], Marks: node.Marks})
				after = append(after, &Text{Value: node.Value[cut:], Marks: node.Marks})
			case *Link:
				b, a := SplitInlines(node.Children, at)
				before = append(before, &Link{Href: node.Href, Children: b})
				after = append(after, &Link{Href: node.Href, Children: a})
			}
		}
		pos += n
	}
	return before, after
}

// SliceInlines returns a copy of the inlines within the flattened rune range
// [start, end).
func SliceInlines(in []Inline, start, end int) []Inline {
	_, rest := SplitInlines(in, start)
	mid, _ := SplitInlines(rest, end-start)
	return mid
}

// ReplaceInlines returns a copy of in with the range [start, end) replaced by
// repl.
func ReplaceInlines(in []Inline, start, end int, repl ...Inline) []Inline {
	before, rest := SplitInlines(in, start)
	_, after := SplitInlines(rest, end-start)
	out := make([]Inline, 0, len(before)+len(repl)+len(after))
	out = append(out, before...)
	out = append(out, repl...)
	return append(out, after...)
}

// MarksAt returns the marks in effect for text typed at offset: those of the
// text immediately before it, or of the first text when offset is zero.
func MarksAt(in []Inline, offset int) Marks {
	pos := 0
	for _, leaf := range leaves(in) {
		n := inlineLen(leaf)
		if offset == 0 || (pos < offset && offset <= pos+n) {
			if t, ok := leaf.(*Text); ok {
				return t.Marks
			}
			return 0
		}
		pos += n
	}
	return 0
}

// leaves flattens links away, returning the Text and LineBreak nodes of an
// inline sequence in order.
func leaves(in []Inline) []Inline {
	var out []Inline
	for _, node := range in {
		if link, ok := node.(*Link); ok {
			out = append(out, leaves(link.Children)...)
			continue
		}
		out = append(out, node)
	}
	return out
}

// LinkAt returns the top level index of the link containing offset within
// an inline sequence, or -1. A caret at the very start of a link is outside
// it; a caret at its end is inside.
func LinkAt(in []Inline, offset int) int {
	pos := 0
	for i, node := range in {
		n := inlineLen(node)
		if _, ok := node.(*Link); ok && offset > pos && offset <= pos+n {
			return i
		}
		pos += n
	}
	return -1
}

// LinksWithin returns the top level indices of links overlapping the
// flattened range [start, end).
func LinksWithin(in []Inline, start, end int) []int {
	var idx []int
	pos := 0
	for i, node := range in {
		n := inlineLen(node)
		if _, ok := node.(*Link); ok && pos < end && start < pos+n {
			idx = append(idx, i)
		}
		pos += n
	}
	return idx
}

// InlineStart returns the flattened offset at which the top level inline
// with index i begins.
func InlineStart(in []Inline, i int) int {
	pos := 0
	for _, node := range in[:i] {
		pos += inlineLen(node)
	}
	return pos
}

// Unlink returns a copy of in where every link is replaced by its children.
func Unlink(in []Inline) []Inline {
	out := make([]Inline, 0, len(in))
	for _, node := range CloneInlines(in) {
		if link, ok := node.(*Link); ok {
			out = append(out, Unlink(link.Children)...)
			continue
		}
		out = append(out, node)
	}
	return out
}

func runeIndex(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}
