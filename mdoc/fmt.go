package mdoc

import (
	"fmt"
	"io"
	"strings"
)

// Format writes a textual representation of the receiver, providing improved
// fmt.Printf display. Produces a multi-line outline of every block when
// formatted with `%+v`, a terse block summary otherwise.
func (doc *Document) Format(f fmt.State, _ rune) {
	if doc == nil || len(doc.Blocks) == 0 {
		io.WriteString(f, "-- empty --")
		return
	}
	if !f.Flag('+') {
		for i, b := range doc.Blocks {
			if i > 0 {
				io.WriteString(f, " ")
			}
			fmt.Fprint(f, b)
		}
		return
	}
	for i, b := range doc.Blocks {
		if i > 0 {
			io.WriteString(f, "\n")
		}
		fmt.Fprintf(f, "%v. %+v", i, b)
		if l, ok := b.(*List); ok {
			writeItems(f, l, 1)
		}
	}
}

func writeItems(w io.Writer, l *List, level int) {
	for i, item := range l.Items {
		fmt.Fprintf(w, "\n%v%v. %+v", strings.Repeat("  ", level), i, item)
		if item.Sublist != nil {
			fmt.Fprintf(w, "\n%v   %v", strings.Repeat("  ", level), item.Sublist)
			writeItems(w, item.Sublist, level+1)
		}
	}
}

// Format writes "Paragraph", or the paragraph content with `%+v`.
func (p *Paragraph) Format(f fmt.State, _ rune) {
	io.WriteString(f, "Paragraph")
	if f.Flag('+') {
		writeInlines(f, p.Inlines)
	}
}

// Format writes "Heading<level>", followed by the content with `%+v`.
func (h *Heading) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "Heading%v", h.Level)
	if f.Flag('+') {
		writeInlines(f, h.Inlines)
	}
}

// Format writes "List" or "OrderedList", with depth and item count under
// `%+v`.
func (l *List) Format(f fmt.State, _ rune) {
	if l.Ordered {
		io.WriteString(f, "OrderedList")
	} else {
		io.WriteString(f, "List")
	}
	if f.Flag('+') {
		fmt.Fprintf(f, " depth=%v items=%v", l.Depth, len(l.Items))
	}
}

// Format writes "Item", followed by the content with `%+v`.
func (item *ListItem) Format(f fmt.State, _ rune) {
	io.WriteString(f, "Item")
	if f.Flag('+') {
		writeInlines(f, item.Inlines)
	}
}

// Format writes "Ruler".
func (*HorizontalRule) Format(f fmt.State, _ rune) {
	io.WriteString(f, "Ruler")
}

// Format writes the quoted text, with its marks under `%+v`.
func (t *Text) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "%q", t.Value)
	if f.Flag('+') && t.Marks != 0 {
		fmt.Fprintf(f, "/%v", t.Marks)
	}
}

// Format writes "BR".
func (*LineBreak) Format(f fmt.State, _ rune) {
	io.WriteString(f, "BR")
}

// Format writes the link children in brackets followed by the href.
func (l *Link) Format(f fmt.State, _ rune) {
	io.WriteString(f, "Link")
	writeInlines(f, l.Children)
	fmt.Fprintf(f, "(%v)", l.Href)
}

func writeInlines(w io.Writer, in []Inline) {
	io.WriteString(w, "[")
	for i, node := range in {
		if i > 0 {
			io.WriteString(w, " ")
		}
		fmt.Fprintf(w, "%+v", node)
	}
	io.WriteString(w, "]")
}
