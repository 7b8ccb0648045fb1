package mdoc

import "strings"

// Normalize enforces the model invariants in place:
//   - text runs are never empty, and adjacent runs with equal marks merge
//   - newlines within text become LineBreak nodes
//   - links never nest and are never empty
//   - stray list items are wrapped into lists, adjacent lists of the same
//     kind merge, and empty lists are dropped
//   - a document always holds at least one block
//   - list depths are consistent (see Relevel)
func Normalize(doc *Document) {
	blocks := make([]Block, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		switch b := b.(type) {
		case *Paragraph:
			b.Inlines = normalizeInlines(b.Inlines, false)
		case *Heading:
			b.Inlines = normalizeInlines(b.Inlines, false)
			b.Level = clampLevel(b.Level)
		case *List:
			if !normalizeList(b) {
				continue
			}
		case *ListItem:
			l := &List{Items: []*ListItem{b}}
			normalizeList(l)
			blocks = appendBlock(blocks, l)
			continue
		case *HorizontalRule:
		default:
			continue
		}
		blocks = appendBlock(blocks, b)
	}
	if len(blocks) == 0 {
		blocks = append(blocks, &Paragraph{})
	}
	doc.Blocks = blocks
	Relevel(doc)
}

// appendBlock appends b, merging it into a preceding list of the same kind.
func appendBlock(blocks []Block, b Block) []Block {
	if l, ok := b.(*List); ok && len(blocks) > 0 {
		if prior, ok := blocks[len(blocks)-1].(*List); ok && prior.Ordered == l.Ordered {
			prior.Items = append(prior.Items, l.Items...)
			return blocks
		}
	}
	return append(blocks, b)
}

// normalizeList normalizes list items recursively, reporting whether any
// item remains.
func normalizeList(l *List) bool {
	items := l.Items[:0]
	for _, item := range l.Items {
		if item == nil {
			continue
		}
		item.Inlines = normalizeInlines(item.Inlines, false)
		if item.Sublist != nil && !normalizeList(item.Sublist) {
			item.Sublist = nil
		}
		items = append(items, item)
	}
	l.Items = items
	return len(items) > 0
}

func normalizeInlines(in []Inline, inLink bool) []Inline {
	var out []Inline
	for _, node := range in {
		switch node := node.(type) {
		case *Text:
			value := strings.ReplaceAll(node.Value, "\r\n", "\n")
			for i, part := range strings.Split(value, "\n") {
				if i > 0 {
					out = append(out, &LineBreak{})
				}
				out = appendText(out, part, node.Marks)
			}
		case *LineBreak:
			out = append(out, node)
		case *Link:
			children := normalizeInlines(node.Children, true)
			if inLink {
				for _, c := range children {
					out = appendInline(out, c)
				}
				continue
			}
			if len(children) == 0 {
				continue
			}
			node.Children = children
			out = append(out, node)
		}
	}
	return out
}

func appendInline(out []Inline, node Inline) []Inline {
	if t, ok := node.(*Text); ok {
		return appendText(out, t.Value, t.Marks)
	}
	return append(out, node)
}

// appendText appends a text run, merging it with a preceding run of equal
// marks; empty runs are dropped.
func appendText(out []Inline, value string, marks Marks) []Inline {
	if value == "" {
		return out
	}
	if len(out) > 0 {
		if prior, ok := out[len(out)-1].(*Text); ok && prior.Marks == marks {
			prior.Value += value
			return out
		}
	}
	return append(out, &Text{Value: value, Marks: marks})
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}

// Relevel recomputes the Depth of every list in the document.
func Relevel(doc *Document) {
	for _, b := range doc.Blocks {
		if l, ok := b.(*List); ok {
			relevelList(l, 1)
		}
	}
}

func relevelList(l *List, depth int) {
	l.Depth = depth
	for _, item := range l.Items {
		if item.Sublist != nil {
			relevelList(item.Sublist, depth+1)
		}
	}
}

// Height returns how many levels of nested lists hang below an item: zero
// for an item without a sublist.
func Height(item *ListItem) int {
	if item == nil || item.Sublist == nil {
		return 0
	}
	h := 0
	for _, sub := range item.Sublist.Items {
		if sh := Height(sub); sh > h {
			h = sh
		}
	}
	return h + 1
}

// Canonical returns a normalized copy of doc, further reduced to what
// Markdown can represent: a document and its Canonical form export to the
// same Markdown, and importing that Markdown yields the Canonical form.
//
// In addition to Normalize's invariants:
//   - block and item content never begins or ends with a LineBreak or
//     whitespace, and whitespace around LineBreaks is trimmed
//   - link text never begins or ends with a LineBreak
//   - headings hold no LineBreaks; each becomes a space
//   - marked text runs neither begin nor end with whitespace
//   - empty paragraphs and headings are dropped
func Canonical(doc *Document) *Document {
	c := doc.Clone()
	Normalize(c)
	blocks := make([]Block, 0, len(c.Blocks))
	for _, b := range c.Blocks {
		switch b := b.(type) {
		case *Paragraph:
			b.Inlines = canonicalInlines(b.Inlines)
			if len(b.Inlines) == 0 {
				continue
			}
		case *Heading:
			b.Inlines = canonicalInlines(headingInlines(b.Inlines))
			if len(b.Inlines) == 0 {
				continue
			}
		case *List:
			canonicalList(b)
		}
		blocks = appendBlock(blocks, b)
	}
	c.Blocks = blocks
	Normalize(c)
	return c
}

func canonicalList(l *List) {
	for _, item := range l.Items {
		item.Inlines = canonicalInlines(item.Inlines)
		if item.Sublist != nil {
			canonicalList(item.Sublist)
		}
	}
}

func headingInlines(in []Inline) []Inline {
	out := make([]Inline, 0, len(in))
	for _, node := range in {
		switch node := node.(type) {
		case *LineBreak:
			out = appendText(out, " ", 0)
		case *Link:
			node.Children = headingInlines(node.Children)
			out = append(out, node)
		default:
			out = appendInline(out, node)
		}
	}
	return out
}

func canonicalInlines(in []Inline) []Inline {
	in = unmarkSpace(in)

	// split into lines, trim each, then rejoin
	var lines [][]Inline
	var line []Inline
	for _, node := range in {
		if _, ok := node.(*LineBreak); ok {
			lines = append(lines, line)
			line = nil
			continue
		}
		line = append(line, node)
	}
	lines = append(lines, line)

	var out []Inline
	for _, line := range lines {
		line = trimLine(line)
		if len(line) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, &LineBreak{})
		}
		out = append(out, line...)
	}
	return normalizeInlines(out, false)
}

// unmarkSpace moves leading and trailing whitespace of marked text runs
// out into unmarked text, so marks only ever cover non-space content. Line
// breaks at either end of a link's text move out of the link too.
func unmarkSpace(in []Inline) []Inline {
	var out []Inline
	for _, node := range in {
		switch node := node.(type) {
		case *Text:
			if node.Marks == 0 {
				out = appendText(out, node.Value, 0)
				continue
			}
			core := strings.TrimLeft(node.Value, lineSpace)
			out = appendText(out, node.Value[:len(node.Value)-len(core)], 0)
			trimmed := strings.TrimRight(core, lineSpace)
			out = appendText(out, trimmed, node.Marks)
			out = appendText(out, core[len(trimmed):], 0)
		case *Link:
			children := unmarkSpace(node.Children)
			lead := 0
			for lead < len(children) && isLineBreak(children[lead]) {
				lead++
			}
			trail := len(children)
			for trail > lead && isLineBreak(children[trail-1]) {
				trail--
			}
			out = append(out, children[:lead]...)
			node.Children = children[lead:trail]
			out = append(out, node)
			out = append(out, children[trail:]...)
		default:
			out = append(out, node)
		}
	}
	return out
}

func isLineBreak(node Inline) bool {
	_, ok := node.(*LineBreak)
	return ok
}

const lineSpace = " \t"

// trimLine trims leading and trailing whitespace of one line of inlines.
// Link text is kept as written.
func trimLine(line []Inline) []Inline {
	for len(line) > 0 && !trimEdge(line[0], true) {
		line = line[1:]
	}
	for len(line) > 0 && !trimEdge(line[len(line)-1], false) {
		line = line[:len(line)-1]
	}
	return line
}

// trimEdge trims whitespace from one side of node, reporting whether any
// content remains.
func trimEdge(node Inline, left bool) bool {
	t, ok := node.(*Text)
	if !ok {
		return true
	}
	if left {
		t.Value = strings.TrimLeft(t.Value, lineSpace)
	} else {
		t.Value = strings.TrimRight(t.Value, lineSpace)
	}
	return t.Value != ""
}
