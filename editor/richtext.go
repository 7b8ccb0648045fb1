package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/cds-snc/mdedit/mdoc"
)

// richTextPlugin implements plain text entry and formatting commands.
type richTextPlugin struct {
	h *Handle
}

func (p *richTextPlugin) Name() string     { return "rich-text" }
func (p *richTextPlugin) Attach(h *Handle) { p.h = h }

func (p *richTextPlugin) Commands() []string {
	return []string{InsertText, InsertLineBreak, ToggleBold, ToggleItalic, SetBlock}
}

func (p *richTextPlugin) HandleCommand(cmd Command) bool {
	var fn func(doc *mdoc.Document, sel *mdoc.Selection) bool
	switch cmd.Name {
	case InsertText:
		fn = func(doc *mdoc.Document, sel *mdoc.Selection) bool {
			return insertText(doc, sel, cmd.Arg)
		}
	case InsertLineBreak:
		fn = func(doc *mdoc.Document, sel *mdoc.Selection) bool {
			return insertInline(doc, sel, &mdoc.LineBreak{}, 1)
		}
	case ToggleBold:
		fn = func(doc *mdoc.Document, sel *mdoc.Selection) bool {
			return toggleMarks(doc, *sel, mdoc.Bold)
		}
	case ToggleItalic:
		fn = func(doc *mdoc.Document, sel *mdoc.Selection) bool {
			return toggleMarks(doc, *sel, mdoc.Italic)
		}
	case SetBlock:
		fn = func(doc *mdoc.Document, sel *mdoc.Selection) bool {
			return setBlock(doc, sel, cmd.Arg)
		}
	default:
		return false
	}
	if !p.h.Mutate(fn) {
		p.h.Logger().Debug("command had no effect", "command", cmd.String())
	}
	return true
}

// insertText replaces the selection with text carrying the marks in effect
// at the selection start.
func insertText(doc *mdoc.Document, sel *mdoc.Selection, text string) bool {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	in := doc.Inlines(sel.Focus.Path)
	if in == nil || !sel.SingleBlock() {
		return false
	}
	if text == "" {
		return insertInline(doc, sel, nil, 0)
	}
	marks := mdoc.MarksAt(*in, sel.Start().Offset)
	return insertInline(doc, sel, &mdoc.Text{Value: text, Marks: marks}, utf8.RuneCountInString(text))
}

// insertInline replaces the selection with node, which may be nil to only
// delete it, and places the caret after it. A caret strictly inside a link
// inserts into the link.
func insertInline(doc *mdoc.Document, sel *mdoc.Selection, node mdoc.Inline, width int) bool {
	in := doc.Inlines(sel.Focus.Path)
	if in == nil || !sel.SingleBlock() {
		return false
	}
	start, end := sel.Start().Offset, sel.End().Offset
	if node == nil && start == end {
		return false
	}
	out := mdoc.ReplaceInlines(*in, start, end)
	if node != nil {
		out = insertAt(out, start, node)
	}
	*in = out
	*sel = mdoc.Caret(mdoc.Point{Path: sel.Focus.Path, Offset: start + width})
	return true
}

func insertAt(in []mdoc.Inline, offset int, node mdoc.Inline) []mdoc.Inline {
	if i := mdoc.LinkAt(in, offset); i >= 0 {
		link := in[i].(*mdoc.Link)
		at := offset - mdoc.InlineStart(in, i)
		if at < mdoc.InlinesLen(link.Children) {
			link.Children = mdoc.ReplaceInlines(link.Children, at, at, node)
			return in
		}
	}
	return mdoc.ReplaceInlines(in, offset, offset, node)
}

// toggleMarks adds m to all text in the selection, or removes it when all
// of that text already has it.
func toggleMarks(doc *mdoc.Document, sel mdoc.Selection, m mdoc.Marks) bool {
	in := doc.Inlines(sel.Focus.Path)
	if in == nil || sel.Collapsed() || !sel.SingleBlock() {
		return false
	}
	start, end := sel.Start().Offset, sel.End().Offset
	mid := mdoc.SliceInlines(*in, start, end)

	all, found := true, false
	mdoc.Walk(&mdoc.Paragraph{Inlines: mid}, func(n mdoc.Node, entering bool) mdoc.WalkStatus {
		if t, ok := n.(*mdoc.Text); ok && entering {
			found = true
			all = all && t.Marks.Has(m)
		}
		return mdoc.GoToNext
	})
	if !found {
		return false
	}
	mdoc.Walk(&mdoc.Paragraph{Inlines: mid}, func(n mdoc.Node, entering bool) mdoc.WalkStatus {
		if t, ok := n.(*mdoc.Text); ok && entering {
			if all {
				t.Marks &^= m
			} else {
				t.Marks |= m
			}
		}
		return mdoc.GoToNext
	})
	*in = mdoc.ReplaceInlines(*in, start, end, mid...)
	return true
}

// setBlock converts the block holding the caret to kind: "paragraph",
// "h1" through "h6", "bullet" or "number". A list item converts its whole
// list between bullet and number; converting a top level item to a text
// block lifts it out of its list.
func setBlock(doc *mdoc.Document, sel *mdoc.Selection, kind string) bool {
	path := sel.Focus.Path
	var ordered, toList bool
	level := 0
	switch kind {
	case "paragraph":
	case "bullet", "number":
		toList, ordered = true, kind == "number"
	default:
		if len(kind) != 2 || kind[0] != 'h' || kind[1] < '1' || kind[1] > '6' {
			return false
		}
		level = int(kind[1] - '0')
	}

	var target mdoc.Block
	if item, l := doc.ItemAt(path); item != nil {
		if toList {
			if l.Ordered == ordered {
				return false
			}
			l.Ordered = ordered
			return true
		}
		if len(path) != 2 {
			return false
		}
		target = outdentItem(doc, path)
		mdoc.Normalize(doc)
	} else {
		target = doc.BlockAt(path[:1])
	}
	if target == nil {
		return false
	}

	i := doc.PathOf(target)[0]
	in := mdoc.Content(target)
	if in == nil {
		return false
	}
	var repl mdoc.Block
	var caret []int
	switch {
	case toList:
		item := &mdoc.ListItem{Inlines: *in}
		repl = &mdoc.List{Ordered: ordered, Items: []*mdoc.ListItem{item}}
		doc.Blocks[i] = repl
		mdoc.Normalize(doc)
		caret = doc.PathOf(item)
	case level > 0:
		if h, ok := target.(*mdoc.Heading); ok && h.Level == level {
			return false
		}
		doc.Blocks[i] = &mdoc.Heading{Level: level, Inlines: *in}
		caret = []int{i}
	default:
		if _, ok := target.(*mdoc.Paragraph); ok && len(path) == 1 {
			return false
		}
		doc.Blocks[i] = &mdoc.Paragraph{Inlines: *in}
		caret = []int{i}
	}
	*sel = mdoc.Caret(mdoc.Point{Path: caret, Offset: sel.Focus.Offset})
	return true
}
