package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/cds-snc/mdedit/mdcodec"
	"github.com/cds-snc/mdedit/mdoc"
)

// shortcutPlugin handles text entry, converting Markdown syntax as it is
// typed: a block marker followed by a space at the start of a paragraph
// converts the paragraph, and a completed text format or link before the
// caret is replaced by marks or a link. Entry and conversion form one
// mutation.
type shortcutPlugin struct {
	h *Handle
}

func (p *shortcutPlugin) Name() string     { return "markdown-shortcut" }
func (p *shortcutPlugin) Attach(h *Handle) { p.h = h }

func (p *shortcutPlugin) HandleCommand(cmd Command) bool {
	if cmd.Name != InsertText {
		return false
	}
	reg := p.h.Registry()
	p.h.Mutate(func(doc *mdoc.Document, sel *mdoc.Selection) bool {
		if !insertText(doc, sel, cmd.Arg) {
			return false
		}
		if t := blockShortcut(reg, doc, sel); t != nil {
			p.h.Logger().Debug("markdown shortcut", "transformer", t.Name)
		} else if t := inlineShortcut(reg, doc, sel); t != nil {
			p.h.Logger().Debug("markdown shortcut", "transformer", t.Name)
		}
		return true
	})
	return true
}

// blockShortcut converts a top level paragraph whose text up to the caret
// is a block marker ending in a space.
func blockShortcut(reg *mdcodec.Registry, doc *mdoc.Document, sel *mdoc.Selection) *mdcodec.Transformer {
	at := sel.Focus
	if len(at.Path) != 1 || at.Offset == 0 {
		return nil
	}
	i := at.Path[0]
	para, ok := doc.Blocks[i].(*mdoc.Paragraph)
	if !ok {
		return nil
	}
	text := mdoc.InlineText(para.Inlines)
	head := text[:runeByte(text, at.Offset)]
	if !strings.HasSuffix(head, " ") {
		return nil
	}
	t, m := reg.MatchLine(text)
	if t == nil || utf8.RuneCountInString(m[0]) != at.Offset {
		return nil
	}
	rest := mdoc.ReplaceInlines(para.Inlines, 0, at.Offset)

	var caret mdoc.Block
	switch t.Name {
	case mdcodec.Heading.Name:
		caret = &mdoc.Heading{Level: len(m[1]), Inlines: rest}
		doc.Blocks[i] = caret
	case mdcodec.HorizontalRule.Name:
		caret = &mdoc.Paragraph{Inlines: rest}
		doc.Blocks = spliceBlocks(doc.Blocks, i, 1, &mdoc.HorizontalRule{}, caret)
	case mdcodec.OrderedList.Name, mdcodec.UnorderedList.Name:
		caret = &mdoc.ListItem{Inlines: rest}
		doc.Blocks[i] = &mdoc.List{
			Ordered: t.Name == mdcodec.OrderedList.Name,
			Items:   []*mdoc.ListItem{caret.(*mdoc.ListItem)},
		}
	default:
		return nil
	}
	mdoc.Normalize(doc)
	*sel = mdoc.Caret(mdoc.Point{Path: doc.PathOf(caret)})
	return t
}

// inlineShortcut replaces a text format or link completed just before the
// caret.
func inlineShortcut(reg *mdcodec.Registry, doc *mdoc.Document, sel *mdoc.Selection) *mdcodec.Transformer {
	in := doc.Inlines(sel.Focus.Path)
	if in == nil {
		return nil
	}
	text := mdoc.InlineText(*in)
	head := text[:runeByte(text, sel.Focus.Offset)]
	t, m := reg.MatchTail(head)
	if t == nil {
		return nil
	}
	runes := func(b int) int { return utf8.RuneCountInString(head[:b]) }

	var start, end, caret int
	switch {
	case t.Kind == mdcodec.TextFormatTransformer:
		d := len(t.Delim)
		if strings.Contains(head[m[2]-d:m[3]+d], "\n") {
			return nil
		}
		start, end = runes(m[2]-d), runes(m[3]+d)
		mid := mdoc.SliceInlines(*in, runes(m[2]), runes(m[3]))
		for _, node := range mid {
			if run, ok := node.(*mdoc.Text); ok {
				run.Marks |= t.Marks
			}
		}
		*in = mdoc.ReplaceInlines(*in, start, end, mid...)
		caret = start + mdoc.InlinesLen(mid)
	case t.Name == mdcodec.Link.Name:
		if strings.Contains(head[m[0]:m[1]], "\n") {
			return nil
		}
		start, end = runes(m[0]), runes(m[1])
		children := mdoc.Unlink(mdoc.SliceInlines(*in, runes(m[2]), runes(m[3])))
		link := &mdoc.Link{Href: SanitizeURL(head[m[4]:m[5]]), Children: children}
		*in = mdoc.ReplaceInlines(*in, start, end, link)
		caret = start + mdoc.InlinesLen(children)
	default:
		return nil
	}
	*sel = mdoc.Caret(mdoc.Point{Path: sel.Focus.Path, Offset: caret})
	return t
}

// runeByte returns the byte index of the n-th rune of s.
func runeByte(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}
