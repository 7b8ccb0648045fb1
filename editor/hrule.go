package editor

import "github.com/cds-snc/mdedit/mdoc"

// hrulePlugin inserts horizontal rules between top level blocks.
type hrulePlugin struct {
	h *Handle
}

func (p *hrulePlugin) Name() string       { return "horizontal-rule" }
func (p *hrulePlugin) Attach(h *Handle)   { p.h = h }
func (p *hrulePlugin) Commands() []string { return []string{InsertHorizontalRule} }

func (p *hrulePlugin) HandleCommand(cmd Command) bool {
	if cmd.Name != InsertHorizontalRule {
		return false
	}
	p.h.Mutate(func(doc *mdoc.Document, sel *mdoc.Selection) bool {
		at := insertRule(doc, sel.Focus)
		*sel = mdoc.Caret(doc.Clamp(mdoc.Point{Path: []int{at + 1}}))
		return true
	})
	return true
}

// insertRule inserts a rule at the top level block position of p and
// returns its index. Within a list the rule follows the whole list. Within
// text it goes before or after the block when p is at its start or end, and
// otherwise splits the block around it. A document never ends with a rule.
func insertRule(doc *mdoc.Document, p mdoc.Point) int {
	i := p.Path[0]
	at := i + 1
	switch b := doc.Blocks[i].(type) {
	case *mdoc.Paragraph, *mdoc.Heading:
		in := mdoc.Content(b)
		n := mdoc.InlinesLen(*in)
		switch {
		case p.Offset <= 0 && n > 0:
			at = i
		case p.Offset >= n:
		default:
			before, after := mdoc.SplitInlines(*in, p.Offset)
			*in = before
			doc.Blocks = spliceBlocks(doc.Blocks, i+1, 0, withInlines(b, after))
		}
	}
	doc.Blocks = spliceBlocks(doc.Blocks, at, 0, &mdoc.HorizontalRule{})
	if at == len(doc.Blocks)-1 {
		doc.Blocks = append(doc.Blocks, &mdoc.Paragraph{})
	}
	return at
}

// withInlines returns a text block of the same type as b holding in.
func withInlines(b mdoc.Block, in []mdoc.Inline) mdoc.Block {
	if h, ok := b.(*mdoc.Heading); ok {
		return &mdoc.Heading{Level: h.Level, Inlines: in}
	}
	return &mdoc.Paragraph{Inlines: in}
}
