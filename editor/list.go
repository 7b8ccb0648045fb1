package editor

import "github.com/cds-snc/mdedit/mdoc"

// listPlugin indents and outdents the list item holding the caret.
type listPlugin struct {
	h *Handle
}

func (p *listPlugin) Name() string     { return "list" }
func (p *listPlugin) Attach(h *Handle) { p.h = h }

func (p *listPlugin) Commands() []string {
	return []string{IndentListItem, OutdentListItem}
}

func (p *listPlugin) HandleCommand(cmd Command) bool {
	var move func(doc *mdoc.Document, path []int) mdoc.Block
	switch cmd.Name {
	case IndentListItem:
		move = indentItem
	case OutdentListItem:
		move = outdentItem
	default:
		return false
	}
	p.h.Mutate(func(doc *mdoc.Document, sel *mdoc.Selection) bool {
		moved := move(doc, sel.Focus.Path)
		if moved == nil {
			return false
		}
		mdoc.Normalize(doc)
		*sel = mdoc.Caret(mdoc.Point{Path: doc.PathOf(moved), Offset: sel.Focus.Offset})
		return true
	})
	return true
}

// indentItem moves the item at path to the end of its previous sibling's
// sublist. A first item is wrapped into a new empty item instead, holding a
// new nested list. It returns the moved item, or nil when path addresses no
// list item.
func indentItem(doc *mdoc.Document, path []int) mdoc.Block {
	item, l := doc.ItemAt(path)
	if item == nil {
		return nil
	}
	i := path[len(path)-1]
	if i == 0 {
		l.Items[0] = &mdoc.ListItem{Sublist: &mdoc.List{
			Ordered: l.Ordered,
			Items:   []*mdoc.ListItem{item},
		}}
		return item
	}
	l.Items = append(l.Items[:i], l.Items[i+1:]...)
	prev := l.Items[i-1]
	if prev.Sublist == nil {
		prev.Sublist = &mdoc.List{Ordered: l.Ordered}
	}
	prev.Sublist.Items = append(prev.Sublist.Items, item)
	return item
}

// outdentItem moves the item at path one level up. A nested item is placed
// after its parent item, adopting its following siblings as its sublist; a
// parent left empty is removed. An item of a top level list becomes a
// paragraph that splits the list in two, its own sublist continuing as a
// list after it. It returns the moved item or the new paragraph.
func outdentItem(doc *mdoc.Document, path []int) mdoc.Block {
	item, l := doc.ItemAt(path)
	if item == nil {
		return nil
	}
	i := path[len(path)-1]
	following := append([]*mdoc.ListItem(nil), l.Items[i+1:]...)
	l.Items = l.Items[:i]

	if len(path) == 2 {
		para := &mdoc.Paragraph{Inlines: item.Inlines}
		var blocks []mdoc.Block
		if len(l.Items) > 0 {
			blocks = append(blocks, l)
		}
		blocks = append(blocks, para)
		if item.Sublist != nil {
			blocks = append(blocks, item.Sublist)
		}
		if len(following) > 0 {
			blocks = append(blocks, &mdoc.List{Ordered: l.Ordered, Items: following})
		}
		doc.Blocks = spliceBlocks(doc.Blocks, path[0], 1, blocks...)
		return para
	}

	if len(following) > 0 {
		if item.Sublist == nil {
			item.Sublist = &mdoc.List{Ordered: l.Ordered}
		}
		item.Sublist.Items = append(item.Sublist.Items, following...)
	}
	parentPath := path[:len(path)-1]
	parent, pl := doc.ItemAt(parentPath)
	j := parentPath[len(parentPath)-1]
	pl.Items = append(pl.Items[:j+1], append([]*mdoc.ListItem{item}, pl.Items[j+1:]...)...)
	if len(l.Items) == 0 {
		parent.Sublist = nil
		if len(parent.Inlines) == 0 {
			pl.Items = append(pl.Items[:j], pl.Items[j+1:]...)
		}
	}
	return item
}

// spliceBlocks replaces n blocks starting at i with repl.
func spliceBlocks(blocks []mdoc.Block, i, n int, repl ...mdoc.Block) []mdoc.Block {
	out := make([]mdoc.Block, 0, len(blocks)-n+len(repl))
	out = append(out, blocks[:i]...)
	out = append(out, repl...)
	return append(out, blocks[i+n:]...)
}
