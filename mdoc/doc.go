// Package mdoc implements the structured document model edited by mdedit.
//
// A Document is a tree: the root owns an ordered sequence of Blocks
// (paragraphs, headings, lists, horizontal rules), and text bearing blocks own
// an ordered sequence of Inline nodes (marked text runs, forced line breaks,
// links). Lists own ListItems, which in turn may own a nested List.
//
// The model is owned by a single editing session and is not safe for use
// from parallel goroutines.
package mdoc

// Node is implemented by every element of the document tree, including the
// Document itself.
type Node interface {
	node()
}

// Block is a structural unit of a document.
type Block interface {
	Node
	block()
}

// Inline is a content unit within a text bearing block.
type Inline interface {
	Node
	inline()
}

// Document is the root container of an editing session.
type Document struct {
	Blocks []Block
}

// New returns a document holding a single empty paragraph.
func New() *Document {
	return &Document{Blocks: []Block{&Paragraph{}}}
}

// Paragraph is a plain text block.
type Paragraph struct {
	Inlines []Inline
}

// Heading is a text block with a level in [1, 6].
type Heading struct {
	Level   int
	Inlines []Inline
}

// List is an ordered or unordered sequence of items.
//
// Depth is 1 for a list directly under the document, and one more than its
// parent list for a list nested within an item. It is maintained by Relevel.
type List struct {
	Ordered bool
	Depth   int
	Items   []*ListItem
}

// ListItem is a single list entry: its own inline content, followed by an
// optional nested list.
type ListItem struct {
	Inlines []Inline
	Sublist *List
}

// HorizontalRule is a thematic break; it has no content.
type HorizontalRule struct{}

// Text is a run of characters sharing one mark set.
type Text struct {
	Value string
	Marks Marks
}

// LineBreak is a forced line break within a block.
type LineBreak struct{}

// Link wraps inline content with a destination.
type Link struct {
	Href     string
	Children []Inline
}

func (*Document) node()       {}
func (*Paragraph) node()      {}
func (*Heading) node()        {}
func (*List) node()           {}
func (*ListItem) node()       {}
func (*HorizontalRule) node() {}
func (*Text) node()           {}
func (*LineBreak) node()      {}
func (*Link) node()           {}

func (*Paragraph) block()      {}
func (*Heading) block()        {}
func (*List) block()           {}
func (*ListItem) block()       {}
func (*HorizontalRule) block() {}

func (*Text) inline()      {}
func (*LineBreak) inline() {}
func (*Link) inline()      {}

// Content returns a pointer to the inline content of a text bearing node
// (paragraph, heading, list item, or link), or nil for any other node.
func Content(n Node) *[]Inline {
	switch n := n.(type) {
	case *Paragraph:
		return &n.Inlines
	case *Heading:
		return &n.Inlines
	case *ListItem:
		return &n.Inlines
	case *Link:
		return &n.Children
	}
	return nil
}

// Clone returns a deep copy of the document.
func (doc *Document) Clone() *Document {
	if doc == nil {
		return nil
	}
	c := &Document{Blocks: make([]Block, 0, len(doc.Blocks))}
	for _, b := range doc.Blocks {
		if b != nil {
			c.Blocks = append(c.Blocks, CloneBlock(b))
		}
	}
	return c
}

// CloneBlock returns a deep copy of a block.
func CloneBlock(b Block) Block {
	switch b := b.(type) {
	case *Paragraph:
		return &Paragraph{Inlines: CloneInlines(b.Inlines)}
	case *Heading:
		return &Heading{Level: b.Level, Inlines: CloneInlines(b.Inlines)}
	case *List:
		return cloneList(b)
	case *ListItem:
		return cloneItem(b)
	case *HorizontalRule:
		return &HorizontalRule{}
	}
	return nil
}

func cloneList(l *List) *List {
	if l == nil {
		return nil
	}
	c := &List{Ordered: l.Ordered, Depth: l.Depth, Items: make([]*ListItem, 0, len(l.Items))}
	for _, item := range l.Items {
		if item != nil {
			c.Items = append(c.Items, cloneItem(item))
		}
	}
	return c
}

func cloneItem(item *ListItem) *ListItem {
	return &ListItem{
		Inlines: CloneInlines(item.Inlines),
		Sublist: cloneList(item.Sublist),
	}
}

// CloneInlines returns a deep copy of an inline sequence.
func CloneInlines(in []Inline) []Inline {
	if in == nil {
		return nil
	}
	out := make([]Inline, 0, len(in))
	for _, n := range in {
		switch n := n.(type) {
		case *Text:
			out = append(out, &Text{Value: n.Value, Marks: n.Marks})
		case *LineBreak:
			out = append(out, &LineBreak{})
		case *Link:
			out = append(out, &Link{Href: n.Href, Children: CloneInlines(n.Children)})
		}
	}
	return out
}
