package mdoc

import (
	"fmt"
	"strconv"
	"strings"
)

// Point addresses a text position within a document.
//
// Path[0] indexes a top level block. When that block is a List, each
// following element indexes an item: first within the list, then within the
// previous item's sublist. Offset counts runes of the addressed block's
// flattened inline text, a LineBreak counting as one.
type Point struct {
	Path   []int
	Offset int
}

// Selection is an anchor and a focus point; it is collapsed (a caret) when
// both are equal.
type Selection struct {
	Anchor, Focus Point
}

// Caret returns a collapsed selection at p.
func Caret(p Point) Selection {
	return Selection{Anchor: p, Focus: p.Clone()}
}

// Clone returns a copy of p that shares no memory with it.
func (p Point) Clone() Point {
	return Point{Path: append([]int(nil), p.Path...), Offset: p.Offset}
}

// SamePath reports whether p and q address the same block.
func (p Point) SamePath(q Point) bool {
	if len(p.Path) != len(q.Path) {
		return false
	}
	for i := range p.Path {
		if p.Path[i] != q.Path[i] {
			return false
		}
	}
	return true
}

// Equal reports whether p and q are the same position.
func (p Point) Equal(q Point) bool {
	return p.Offset == q.Offset && p.SamePath(q)
}

// Before reports whether p precedes q in document order.
func (p Point) Before(q Point) bool {
	for i := 0; i < len(p.Path) && i < len(q.Path); i++ {
		if p.Path[i] != q.Path[i] {
			return p.Path[i] < q.Path[i]
		}
	}
	if len(p.Path) != len(q.Path) {
		// an item's own text precedes its sublist
		return len(p.Path) < len(q.Path)
	}
	return p.Offset < q.Offset
}

// String formats the point as a dotted path and an offset, e.g. "0.1:4".
func (p Point) String() string {
	return PathString(p.Path) + ":" + strconv.Itoa(p.Offset)
}

// PathString formats a path in dotted form.
func PathString(path []int) string {
	parts := make([]string, len(path))
	for i, n := range path {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// ParsePath parses a dotted path formatted by PathString.
func ParsePath(s string) ([]int, error) {
	if s == "" {
		return nil, fmt.Errorf("empty path")
	}
	parts := strings.Split(s, ".")
	path := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid path element %q", part)
		}
		path[i] = n
	}
	return path, nil
}

// Clone returns a copy of the selection.
func (sel Selection) Clone() Selection {
	return Selection{Anchor: sel.Anchor.Clone(), Focus: sel.Focus.Clone()}
}

// Collapsed reports whether the selection is a caret.
func (sel Selection) Collapsed() bool {
	return sel.Anchor.Equal(sel.Focus)
}

// Start returns the earlier of anchor and focus.
func (sel Selection) Start() Point {
	if sel.Focus.Before(sel.Anchor) {
		return sel.Focus
	}
	return sel.Anchor
}

// End returns the later of anchor and focus.
func (sel Selection) End() Point {
	if sel.Focus.Before(sel.Anchor) {
		return sel.Anchor
	}
	return sel.Focus
}

// SingleBlock reports whether the selection lies within one block.
func (sel Selection) SingleBlock() bool {
	return sel.Anchor.SamePath(sel.Focus)
}

func (sel Selection) String() string {
	if sel.Collapsed() {
		return sel.Focus.String()
	}
	return sel.Anchor.String() + "-" + sel.Focus.String()
}

// BlockAt returns the node addressed by path: a top level block, or a list
// item for longer paths. It returns nil for an invalid path.
func (doc *Document) BlockAt(path []int) Block {
	if len(path) == 0 || path[0] < 0 || path[0] >= len(doc.Blocks) {
		return nil
	}
	b := doc.Blocks[path[0]]
	if len(path) == 1 {
		return b
	}
	l, ok := b.(*List)
	if !ok {
		return nil
	}
	item, _ := itemAt(l, path[1:])
	if item == nil {
		return nil
	}
	return item
}

// ItemAt returns the list item addressed by path, with the list holding it.
func (doc *Document) ItemAt(path []int) (*ListItem, *List) {
	if len(path) < 2 || path[0] < 0 || path[0] >= len(doc.Blocks) {
		return nil, nil
	}
	l, ok := doc.Blocks[path[0]].(*List)
	if !ok {
		return nil, nil
	}
	return itemAt(l, path[1:])
}

func itemAt(l *List, path []int) (*ListItem, *List) {
	for {
		i := path[0]
		if l == nil || i < 0 || i >= len(l.Items) {
			return nil, nil
		}
		item := l.Items[i]
		if len(path) == 1 {
			return item, l
		}
		l, path = item.Sublist, path[1:]
	}
}

// Inlines returns the inline content of the text bearing node at path, or
// nil when the path addresses no such node.
func (doc *Document) Inlines(path []int) *[]Inline {
	b := doc.BlockAt(path)
	if b == nil {
		return nil
	}
	return Content(b)
}

// PathOf returns the path of a block or list item, or nil when it is not
// part of the document.
func (doc *Document) PathOf(target Block) []int {
	for i, b := range doc.Blocks {
		if b == target {
			return []int{i}
		}
		if l, ok := b.(*List); ok {
			if sub := listPathOf(l, target); sub != nil {
				return append([]int{i}, sub...)
			}
		}
	}
	return nil
}

func listPathOf(l *List, target Block) []int {
	for i, item := range l.Items {
		if item == target {
			return []int{i}
		}
		if item.Sublist != nil {
			if sub := listPathOf(item.Sublist, target); sub != nil {
				return append([]int{i}, sub...)
			}
		}
	}
	return nil
}

// First returns the first text position of the document.
func (doc *Document) First() Point {
	return doc.Clamp(Point{Path: []int{0}})
}

// Clamp returns the nearest valid point to p: the path is cut back to the
// deepest addressable text bearing node (or the first item of a list), and
// the offset is limited to that node's content.
func (doc *Document) Clamp(p Point) Point {
	if len(doc.Blocks) == 0 {
		return Point{Path: []int{0}}
	}
	path := append([]int(nil), p.Path...)
	if len(path) == 0 {
		path = []int{0}
	}
	if path[0] < 0 {
		path[0] = 0
	}
	if path[0] >= len(doc.Blocks) {
		path = []int{len(doc.Blocks) - 1}
		p.Offset = maxOffset
	}
	if l, ok := doc.Blocks[path[0]].(*List); ok {
		path = clampListPath(l, []int{path[0]}, path[1:])
	} else {
		path = path[:1]
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	if in := doc.Inlines(path); in != nil {
		if n := InlinesLen(*in); offset > n {
			offset = n
		}
	} else {
		offset = 0
	}
	return Point{Path: path, Offset: offset}
}

const maxOffset = int(^uint(0) >> 1)

func clampListPath(l *List, prefix, rest []int) []int {
	if len(l.Items) == 0 {
		return prefix
	}
	i := 0
	if len(rest) > 0 {
		i = rest[0]
		rest = rest[1:]
	}
	if i < 0 {
		i = 0
	}
	if i >= len(l.Items) {
		i = len(l.Items) - 1
	}
	prefix = append(prefix, i)
	if item := l.Items[i]; len(rest) > 0 && item.Sublist != nil {
		return clampListPath(item.Sublist, prefix, rest)
	}
	return prefix
}

// ClampSelection clamps both ends of a selection to valid points.
func (doc *Document) ClampSelection(sel Selection) Selection {
	return Selection{Anchor: doc.Clamp(sel.Anchor), Focus: doc.Clamp(sel.Focus)}
}
