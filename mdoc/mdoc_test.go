package mdoc_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/cds-snc/mdedit/mdoc"
)

func text(s string) *Text             { return &Text{Value: s} }
func marked(s string, m Marks) *Text { return &Text{Value: s, Marks: m} }
func para(in ...Inline) *Paragraph    { return &Paragraph{Inlines: in} }
func item(in ...Inline) *ListItem     { return &ListItem{Inlines: in} }

func TestNew(t *testing.T) {
	doc := New()
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, &Paragraph{}, doc.Blocks[0])
}

func TestNormalize(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   *Document
		out  *Document
	}{
		{
			name: "empty document",
			in:   &Document{},
			out:  &Document{Blocks: []Block{&Paragraph{}}},
		},
		{
			name: "merges text runs",
			in:   &Document{Blocks: []Block{para(text("a"), text(""), text("b"), marked("c", Bold), marked("d", Bold))}},
			out:  &Document{Blocks: []Block{para(text("ab"), marked("cd", Bold))}},
		},
		{
			name: "newlines become line breaks",
			in:   &Document{Blocks: []Block{para(text("a\nb\r\nc"))}},
			out:  &Document{Blocks: []Block{para(text("a"), &LineBreak{}, text("b"), &LineBreak{}, text("c"))}},
		},
		{
			name: "flattens nested links",
			in: &Document{Blocks: []Block{para(&Link{Href: "u", Children: []Inline{
				text("a"), &Link{Href: "v", Children: []Inline{text("b")}},
			}})}},
			out: &Document{Blocks: []Block{para(&Link{Href: "u", Children: []Inline{text("ab")}})}},
		},
		{
			name: "drops empty links",
			in:   &Document{Blocks: []Block{para(text("a"), &Link{Href: "u"})}},
			out:  &Document{Blocks: []Block{para(text("a"))}},
		},
		{
			name: "merges adjacent lists of a kind",
			in: &Document{Blocks: []Block{
				&List{Items: []*ListItem{item(text("a"))}},
				&List{Items: []*ListItem{item(text("b"))}},
				&List{Ordered: true, Items: []*ListItem{item(text("c"))}},
				&List{},
			}},
			out: &Document{Blocks: []Block{
				&List{Depth: 1, Items: []*ListItem{item(text("a")), item(text("b"))}},
				&List{Depth: 1, Ordered: true, Items: []*ListItem{item(text("c"))}},
			}},
		},
		{
			name: "wraps stray items",
			in:   &Document{Blocks: []Block{item(text("a"))}},
			out:  &Document{Blocks: []Block{&List{Depth: 1, Items: []*ListItem{item(text("a"))}}}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			Normalize(tc.in)
			assert.Equal(t, tc.out, tc.in)
		})
	}
}

func TestCanonical(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   *Document
		out  *Document
	}{
		{
			name: "trims line breaks at block edges",
			in:   &Document{Blocks: []Block{para(&LineBreak{}, text("a "), &LineBreak{}, &LineBreak{}, text(" b"), &LineBreak{})}},
			out:  &Document{Blocks: []Block{para(text("a"), &LineBreak{}, text("b"))}},
		},
		{
			name: "heading line breaks become spaces",
			in:   &Document{Blocks: []Block{&Heading{Level: 2, Inlines: []Inline{text("a"), &LineBreak{}, text("b")}}}},
			out:  &Document{Blocks: []Block{&Heading{Level: 2, Inlines: []Inline{text("a b")}}}},
		},
		{
			name: "moves whitespace out of marks",
			in:   &Document{Blocks: []Block{para(text("x"), marked(" a ", Bold), marked(" ", Italic), text("y"))}},
			out:  &Document{Blocks: []Block{para(text("x "), marked("a", Bold), text("  y"))}},
		},
		{
			name: "moves line breaks out of link edges",
			in: &Document{Blocks: []Block{
				para(text("a"), &Link{Href: "http://x", Children: []Inline{text("b"), &LineBreak{}}}, text("c")),
				para(text("d"), &Link{Href: "http://y", Children: []Inline{&LineBreak{}, text("e"), &LineBreak{}, text("f")}}),
				para(&Link{Href: "http://z", Children: []Inline{&LineBreak{}}}, text("g")),
			}},
			out: &Document{Blocks: []Block{
				para(text("a"), &Link{Href: "http://x", Children: []Inline{text("b")}}, &LineBreak{}, text("c")),
				para(text("d"), &LineBreak{}, &Link{Href: "http://y", Children: []Inline{text("e"), &LineBreak{}, text("f")}}),
				para(text("g")),
			}},
		},
		{
			name: "drops empty paragraphs",
			in:   &Document{Blocks: []Block{para(), para(text("a")), para(text(" "))}},
			out:  &Document{Blocks: []Block{para(text("a"))}},
		},
		{
			name: "keeps one paragraph",
			in:   &Document{Blocks: []Block{para(text("  "))}},
			out:  &Document{Blocks: []Block{&Paragraph{}}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			before := tc.in.Clone()
			out := Canonical(tc.in)
			assert.True(t, Equal(tc.out, out), "%v", Diff(tc.out, out))
			assert.True(t, Equal(before, tc.in), "input must not be modified")
		})
	}
}

func TestSplitInlines(t *testing.T) {
	in := []Inline{
		marked("ab", Bold),
		&LineBreak{},
		&Link{Href: "u", Children: []Inline{text("cdé")}},
	}
	assert.Equal(t, 6, InlinesLen(in))
	assert.Equal(t, "ab\ncdé", InlineText(in))

	before, after := SplitInlines(in, 1)
	assert.Equal(t, []Inline{marked("a", Bold)}, before)
	assert.Equal(t, []Inline{marked("b", Bold), &LineBreak{}, in[2]}, after)

	before, after = SplitInlines(in, 5)
	assert.Equal(t, []Inline{
		marked("ab", Bold),
		&LineBreak{},
		&Link{Href: "u", Children: []Inline{text("cd")}},
	}, before)
	assert.Equal(t, []Inline{&Link{Href: "u", Children: []Inline{text("é")}}}, after)

	assert.Equal(t, "b\nc", InlineText(SliceInlines(in, 1, 4)))
	assert.Equal(t, "aXdé", InlineText(ReplaceInlines(in, 1, 4, text("X"))))
	assert.Equal(t, "ab\ncdé", InlineText(in), "input must not be modified")
}

func TestMarksAt(t *testing.T) {
	in := []Inline{marked("ab", Bold), text("cd"), &LineBreak{}, marked("e", Italic)}
	for _, tc := range []struct {
		offset int
		marks  Marks
	}{
		{0, Bold},
		{1, Bold},
		{2, Bold},
		{3, 0},
		{4, 0},
		{5, 0},
		{6, Italic},
	} {
		t.Run(fmt.Sprint(tc.offset), func(t *testing.T) {
			assert.Equal(t, tc.marks, MarksAt(in, tc.offset))
		})
	}
}

func TestLinkAt(t *testing.T) {
	in := []Inline{text("ab"), &Link{Href: "u", Children: []Inline{text("cd")}}, text("e")}
	assert.Equal(t, -1, LinkAt(in, 2))
	assert.Equal(t, 1, LinkAt(in, 3))
	assert.Equal(t, 1, LinkAt(in, 4))
	assert.Equal(t, -1, LinkAt(in, 5))
	assert.Equal(t, []int{1}, LinksWithin(in, 0, 3))
	assert.Empty(t, LinksWithin(in, 4, 5))
	assert.Equal(t, 2, InlineStart(in, 1))
	assert.Equal(t, []Inline{text("ab"), text("cd"), text("e")}, Unlink(in))
}

func nestedDoc() *Document {
	doc := &Document{Blocks: []Block{
		para(text("intro")),
		&List{Items: []*ListItem{
			item(text("a")),
			{
				Inlines: []Inline{text("b")},
				Sublist: &List{Ordered: true, Items: []*ListItem{
					item(text("b1")),
					{Inlines: []Inline{text("b2")}, Sublist: &List{Items: []*ListItem{item(text("b2a"))}}},
				}},
			},
		}},
		&HorizontalRule{},
	}}
	Normalize(doc)
	return doc
}

func TestDocument_paths(t *testing.T) {
	doc := nestedDoc()

	b2, l := doc.ItemAt([]int{1, 1, 1})
	require.NotNil(t, b2)
	assert.Equal(t, "b2", InlineText(b2.Inlines))
	assert.Equal(t, 2, l.Depth)
	assert.Equal(t, 3, b2.Sublist.Depth)
	assert.Equal(t, 1, Height(b2))
	assert.Equal(t, []int{1, 1, 1}, doc.PathOf(b2))
	assert.Equal(t, Block(b2), doc.BlockAt([]int{1, 1, 1}))

	top, _ := doc.ItemAt([]int{1, 1})
	assert.Equal(t, 2, Height(top))

	assert.Nil(t, doc.BlockAt([]int{0, 1}))
	assert.Nil(t, doc.BlockAt([]int{9}))
	item, _ := doc.ItemAt([]int{1, 5})
	assert.Nil(t, item)

	for _, tc := range []struct {
		in, out Point
	}{
		{Point{Path: []int{0}, Offset: 3}, Point{Path: []int{0}, Offset: 3}},
		{Point{Path: []int{0}, Offset: 30}, Point{Path: []int{0}, Offset: 5}},
		{Point{Path: []int{0, 4}, Offset: 1}, Point{Path: []int{0}, Offset: 1}},
		{Point{Path: []int{1}, Offset: 1}, Point{Path: []int{1, 0}, Offset: 1}},
		{Point{Path: []int{1, 1, 7}, Offset: 9}, Point{Path: []int{1, 1, 1}, Offset: 2}},
		{Point{Path: []int{2}, Offset: 9}, Point{Path: []int{2}, Offset: 0}},
		{Point{Path: []int{7}, Offset: 1}, Point{Path: []int{2}, Offset: 0}},
	} {
		t.Run(tc.in.String(), func(t *testing.T) {
			assert.Equal(t, tc.out, doc.Clamp(tc.in))
		})
	}
}

func TestSelection(t *testing.T) {
	a := Point{Path: []int{1, 0}, Offset: 4}
	b := Point{Path: []int{1, 0, 2}, Offset: 0}
	c := Point{Path: []int{2}, Offset: 0}
	assert.True(t, a.Before(b))
	assert.True(t, b.Before(c))
	assert.False(t, c.Before(a))

	sel := Selection{Anchor: c, Focus: a}
	assert.False(t, sel.Collapsed())
	assert.Equal(t, a, sel.Start())
	assert.Equal(t, c, sel.End())
	assert.False(t, sel.SingleBlock())
	assert.True(t, Caret(a).Collapsed())

	path, err := ParsePath("1.0.2")
	require.NoError(t, err)
	assert.Equal(t, b.Path, path)
	assert.Equal(t, "1.0.2:0", b.String())
	_, err = ParsePath("1.x")
	assert.Error(t, err)
}

func TestWalk(t *testing.T) {
	doc := nestedDoc()
	var texts []string
	Walk(doc, func(n Node, entering bool) WalkStatus {
		if !entering {
			return GoToNext
		}
		switch n := n.(type) {
		case *Text:
			texts = append(texts, n.Value)
		case *ListItem:
			if InlineText(n.Inlines) == "b2" {
				return SkipChildren
			}
		}
		return GoToNext
	})
	assert.Equal(t, []string{"intro", "a", "b", "b1"}, texts)

	var n int
	Walk(doc, func(Node, bool) WalkStatus {
		n++
		if n == 3 {
			return Terminate
		}
		return GoToNext
	})
	assert.Equal(t, 3, n)
}

func TestDocument_Format(t *testing.T) {
	doc := nestedDoc()
	assert.Equal(t, "Paragraph List Ruler", fmt.Sprintf("%v", doc))
	assert.Equal(t, `0. Paragraph["intro"]
1. List depth=1 items=2
  0. Item["a"]
  1. Item["b"]
     OrderedList
    0. Item["b1"]
    1. Item["b2"]
       List
      0. Item["b2a"]
2. Ruler`, fmt.Sprintf("%+v", doc))
	assert.Equal(t, `["a"/bold+italic BR Link["x"](u)]`, fmt.Sprintf("%+v", para(
		marked("a", Bold|Italic), &LineBreak{}, &Link{Href: "u", Children: []Inline{text("x")}},
	))[len("Paragraph"):])
	assert.Equal(t, "-- empty --", fmt.Sprintf("%v", &Document{}))
}

func TestMarks(t *testing.T) {
	assert.Equal(t, "plain", Marks(0).String())
	assert.Equal(t, "bold+italic", (Italic | Bold).String())
	m, err := ParseMarks("italic+bold")
	require.NoError(t, err)
	assert.Equal(t, Bold|Italic, m)
	_, err = ParseMarks("underline")
	assert.Error(t, err)
}
