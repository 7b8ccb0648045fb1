package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cds-snc/mdedit/mdoc"
)

func item(s string, sub ...*mdoc.ListItem) *mdoc.ListItem {
	it := &mdoc.ListItem{}
	if s != "" {
		it.Inlines = []mdoc.Inline{&mdoc.Text{Value: s}}
	}
	if len(sub) > 0 {
		it.Sublist = &mdoc.List{Items: sub}
	}
	return it
}

func list(items ...*mdoc.ListItem) *mdoc.Document {
	doc := &mdoc.Document{Blocks: []mdoc.Block{&mdoc.List{Items: items}}}
	mdoc.Normalize(doc)
	return doc
}

func TestIndentItem(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   *mdoc.Document
		path []int
		out  *mdoc.Document
	}{
		{"into previous sibling", list(item("a"), item("b")), []int{0, 1}, list(item("a", item("b")))},
		{"after existing sublist", list(item("a", item("x")), item("b", item("c"))), []int{0, 1},
			list(item("a", item("x"), item("b", item("c"))))},
		{"first item wraps", list(item("a"), item("b")), []int{0, 0}, list(item("", item("a")), item("b"))},
	} {
		t.Run(tc.name, func(t *testing.T) {
			doc := tc.in
			moved := indentItem(doc, tc.path)
			require.NotNil(t, moved)
			mdoc.Normalize(doc)
			assert.True(t, mdoc.Equal(tc.out, doc), "%v\nGOT: %+v", mdoc.Diff(tc.out, doc), doc)
		})
	}

	doc := &mdoc.Document{Blocks: []mdoc.Block{&mdoc.Paragraph{}}}
	assert.Nil(t, indentItem(doc, []int{0}))
}

func TestOutdentItem(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   *mdoc.Document
		path []int
		out  *mdoc.Document
	}{
		{"after parent", list(item("a", item("b"), item("c")), item("d")), []int{0, 0, 0},
			list(item("a"), item("b", item("c")), item("d"))},
		{"empty wrapper removed", list(item("a", item("", item("b")))), []int{0, 0, 0, 0},
			list(item("a", item("b")))},
		{"to paragraph", list(item("a"), item("b", item("c")), item("d")), []int{0, 1},
			&mdoc.Document{Blocks: []mdoc.Block{
				&mdoc.List{Items: []*mdoc.ListItem{item("a")}},
				&mdoc.Paragraph{Inlines: []mdoc.Inline{&mdoc.Text{Value: "b"}}},
				&mdoc.List{Items: []*mdoc.ListItem{item("c"), item("d")}},
			}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			doc := tc.in
			moved := outdentItem(doc, tc.path)
			require.NotNil(t, moved)
			mdoc.Normalize(doc)
			assert.True(t, mdoc.Equal(tc.out, doc), "%v\nGOT: %+v", mdoc.Diff(tc.out, doc), doc)
		})
	}
}
