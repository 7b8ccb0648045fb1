package mdcodec

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/russross/blackfriday"

	"github.com/cds-snc/mdedit/mdoc"
)

// Default transformers, in priority order.
var (
	Heading = &Transformer{
		Name:     "heading",
		Kind:     BlockTransformer,
		Priority: 10,
		Pattern:  regexp.MustCompile(`^(#{1,6})\s`),
		Matches:  isNode[*mdoc.Heading],
		Export: func(w *Writer, n mdoc.Node) {
			h := n.(*mdoc.Heading)
			w.WriteString(strings.Repeat("#", h.Level))
			w.WriteString(" ")
			w.inHeading = true
			w.WriteInlines(h.Inlines)
			w.inHeading = false
		},
		Accepts: isParsed(blackfriday.Heading),
		ImportBlock: func(im *Importer, n *blackfriday.Node) []mdoc.Block {
			return []mdoc.Block{&mdoc.Heading{Level: n.Level, Inlines: im.Inlines(n, 0)}}
		},
	}

	HorizontalRule = &Transformer{
		Name:     "horizontal-rule",
		Kind:     BlockTransformer,
		Priority: 20,
		Pattern:  regexp.MustCompile(`^(?:---|\*\*\*|___)\s?$`),
		Matches:  isNode[*mdoc.HorizontalRule],
		Export: func(w *Writer, _ mdoc.Node) {
			w.WriteString("---")
		},
		Accepts: isParsed(blackfriday.HorizontalRule),
		ImportBlock: func(*Importer, *blackfriday.Node) []mdoc.Block {
			return []mdoc.Block{&mdoc.HorizontalRule{}}
		},
	}

	OrderedList = &Transformer{
		Name:     "ordered-list",
		Kind:     BlockTransformer,
		Priority: 30,
		Pattern:  regexp.MustCompile(`^(\s*)(\d{1,9})\.\s`),
		Matches: func(n mdoc.Node) bool {
			l, ok := n.(*mdoc.List)
			return ok && l.Ordered
		},
		Export: exportList,
		Accepts: func(n *blackfriday.Node) bool {
			return n.Type == blackfriday.List && n.ListFlags&blackfriday.ListTypeOrdered != 0
		},
		ImportBlock: importList,
	}

	UnorderedList = &Transformer{
		Name:     "unordered-list",
		Kind:     BlockTransformer,
		Priority: 31,
		Pattern:  regexp.MustCompile(`^(\s*)[-*+]\s`),
		Matches: func(n mdoc.Node) bool {
			l, ok := n.(*mdoc.List)
			return ok && !l.Ordered
		},
		Export: exportList,
		Accepts: func(n *blackfriday.Node) bool {
			return n.Type == blackfriday.List && n.ListFlags&blackfriday.ListTypeOrdered == 0
		},
		ImportBlock: importList,
	}

	Paragraph = &Transformer{
		Name:     "paragraph",
		Kind:     BlockTransformer,
		Priority: 100,
		Matches:  isNode[*mdoc.Paragraph],
		Export: func(w *Writer, n mdoc.Node) {
			w.WriteInlines(n.(*mdoc.Paragraph).Inlines)
		},
		Accepts: isParsed(blackfriday.Paragraph),
		ImportBlock: func(im *Importer, n *blackfriday.Node) []mdoc.Block {
			return []mdoc.Block{&mdoc.Paragraph{Inlines: im.Inlines(n, 0)}}
		},
	}

	Link = &Transformer{
		Name:     "link",
		Kind:     ElementTransformer,
		Priority: 200,
		Pattern:  regexp.MustCompile(`\[([^\[\]]+)\]\(([^()\s]+)\)$`),
		Matches:  isNode[*mdoc.Link],
		Export: func(w *Writer, n mdoc.Node) {
			link := n.(*mdoc.Link)
			if link.Href == "" {
				w.WriteInlines(link.Children)
				return
			}
			w.WriteString("[")
			w.inLink++
			w.WriteInlines(link.Children)
			w.inLink--
			w.WriteString("](")
			w.WriteString(escapeHref(link.Href))
			w.WriteString(")")
		},
		Accepts: isParsed(blackfriday.Link),
		ImportInline: func(im *Importer, n *blackfriday.Node, marks mdoc.Marks) []mdoc.Inline {
			return []mdoc.Inline{&mdoc.Link{
				Href:     string(n.Destination),
				Children: im.Inlines(n, marks),
			}}
		},
	}

	Bold = &Transformer{
		Name:     "bold",
		Kind:     TextFormatTransformer,
		Priority: 300,
		Pattern:  regexp.MustCompile(`\*\*([^*\s](?:[^*]*[^*\s])?)\*\*$`),
		Marks:    mdoc.Bold,
		Delim:    "**",
		Accepts:  isParsed(blackfriday.Strong),
	}

	Italic = &Transformer{
		Name:     "italic",
		Kind:     TextFormatTransformer,
		Priority: 310,
		Pattern:  regexp.MustCompile(`(?:^|[^_\\])_([^_\s](?:[^_]*[^_\s])?)_$`),
		Marks:    mdoc.Italic,
		Delim:    "_",
		Accepts:  isParsed(blackfriday.Emph),
	}

	LineBreak = &Transformer{
		Name:     "line-break",
		Kind:     ElementTransformer,
		Priority: 400,
		Matches:  isNode[*mdoc.LineBreak],
		Export: func(w *Writer, _ mdoc.Node) {
			w.lineBreak()
		},
		Accepts: func(n *blackfriday.Node) bool {
			return n.Type == blackfriday.Hardbreak || n.Type == blackfriday.Softbreak
		},
		ImportInline: func(*Importer, *blackfriday.Node, mdoc.Marks) []mdoc.Inline {
			return []mdoc.Inline{&mdoc.LineBreak{}}
		},
	}
)

func isNode[T mdoc.Node](n mdoc.Node) bool {
	_, ok := n.(T)
	return ok
}

func isParsed(typ blackfriday.NodeType) func(*blackfriday.Node) bool {
	return func(n *blackfriday.Node) bool { return n.Type == typ }
}

// exportList writes list items on consecutive lines, nested lists indented
// by four spaces per level.
func exportList(w *Writer, n mdoc.Node) {
	l := n.(*mdoc.List)
	for i, item := range l.Items {
		w.nl(1)
		w.enter(true)
		w.pad(w.listBase)
		marker := "- "
		if l.Ordered {
			marker = strconv.Itoa(i+1) + ". "
		}
		w.WriteString(marker)
		w.atLineStart = true
		w.inLevel = w.listBase + len(marker)
		w.WriteInlines(item.Inlines)
		if item.Sublist != nil {
			w.listBase += listIndent
			w.WriteBlock(item.Sublist)
		}
		w.enter(false)
	}
}

const listIndent = 4

// importList converts a parsed list; every block within an item contributes
// its inline content, joined by line breaks, and nested lists become the
// item's sublist.
func importList(im *Importer, n *blackfriday.Node) []mdoc.Block {
	l := &mdoc.List{Ordered: n.ListFlags&blackfriday.ListTypeOrdered != 0}
	for it := n.FirstChild; it != nil; it = it.Next {
		item := &mdoc.ListItem{}
		for c := it.FirstChild; c != nil; c = c.Next {
			for _, b := range im.Block(c) {
				switch b := b.(type) {
				case *mdoc.List:
					if item.Sublist == nil {
						item.Sublist = &mdoc.List{Ordered: b.Ordered}
					}
					item.Sublist.Items = append(item.Sublist.Items, b.Items...)
				default:
					in := mdoc.Content(b)
					if in == nil || len(*in) == 0 {
						continue
					}
					if len(item.Inlines) > 0 {
						item.Inlines = append(item.Inlines, &mdoc.LineBreak{})
					}
					item.Inlines = append(item.Inlines, *in...)
				}
			}
		}
		l.Items = append(l.Items, item)
	}
	return []mdoc.Block{l}
}
