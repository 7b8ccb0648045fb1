package mdcodec

import (
	"bytes"
	"strings"

	"github.com/russross/blackfriday"
	"golang.org/x/text/unicode/norm"

	"github.com/cds-snc/mdedit/mdoc"
)

const parserExtensions = blackfriday.SpaceHeadings | blackfriday.BackslashLineBreak

// Import parses Markdown with the default registry.
func Import(markdown string) *mdoc.Document {
	return defaultRegistry.Import(markdown)
}

// ImportBytes parses Markdown with the default registry.
func ImportBytes(markdown []byte) *mdoc.Document {
	return defaultRegistry.ImportBytes(markdown)
}

// Import parses Markdown into a Canonical document. It never fails: syntax
// without a transformer degrades to its text content, and empty input yields
// a document holding one empty paragraph.
func (reg *Registry) Import(markdown string) *mdoc.Document {
	return reg.ImportBytes([]byte(markdown))
}

// ImportBytes is Import for a byte slice.
func (reg *Registry) ImportBytes(markdown []byte) (doc *mdoc.Document) {
	if len(bytes.TrimSpace(markdown)) == 0 {
		return mdoc.New()
	}
	src := norm.NFC.Bytes(markdown)
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))

	defer func() {
		if recover() != nil {
			doc = plainDocument(string(src))
		}
	}()

	root := blackfriday.New(blackfriday.WithExtensions(parserExtensions)).Parse(src)
	im := Importer{reg: reg}
	return mdoc.Canonical(&mdoc.Document{Blocks: im.Blocks(root)})
}

// plainDocument splits text into paragraphs at blank lines, without
// interpreting any Markdown.
func plainDocument(src string) *mdoc.Document {
	doc := &mdoc.Document{}
	for _, part := range strings.Split(src, "\n\n") {
		doc.Blocks = append(doc.Blocks, &mdoc.Paragraph{
			Inlines: []mdoc.Inline{&mdoc.Text{Value: part}},
		})
	}
	return mdoc.Canonical(doc)
}

// Importer converts parsed Markdown nodes into document nodes for
// transformer Import functions.
type Importer struct {
	reg *Registry
}

// Blocks imports the children of a parsed container node.
func (im *Importer) Blocks(parent *blackfriday.Node) []mdoc.Block {
	var out []mdoc.Block
	for n := parent.FirstChild; n != nil; n = n.Next {
		out = append(out, im.Block(n)...)
	}
	return out
}

// Block imports one parsed block node.
func (im *Importer) Block(n *blackfriday.Node) []mdoc.Block {
	if t := im.reg.MatchParsed(n); t != nil && t.ImportBlock != nil {
		return t.ImportBlock(im, n)
	}
	switch n.Type {
	case blackfriday.CodeBlock, blackfriday.HTMLBlock:
		if n.Type == blackfriday.HTMLBlock && isHTMLComment(n.Literal) {
			return nil
		}
		return []mdoc.Block{&mdoc.Paragraph{Inlines: []mdoc.Inline{
			&mdoc.Text{Value: strings.TrimRight(string(n.Literal), "\n")},
		}}}
	case blackfriday.Table, blackfriday.TableHead, blackfriday.TableBody:
		return im.Blocks(n)
	case blackfriday.TableRow:
		var cells []mdoc.Inline
		for c := n.FirstChild; c != nil; c = c.Next {
			if len(cells) > 0 {
				cells = append(cells, &mdoc.Text{Value: " "})
			}
			cells = append(cells, im.Inlines(c, 0)...)
		}
		return []mdoc.Block{&mdoc.Paragraph{Inlines: cells}}
	}
	if n.FirstChild == nil {
		if len(n.Literal) == 0 {
			return nil
		}
		return []mdoc.Block{&mdoc.Paragraph{Inlines: []mdoc.Inline{
			&mdoc.Text{Value: string(n.Literal)},
		}}}
	}
	if isBlockContainer(n) {
		return im.Blocks(n)
	}
	return []mdoc.Block{&mdoc.Paragraph{Inlines: im.Inlines(n, 0)}}
}

// isBlockContainer reports whether a parsed node holds blocks rather than
// inline content.
func isBlockContainer(n *blackfriday.Node) bool {
	switch n.Type {
	case blackfriday.Document, blackfriday.BlockQuote, blackfriday.Item:
		return true
	}
	return false
}

// Inlines imports the children of a parsed node as inline content with the
// given marks applied.
func (im *Importer) Inlines(parent *blackfriday.Node, marks mdoc.Marks) []mdoc.Inline {
	var out []mdoc.Inline
	for n := parent.FirstChild; n != nil; n = n.Next {
		out = append(out, im.Inline(n, marks)...)
	}
	return out
}

// Inline imports one parsed inline node.
func (im *Importer) Inline(n *blackfriday.Node, marks mdoc.Marks) []mdoc.Inline {
	if t := im.reg.MatchParsed(n); t != nil {
		switch {
		case t.Kind == TextFormatTransformer:
			return im.Inlines(n, marks|t.Marks)
		case t.ImportInline != nil:
			return t.ImportInline(im, n, marks)
		}
	}
	if n.FirstChild != nil {
		return im.Inlines(n, marks)
	}
	if len(n.Literal) == 0 {
		return nil
	}
	value := string(n.Literal)
	if n.Type == blackfriday.Text {
		value = unescapeEntity(value)
	}
	return []mdoc.Inline{&mdoc.Text{Value: value, Marks: marks}}
}
