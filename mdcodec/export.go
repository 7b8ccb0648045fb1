package mdcodec

import (
	"bytes"
	"io"
	"strings"

	"github.com/cds-snc/mdedit/mdoc"
)

// ExportOptions control Markdown serialization.
type ExportOptions struct {
	// HardBreaks writes the two space hard break marker before every line
	// break while walking the document, instead of leaving it to PostProcess.
	HardBreaks bool
}

// Export serializes doc to Markdown with the default registry.
func Export(doc *mdoc.Document) string {
	return defaultRegistry.Export(doc, ExportOptions{})
}

// Export serializes doc to Markdown. The document is not modified: a
// Canonical copy is written, top level blocks separated by one blank line,
// and adjacent lists further separated by an empty HTML comment. The output
// has no trailing newline.
func (reg *Registry) Export(doc *mdoc.Document, opts ExportOptions) string {
	var sb strings.Builder
	// strings.Builder never fails to write
	_ = reg.WriteDocument(&sb, doc, opts)
	return strings.TrimRight(sb.String(), "\n")
}

// WriteDocument writes the Markdown serialization of doc into out, followed
// by a final newline.
func (reg *Registry) WriteDocument(out io.Writer, doc *mdoc.Document, opts ExportOptions) error {
	w := Writer{out: out, reg: reg, opts: opts}
	w.buf.Grow(4096)
	return w.writeDocument(mdoc.Canonical(doc))
}

// Writer accumulates Markdown for transformer Export functions.
type Writer struct {
	out  io.Writer
	buf  bytes.Buffer
	reg  *Registry
	opts ExportOptions
	err  error

	atLineStart bool
	inHeading   bool
	inLink      int

	stack []renderContext
	renderContext
}

type renderContext struct {
	inLevel  int // indentation of continuation lines
	listBase int // indentation of list item markers
}

func (w *Writer) writeDocument(doc *mdoc.Document) (err error) {
	defer func() {
		if _, werr := w.buf.WriteTo(w.out); err == nil {
			err = werr
		}
	}()
	for i, b := range doc.Blocks {
		w.nl(2)
		if i > 0 && isList(doc.Blocks[i-1]) && isList(b) {
			w.WriteString(listSeparator)
			w.nl(2)
		}
		w.WriteBlock(b)
		if w.maybeFlush(); w.err != nil {
			return w.err
		}
	}
	w.nl(1)
	return nil
}

// listSeparator ends a list before a list of the other kind; the parser
// would otherwise continue the first list with the second one's items.
// Importing drops it.
const listSeparator = "<!-- -->"

func isList(b mdoc.Block) bool {
	_, ok := b.(*mdoc.List)
	return ok
}

// WriteBlock writes a block with the first transformer that matches it;
// blocks no transformer matches are written as plain text.
func (w *Writer) WriteBlock(b mdoc.Block) {
	w.atLineStart = true
	if t := w.reg.MatchNode(b); t != nil && t.Export != nil {
		t.Export(w, b)
		return
	}
	if in := mdoc.Content(b); in != nil {
		w.WriteInlines(*in)
	}
}

// WriteInlines writes inline content: text runs within their mark
// delimiters, and every other node with its transformer.
func (w *Writer) WriteInlines(in []mdoc.Inline) {
	var mw markWriter
	mw.formats = w.reg.TextFormats()
	for _, n := range in {
		switch n := n.(type) {
		case *mdoc.Text:
			mw.open(w, n.Marks)
			w.writeText(n.Value, len(mw.stack) > 0 || w.inLink > 0)
		default:
			mw.closeAll(w)
			if t := w.reg.MatchNode(n); t != nil && t.Export != nil {
				t.Export(w, n)
			} else if c := mdoc.Content(n); c != nil {
				w.WriteInlines(*c)
			}
		}
	}
	mw.closeAll(w)
}

// WriteString writes s verbatim.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.buf.WriteString(s)
	w.atLineStart = false
}

// writeText writes escaped text. When a closing delimiter may follow, a
// final backslash is written as a character reference: the parser does not
// close a span on a delimiter preceded by a backslash, escaped or not.
func (w *Writer) writeText(s string, delimited bool) {
	if s == "" {
		return
	}
	out := escapeText(s, w.atLineStart, w.inHeading)
	if delimited && strings.HasSuffix(s, `\`) {
		out = strings.TrimSuffix(out, `\\`) + backslashRef
	}
	w.buf.WriteString(out)
	w.atLineStart = false
}

const backslashRef = "&#92;"

func (w *Writer) lineBreak() {
	if w.opts.HardBreaks {
		w.buf.WriteString("  ")
	}
	w.buf.WriteByte('\n')
	w.pad(w.inLevel)
	w.atLineStart = true
}

func (w *Writer) enter(entering bool) bool {
	if entering {
		w.stack = append(w.stack, w.renderContext)
		return true
	}
	if i := len(w.stack) - 1; i >= 0 {
		w.renderContext = w.stack[i]
		w.stack = w.stack[:i]
	} else {
		w.renderContext = renderContext{}
	}
	return false
}

// nl ensures that the buffer ends with n newlines, unless it is empty.
func (w *Writer) nl(n int) {
	b := w.buf.Bytes()
	if len(b) == 0 {
		return
	}

	m := 0
	for i := len(b) - 1; m < n && i >= 0 && b[i] == '\n'; i-- {
		m++
	}

	for ; m < n; m++ {
		w.buf.WriteByte('\n')
	}
	w.atLineStart = true
}

func (w *Writer) pad(n int) {
	for i := 0; i < n; i++ {
		w.buf.WriteByte(' ')
	}
}

// maybeFlush writes every complete line buffered so far, except the last
// one, so that nl can still see the trailing newlines.
func (w *Writer) maybeFlush() {
	b := w.buf.Bytes()
	i := bytes.LastIndexByte(bytes.TrimRight(b, "\n"), '\n')
	if i < 0 || w.err != nil {
		return
	}
	n, err := w.out.Write(b[:i+1])
	w.buf.Next(n)
	w.err = err
}
