// Package mdcodec converts between mdoc documents and Markdown text.
//
// Conversion in both directions is driven by a Registry of Transformers: each
// transformer recognizes one kind of document node for export, one kind of
// parsed Markdown node for import, and the Markdown syntax it produces at the
// start of a line (used to detect Markdown shortcuts while typing).
// Transformers are consulted in ascending priority order; the first match
// wins.
package mdcodec

import (
	"regexp"
	"sort"

	"github.com/russross/blackfriday"

	"github.com/cds-snc/mdedit/mdoc"
)

// Kind classifies transformers by the document nodes they handle.
type Kind int

// Kind constants.
const (
	BlockTransformer Kind = iota
	ElementTransformer
	TextFormatTransformer
)

func (k Kind) String() string {
	switch k {
	case BlockTransformer:
		return "block"
	case ElementTransformer:
		return "element"
	case TextFormatTransformer:
		return "text-format"
	}
	return "invalid"
}

// Transformer is one rule of Markdown conversion.
type Transformer struct {
	Name     string
	Kind     Kind
	Priority int

	// Pattern recognizes the transformer's syntax; block patterns are
	// anchored at the start of a line, inline patterns at the end of the
	// text typed so far.
	Pattern *regexp.Regexp

	// Marks and Delim define a text format: the marks it represents and the
	// delimiter written on both sides of marked text.
	Marks mdoc.Marks
	Delim string

	// Matches reports whether the transformer exports a document node;
	// Export writes its Markdown.
	Matches func(mdoc.Node) bool
	Export  func(w *Writer, n mdoc.Node)

	// Accepts reports whether the transformer imports a parsed node;
	// ImportBlock or ImportInline convert it, according to Kind. Text
	// formats need neither: their marks are applied to the node's content.
	Accepts      func(*blackfriday.Node) bool
	ImportBlock  func(im *Importer, n *blackfriday.Node) []mdoc.Block
	ImportInline func(im *Importer, n *blackfriday.Node, marks mdoc.Marks) []mdoc.Inline
}

// Registry is an ordered set of transformers.
type Registry struct {
	ts []*Transformer
}

// NewRegistry creates a registry holding the given transformers.
func NewRegistry(ts ...*Transformer) *Registry {
	reg := &Registry{}
	reg.Register(ts...)
	return reg
}

// Register adds transformers, keeping the registry sorted by priority;
// transformers of equal priority keep their registration order.
func (reg *Registry) Register(ts ...*Transformer) {
	reg.ts = append(reg.ts, ts...)
	sort.SliceStable(reg.ts, func(i, j int) bool {
		return reg.ts[i].Priority < reg.ts[j].Priority
	})
}

// Ordered returns the transformers in the order they are consulted.
func (reg *Registry) Ordered() []*Transformer {
	return append([]*Transformer(nil), reg.ts...)
}

// Lookup returns the transformer with the given name, or nil.
func (reg *Registry) Lookup(name string) *Transformer {
	for _, t := range reg.ts {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// MatchNode returns the first transformer exporting n, or nil.
func (reg *Registry) MatchNode(n mdoc.Node) *Transformer {
	for _, t := range reg.ts {
		if t.Matches != nil && t.Matches(n) {
			return t
		}
	}
	return nil
}

// MatchParsed returns the first transformer importing n, or nil.
func (reg *Registry) MatchParsed(n *blackfriday.Node) *Transformer {
	for _, t := range reg.ts {
		if t.Accepts != nil && t.Accepts(n) {
			return t
		}
	}
	return nil
}

// MatchLine returns the first block transformer whose pattern matches the
// start of line, along with the submatches.
func (reg *Registry) MatchLine(line string) (*Transformer, []string) {
	for _, t := range reg.ts {
		if t.Kind != BlockTransformer || t.Pattern == nil {
			continue
		}
		if m := t.Pattern.FindStringSubmatch(line); m != nil {
			return t, m
		}
	}
	return nil, nil
}

// MatchTail returns the first element or text format transformer whose
// pattern matches the end of text, with the submatch byte indices.
func (reg *Registry) MatchTail(text string) (*Transformer, []int) {
	for _, t := range reg.ts {
		if t.Kind == BlockTransformer || t.Pattern == nil {
			continue
		}
		if m := t.Pattern.FindStringSubmatchIndex(text); m != nil {
			return t, m
		}
	}
	return nil, nil
}

// TextFormats returns the text format transformers in nesting order.
func (reg *Registry) TextFormats() []*Transformer {
	var out []*Transformer
	for _, t := range reg.ts {
		if t.Kind == TextFormatTransformer {
			out = append(out, t)
		}
	}
	return out
}

var defaultRegistry = NewRegistry(
	Heading,
	HorizontalRule,
	OrderedList,
	UnorderedList,
	Paragraph,
	Link,
	Bold,
	Italic,
	LineBreak,
)

// DefaultRegistry returns the registry used by Export and Import.
func DefaultRegistry() *Registry { return defaultRegistry }

// NewDefaultRegistry returns a new registry holding the default
// transformers, to be extended by the caller.
func NewDefaultRegistry() *Registry {
	return NewRegistry(defaultRegistry.ts...)
}
