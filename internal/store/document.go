package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Meta is the front matter of a stored document. It overrides the editor
// surface settings for that document.
type Meta struct {
	Label       string `yaml:"label,omitempty"`
	DescribedBy string `yaml:"described_by,omitempty"`
	Lang        string `yaml:"lang,omitempty"`
}

// IsZero reports whether m sets nothing.
func (m Meta) IsZero() bool { return m == Meta{} }

// Document is a stored Markdown snapshot and its front matter.
type Document struct {
	Meta     Meta
	Markdown string
}

// Load reads a document from s, splitting off any front matter.
func Load(s Store) (Document, error) {
	rc, err := s.Open()
	if err != nil {
		return Document{}, err
	}
	defer rc.Close()
	return Read(rc)
}

// Read parses a document from r. Content without front matter, or whose
// front matter does not parse, is all Markdown.
func Read(r io.Reader) (Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return Document{}, err
	}
	var doc Document
	body, err := frontmatter.Parse(bytes.NewReader(src), &doc.Meta)
	if err != nil {
		doc, body = Document{}, src
	}
	doc.Markdown = strings.Trim(string(body), "\n")
	return doc, nil
}

// Bytes encodes the document as stored: YAML front matter when Meta is set
// or the Markdown itself opens with a delimiter line, then the Markdown and a
// final newline.
func (doc Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if !doc.Meta.IsZero() || opensWithDelimiter(doc.Markdown) {
		buf.WriteString("---\n")
		enc := yaml.NewEncoder(&buf)
		if err := enc.Encode(doc.Meta); err != nil {
			return nil, fmt.Errorf("encode front matter: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode front matter: %w", err)
		}
		buf.WriteString("---\n\n")
	}
	if doc.Markdown != "" {
		buf.WriteString(doc.Markdown)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func opensWithDelimiter(markdown string) bool {
	line, _, _ := strings.Cut(markdown, "\n")
	switch strings.TrimSpace(line) {
	case "---", "+++", ";;;":
		return true
	}
	return false
}

// Save writes doc to s, updating existing content or creating it. It returns
// the number of bytes written.
func Save(s Store, doc Document) (n int64, rerr error) {
	b, err := doc.Bytes()
	if err != nil {
		return 0, err
	}
	w, err := s.Update()
	if errors.Is(err, ErrNotExists) {
		w, err = s.Create()
	}
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := w.Cleanup(); rerr == nil {
			rerr = cerr
		}
	}()
	m, err := w.Write(b)
	if err != nil {
		return int64(m), err
	}
	return int64(m), w.Close()
}
