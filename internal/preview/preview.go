// Package preview renders exported Markdown to HTML with goldmark, the way a
// consumer of the editor's output would display it.
package preview

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Options configure a Renderer.
type Options struct {
	// HardWraps renders every newline as a line break, not only those
	// marked by trailing spaces.
	HardWraps bool

	// Extensions names goldmark extensions to enable; unknown names are
	// ignored. Empty selects GFM.
	Extensions []string
}

// Renderer converts Markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	engine goldmark.Markdown
}

// New builds a Renderer. Raw HTML in the input is never passed through.
func New(opts Options) *Renderer {
	var rendererOptions []renderer.Option
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	var engineOptions []goldmark.Option
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	if exts := collectExtensions(opts.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}
	return &Renderer{engine: goldmark.New(engineOptions...)}
}

// Render converts markdown to an HTML fragment.
func (r *Renderer) Render(markdown string) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}
	return buf.Bytes(), nil
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"typographer":   extension.Typographer,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}
	}
	var exts []goldmark.Extender
	seen := make(map[string]bool)
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		ext, ok := extensionRegistry[key]
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		exts = append(exts, ext)
	}
	return exts
}
