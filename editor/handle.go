package editor

import (
	"github.com/cds-snc/mdedit/mdcodec"
	"github.com/cds-snc/mdedit/mdoc"
)

// Handle is the document access capability a session gives its plugins.
type Handle struct {
	s *Session
}

// Document returns the live document. Plugins must only modify it within
// Mutate.
func (h *Handle) Document() *mdoc.Document { return h.s.doc }

// Selection returns a copy of the current selection.
func (h *Handle) Selection() mdoc.Selection { return h.s.sel.Clone() }

// SetSelection moves the selection without mutating the document.
func (h *Handle) SetSelection(sel mdoc.Selection) { h.s.Select(sel) }

// Mutate runs fn over the document and a working copy of the selection.
//
// When fn returns false the document is restored and nothing is published.
// Otherwise the document is normalized, the selection clamped, mutation
// hooks run, and the exported Markdown is delivered to OnChange before
// Mutate returns. A Mutate call made from within fn joins the outer
// mutation.
func (h *Handle) Mutate(fn func(doc *mdoc.Document, sel *mdoc.Selection) bool) bool {
	return h.s.mutate(fn)
}

// Restore replaces the document and selection wholesale, publishing the
// result without running mutation hooks.
func (h *Handle) Restore(doc *mdoc.Document, sel mdoc.Selection) {
	h.s.restore(doc, sel)
}

// Dispatch sends a command through the session's plugins.
func (h *Handle) Dispatch(cmd Command) error { return h.s.Dispatch(cmd) }

// Options returns the session options after defaults were applied.
func (h *Handle) Options() Options { return h.s.opts }

// Logger returns the session logger.
func (h *Handle) Logger() Logger { return h.s.log }

// Registry returns the transformer registry of the session.
func (h *Handle) Registry() *mdcodec.Registry { return h.s.reg }
