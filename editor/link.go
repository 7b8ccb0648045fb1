package editor

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/cds-snc/mdedit/mdoc"
)

// LinkEditorState is the state of the link editing affordance. The host
// shows an editor seeded with Href while Visible; Editing is set between
// open-link-editor and its commit or cancel.
type LinkEditorState struct {
	Visible bool
	Editing bool
	Href    string
}

// linkPlugin drives the link editing affordance and applies committed hrefs.
type linkPlugin struct {
	h     *Handle
	state LinkEditorState
}

func (p *linkPlugin) Name() string     { return "link" }
func (p *linkPlugin) Attach(h *Handle) { p.h = h }

func (p *linkPlugin) Commands() []string {
	return []string{OpenLinkEditor, CommitLinkEditor, CancelLinkEditor}
}

func (p *linkPlugin) SelectionChanged() {
	if p.state.Editing {
		return
	}
	href, ok := linkAt(p.h.Document(), p.h.Selection())
	p.state = LinkEditorState{Visible: ok, Href: href}
}

func (p *linkPlugin) Blur() {
	p.state = LinkEditorState{}
}

func (p *linkPlugin) HandleCommand(cmd Command) bool {
	switch cmd.Name {
	case OpenLinkEditor:
		doc, sel := p.h.Document(), p.h.Selection()
		if href, ok := linkAt(doc, sel); ok {
			p.state = LinkEditorState{Visible: true, Editing: true, Href: href}
		} else if !sel.Collapsed() && sel.SingleBlock() && doc.Inlines(sel.Focus.Path) != nil {
			p.state = LinkEditorState{Visible: true, Editing: true, Href: cmd.Arg}
		} else {
			p.h.Logger().Debug("no link target", "selection", sel.String())
		}
		return true

	case CommitLinkEditor:
		if !p.state.Editing {
			return true
		}
		href := SanitizeURL(strings.TrimSpace(cmd.Arg))
		p.state.Editing = false
		if !p.h.Mutate(func(doc *mdoc.Document, sel *mdoc.Selection) bool {
			return setLink(doc, *sel, href)
		}) {
			p.SelectionChanged()
		}
		return true

	case CancelLinkEditor:
		p.state.Editing = false
		p.SelectionChanged()
		return true
	}
	return false
}

// linkAt returns the href of the link holding a caret, or of the first link
// overlapping a selection within one block.
func linkAt(doc *mdoc.Document, sel mdoc.Selection) (string, bool) {
	if !sel.SingleBlock() {
		return "", false
	}
	in := doc.Inlines(sel.Focus.Path)
	if in == nil {
		return "", false
	}
	i := -1
	if sel.Collapsed() {
		i = mdoc.LinkAt(*in, sel.Focus.Offset)
	} else if idx := mdoc.LinksWithin(*in, sel.Start().Offset, sel.End().Offset); len(idx) > 0 {
		i = idx[0]
	}
	if i < 0 {
		return "", false
	}
	return (*in)[i].(*mdoc.Link).Href, true
}

// setLink applies href to the selection: a caret within a link, or a range
// within a single link, edits that link; any other range is wrapped into a
// new link, absorbing links it overlaps. An empty href removes links
// instead. It reports whether the document changed.
func setLink(doc *mdoc.Document, sel mdoc.Selection, href string) bool {
	if !sel.SingleBlock() {
		return false
	}
	in := doc.Inlines(sel.Focus.Path)
	if in == nil {
		return false
	}
	if sel.Collapsed() {
		i := mdoc.LinkAt(*in, sel.Focus.Offset)
		if i < 0 {
			return false
		}
		return updateLink(in, i, href)
	}

	start, end := sel.Start().Offset, sel.End().Offset
	idx := mdoc.LinksWithin(*in, start, end)
	if len(idx) == 1 {
		i := idx[0]
		ls := mdoc.InlineStart(*in, i)
		le := ls + mdoc.InlinesLen((*in)[i].(*mdoc.Link).Children)
		if start >= ls && end <= le {
			return updateLink(in, i, href)
		}
	}
	content := mdoc.Unlink(mdoc.SliceInlines(*in, start, end))
	if href == "" {
		if len(idx) == 0 {
			return false
		}
		*in = mdoc.ReplaceInlines(*in, start, end, content...)
		return true
	}
	*in = mdoc.ReplaceInlines(*in, start, end, &mdoc.Link{Href: href, Children: content})
	return true
}

func updateLink(in *[]mdoc.Inline, i int, href string) bool {
	link := (*in)[i].(*mdoc.Link)
	if href == "" {
		out := make([]mdoc.Inline, 0, len(*in)+len(link.Children))
		out = append(out, (*in)[:i]...)
		out = append(out, link.Children...)
		*in = append(out, (*in)[i+1:]...)
		return true
	}
	if link.Href == href {
		return false
	}
	link.Href = href
	return true
}

var (
	stripTabNewline = strings.NewReplacer("\t", "", "\n", "", "\r", "")
	schemePrefix    = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9+.-]*):`)
)

var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"sms":    true,
	"tel":    true,
}

// SanitizeURL returns href unless it is an absolute URL whose scheme is not
// one of http, https, mailto, sms or tel, in which case it returns
// "about:blank". Relative references pass through. The scheme is read the
// way browsers read an href: leading and trailing control characters and
// spaces are ignored, as are ASCII tabs and newlines anywhere.
func SanitizeURL(href string) string {
	clean := strings.TrimFunc(stripTabNewline.Replace(href), func(r rune) bool {
		return r <= ' '
	})
	var scheme string
	if u, err := url.Parse(clean); err == nil {
		scheme = u.Scheme
	} else if m := schemePrefix.FindStringSubmatch(clean); m != nil {
		scheme = m[1]
	}
	if scheme == "" || allowedSchemes[strings.ToLower(scheme)] {
		return href
	}
	return "about:blank"
}
