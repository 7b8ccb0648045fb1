package editor

import "github.com/cds-snc/mdedit/mdoc"

// maxIndentPlugin consumes indent commands that would nest the caret item,
// or any list hanging below it, deeper than MaxListDepth.
type maxIndentPlugin struct {
	h *Handle
}

func (p *maxIndentPlugin) Name() string     { return "list-max-indent" }
func (p *maxIndentPlugin) Attach(h *Handle) { p.h = h }

func (p *maxIndentPlugin) HandleCommand(cmd Command) bool {
	if cmd.Name != IndentListItem {
		return false
	}
	sel := p.h.Selection()
	item, l := p.h.Document().ItemAt(sel.Focus.Path)
	if item == nil {
		return false
	}
	max := p.h.Options().MaxListDepth
	if l.Depth+1+mdoc.Height(item) <= max {
		return false
	}
	p.h.Logger().Debug("indent rejected", "path", mdoc.PathString(sel.Focus.Path), "depth", l.Depth, "max", max)
	return true
}
