package editor

// tabPlugin turns the tab key into a list indent within list items, and a
// literal tab character elsewhere.
type tabPlugin struct {
	h *Handle
}

func (p *tabPlugin) Name() string       { return "tab-indentation" }
func (p *tabPlugin) Attach(h *Handle)   { p.h = h }
func (p *tabPlugin) Commands() []string { return []string{InsertTab} }

func (p *tabPlugin) HandleCommand(cmd Command) bool {
	if cmd.Name != InsertTab {
		return false
	}
	next := Command{Name: InsertText, Arg: "\t"}
	if item, _ := p.h.Document().ItemAt(p.h.Selection().Focus.Path); item != nil {
		next = Command{Name: IndentListItem}
	}
	if err := p.h.Dispatch(next); err != nil {
		p.h.Logger().Warn("tab dispatch failed", "command", next.Name, "error", err)
	}
	return true
}
