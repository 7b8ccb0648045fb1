package editor

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/cds-snc/mdedit/mdoc"
)

type snapshot struct {
	doc *mdoc.Document
	sel mdoc.Selection
}

// historyPlugin records the state before every committed mutation so that
// undo and redo can restore it. The undo list is bounded by HistoryLimit,
// dropping its oldest entries; any new mutation clears the redo stack.
type historyPlugin struct {
	h     *Handle
	limit int
	undo  *arraylist.List
	redo  *arraystack.Stack
}

func (p *historyPlugin) Name() string       { return "history" }
func (p *historyPlugin) Commands() []string { return []string{Undo, Redo} }

func (p *historyPlugin) Attach(h *Handle) {
	p.h = h
	p.limit = h.Options().HistoryLimit
	p.undo = arraylist.New()
	p.redo = arraystack.New()
}

func (p *historyPlugin) AfterMutation(prev *mdoc.Document, prevSel mdoc.Selection) {
	p.push(snapshot{doc: prev, sel: prevSel})
	p.redo.Clear()
}

func (p *historyPlugin) push(snap snapshot) {
	p.undo.Add(snap)
	for p.undo.Size() > p.limit {
		p.undo.Remove(0)
	}
}

func (p *historyPlugin) current() snapshot {
	return snapshot{doc: p.h.Document().Clone(), sel: p.h.Selection()}
}

func (p *historyPlugin) HandleCommand(cmd Command) bool {
	switch cmd.Name {
	case Undo:
		n := p.undo.Size()
		if n == 0 {
			return true
		}
		v, _ := p.undo.Get(n - 1)
		p.undo.Remove(n - 1)
		p.redo.Push(p.current())
		snap := v.(snapshot)
		p.h.Restore(snap.doc, snap.sel)
		return true

	case Redo:
		v, ok := p.redo.Pop()
		if !ok {
			return true
		}
		p.push(p.current())
		snap := v.(snapshot)
		p.h.Restore(snap.doc, snap.sel)
		return true
	}
	return false
}
