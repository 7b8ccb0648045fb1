package editor

import "github.com/cds-snc/mdedit/mdoc"

// Plugin is a unit of editing behavior registered into a session.
//
// Plugins are attached in registration order, each receiving the session
// Handle as its only access to the document. Commands are offered to
// plugins in the same order; the first plugin whose HandleCommand returns
// true consumes the command.
type Plugin interface {
	Name() string
	Attach(h *Handle)
	HandleCommand(cmd Command) bool
}

// CommandProvider is implemented by plugins that declare command names;
// dispatching a name that no plugin declares is an error.
type CommandProvider interface {
	Commands() []string
}

// MutationHook is implemented by plugins observing committed mutations; prev
// and prevSel hold the state before the mutation.
type MutationHook interface {
	AfterMutation(prev *mdoc.Document, prevSel mdoc.Selection)
}

// SelectionHook is implemented by plugins observing selection changes.
type SelectionHook interface {
	SelectionChanged()
}

// BlurHook is implemented by plugins that react to the surface losing
// focus.
type BlurHook interface {
	Blur()
}

// DefaultPlugins returns the default plugin set in registration order.
func DefaultPlugins() []Plugin {
	return []Plugin{
		&historyPlugin{},
		&maxIndentPlugin{},
		&listPlugin{},
		&hrulePlugin{},
		&linkPlugin{},
		&tabPlugin{},
		&shortcutPlugin{},
		&richTextPlugin{},
	}
}
