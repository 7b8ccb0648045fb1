package editor

import "strconv"

// Command names understood by the default plugins.
const (
	IndentListItem       = "indent-list-item"
	OutdentListItem      = "outdent-list-item"
	InsertHorizontalRule = "insert-horizontal-rule"
	OpenLinkEditor       = "open-link-editor"
	CommitLinkEditor     = "commit-link-editor"
	CancelLinkEditor     = "cancel-link-editor"
	InsertTab            = "insert-tab"

	InsertText      = "insert-text"
	InsertLineBreak = "insert-line-break"
	Undo            = "undo"
	Redo            = "redo"
	ToggleBold      = "toggle-bold"
	ToggleItalic    = "toggle-italic"
	SetBlock        = "set-block"
)

// Command is a discrete named event sent by the session host; Arg carries
// the optional argument, such as an href or the text to insert.
type Command struct {
	Name string
	Arg  string
}

func (cmd Command) String() string {
	if cmd.Arg == "" {
		return cmd.Name
	}
	return cmd.Name + " " + strconv.Quote(cmd.Arg)
}
