package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/k0kubun/pp"
	"github.com/pkg/errors"

	"github.com/cds-snc/mdedit/editor"
	"github.com/cds-snc/mdedit/internal/hostui"
	"github.com/cds-snc/mdedit/internal/hostutil"
	"github.com/cds-snc/mdedit/internal/logging"
	"github.com/cds-snc/mdedit/internal/store"
	"github.com/cds-snc/mdedit/mdoc"
)

func init() {
	builtinServer("print", servePrint,
		"print the current Markdown",
		"> print [-n]\n\nWith -n, every line is prefixed by its number.\n")
	builtinServer("preview", servePreview, "print the current Markdown rendered as HTML")
	builtinServer("dump", serveDump,
		"print the document tree and selection",
		"> dump [go]\n\nWith go, the document is printed as Go values.\n")
	builtinServer("status", serveStatus, "print the selection, link editor, and surface state")
	builtinServer("select", serveSelect,
		"move the selection",
		"> select PATH OFFSET [PATH OFFSET]\n\nSee help selection.\n")
	builtinServer("blur", serveBlur, "tell the editor it lost focus")
	builtinServer("save", serveSave, "write the current Markdown and front matter")

	builtinHelpTopic("selection", serve(`# Selection
A point is a dotted block path and a rune offset into that block's text;
a line break counts as one rune. The first path element indexes a top level
block; within a list, each further element indexes an item of the list,
then of that item's sublist.

> select 0 5          caret in the first block after its fifth rune
> select 2.1.0 0      caret at the start of the first sub item of the second item
> select 0 0 0 5      the first five runes of the first block
`, "how selections are addressed"))

	builtinHelpTopic("commands", serve(`# Editor Commands
Commands that take an argument use the rest of the command text:

> insert-text "Hello world"
> commit-link-editor https://example.com
> set-block h2
{{ commandList .Ctx }}`, "list every command"))
}

var editorCommandHelp = map[string]string{
	editor.IndentListItem:       "nest the list item at the caret under its previous sibling",
	editor.OutdentListItem:      "move the list item at the caret up one level",
	editor.InsertHorizontalRule: "insert a horizontal rule after the caret block",
	editor.OpenLinkEditor:       "start editing the link at the selection, or a new one",
	editor.CommitLinkEditor:     "apply HREF to the link being edited; empty removes it",
	editor.CancelLinkEditor:     "stop editing the link without changes",
	editor.InsertTab:            "indent a list item, or insert a tab character",
	editor.InsertText:           "insert TEXT at the caret, replacing the selection",
	editor.InsertLineBreak:      "insert a line break at the caret",
	editor.Undo:                 "undo the last change",
	editor.Redo:                 "redo the last undone change",
	editor.ToggleBold:           "toggle bold over the selection",
	editor.ToggleItalic:         "toggle italic over the selection",
	editor.SetBlock:             "convert the caret block: paragraph, h1-h6, bullet, or number",
}

func dispatchServer(name string) server {
	fn := func(ctx *context, req *hostui.Request, res *hostui.Response) error {
		cmd := editor.Command{Name: name, Arg: req.RestText()}
		if err := ctx.session.Dispatch(cmd); err != nil {
			return errors.Wrapf(err, "could not run %v", cmd)
		}
		return nil
	}
	if desc := editorCommandHelp[name]; desc != "" {
		return serve(fn, desc)
	}
	return serve(fn)
}

func servePrint(ctx *context, req *hostui.Request, res *hostui.Response) error {
	numbered := false
	for _, arg := range req.Rest() {
		switch arg {
		case "-n":
			numbered = true
		default:
			return errors.Errorf("print: unexpected arg %q", arg)
		}
	}
	md := ctx.session.Markdown()
	if md == "" {
		return nil
	}
	lines := strings.Split(md, "\n")
	i := 0
	return hostutil.WriteLines(res, func(w io.Writer) bool {
		if numbered {
			fmt.Fprintf(w, "%3d  ", i+1)
		}
		fmt.Fprintln(w, lines[i])
		i++
		return i < len(lines)
	})
}

func servePreview(ctx *context, req *hostui.Request, res *hostui.Response) error {
	out, err := ctx.render.Render(ctx.session.Markdown())
	if err != nil {
		return err
	}
	_, err = res.Write(out)
	return err
}

func serveDump(ctx *context, req *hostui.Request, res *hostui.Response) error {
	if req.ScanArg() && req.Arg() == "go" {
		_, err := pp.Fprintln(res, ctx.session.Document())
		return err
	}
	fmt.Fprintf(res, "%+v\n", ctx.session.Document())
	fmt.Fprintf(res, "selection: %v\n", ctx.session.Selection())
	return nil
}

func serveStatus(ctx *context, req *hostui.Request, res *hostui.Response) error {
	surface := ctx.session.Surface()
	fmt.Fprintf(res, "selection: %v\n", ctx.session.Selection())
	if le := ctx.session.LinkEditor(); le.Visible {
		state := "showing"
		if le.Editing {
			state = "editing"
		}
		fmt.Fprintf(res, "link: %s %q\n", state, le.Href)
	} else {
		fmt.Fprintf(res, "link: hidden\n")
	}
	fmt.Fprintf(res, "surface: id=%s lang=%q described-by=%q\n", surface.ID, surface.Lang, surface.DescribedBy)
	fmt.Fprintf(res, "label: %s\n", surface.Label)
	return nil
}

func serveSelect(ctx *context, req *hostui.Request, res *hostui.Response) error {
	args := req.Rest()
	if len(args) != 2 && len(args) != 4 {
		return errors.Errorf("select: expected PATH OFFSET [PATH OFFSET], got %d args", len(args))
	}
	anchor, err := parsePoint(args[0], args[1])
	if err != nil {
		return errors.Wrap(err, "select")
	}
	focus := anchor.Clone()
	if len(args) == 4 {
		if focus, err = parsePoint(args[2], args[3]); err != nil {
			return errors.Wrap(err, "select")
		}
	}
	ctx.session.Select(mdoc.Selection{Anchor: anchor, Focus: focus})
	return nil
}

func parsePoint(path, offset string) (mdoc.Point, error) {
	p, err := mdoc.ParsePath(path)
	if err != nil {
		return mdoc.Point{}, err
	}
	n, err := strconv.Atoi(offset)
	if err != nil || n < 0 {
		return mdoc.Point{}, errors.Errorf("invalid offset %q", offset)
	}
	return mdoc.Point{Path: p, Offset: n}, nil
}

func serveBlur(ctx *context, req *hostui.Request, res *hostui.Response) error {
	ctx.session.Blur()
	return nil
}

func serveSave(ctx *context, req *hostui.Request, res *hostui.Response) error {
	n, err := store.Save(ctx.dst, store.Document{
		Meta:     ctx.meta,
		Markdown: ctx.session.Markdown(),
	})
	if err != nil {
		return errors.Wrap(err, "could not save document")
	}
	logging.ModuleLogger(ctx.logs, logging.StoreModule).Info("document saved", "editor", ctx.session.ID(), "bytes", n)
	fmt.Fprintf(res, "saved %s\n", humanize.Bytes(uint64(n)))
	return nil
}
