package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/cds-snc/mdedit/editor"
	"github.com/cds-snc/mdedit/internal/config"
	"github.com/cds-snc/mdedit/internal/hostui"
	"github.com/cds-snc/mdedit/internal/logging"
	"github.com/cds-snc/mdedit/internal/preview"
	"github.com/cds-snc/mdedit/internal/store"
)

type context struct {
	args    []string
	mux     serveMux
	session *editor.Session
	meta    store.Meta
	dst     store.Store
	render  *preview.Renderer
	log     editor.Logger
	logs    editor.LoggerProvider
}

type server interface {
	serve(*context, *hostui.Request, *hostui.Response) error
}

type helpServer interface {
	server
	describe() string
	help() server
}

type serverFunc func(*context, *hostui.Request, *hostui.Response) error

func (fn serverFunc) serve(ctx *context, req *hostui.Request, res *hostui.Response) error {
	return fn(ctx, req, res)
}

type serverHelp struct {
	server
	d string
	h server
}

func (sh serverHelp) describe() string { return sh.d }
func (sh serverHelp) help() server     { return sh.h }

type tmplServer struct {
	tmpl *template.Template
}

func textServer(text string) tmplServer {
	return tmplServer{template.Must(template.New("").Funcs(serverTemplateFuncs).Parse(text))}
}

func (srv tmplServer) serve(ctx *context, req *hostui.Request, res *hostui.Response) error {
	return srv.tmpl.Execute(res, struct{ Ctx *context }{ctx})
}

var serverTemplateFuncs = template.FuncMap{
	"commandList": func(cl commandList) string {
		var sb strings.Builder
		printAvail(&sb, cl)
		return sb.String()
	},
}

// serve builds a server from a function, template text, or server, then
// attaches an optional description and help text.
func serve(srv any, args ...string) (actual server) {
	switch val := srv.(type) {
	case server:
		actual = val
	case func(*context, *hostui.Request, *hostui.Response) error:
		actual = serverFunc(val)
	case string:
		actual = textServer(val)
	default:
		panic(fmt.Sprintf("unsupported server type %T", srv))
	}
	for _, text := range args {
		hs, ok := actual.(serverHelp)
		if !ok {
			hs.server = actual
		}
		switch {
		case hs.d == "":
			hs.d = text
		case hs.h == nil:
			hs.h = textServer(text)
		default:
			panic("server already has both a description and help")
		}
		actual = hs
	}
	return actual
}

var builtins []func(mux serveMux)

func builtinServer(name string, srv any, args ...string) {
	actual := serve(srv, args...)
	builtins = append(builtins, func(mux serveMux) { mux.handle(name, actual) })
}

func builtinHelpTopic(name string, srv any) {
	actual := serve(srv)
	builtins = append(builtins, func(mux serveMux) { mux.helpTopic(name, actual) })
}

const helpTopicsKey = ".helpTopics"

type serveMux map[string]server

func (mux serveMux) handle(name string, srv server) {
	if mux[name] != nil {
		panic(fmt.Sprintf("%q server already defined", name))
	}
	mux[name] = srv
}

func (mux serveMux) helpTopic(name string, srv server) {
	topics := mux.helpTopics()
	if topics == nil {
		topics = helpTopics{}
		mux[helpTopicsKey] = topics
	}
	if topics[name] != nil {
		panic(fmt.Sprintf("%q topic already defined", name))
	}
	topics[name] = srv
}

func (mux serveMux) helpTopics() helpTopics {
	topics, _ := mux[helpTopicsKey].(helpTopics)
	return topics
}

// helpTopics is stored in a serveMux under helpTopicsKey; it is never served
// as a command.
type helpTopics map[string]server

func (topics helpTopics) serve(ctx *context, req *hostui.Request, res *hostui.Response) error {
	return printAvailOrNone(res, topics)
}

func (topics helpTopics) Commands() []string {
	names := make([]string, 0, len(topics))
	for name := range topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (topics helpTopics) Describe(name string) string {
	if hs, ok := topics[name].(helpServer); ok {
		return hs.describe()
	}
	return ""
}

func (mux serveMux) Commands() []string {
	var names []string
	for name := range mux {
		if name != "" && !strings.HasPrefix(name, ".") {
			names = append(names, name)
		}
	}
	if mux["help"] == nil {
		names = append(names, "help")
	}
	sort.Strings(names)
	return names
}

func (mux serveMux) Describe(name string) string {
	if hs, ok := mux[name].(helpServer); ok {
		return hs.describe()
	}
	if name == "help" {
		return "show help overview or on a specific topic or command"
	}
	return ""
}

func (mux serveMux) serve(ctx *context, req *hostui.Request, res *hostui.Response) error {
	ran := false
	for req.Scan() && req.ScanArg() {
		ran = true
		if err := mux.serveCommand(ctx, req, res); err != nil {
			return err
		}
		if err := res.MaybeFlush(); err != nil {
			return err
		}
	}
	if ran {
		return nil
	}
	if srv := mux[""]; srv != nil {
		return srv.serve(ctx, req, res)
	}
	return mux.serveHelp(ctx, req, res)
}

func (mux serveMux) serveCommand(ctx *context, req *hostui.Request, res *hostui.Response) error {
	name := req.Arg()
	sub := *ctx
	sub.args = append(ctx.args[:len(ctx.args):len(ctx.args)], name)
	sub.mux = mux

	if srv := mux[name]; srv != nil {
		return srv.serve(&sub, req, res)
	}
	if name == "help" {
		return mux.serveHelp(&sub, req, res)
	}
	fmt.Fprintf(res, "unrecognized command %q\n", name)
	return nil
}

func (mux serveMux) serveHelp(ctx *context, req *hostui.Request, res *hostui.Response) error {
	var name string
	if req.ScanArg() {
		name = req.Arg()
	}

	srv := mux.helpTopics()[name]
	if srv == nil {
		if hs, ok := mux[name].(helpServer); ok {
			srv = hs.help()
			if srv == nil && name != "" {
				fmt.Fprintf(res, "%s: %s\n", name, hs.describe())
				return nil
			}
		}
	}
	if srv != nil {
		return srv.serve(ctx, req, res)
	}
	if name != "" {
		fmt.Fprintf(res, "> %s %s\nno help available\n", ctx.Command(), name)
		return nil
	}

	fmt.Fprintf(res, "# Usage\n")
	if ctx.CommandHead() != "help" {
		fmt.Fprintf(res, "> %s [command args...] [; command args...]\n", ctx.Command())
	} else if topics := mux.helpTopics(); len(topics) > 0 {
		fmt.Fprintf(res, "> %s [topic|command]\n", ctx.Command())
		fmt.Fprintf(res, "\n## Available Help Topics\n")
		printAvail(res, topics)
	} else {
		fmt.Fprintf(res, "> %s [command]\n", ctx.Command())
	}
	fmt.Fprintf(res, "\n## Available Commands\n")
	printAvail(res, mux)
	return nil
}

type commandList interface {
	Commands() []string
	Describe(string) string
}

func printAvailOrNone(w io.Writer, cl commandList) error {
	if !printAvail(w, cl) {
		_, err := io.WriteString(w, "none\n")
		return err
	}
	return nil
}

func printAvail(w io.Writer, cl commandList) bool {
	names := cl.Commands()
	if len(names) == 0 {
		return false
	}
	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}
	for _, name := range names {
		if desc := cl.Describe(name); desc != "" {
			fmt.Fprintf(w, "- % -*s: %s\n", width, name, desc)
		} else {
			fmt.Fprintf(w, "- %s\n", name)
		}
	}
	return true
}

func (ctx *context) Command() string {
	return strings.Join(ctx.args, " ")
}

func (ctx *context) CommandHead() string {
	return ctx.args[len(ctx.args)-1]
}

func (ctx *context) Commands() []string {
	if ctx.mux == nil {
		return nil
	}
	return ctx.mux.Commands()
}

func (ctx *context) Describe(name string) string {
	if ctx.mux == nil {
		return ""
	}
	return ctx.mux.Describe(name)
}

type ui struct {
	context
	cfg config.Config
	src store.Store
}

func (ui *ui) init() error {
	if ui.log == nil {
		ui.log = logging.ModuleLogger(ui.logs, logging.CLIModule)
	}
	if ui.src == nil {
		ui.src = &store.Mem{}
	}
	if ui.dst == nil {
		ui.dst = ui.src
	}
	if ui.render == nil {
		ui.render = preview.New(ui.cfg.PreviewOptions())
	}

	if ui.session == nil {
		doc, err := store.Load(ui.src)
		if err != nil && !errors.Is(err, store.ErrNotExists) {
			return errors.Wrap(err, "could not load document")
		}
		opts := ui.cfg.EditorOptions(doc.Markdown, config.SurfaceConfig(doc.Meta))
		opts.Logger = logging.ModuleLogger(ui.logs, logging.EditorModule)
		session, err := editor.New(opts)
		if err != nil {
			return errors.Wrap(err, "could not start editor")
		}
		ui.session = session
		ui.meta = doc.Meta
		ui.log.Debug("session started", "editor", session.ID(), "bytes", len(doc.Markdown))
	}

	if ui.mux == nil {
		ui.mux = make(serveMux)
		for _, addBuiltin := range builtins {
			addBuiltin(ui.mux)
		}
		for _, name := range ui.session.Commands() {
			if ui.mux[name] == nil {
				ui.mux.handle(name, dispatchServer(name))
			}
		}
	}
	return nil
}

func (ui *ui) ServeUser(req *hostui.Request, res *hostui.Response) error {
	if ui.mux == nil {
		if err := ui.init(); err != nil {
			return err
		}
	}
	ctx := ui.context
	return ui.mux.serve(&ctx, req, res)
}
