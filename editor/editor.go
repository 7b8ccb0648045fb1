// Package editor implements an editing session over a Markdown backed
// document.
//
// A Session owns one mdoc.Document. The host drives it with named commands
// (see Dispatch) and selection changes; every committed mutation is exported
// back to Markdown and delivered to the OnChange callback within the same
// call. All editing behavior lives in plugins registered in a fixed order;
// see DefaultPlugins.
//
// A Session is not safe for concurrent use.
package editor

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/cds-snc/mdedit/mdcodec"
	"github.com/cds-snc/mdedit/mdoc"
)

// LineBreakMode selects how forced line breaks are encoded in exported
// Markdown.
type LineBreakMode string

const (
	// LineBreaksPostProcess runs mdcodec.PostProcess over the raw export.
	LineBreaksPostProcess LineBreakMode = "postprocess"
	// LineBreaksStructural marks line breaks during the export walk.
	LineBreaksStructural LineBreakMode = "structural"
)

// Defaults applied by New to zero valued options.
const (
	DefaultMaxListDepth = 5
	DefaultHistoryLimit = 100
	DefaultLabel        = "Content editor: edit or create your content here. " +
		"To apply formatting, select the desired text and press shift+tab to return " +
		"to the toolbar and select an option. " +
		"You can also use markdown formatting directly in the editor."
)

// Options configure a new Session.
type Options struct {
	// Content is the initial Markdown; empty content yields a document with
	// one empty paragraph.
	Content string

	MaxListDepth int
	LineBreaks   LineBreakMode
	HistoryLimit int

	// Label, DescribedBy and Lang are passed to the editable surface
	// verbatim.
	Label       string
	DescribedBy string
	Lang        string

	// OnChange receives the final Markdown after every committed mutation.
	OnChange func(markdown string)

	Logger   Logger
	Registry *mdcodec.Registry

	// Plugins are registered after DefaultPlugins.
	Plugins []Plugin
}

func (o *Options) applyDefaults() {
	if o.MaxListDepth == 0 {
		o.MaxListDepth = DefaultMaxListDepth
	}
	if o.LineBreaks == "" {
		o.LineBreaks = LineBreaksPostProcess
	}
	if o.HistoryLimit == 0 {
		o.HistoryLimit = DefaultHistoryLimit
	}
	if o.Label == "" {
		o.Label = DefaultLabel
	}
	if o.Logger == nil {
		o.Logger = nopLogger{}
	}
	if o.Registry == nil {
		o.Registry = mdcodec.DefaultRegistry()
	}
}

// Validate checks option values; zero values are valid and replaced by
// defaults in New.
func (o Options) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.MaxListDepth, validation.Min(1)),
		validation.Field(&o.LineBreaks, validation.In(LineBreaksPostProcess, LineBreaksStructural)),
		validation.Field(&o.HistoryLimit, validation.Min(0)),
		validation.Field(&o.Lang, validation.By(validLang)),
	)
}

func validLang(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := language.Parse(s); err != nil {
		return errors.New("must be a BCP 47 language tag")
	}
	return nil
}

// Surface is the accessibility metadata of the editable surface.
type Surface struct {
	ID          string
	Label       string
	DescribedBy string
	Lang        string
}

// Session is a single local editing session.
type Session struct {
	id       string
	opts     Options
	log      Logger
	reg      *mdcodec.Registry
	doc      *mdoc.Document
	sel      mdoc.Selection
	markdown string
	plugins  []Plugin
	known    map[string]struct{}
	handle   *Handle
	link     *linkPlugin
	pending  *mdoc.Selection
}

// New validates opts, imports the initial content and registers the
// plugins. The caret starts at the beginning of the document.
func New(opts Options) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, wrapValidationError(err)
	}
	opts.applyDefaults()
	if opts.Lang != "" {
		opts.Lang = language.Make(opts.Lang).String()
	}

	s := &Session{
		id:    "editor-" + uuid.NewString(),
		opts:  opts,
		log:   opts.Logger,
		reg:   opts.Registry,
		known: make(map[string]struct{}),
	}
	s.handle = &Handle{s: s}
	s.doc = s.reg.Import(opts.Content)
	s.sel = mdoc.Caret(s.doc.First())
	s.markdown = s.export()

	plugins := append(DefaultPlugins(), opts.Plugins...)
	for _, p := range plugins {
		s.register(p)
	}
	s.log.Debug("editor session started", "editor", s.id, "plugins", len(s.plugins))
	return s, nil
}

func (s *Session) register(p Plugin) {
	s.plugins = append(s.plugins, p)
	if cp, ok := p.(CommandProvider); ok {
		for _, name := range cp.Commands() {
			s.known[name] = struct{}{}
		}
	}
	if lp, ok := p.(*linkPlugin); ok && s.link == nil {
		s.link = lp
	}
	p.Attach(s.handle)
}

// ID returns the session's unique editor id.
func (s *Session) ID() string { return s.id }

// Markdown returns the latest exported Markdown.
func (s *Session) Markdown() string { return s.markdown }

// Document returns the live document; callers must not modify it.
func (s *Session) Document() *mdoc.Document { return s.doc }

// Selection returns a copy of the current selection.
func (s *Session) Selection() mdoc.Selection { return s.sel.Clone() }

// Surface returns the accessibility metadata of the editable surface.
func (s *Session) Surface() Surface {
	return Surface{
		ID:          s.id,
		Label:       s.opts.Label,
		DescribedBy: s.opts.DescribedBy,
		Lang:        s.opts.Lang,
	}
}

// LinkEditor returns the state of the link editing affordance.
func (s *Session) LinkEditor() LinkEditorState {
	if s.link == nil {
		return LinkEditorState{}
	}
	return s.link.state
}

// Select moves the selection, clamping it to the document.
func (s *Session) Select(sel mdoc.Selection) {
	s.sel = s.doc.ClampSelection(sel)
	s.selectionChanged()
}

// Blur notifies plugins that the surface lost focus.
func (s *Session) Blur() {
	for _, p := range s.plugins {
		if bh, ok := p.(BlurHook); ok {
			bh.Blur()
		}
	}
}

// Dispatch offers cmd to the plugins in registration order. A command that
// no plugin consumes is a no-op; a command name that no plugin declares is
// an error.
func (s *Session) Dispatch(cmd Command) error {
	if _, ok := s.known[cmd.Name]; !ok {
		return unknownCommandError(cmd.Name)
	}
	for _, p := range s.plugins {
		if p.HandleCommand(cmd) {
			s.log.Debug("command handled", "editor", s.id, "command", cmd.Name, "plugin", p.Name())
			return nil
		}
	}
	s.log.Debug("command ignored", "editor", s.id, "command", cmd.Name)
	return nil
}

// Commands returns the declared command names in no particular order.
func (s *Session) Commands() []string {
	names := make([]string, 0, len(s.known))
	for name := range s.known {
		names = append(names, name)
	}
	return names
}

func (s *Session) export() string {
	if s.opts.LineBreaks == LineBreaksStructural {
		return s.reg.Export(s.doc, mdcodec.ExportOptions{HardBreaks: true})
	}
	return mdcodec.PostProcess(s.reg.Export(s.doc, mdcodec.ExportOptions{}))
}

func (s *Session) publish() {
	s.markdown = s.export()
	s.log.Debug("document exported", "editor", s.id, "bytes", len(s.markdown))
	if s.opts.OnChange != nil {
		s.opts.OnChange(s.markdown)
	}
}

func (s *Session) selectionChanged() {
	for _, p := range s.plugins {
		if sh, ok := p.(SelectionHook); ok {
			sh.SelectionChanged()
		}
	}
}

func (s *Session) mutate(fn func(doc *mdoc.Document, sel *mdoc.Selection) bool) bool {
	if s.pending != nil {
		return fn(s.doc, s.pending)
	}
	prev, prevSel := s.doc.Clone(), s.sel.Clone()
	sel := s.sel.Clone()
	s.pending = &sel
	changed := fn(s.doc, &sel)
	s.pending = nil
	if !changed {
		s.doc = prev
		return false
	}
	mdoc.Normalize(s.doc)
	s.sel = s.doc.ClampSelection(sel)
	for _, p := range s.plugins {
		if mh, ok := p.(MutationHook); ok {
			mh.AfterMutation(prev, prevSel)
		}
	}
	s.publish()
	s.selectionChanged()
	return true
}

func (s *Session) restore(doc *mdoc.Document, sel mdoc.Selection) {
	s.doc = doc
	mdoc.Normalize(s.doc)
	s.sel = s.doc.ClampSelection(sel)
	s.publish()
	s.selectionChanged()
}
