package main

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cds-snc/mdedit/internal/config"
	"github.com/cds-snc/mdedit/internal/hostui"
	"github.com/cds-snc/mdedit/internal/store"
)

func Test_ui(t *testing.T) {
	runUITest(t,
		"help",
		fakeDoc("", ""),
		cmdContains(nil,
			"# Usage\n> mdeditTest doc.md [command args...] [; command args...]\n",
			"\n## Available Commands\n",
			"- blur                  : tell the editor it lost focus\n",
			"- insert-horizontal-rule: insert a horizontal rule after the caret block\n",
			"- undo                  : undo the last change\n",
		),
		cmdContains([]string{"help"},
			"> mdeditTest doc.md help [topic|command]\n",
			"## Available Help Topics\n- commands : list every command\n- selection: how selections are addressed\n",
		),
		cmd([]string{"help", "save"}, "save: write the current Markdown and front matter\n"),
		cmd([]string{"help", "print"}, "> print [-n]\n\nWith -n, every line is prefixed by its number.\n"),
		cmdContains([]string{"help", "selection"}, "> select 0 0 0 5      the first five runes of the first block\n"),
		cmdContains([]string{"help", "commands"}, "> set-block h2\n- blur"),
		cmd([]string{"help", "nope"}, "> mdeditTest doc.md help nope\nno help available\n"),
		cmd([]string{"frobnicate"}, "unrecognized command \"frobnicate\"\n"),
		nil,

		"line breaks and save",
		fakeDoc("", "Hello\n"),
		cmd([]string{"print"}, "Hello\n"),
		cmd([]string{"select", "0", "5", ";", "insert-line-break", ";", "insert-text", "world", ";", "print"},
			"Hello  \nworld\n"),
		cmd([]string{"print", "-n"}, "  1  Hello  \n  2  world\n"),
		cmd([]string{"save"}, "saved 14 B\n"),
		expectStored("Hello  \nworld\n"),
		cmd([]string{"select", "0", "0", "0", "5", ";", "toggle-bold", ";", "print"}, "**Hello**  \nworld\n"),
		cmd([]string{"undo", ";", "print"}, "Hello  \nworld\n"),
		cmd([]string{"redo", ";", "print"}, "**Hello**  \nworld\n"),
		nil,

		"front matter survives",
		fakeDoc("", "---\nlang: fr\n---\n\nBonjour\n"),
		cmd([]string{"select", "0", "7", ";", "insert-text", " !", ";", "save"}, "saved 28 B\n"),
		expectStored("---\nlang: fr\n---\n\nBonjour !\n"),
		nil,

		"lists",
		fakeDoc("", "- a\n- b\n"),
		cmd([]string{"select", "0.1", "0", ";", "indent-list-item", ";", "print"}, "- a  \n    - b\n"),
		cmd([]string{"outdent-list-item", ";", "print"}, "- a  \n- b\n"),
		cmd([]string{"insert-tab", ";", "print"}, "- a  \n    - b\n"),
		cmd([]string{"set-block", "number", ";", "print"}, "- a  \n    1. b\n"),
		nil,

		"links",
		fakeDoc("", "see the docs\n"),
		cmd([]string{"select", "0", "4", "0", "12", ";", "open-link-editor", ";", "commit-link-editor", "guide.md", ";", "print"},
			"see [the docs](guide.md)\n"),
		cmdContains([]string{"select", "0", "6", ";", "status"}, "selection: 0:6\nlink: showing \"guide.md\"\n"),
		cmd([]string{"commit-link-editor", "ignored", ";", "print"}, "see [the docs](guide.md)\n"),
		nil,

		"rendering",
		fakeDoc("", "Hello\n"),
		cmd([]string{"preview"}, "<p>Hello</p>\n"),
		cmd([]string{"dump"}, "0. Paragraph[\"Hello\"]\nselection: 0:0\n"),
		cmdContains([]string{"dump", "go"}, "mdoc.Paragraph"),
		nil,

		"errors",
		fakeDoc("", ""),
		cmd([]string{"select", "x", "1"}, fmt.Errorf(`select: invalid path element "x"`)),
		cmd([]string{"select", "0"}, fmt.Errorf("select: expected PATH OFFSET [PATH OFFSET], got 1 args")),
		cmd([]string{"print", "-x"}, fmt.Errorf(`print: unexpected arg "-x"`)),
		nil,
	)
}

func fakeDoc(name string, content string) uiTestStep {
	if name == "" {
		name = "fake doc"
	} else {
		name = "fake doc: " + name
	}
	ms := &store.Mem{}
	if content != "" {
		ms = store.NewMem(content)
	}
	return named{name, uiTestSteps{
		withStorage{ms},
		expectStored(content),
	}}
}

func runUITest(tt *testing.T, args ...any) {
	tc := uiTestCompiler{stack: []named{{}}}
	step, err := tc.compile(args...)
	require.NoError(tt, err)
	if step != nil {
		var t uiTestContext
		t.T = tt
		t.args = []string{"mdeditTest", "doc.md"}
		t.cfg = config.Default()
		step.run(&t)
	}
}

func (tc *uiTestCompiler) compile(args ...any) (uiTestStep, error) {
	for _, arg := range args {
		switch val := arg.(type) {
		case string: // open a named sub-test
			tc.push(val)
		case nil: // close a named sub-test
			tc.pop()
		case store.Store:
			tc.add(withStorage{val})
		case uiTestArgs:
			if tc.head().name == "" {
				tc.add(named{fmt.Sprintf("cmd: %q", val.args), val})
			} else {
				tc.add(val)
			}
		case uiTestStep:
			tc.add(val)
		default:
			return nil, fmt.Errorf("invalid ui test arg type %T", val)
		}
	}
	return tc.fin(), nil
}

type uiTestContext struct {
	*testing.T
	ui
}

type uiTestStep interface {
	run(t *uiTestContext)
}

// withStorage starts a new session over the store.
type withStorage struct{ store.Store }

func (ws withStorage) run(t *uiTestContext) {
	t.src = ws.Store
	t.dst = nil
	t.session = nil
	t.mux = nil
}

type expectStored string

func (expect expectStored) run(t *uiTestContext) {
	var buf bytes.Buffer
	if t.src == nil {
		buf.WriteString("<Store Is Nil>")
	} else if rc, err := t.src.Open(); err == nil {
		_, err = io.Copy(&buf, rc)
		require.NoError(t, err, "must read document")
		require.NoError(t, rc.Close(), "must close document")
	} else {
		require.ErrorIs(t, err, store.ErrNotExists)
	}
	assert.Equal(t, string(expect), buf.String(), "expected stored content")
}

func cmd(args []string, expect ...any) (ta uiTestArgs) {
	ta.args = args
	for _, e := range expect {
		switch v := e.(type) {
		case string:
			ta.output += v
		case error:
			if ta.err != nil {
				panic("cmd already has an expected error")
			}
			ta.err = v
		}
	}
	return ta
}

// cmdContains expects each part somewhere in the output.
func cmdContains(args []string, parts ...string) (ta uiTestArgs) {
	ta.args = args
	ta.contains = parts
	return ta
}

type uiTestArgs struct {
	args     []string
	output   string
	contains []string
	err      error
}

func (ta uiTestArgs) run(t *uiTestContext) {
	var out bytes.Buffer
	err := hostui.ArgsRequest(ta.args).Serve(&out, t)
	if ta.err != nil {
		assert.EqualError(t, err, ta.err.Error())
	} else {
		require.NoError(t, err, "unexpected error")
	}
	if ta.contains != nil {
		for _, part := range ta.contains {
			assert.Contains(t, out.String(), part)
		}
		return
	}
	assert.Equal(t, ta.output, out.String(), "expected output")
}

type named struct {
	name string
	uiTestStep
}

func (n named) run(t *uiTestContext) {
	t.Run(n.name, func(tt *testing.T) {
		defer func(tt *testing.T) { t.T = tt }(t.T)
		t.T = tt
		n.uiTestStep.run(t)
	})
}

type uiTestSteps []uiTestStep

func (steps uiTestSteps) run(t *uiTestContext) {
	for _, step := range steps {
		if t.Failed() {
			break
		}
		step.run(t)
	}
}

func appendTestStep(a uiTestStep, bs ...uiTestStep) uiTestStep {
	steps, ok := a.(uiTestSteps)
	if !ok && a != nil {
		steps = uiTestSteps{a}
	}
	for _, b := range bs {
		if more, ok := b.(uiTestSteps); ok {
			steps = append(steps, more...)
		} else if b != nil {
			steps = append(steps, b)
		}
	}
	switch len(steps) {
	case 0:
		return nil
	case 1:
		return steps[0]
	default:
		return steps
	}
}

type uiTestCompiler struct {
	stack []named
}

func (tc *uiTestCompiler) head() named {
	if len(tc.stack) == 0 {
		return named{}
	}
	return tc.stack[len(tc.stack)-1]
}

func (tc *uiTestCompiler) add(step uiTestStep) {
	if i := len(tc.stack) - 1; i >= 0 {
		tc.stack[i].uiTestStep = appendTestStep(tc.stack[i].uiTestStep, step)
	} else {
		tc.stack = append(tc.stack, named{uiTestStep: step})
	}
}

func (tc *uiTestCompiler) push(name string) {
	tc.stack = append(tc.stack, named{name: name})
}

func (tc *uiTestCompiler) pop() bool {
	i := len(tc.stack) - 1
	if i < 1 {
		return false
	}
	head := tc.stack[i]
	tc.stack = tc.stack[:i]
	tc.add(head)
	return true
}

func (tc *uiTestCompiler) fin() uiTestStep {
	for tc.pop() {
	}
	if len(tc.stack) == 0 {
		return nil
	}
	top := tc.stack[0]
	tc.stack = tc.stack[:0]
	if top.name != "" {
		return top
	}
	return top.uiTestStep
}
