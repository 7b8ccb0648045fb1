package hostui_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/cds-snc/mdedit/internal/hostui"
)

func TestArgsRequest(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
		out  []string
	}{
		{
			name: "nothing",
			out:  []string{""},
		},

		{
			name: "one command",
			args: []string{"insert-text", "Hello world"},
			out: []string{
				`1) command: "insert-text \"Hello world\""`,
				`  1. arg: "insert-text"`,
				`  2. arg: "Hello world"`,
				"",
			},
		},

		{
			name: "separated commands",
			args: []string{"select", "0", "6", "11", ";", "toggle-bold", ";", "insert-text", "a;b"},
			out: []string{
				`1) command: "select 0 6 11"`,
				`  1. arg: "select"`,
				`  2. arg: "0"`,
				`  3. arg: "6"`,
				`  4. arg: "11"`,
				`2) command: "toggle-bold"`,
				`  1. arg: "toggle-bold"`,
				`3) command: "insert-text \"a;b\""`,
				`  1. arg: "insert-text"`,
				`  2. arg: "a;b"`,
				"",
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			err := ArgsRequest(tc.args).Serve(&out, HandlerFunc(dumpRequest))
			assert.NoError(t, err)
			assert.Equal(t, tc.out, strings.Split(out.String(), "\n"), "expected output")
		})
	}
}

func TestScriptRequest(t *testing.T) {
	script := "insert-text \"Hello\"\ninsert-line-break; insert-text world\n\nprint\n"
	var out bytes.Buffer
	err := ScriptRequest(strings.NewReader(script)).Serve(&out, HandlerFunc(func(req *Request, resp *Response) error {
		for req.Scan() && req.ScanArg() {
			fmt.Fprintf(resp, "%s %q\n", req.Arg(), req.RestText())
		}
		return nil
	}))
	assert.NoError(t, err)
	assert.Equal(t, `insert-text "Hello"
insert-line-break ""
insert-text "world"
print ""
`, out.String())
}

func TestServe_handlerError(t *testing.T) {
	var out bytes.Buffer
	err := ArgsRequest([]string{"boom"}).Serve(&out, HandlerFunc(func(req *Request, resp *Response) error {
		resp.WriteString("partial output")
		return errors.New("handler failed")
	}))
	assert.EqualError(t, err, "handler failed")
	assert.Equal(t, "partial output", out.String(), "buffered output is flushed")
}

func dumpRequest(req *Request, resp *Response) error {
	for i := 1; req.Scan(); i++ {
		fmt.Fprintf(resp, "%v) command: %q\n", i, req.Command())
		for j := 1; req.ScanArg(); j++ {
			fmt.Fprintf(resp, "  %v. arg: %q\n", j, req.Arg())
		}
		resp.MaybeFlush()
	}
	return nil
}
