package hostutil_test

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/cds-snc/mdedit/internal/hostutil"
)

func scanAll(t *testing.T, split bufio.SplitFunc, in string) []string {
	sc := bufio.NewScanner(strings.NewReader(in))
	sc.Split(split)
	var out []string
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	require.NoError(t, sc.Err())
	return out
}

func TestQuotedArgs(t *testing.T) {
	for _, tc := range []struct {
		args []string
		out  string
	}{
		{nil, ""},
		{[]string{"toggle-bold"}, "toggle-bold"},
		{[]string{"insert-text", "Hello world"}, `insert-text "Hello world"`},
		{[]string{"insert-text", "a;b", ";", "undo"}, `insert-text "a;b" ; undo`},
		{[]string{"insert-text", ""}, `insert-text ""`},
		{[]string{"insert-text", `"quoted"`}, `insert-text "\"quoted\""`},
	} {
		t.Run(tc.out, func(t *testing.T) {
			assert.Equal(t, tc.out, string(QuotedArgs(tc.args)))
		})
	}
}

func TestScanCommands(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		out  []string
	}{
		{"empty", "", nil},
		{"one", "print", []string{"print"}},
		{"separators", "select 0 5; toggle-bold ;print", []string{"select 0 5", "toggle-bold", "print"}},
		{"lines", "undo\n\n  redo  \nprint\n", []string{"undo", "redo", "print"}},
		{"blank commands", " ; ;\n;undo", []string{"undo"}},
		{"quoted separator", `insert-text "a; b" ; print`, []string{`insert-text "a; b"`, "print"}},
		{"escaped quote", `insert-text "say \"hi;\"";undo`, []string{`insert-text "say \"hi;\""`, "undo"}},
		{"apostrophe", "insert-text don't; undo", []string{"insert-text don't", "undo"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.out, scanAll(t, ScanCommands, tc.in))
		})
	}
}

func TestScanArgs(t *testing.T) {
	args := scanAll(t, ScanArgs, `insert-text "Hello \"big\" world" 'x y' plain`)
	assert.Equal(t, []string{"insert-text", `"Hello \"big\" world"`, `'x y'`, "plain"}, args)

	var unquoted []string
	for _, arg := range args {
		unquoted = append(unquoted, UnquoteArg(arg))
	}
	assert.Equal(t, []string{"insert-text", `Hello "big" world`, "x y", "plain"}, unquoted)
}

func TestUnquoteArg(t *testing.T) {
	for _, tc := range []struct {
		in, out string
	}{
		{"", ""},
		{"a", "a"},
		{`""`, ""},
		{`"a\tb"`, "a\tb"},
		{`"unterminated`, "unterminated"},
		{`'it\'s'`, "it's"},
	} {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.out, UnquoteArg(tc.in))
		})
	}
}

func TestRoundTripArgs(t *testing.T) {
	args := []string{"insert-text", "a; b", ";", "insert-text", "tab\there", "\n"}
	var got [][]string
	for _, cmd := range scanAll(t, ScanCommands, string(QuotedArgs(args))) {
		var line []string
		for _, arg := range scanAll(t, ScanArgs, cmd) {
			line = append(line, UnquoteArg(arg))
		}
		got = append(got, line)
	}
	assert.Equal(t, [][]string{
		{"insert-text", "a; b"},
		{"insert-text", "tab\there", "\n"},
	}, got)
}
