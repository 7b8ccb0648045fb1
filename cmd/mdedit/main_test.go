package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cds-snc/mdedit/internal/config"
	"github.com/cds-snc/mdedit/internal/store"
)

func Test_run(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "edit.txt")
	require.NoError(t, os.WriteFile(script, []byte("select 0 5\ninsert-text !\nprint\n"), 0o644))

	newUI := func() *ui {
		var u ui
		u.args = []string{"mdeditTest", "doc.md"}
		u.cfg = config.Default()
		u.src = store.NewMem("Hello\n")
		return &u
	}

	var out bytes.Buffer
	require.NoError(t, run(&out, newUI(), []string{"print"}, ""))
	assert.Equal(t, "Hello\n", out.String())

	out.Reset()
	require.NoError(t, run(&out, newUI(), []string{"print"}, script))
	assert.Equal(t, "Hello\nHello!\n", out.String())

	out.Reset()
	err := run(&out, newUI(), nil, filepath.Join(dir, "missing.txt"))
	assert.ErrorContains(t, err, "could not open script")
	assert.Empty(t, out.String())
}
