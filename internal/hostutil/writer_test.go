package hostutil_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/cds-snc/mdedit/internal/hostutil"
)

type chunkRecorder struct{ chunks []string }

func (cr *chunkRecorder) Write(p []byte) (int, error) {
	cr.chunks = append(cr.chunks, string(p))
	return len(p), nil
}

func TestWriteBuffer(t *testing.T) {
	var rec chunkRecorder
	var buf WriteBuffer
	buf.To = &rec

	buf.WriteString("partial")
	require.NoError(t, buf.MaybeFlush())
	assert.Empty(t, rec.chunks)

	buf.WriteString(" line\nnext\nmore")
	require.NoError(t, buf.MaybeFlush())
	assert.Equal(t, []string{"partial line\nnext\n"}, rec.chunks)

	require.NoError(t, buf.Flush())
	assert.Equal(t, []string{"partial line\nnext\n", "more"}, rec.chunks)
	assert.Equal(t, 0, buf.Len())
}

type failAfter struct {
	n   int
	out bytes.Buffer
}

func (fa *failAfter) Write(p []byte) (int, error) {
	if fa.n == 0 {
		return 0, errors.New("disk full")
	}
	fa.n--
	return fa.out.Write(p)
}

func TestWriteLines(t *testing.T) {
	var out bytes.Buffer
	i := 0
	err := WriteLines(&out, func(w io.Writer) bool {
		i++
		fmt.Fprintf(w, "line %d\n", i)
		return i < 3
	})
	require.NoError(t, err)
	assert.Equal(t, "line 1\nline 2\nline 3\n", out.String())

	fa := failAfter{n: 1}
	calls := 0
	err = WriteLines(&fa, func(w io.Writer) bool {
		calls++
		fmt.Fprintln(w, "x")
		return true
	})
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, 2, calls)
	assert.Equal(t, "x\n", fa.out.String())
}

func TestFindWDFile(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(deep, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".found"), []byte("x"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(deep))
	t.Cleanup(func() { os.Chdir(wd) })

	info, path, err := FindWDFile(".found")
	require.NoError(t, err)
	if assert.NotNil(t, info) {
		assert.Equal(t, ".found", info.Name())
	}
	want, err := filepath.EvalSymlinks(filepath.Join(root, ".found"))
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, path, err = FindWDFile(".missing-for-sure")
	assert.NoError(t, err)
	assert.Nil(t, info)
	assert.Equal(t, "", path)
}
