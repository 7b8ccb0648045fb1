package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cds-snc/mdedit/editor"
	. "github.com/cds-snc/mdedit/internal/config"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
editor:
  max_list_depth: 3
  line_breaks: structural
surface:
  label: Body
  lang: en-CA
logging:
  level: DEBUG
  format: json
preview:
  hard_wraps: true
  extensions: [table, linkify]
`))
	require.NoError(t, err)

	want := Default()
	want.Editor.MaxListDepth = 3
	want.Editor.LineBreaks = "structural"
	want.Surface = SurfaceConfig{Label: "Body", Lang: "en-CA"}
	want.Logging.Level = "DEBUG"
	want.Logging.Format = "json"
	want.Preview = PreviewConfig{HardWraps: true, Extensions: []string{"table", "linkify"}}
	assert.Equal(t, want, cfg)

	cfg, err = Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_invalid(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
	}{
		{"unknown key", "editor:\n  max_depth: 3\n"},
		{"depth", "editor:\n  max_list_depth: -1\n"},
		{"line breaks", "editor:\n  line_breaks: sometimes\n"},
		{"history", "editor:\n  history_limit: -5\n"},
		{"level", "logging:\n  level: loud\n"},
		{"format", "logging:\n  format: xml\n"},
		{"syntax", "editor: [\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.in))
			assert.Error(t, err)
		})
	}
}

func TestConfig_EditorOptions(t *testing.T) {
	cfg := Default()
	cfg.Surface = SurfaceConfig{Label: "Body", DescribedBy: "body-hint", Lang: "en"}

	opts := cfg.EditorOptions("# Hi", SurfaceConfig{Lang: "fr"})
	assert.Equal(t, editor.Options{
		Content:      "# Hi",
		MaxListDepth: editor.DefaultMaxListDepth,
		LineBreaks:   editor.LineBreaksPostProcess,
		HistoryLimit: editor.DefaultHistoryLimit,
		Label:        "Body",
		DescribedBy:  "body-hint",
		Lang:         "fr",
	}, opts)
	assert.NoError(t, opts.Validate())

	assert.Equal(t, "console", cfg.LoggerConfig().Format)
	assert.False(t, cfg.PreviewOptions().HardWraps)
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "docs", "drafts")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(deep))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, path, err := Find()
	require.NoError(t, err)
	assert.Equal(t, "", path)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("editor:\n  history_limit: 7\n"), 0o644))
	cfg, path, err = Find()
	require.NoError(t, err)
	assert.Equal(t, FileName, filepath.Base(path))
	assert.Equal(t, 7, cfg.Editor.HistoryLimit)

	_, err = Load(filepath.Join(root, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
