// Package config loads mdedit settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/cds-snc/mdedit/editor"
	"github.com/cds-snc/mdedit/internal/hostutil"
	"github.com/cds-snc/mdedit/internal/logging/gologger"
	"github.com/cds-snc/mdedit/internal/preview"
)

// FileName is the settings file Find looks for.
const FileName = ".mdedit.yaml"

// Config is the root of the settings file.
type Config struct {
	Editor  EditorConfig  `yaml:"editor"`
	Surface SurfaceConfig `yaml:"surface"`
	Logging LoggingConfig `yaml:"logging"`
	Preview PreviewConfig `yaml:"preview"`
}

// EditorConfig configures editing sessions.
type EditorConfig struct {
	MaxListDepth int    `yaml:"max_list_depth"`
	LineBreaks   string `yaml:"line_breaks"`
	HistoryLimit int    `yaml:"history_limit"`
}

// SurfaceConfig holds the accessibility metadata of the editable surface.
type SurfaceConfig struct {
	Label       string `yaml:"label"`
	DescribedBy string `yaml:"described_by"`
	Lang        string `yaml:"lang"`
}

// LoggingConfig selects the go-logger level and format.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"add_source"`
}

// PreviewConfig configures HTML previews.
type PreviewConfig struct {
	HardWraps  bool     `yaml:"hard_wraps"`
	Extensions []string `yaml:"extensions"`
}

// Default returns the settings used when no file is found.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			MaxListDepth: editor.DefaultMaxListDepth,
			LineBreaks:   string(editor.LineBreaksPostProcess),
			HistoryLimit: editor.DefaultHistoryLimit,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the file at path over Default. Keys the file omits keep their
// default values.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(b)
}

// Parse decodes YAML settings over Default and validates them.
func Parse(b []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Find loads FileName from the working directory or its nearest parent that
// has one. It returns Default and an empty path when there is none.
func Find() (Config, string, error) {
	info, path, err := hostutil.FindWDFile(FileName)
	if err != nil {
		return Config{}, "", err
	}
	if info == nil {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

var (
	lineBreakModes = []any{string(editor.LineBreaksPostProcess), string(editor.LineBreaksStructural)}
	logLevels      = []any{"trace", "debug", "info", "warn", "warning", "error", "fatal"}
	logFormats     = []any{"console", "json", "pretty"}
)

// Validate checks every section.
func (cfg Config) Validate() error {
	return validation.ValidateStruct(&cfg,
		validation.Field(&cfg.Editor),
		validation.Field(&cfg.Logging),
	)
}

func (ec EditorConfig) Validate() error {
	return validation.ValidateStruct(&ec,
		validation.Field(&ec.MaxListDepth, validation.Min(1)),
		validation.Field(&ec.LineBreaks, validation.In(lineBreakModes...)),
		validation.Field(&ec.HistoryLimit, validation.Min(0)),
	)
}

func (lc LoggingConfig) Validate() error {
	return validation.ValidateStruct(&lc,
		validation.Field(&lc.Level, validation.By(lowerIn(logLevels))),
		validation.Field(&lc.Format, validation.By(lowerIn(logFormats))),
	)
}

func lowerIn(values []any) validation.RuleFunc {
	rule := validation.In(values...)
	return func(value any) error {
		s, _ := value.(string)
		return rule.Validate(strings.ToLower(strings.TrimSpace(s)))
	}
}

// EditorOptions returns session options for content. Front matter values,
// when set, take precedence over the surface section.
func (cfg Config) EditorOptions(content string, meta SurfaceConfig) editor.Options {
	surface := cfg.Surface
	if meta.Label != "" {
		surface.Label = meta.Label
	}
	if meta.DescribedBy != "" {
		surface.DescribedBy = meta.DescribedBy
	}
	if meta.Lang != "" {
		surface.Lang = meta.Lang
	}
	return editor.Options{
		Content:      content,
		MaxListDepth: cfg.Editor.MaxListDepth,
		LineBreaks:   editor.LineBreakMode(cfg.Editor.LineBreaks),
		HistoryLimit: cfg.Editor.HistoryLimit,
		Label:        surface.Label,
		DescribedBy:  surface.DescribedBy,
		Lang:         surface.Lang,
	}
}

// LoggerConfig returns the go-logger provider settings.
func (cfg Config) LoggerConfig() gologger.Config {
	return gologger.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
	}
}

// PreviewOptions returns the preview renderer settings.
func (cfg Config) PreviewOptions() preview.Options {
	return preview.Options{
		HardWraps:  cfg.Preview.HardWraps,
		Extensions: cfg.Preview.Extensions,
	}
}
