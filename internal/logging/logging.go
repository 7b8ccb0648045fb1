// Package logging wires named loggers into mdedit components.
package logging

import (
	"maps"

	"github.com/cds-snc/mdedit/editor"
)

// Module logger names.
const (
	RootModule   = "mdedit"
	EditorModule = "mdedit.editor"
	StoreModule  = "mdedit.store"
	CLIModule    = "mdedit.cli"
)

// FieldsLogger is implemented by loggers that can carry structured fields
// on every entry.
type FieldsLogger interface {
	WithFields(fields map[string]any) editor.Logger
}

// NoOp returns a logger that discards everything.
func NoOp() editor.Logger { return noopLogger{} }

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) editor.Logger { return n }

// WithFields attaches fields to logger when it supports them, and returns
// it unchanged otherwise.
func WithFields(logger editor.Logger, fields map[string]any) editor.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fl, ok := logger.(FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fl.WithFields(copied)
	}
	return logger
}

// ModuleLogger returns the logger for module from provider, annotated with
// a "module" field. It falls back to NoOp without a provider.
func ModuleLogger(provider editor.LoggerProvider, module string) editor.Logger {
	if module == "" {
		module = RootModule
	}
	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}
