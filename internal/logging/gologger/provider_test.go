package gologger

import (
	"context"
	"testing"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cds-snc/mdedit/internal/logging"
)

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Config{Level: "debug", Format: "console"})
	require.NoError(t, err)

	logger := logging.ModuleLogger(p, logging.EditorModule)
	require.NotNil(t, logger)
	logger.Debug("provider ready", "editor", "editor-test")

	_, err = NewProvider(Config{Format: "xml"})
	assert.Error(t, err)

	var nilProvider *Provider
	assert.Equal(t, logging.NoOp(), nilProvider.GetLogger("x"))
}

func TestAdapter(t *testing.T) {
	stub := &stubLogger{}
	adapted := wrap(stub)

	adapted.Debug("debug", "key", "value")
	adapted.Info("info")
	adapted.Warn("warn")
	adapted.Error("error")
	assert.Equal(t, []string{"debug", "info", "warn", "error"}, stub.calls)

	fields := map[string]any{"module": logging.StoreModule}
	child := logging.WithFields(adapted, fields)
	require.NotNil(t, child)
	fields["module"] = "changed"
	require.Len(t, stub.fields, 1)
	assert.Equal(t, logging.StoreModule, stub.fields[0]["module"])
}

type stubLogger struct {
	calls  []string
	fields []map[string]any
}

var _ glog.Logger = (*stubLogger)(nil)
var _ glog.FieldsLogger = (*stubLogger)(nil)

func (s *stubLogger) Trace(string, ...any) { s.calls = append(s.calls, "trace") }
func (s *stubLogger) Debug(string, ...any) { s.calls = append(s.calls, "debug") }
func (s *stubLogger) Info(string, ...any)  { s.calls = append(s.calls, "info") }
func (s *stubLogger) Warn(string, ...any)  { s.calls = append(s.calls, "warn") }
func (s *stubLogger) Error(string, ...any) { s.calls = append(s.calls, "error") }
func (s *stubLogger) Fatal(string, ...any) { s.calls = append(s.calls, "fatal") }

func (s *stubLogger) WithContext(context.Context) glog.Logger { return s }

func (s *stubLogger) WithFields(fields map[string]any) glog.Logger {
	s.fields = append(s.fields, fields)
	return s
}
