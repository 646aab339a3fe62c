package logging

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
	}{
		{name: "debug level with text format", level: "debug", format: "text", expectLevel: logrus.DebugLevel},
		{name: "info level with json format", level: "info", format: "json", expectLevel: logrus.InfoLevel},
		{name: "upper-case level is accepted", level: "WARN", format: "text", expectLevel: logrus.WarnLevel},
		{name: "invalid level defaults to info", level: "invalid", format: "text", expectLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			require.NotNil(t, logger)

			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok, "logger should be a LogrusAdapter")
			assert.Equal(t, tt.expectLevel, adapter.logger.Level)

			if tt.format == "json" {
				_, ok := adapter.logger.Formatter.(*logrus.JSONFormatter)
				assert.True(t, ok, "formatter should be JSONFormatter")
			} else {
				_, ok := adapter.logger.Formatter.(*logrus.TextFormatter)
				assert.True(t, ok, "formatter should be TextFormatter")
			}
		})
	}
}

func TestNewLogrusAdapterWithOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAdapterWithOutput("debug", "json", &buf)

	logger.Debug("classified document", Field{Key: FieldDocumentType, Value: "Tax Invoice"})

	assert.Contains(t, buf.String(), `"document_type":"Tax Invoice"`)
	assert.Contains(t, buf.String(), "classified document")
}

func TestNewLogrusAdapterFromLogger(t *testing.T) {
	t.Run("with existing logger", func(t *testing.T) {
		existing := logrus.New()
		logger := NewLogrusAdapterFromLogger(existing)
		adapter, ok := logger.(*LogrusAdapter)
		require.True(t, ok)
		assert.Equal(t, existing, adapter.logger)
	})

	t.Run("with nil logger creates new one", func(t *testing.T) {
		adapter, ok := NewLogrusAdapterFromLogger(nil).(*LogrusAdapter)
		require.True(t, ok)
		assert.NotNil(t, adapter.logger)
	})
}

func newBufferedAdapter(level logrus.Level) (Logger, *bytes.Buffer) {
	l := logrus.New()
	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return NewLogrusAdapterFromLogger(l), &buf
}

func TestLogrusAdapter_LoggingMethods(t *testing.T) {
	tests := []struct {
		name    string
		logFunc func(Logger, string, ...Field)
		message string
	}{
		{name: "Debug", logFunc: func(l Logger, m string, f ...Field) { l.Debug(m, f...) }, message: "debug message"},
		{name: "Info", logFunc: func(l Logger, m string, f ...Field) { l.Info(m, f...) }, message: "info message"},
		{name: "Warn", logFunc: func(l Logger, m string, f ...Field) { l.Warn(m, f...) }, message: "warn message"},
		{name: "Error", logFunc: func(l Logger, m string, f ...Field) { l.Error(m, f...) }, message: "error message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferedAdapter(logrus.DebugLevel)
			tt.logFunc(logger, tt.message, Field{Key: FieldField, Value: "gst_no"})
			assert.Contains(t, buf.String(), tt.message)
			assert.Contains(t, buf.String(), "field=gst_no")
		})
	}
}

func TestLogrusAdapter_ChainedCalls(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.InfoLevel)

	logger.
		WithField(FieldFile, "dc.pdf").
		WithFields(Field{Key: FieldOperation, Value: "ocr"}).
		WithError(errors.New("ocrmypdf exited 2")).
		Error("OCR normalization failed")

	output := buf.String()
	assert.Contains(t, output, "OCR normalization failed")
	assert.Contains(t, output, "dc.pdf")
	assert.Contains(t, output, "operation=ocr")
	assert.Contains(t, output, "ocrmypdf exited 2")
}

func TestConvertFields(t *testing.T) {
	fields := convertFields([]Field{{Key: "a", Value: 1}, {Key: "b", Value: "x"}})
	assert.Len(t, fields, 2)
	assert.Equal(t, 1, fields["a"])
	assert.Empty(t, convertFields(nil))
}

func TestGetLogger_AndOrDefault(t *testing.T) {
	assert.NotNil(t, GetLogger())
	assert.Same(t, GetLogger(), GetLogger())

	mock := NewMockLogger()
	assert.Equal(t, Logger(mock), OrDefault(mock))
	assert.Equal(t, GetLogger(), OrDefault(nil))
}

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	mock := NewMockLogger()
	mock.WithField(FieldFile, "a.pdf").Warn("page skipped", Field{Key: FieldPage, Value: 2})
	mock.WithError(errors.New("boom")).Error("failed")

	entries := mock.GetEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.Equal(t, []Field{{Key: FieldFile, Value: "a.pdf"}, {Key: FieldPage, Value: 2}}, entries[0].Fields)
	assert.EqualError(t, entries[1].Error, "boom")
	assert.True(t, mock.HasEntry("ERROR", "failed"))
	assert.Len(t, mock.GetEntriesByLevel("WARN"), 1)

	mock.Clear()
	assert.Empty(t, mock.GetEntries())
}

func TestMockLogger_ConcurrentUse(t *testing.T) {
	mock := NewMockLogger()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mock.WithField("worker", i).Info("done")
		}(i)
	}
	wg.Wait()
	assert.Len(t, mock.GetEntries(), 20)
}

func TestLogrusAdapter_ImplementsInterface(t *testing.T) {
	var _ Logger = (*LogrusAdapter)(nil)
	var _ Logger = (*MockLogger)(nil)
}
