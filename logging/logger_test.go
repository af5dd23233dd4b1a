package logging

import (
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFormatter(t *testing.T) {
	formatter := &TextFormatter{Config: FormatConfig{DisableTimestamp: true}}

	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Now(),
		Level:   logrus.WarnLevel,
		Message: "document reloaded",
		Data:    logrus.Fields{"component": "docload", "path": "data.json"},
	}

	out, err := formatter.Format(entry)
	require.NoError(t, err)

	line := string(out)
	assert.Contains(t, line, "[WARN]")
	assert.Contains(t, line, "document reloaded")
	assert.Contains(t, line, "path=data.json")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestTextFormatterSimplePreset(t *testing.T) {
	formatter := &TextFormatter{Config: FormatConfig{
		DisableTimestamp: true,
		DisableComponent: true,
	}}

	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Now(),
		Level:   logrus.InfoLevel,
		Message: "ready",
		Data:    logrus.Fields{"component": "treeview"},
	}

	out, err := formatter.Format(entry)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "treeview")
}

func TestNewLoggerSingleton(t *testing.T) {
	a := NewLogger("test-singleton")
	b := NewLogger("test-singleton")
	assert.Same(t, a, b)
	assert.Equal(t, "test-singleton", a.Data["component"])
}
