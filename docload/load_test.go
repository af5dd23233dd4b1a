package docload

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/lens/errors"
)

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"lens","count":3}`), 0644))

	doc, err := Load(path, FormatAuto)
	require.NoError(t, err)

	m, ok := doc.(map[string]interface{})
	require.True(t, ok, "JSON object should decode to a map")
	assert.Equal(t, "lens", m["name"])
	assert.Equal(t, float64(3), m["count"])
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: lens\nitems:\n  - a\n  - b\n"), 0644))

	doc, err := Load(path, FormatAuto)
	require.NoError(t, err)

	m, ok := doc.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "lens", m["name"])
	assert.Len(t, m["items"], 2)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), FormatAuto)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeDocumentNotFound))
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := Decode("bad.json", []byte(`{"unterminated`), FormatJSON)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeDocumentDecode))
}

func TestDetectFormatSniffsContent(t *testing.T) {
	// No extension: JSON-looking content decodes as JSON.
	doc, err := Decode("stdin", []byte(`  {"a": 1}`), FormatAuto)
	require.NoError(t, err)
	assert.IsType(t, map[string]interface{}{}, doc)

	// Bare array sniffs as JSON too.
	doc, err = Decode("stdin", []byte(`[1, 2, 3]`), FormatAuto)
	require.NoError(t, err)
	assert.IsType(t, []interface{}{}, doc)

	// Everything else falls back to YAML.
	doc, err = Decode("stdin", []byte("key: value"), FormatAuto)
	require.NoError(t, err)
	assert.IsType(t, map[string]interface{}{}, doc)
}

func TestWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"v":1}`), 0644))

	reloaded := make(chan interface{}, 1)
	w, err := NewWatcher(path, FormatAuto, 10, func(doc interface{}, err error) {
		require.NoError(t, err)
		select {
		case reloaded <- doc:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// Give the watcher a moment to arm before writing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`{"v":2}`), 0644))

	select {
	case doc := <-reloaded:
		m := doc.(map[string]interface{})
		assert.Equal(t, float64(2), m["v"])
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload the document")
	}
}
