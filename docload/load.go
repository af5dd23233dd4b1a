// Package docload reads and decodes the documents lens displays. It hands
// the view-model a fully-materialized decoded value; parsing raw text and
// watching files live here, outside the doctree core.
package docload

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/lens/errors"
)

// Format identifies the document encoding.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Load reads and decodes the document at path. An empty path or "-" reads
// from stdin, which must be piped (reading a document from an interactive
// terminal is refused). FormatAuto picks the decoder from the file
// extension, falling back to a content sniff.
func Load(path string, format Format) (interface{}, error) {
	if path == "" || path == "-" {
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "no document: pass a file path or pipe one to stdin")
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDocumentNotFound, "failed to read stdin")
		}
		return Decode("stdin", data, format)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.DocumentNotFound(path, err)
	}
	return Decode(path, data, format)
}

// Decode unmarshals raw document bytes. The name is only used for error
// context.
func Decode(name string, data []byte, format Format) (interface{}, error) {
	if format == FormatAuto || format == "" {
		format = detectFormat(name, data)
	}

	switch format {
	case FormatJSON:
		var doc interface{}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.DocumentDecode(name, "json", err)
		}
		return doc, nil
	case FormatYAML:
		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.DocumentDecode(name, "yaml", err)
		}
		return doc, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown document format: "+string(format))
	}
}

// detectFormat picks a decoder from the file extension, then sniffs the
// content: documents starting with '{' or '[' are treated as JSON and
// everything else as YAML (which is a superset of JSON anyway).
func detectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}
