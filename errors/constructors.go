package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *LensError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *LensError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// DocumentNotFound creates a document not found error
func DocumentNotFound(path string, err error) *LensError {
	return Wrap(err, ErrCodeDocumentNotFound, fmt.Sprintf("document not found: %s", path)).
		WithDetail("path", path)
}

// DocumentDecode creates a document decode failure error
func DocumentDecode(path string, format string, err error) *LensError {
	return Wrap(err, ErrCodeDocumentDecode, fmt.Sprintf("failed to decode %s document: %s", format, path)).
		WithDetail("path", path).
		WithDetail("format", format)
}

// DocumentInvalid creates an unclassifiable document shape error. The tree
// builder degrades unknown value types to opaque scalars, so this is only
// reachable from callers that refuse to do so.
func DocumentInvalid(reason string) *LensError {
	return New(ErrCodeDocumentInvalid, fmt.Sprintf("invalid document: %s", reason))
}

// PatternInvalid creates a malformed search pattern error
func PatternInvalid(pattern string, err error) *LensError {
	return Wrap(err, ErrCodePatternInvalid, fmt.Sprintf("invalid search pattern: %q", pattern)).
		WithDetail("pattern", pattern)
}
