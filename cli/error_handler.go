package cli

import (
	"fmt"
	"os"

	"github.com/grovetools/lens/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ Configuration not found. Create a lens.yml next to your documents or in ~/.config/lens/.\n")
		return err

	case errors.ErrCodeDocumentNotFound:
		if lensErr, ok := err.(*errors.LensError); ok {
			fmt.Fprintf(os.Stderr, "❌ Document '%s' not found\n", lensErr.Details["path"])
		} else {
			fmt.Fprintf(os.Stderr, "❌ Document not found\n")
		}
		return err

	case errors.ErrCodeDocumentDecode:
		if lensErr, ok := err.(*errors.LensError); ok {
			fmt.Fprintf(os.Stderr, "❌ Could not decode '%s' as %s\n",
				lensErr.Details["path"], lensErr.Details["format"])
			fmt.Fprintf(os.Stderr, "Pass --format json or --format yaml to override detection.\n")
		}
		return err

	case errors.ErrCodePatternInvalid:
		if lensErr, ok := err.(*errors.LensError); ok {
			fmt.Fprintf(os.Stderr, "❌ Invalid search pattern %v\n", lensErr.Details["pattern"])
		}
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		// If verbose mode, show full error details
		if h.Verbose {
			if lensErr, ok := err.(*errors.LensError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", lensErr.ToJSON())
			}
		}
		return err
	}
}
