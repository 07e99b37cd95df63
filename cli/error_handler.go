package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/Mahdiglm/draugr-deploy/errors"
	"github.com/Mahdiglm/draugr-deploy/logging"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to stderr
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a headline and hint for known error codes and returns err
// unchanged. Codes and details are found through any %w wrapping.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}

	var draugrErr *errors.DraugrError
	stderrors.As(err, &draugrErr)
	detail := func(key string) interface{} {
		if draugrErr == nil {
			return ""
		}
		return draugrErr.Details[key]
	}

	var headline, hint string
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		headline = fmt.Sprintf("Configuration not found: %v", detail("path"))

	case errors.ErrCodeConfigValidation, errors.ErrCodeConfigInvalid:
		headline = err.Error()
		hint = "Run 'draugr config schema' to see the accepted settings."

	case errors.ErrCodeCommandNotFound:
		headline = fmt.Sprintf("'%v' is not installed or not on PATH", detail("command"))

	case errors.ErrCodePublishEmpty:
		headline = fmt.Sprintf("Nothing to publish in %v", detail("dir"))
		hint = "Build the site first."

	case errors.ErrCodePromptAborted:
		headline = "Input ended before all answers were given"

	case errors.ErrCodeAuthFailed:
		headline = fmt.Sprintf("GitHub rejected the credentials for '%v'", detail("user"))
		hint = "Check that the token is valid and has the 'repo' scope."

	case errors.ErrCodeUnknownOperation:
		headline = fmt.Sprintf("Unknown console operation '%v'", detail("operation"))
		hint = fmt.Sprintf("Available: %v", detail("available"))

	default:
		headline = fmt.Sprintf("Error: %v", err)
	}

	pretty := logging.NewPrettyLogger().WithWriter(h.Out)
	pretty.Error(headline)
	if hint != "" {
		pretty.Hint(hint)
	}

	if h.Verbose && draugrErr != nil {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", draugrErr.ToJSON())
	}
	return err
}
