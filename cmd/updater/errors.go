// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"dorion-updater/internal/issue"
)

// actionable wraps err with the operation and resource the user asked for,
// plus the remediation hints for its kind. Errors that are already
// actionable (config loading) pass through.
func actionable(operation, resource string, err error) error {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return err
	}

	return issue.NewErrorContext().
		WithOperation(operation).
		WithResource(resource).
		Wrap(err).
		WithKindHints().
		BuildError()
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode the full help page for the error kind is appended.
func formatErrorForDisplay(err error, verbose bool) string {
	msg := err.Error()
	page := issue.ForError(err)
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		msg = ae.Format(verbose)
		page = ae.Help()
	}

	if !verbose || page == nil {
		return msg
	}
	rendered, renderErr := page.Render("dark")
	if renderErr != nil {
		return msg
	}
	return msg + "\n" + rendered
}

// reportFailure prints err to w and converts it into an ExitError.
func reportFailure(w io.Writer, err error, verbose bool) error {
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	return &ExitError{Code: classifyExitCode(err), Err: err}
}
