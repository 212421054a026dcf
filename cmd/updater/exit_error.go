// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"dorion-updater/internal/issue"
)

// Process exit codes by failure kind.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitPermission = 3
	ExitNetwork    = 4
	ExitNoAsset    = 5
	ExitIO         = 6
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// classifyExitCode maps a failure to the process exit code for its kind.
func classifyExitCode(err error) int {
	switch issue.KindOf(err) {
	case issue.KindPermissionDenied, issue.KindElevationRefused:
		return ExitPermission
	case issue.KindNetwork, issue.KindNotFound:
		return ExitNetwork
	case issue.KindAssetNotFound:
		return ExitNoAsset
	case issue.KindIO:
		return ExitIO
	case issue.KindUnknown:
		return ExitFailure
	}
	return ExitFailure
}
