// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"dorion-updater/internal/issue"
)

func TestClassifyExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"permission denied", fmt.Errorf("open plugin dir: %w", issue.ErrPermissionDenied), ExitPermission},
		{"elevation refused", fmt.Errorf("uac: %w", issue.ErrElevationRefused), ExitPermission},
		{"network", fmt.Errorf("dial: %w", issue.ErrNetwork), ExitNetwork},
		{"not found", fmt.Errorf("latest: %w", issue.ErrNotFound), ExitNetwork},
		{"asset not found", fmt.Errorf("browser.js: %w", issue.ErrAssetNotFound), ExitNoAsset},
		{"io", fmt.Errorf("rename: %w", issue.ErrIO), ExitIO},
		{"unclassified", errors.New("boom"), ExitFailure},
		{
			"wrapped in actionable error",
			issue.NewErrorContext().WithOperation("update Dorion").Wrap(issue.ErrIO).BuildError(),
			ExitIO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := classifyExitCode(tt.err); got != tt.want {
				t.Errorf("classifyExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProcessExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitOK},
		{"exit error", &ExitError{Code: ExitNoAsset, Err: issue.ErrAssetNotFound}, ExitNoAsset},
		{"wrapped exit error", fmt.Errorf("run: %w", &ExitError{Code: ExitIO}), ExitIO},
		{"cobra usage error", errors.New(`unknown flag: --nope`), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := processExitCode(tt.err); got != tt.want {
				t.Errorf("processExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	cause := errors.New("download failed")
	err := &ExitError{Code: ExitNetwork, Err: cause}
	if err.Error() != "download failed" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("ExitError should unwrap to its cause")
	}

	bare := &ExitError{Code: 7}
	if !strings.Contains(bare.Error(), "exit status 7") {
		t.Errorf("Error() = %q, want exit status", bare.Error())
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	err := actionable("update Dorion", "/opt/dorion/injection", fmt.Errorf("open plugin dir: %w", issue.ErrPermissionDenied))

	terse := formatErrorForDisplay(err, false)
	if !strings.Contains(terse, "failed to update Dorion: /opt/dorion/injection") {
		t.Errorf("terse output missing operation and resource:\n%s", terse)
	}
	if !strings.Contains(terse, "•") {
		t.Errorf("terse output missing suggestions:\n%s", terse)
	}
	if strings.Contains(terse, "Error chain:") {
		t.Errorf("terse output should not include the error chain:\n%s", terse)
	}

	verbose := formatErrorForDisplay(err, true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("verbose output missing error chain:\n%s", verbose)
	}
	if len(verbose) <= len(terse) {
		t.Error("verbose output should append the help page")
	}

	plain := formatErrorForDisplay(errors.New("plain failure"), false)
	if plain != "plain failure" {
		t.Errorf("plain error = %q", plain)
	}
}

func TestActionable_PassesThroughActionableErrors(t *testing.T) {
	t.Parallel()

	inner := issue.NewErrorContext().WithOperation("load configuration").Wrap(issue.ErrIO).BuildError()
	if got := actionable("update Dorion", "", inner); got != inner {
		t.Errorf("actionable() rewrapped an actionable error: %v", got)
	}
}
