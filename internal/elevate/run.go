// SPDX-License-Identifier: MPL-2.0

package elevate

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// commandResult is what runCommand observed of a finished command.
type commandResult struct {
	exitCode int
	// stdout is a copy of what the command wrote to standard output.
	stdout string
}

// runCommand runs name with the process's standard streams, keeping a copy of
// its standard output. An error means the command could not be run at all.
func runCommand(ctx context.Context, name string, args ...string) (commandResult, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = io.MultiWriter(os.Stdout, &out)
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return commandResult{stdout: out.String()}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return commandResult{exitCode: exitErr.ExitCode(), stdout: out.String()}, nil
	}
	return commandResult{}, err
}
