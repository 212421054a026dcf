// SPDX-License-Identifier: MPL-2.0

package apply

import (
	"context"
	"fmt"
	"os/exec"
)

// Launcher starts external programs without waiting for them.
type Launcher interface {
	Start(ctx context.Context, name string, args ...string) error
}

// ExecLauncher starts programs with os/exec and releases them immediately.
type ExecLauncher struct{}

// Start runs name detached from the updater's lifetime. The context is only
// checked before starting; the spawned process outlives it.
func (ExecLauncher) Start(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := exec.Command(name, args...) //nolint:gosec,noctx // fixed program names; must outlive ctx
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	return cmd.Process.Release()
}
