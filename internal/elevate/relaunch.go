// SPDX-License-Identifier: MPL-2.0

package elevate

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"dorion-updater/internal/issue"
)

// relauncher starts an elevated copy of the program through UAC and waits
// for it. The operating-system primitives are fields so the decision logic
// is testable everywhere.
type relauncher struct {
	logger     *log.Logger
	isElevated func() bool
	executable func() (string, error)
	run        func(ctx context.Context, name string, args ...string) (commandResult, error)
}

// Escalate implements Escalator.
func (r *relauncher) Escalate(ctx context.Context, args []string) (Outcome, error) {
	if r.isElevated() {
		r.logger.Debug("process token is already elevated")
		return Outcome{Kind: BecamePrivileged}, nil
	}

	exe, err := r.executable()
	if err != nil {
		return Outcome{}, fmt.Errorf("locating updater executable: %w: %w", issue.ErrPermissionDenied, err)
	}

	script := powershellScript(exe, WithElevatedFlag(args))
	r.logger.Info("requesting administrator rights", "exe", exe)
	r.logger.Debug("launching elevated updater", "script", script)

	res, err := r.run(ctx, "powershell.exe", "-NoProfile", "-NonInteractive", "-Command", script)
	if err != nil {
		return Outcome{}, fmt.Errorf("starting powershell: %w: %w", issue.ErrElevationRefused, err)
	}
	if strings.Contains(res.stdout, elevationDeclinedMarker) {
		return Outcome{}, fmt.Errorf("administrator prompt declined: %w", issue.ErrElevationRefused)
	}

	r.logger.Info("elevated updater finished", "exit_code", res.exitCode)
	return Outcome{Kind: DelegatedToChild, ExitCode: res.exitCode}, nil
}
