// SPDX-License-Identifier: MPL-2.0

package elevate

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"dorion-updater/internal/issue"
	"dorion-updater/pkg/platform"
)

// reexecer replaces the current process with "sudo <exe> <args>".
type reexecer struct {
	logger     *log.Logger
	geteuid    func() int
	sandbox    func() platform.SandboxType
	lookPath   func(file string) (string, error)
	executable func() (string, error)
	environ    func() []string
	exec       func(argv0 string, argv, envv []string) error
}

// Escalate implements Escalator. On success it does not return: the process
// image is replaced and the new image re-enters the updater with
// ElevatedFlag set.
func (r *reexecer) Escalate(ctx context.Context, args []string) (Outcome, error) {
	if r.geteuid() == 0 {
		r.logger.Debug("already running as root")
		return Outcome{Kind: BecamePrivileged}, nil
	}

	if st := r.sandbox(); !platform.CanEscalate(st) {
		return Outcome{}, fmt.Errorf("cannot escalate inside a %s sandbox: %w", st, issue.ErrPermissionDenied)
	}

	sudo, err := r.lookPath("sudo")
	if err != nil {
		return Outcome{}, fmt.Errorf("sudo unavailable: %w: %w", issue.ErrPermissionDenied, err)
	}

	exe, err := r.executable()
	if err != nil {
		return Outcome{}, fmt.Errorf("locating updater executable: %w: %w", issue.ErrPermissionDenied, err)
	}

	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	argv := append([]string{"sudo", exe}, WithElevatedFlag(args)...)
	r.logger.Info("requesting root via sudo", "command", shellJoin(argv))

	err = r.exec(sudo, argv, r.environ())
	// exec only returns on failure.
	return Outcome{}, fmt.Errorf("exec %s: %w: %w", sudo, issue.ErrElevationRefused, err)
}
