// SPDX-License-Identifier: MPL-2.0

//go:build unix

package elevate

import (
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"

	"dorion-updater/pkg/platform"
)

func newPlatform(logger *log.Logger) Escalator {
	return &reexecer{
		logger:     logger,
		geteuid:    unix.Geteuid,
		sandbox:    platform.DetectSandbox,
		lookPath:   exec.LookPath,
		executable: os.Executable,
		environ:    os.Environ,
		exec:       unix.Exec,
	}
}
