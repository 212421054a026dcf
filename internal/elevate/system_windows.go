// SPDX-License-Identifier: MPL-2.0

//go:build windows

package elevate

import (
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/windows"
)

func newPlatform(logger *log.Logger) Escalator {
	return &relauncher{
		logger:     logger,
		isElevated: tokenElevated,
		executable: os.Executable,
		run:        runCommand,
	}
}

// tokenElevated reports whether the process token carries the elevated
// administrator privileges.
func tokenElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
