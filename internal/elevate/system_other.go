// SPDX-License-Identifier: MPL-2.0

//go:build !unix && !windows

package elevate

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"dorion-updater/internal/issue"
)

type unsupported struct{}

func newPlatform(*log.Logger) Escalator { return unsupported{} }

// Escalate always fails: there is no privilege model on this platform.
func (unsupported) Escalate(context.Context, []string) (Outcome, error) {
	return Outcome{}, fmt.Errorf("privilege escalation is not supported here: %w", issue.ErrPermissionDenied)
}
