// SPDX-License-Identifier: MPL-2.0

package elevate

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"
)

// ElevatedFlag marks an invocation that was started by an Escalator.
const ElevatedFlag = "--elevated"

const (
	// BecamePrivileged means the current process now holds the privileges and
	// should retry its work.
	BecamePrivileged OutcomeKind = iota + 1
	// DelegatedToChild means an elevated child process did the work and has
	// already exited with Outcome.ExitCode.
	DelegatedToChild
)

type (
	// OutcomeKind tags an Outcome.
	OutcomeKind int

	// Outcome is the result of a successful escalation.
	Outcome struct {
		Kind OutcomeKind
		// ExitCode is the elevated child's exit code. Only meaningful for
		// DelegatedToChild.
		ExitCode int
	}

	// Escalator obtains elevated privileges for the current program.
	// args are the invocation arguments without the program name.
	Escalator interface {
		Escalate(ctx context.Context, args []string) (Outcome, error)
	}
)

// String returns the outcome kind name used in logs.
func (k OutcomeKind) String() string {
	switch k {
	case BecamePrivileged:
		return "became-privileged"
	case DelegatedToChild:
		return "delegated-to-child"
	}
	return "unknown"
}

// New returns the Escalator for the running operating system.
func New(logger *log.Logger) Escalator {
	return newPlatform(logger)
}

// WithElevatedFlag returns a copy of args ending with ElevatedFlag. The flag
// is never duplicated.
func WithElevatedFlag(args []string) []string {
	out := slices.DeleteFunc(slices.Clone(args), func(a string) bool { return a == ElevatedFlag })
	return append(out, ElevatedFlag)
}
