// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// filePrefix names probe files so stray leftovers are recognizable.
const filePrefix = ".dorion-updater-probe-"

// newName returns the probe file name. Replaced in tests to force collisions.
var newName = func() string { return filePrefix + uuid.NewString() }

// Result is the outcome of probing one directory.
type Result struct {
	Dir      string
	Writable bool
	// Reason is why the probe failed. It is diagnostic only and nil when
	// Writable is true.
	Reason error
}

// CanWrite reports whether a file can be created in dir and deleted again.
// Every failure yields false; nothing is returned to propagate.
func CanWrite(dir string) bool {
	return Probe(dir).Writable
}

// Probe performs the same check as CanWrite and keeps the failure reason.
// On success dir is left exactly as it was found.
func Probe(dir string) Result {
	path := filepath.Join(dir, newName())

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return Result{Dir: dir, Reason: fmt.Errorf("creating probe file: %w", err)}
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return Result{Dir: dir, Reason: fmt.Errorf("closing probe file: %w", err)}
	}

	if err := os.Remove(path); err != nil {
		return Result{Dir: dir, Reason: fmt.Errorf("removing probe file: %w", err)}
	}

	return Result{Dir: dir, Writable: true}
}
