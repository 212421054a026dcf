// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestCanWrite_WritableDirUnchanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "browser.js"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !CanWrite(dir) {
		t.Fatalf("CanWrite(%q) = false, want true", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "browser.js" {
		t.Errorf("directory contents changed: %v", entries)
	}
}

func TestCanWrite_MissingDir(t *testing.T) {
	t.Parallel()

	r := Probe(filepath.Join(t.TempDir(), "missing"))
	if r.Writable {
		t.Fatal("Probe() of a missing directory reported writable")
	}
	if !errors.Is(r.Reason, fs.ErrNotExist) {
		t.Errorf("Reason = %v, want fs.ErrNotExist", r.Reason)
	}
}

func TestCanWrite_ReadOnlyDir(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("directory permission bits are not enforced on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root bypasses directory permission bits")
	}

	dir := t.TempDir()
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	r := Probe(dir)
	if r.Writable {
		t.Fatal("Probe() of a read-only directory reported writable")
	}
	if !errors.Is(r.Reason, fs.ErrPermission) {
		t.Errorf("Reason = %v, want fs.ErrPermission", r.Reason)
	}
}

// TestProbe_Collision swaps the package-level name seam, so it is not parallel.
func TestProbe_Collision(t *testing.T) {
	dir := t.TempDir()
	const fixed = filePrefix + "fixed"
	if err := os.WriteFile(filepath.Join(dir, fixed), []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	orig := newName
	newName = func() string { return fixed }
	t.Cleanup(func() { newName = orig })

	if CanWrite(dir) {
		t.Fatal("CanWrite() = true despite a colliding probe file")
	}

	data, err := os.ReadFile(filepath.Join(dir, fixed))
	if err != nil || string(data) != "keep" {
		t.Errorf("pre-existing file was disturbed: %q, %v", data, err)
	}
}

func TestProbe_NeverLeavesProbeFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(t, "probes")
		for range n {
			if !CanWrite(dir) {
				t.Fatalf("CanWrite(%q) = false", dir)
			}
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), filePrefix) {
				t.Fatalf("leftover probe file %s", e.Name())
			}
		}
	})
}
