// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"io/fs"
	"testing"
)

func TestFamilyOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos string
		want Family
	}{
		{Windows, PromptInstall},
		{Darwin, DiskImage},
		{Linux, Unmanaged},
		{"freebsd", Unmanaged},
		{"", Unmanaged},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			t.Parallel()
			if got := FamilyOf(tt.goos); got != tt.want {
				t.Errorf("FamilyOf(%q) = %v, want %v", tt.goos, got, tt.want)
			}
		})
	}
}

func TestFamily_String(t *testing.T) {
	t.Parallel()

	if got := DiskImage.String(); got != "disk-image" {
		t.Errorf("DiskImage.String() = %q", got)
	}
	if got := Family(42).String(); got != "unmanaged" {
		t.Errorf("unknown family should render as unmanaged, got %q", got)
	}
}

func TestDetectSandboxFrom(t *testing.T) {
	t.Parallel()

	missing := func(string) error { return fs.ErrNotExist }
	present := func(string) error { return nil }
	noEnv := func(string) string { return "" }
	snapEnv := func(key string) string {
		if key == "SNAP_NAME" {
			return "dorion"
		}
		return ""
	}

	tests := []struct {
		name string
		env  func(string) string
		stat func(string) error
		want SandboxType
	}{
		{"none", noEnv, missing, SandboxNone},
		{"flatpak", noEnv, present, SandboxFlatpak},
		{"snap", snapEnv, missing, SandboxSnap},
		{"flatpak wins over snap", snapEnv, present, SandboxFlatpak},
		{"stat error other than not-exist", noEnv, func(string) error { return errors.New("io") }, SandboxNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := detectSandboxFrom(tt.env, tt.stat); got != tt.want {
				t.Errorf("detectSandboxFrom() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanEscalate(t *testing.T) {
	t.Parallel()

	if !CanEscalate(SandboxNone) {
		t.Error("unsandboxed process should be able to escalate")
	}
	if CanEscalate(SandboxFlatpak) || CanEscalate(SandboxSnap) {
		t.Error("sandboxed process should not be able to escalate")
	}
}

func TestIsPlainFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"browser.js", true},
		{"Dorion_6.0.0_aarch64.dmg", true},
		{".hidden", true},
		{"", false},
		{".", false},
		{"..", false},
		{"../browser.js", false},
		{`..\browser.js`, false},
		{"dir/browser.js", false},
		{"C:browser.js", false},
		{"con", false},
		{"NUL.txt", false},
		{"COM1.dmg", false},
		{"console.js", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsPlainFileName(tt.name); got != tt.want {
				t.Errorf("IsPlainFileName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
