// SPDX-License-Identifier: MPL-2.0

package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

const (
	// Unmanaged is the family of platforms where the updater does not know how
	// the application was installed, so the main update is skipped.
	Unmanaged Family = iota
	// PromptInstall is the family of platforms where the main application is
	// updated by an installer that prompts the user (Windows MSI).
	PromptInstall
	// DiskImage is the family of platforms where the main application ships as
	// a disk image that is mounted and opened (macOS DMG).
	DiskImage
)

// Family groups operating systems that share a main-application update strategy.
type Family int

// String returns the lowercase family name used in logs.
func (f Family) String() string {
	switch f {
	case PromptInstall:
		return "prompt-install"
	case DiskImage:
		return "disk-image"
	case Unmanaged:
		return "unmanaged"
	}
	return "unmanaged"
}

// FamilyOf returns the update family for a GOOS value.
func FamilyOf(goos string) Family {
	switch goos {
	case Windows:
		return PromptInstall
	case Darwin:
		return DiskImage
	default:
		return Unmanaged
	}
}

// Current returns the update family of the running process.
func Current() Family {
	return FamilyOf(runtime.GOOS)
}
