// SPDX-License-Identifier: MPL-2.0

// Package apply updates the main Dorion application.
//
// The strategy depends on the platform family:
//
//   - prompt-install (Windows): the application's own installer owns
//     updates, so nothing is done here.
//   - disk-image (macOS): the newest .dmg is downloaded to the temp
//     directory and handed to "open"; the running application is then
//     killed so the user can drag the new copy into place.
//   - unmanaged (Linux and anything else): packages come from distribution
//     channels the updater cannot drive, so nothing is done.
package apply
