// SPDX-License-Identifier: MPL-2.0

// Package elevate obtains administrative privileges for the updater.
//
// Two models exist and are selected per operating system:
//
//   - relaunch (Windows): an elevated copy of the updater is started through
//     UAC and the current process waits for it. The outcome is
//     DelegatedToChild with the child's exit code, whatever its value; a
//     declined prompt is reported by the launcher on standard output.
//   - re-exec (Unix): the current process image is replaced by
//     "sudo <exe> <args>". The call only returns when that fails, or when the
//     process is already root (BecamePrivileged).
//
// Both models forward the invocation arguments plus ElevatedFlag, which tells
// the next invocation it must not escalate again. No Escalator ever exits the
// process; stopping after a delegation is the caller's decision.
package elevate
