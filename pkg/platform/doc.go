// SPDX-License-Identifier: MPL-2.0

// Package platform maps the running operating system onto the update
// strategies the updater knows about, and detects application sandboxes
// that make privilege escalation impossible.
package platform
