// SPDX-License-Identifier: MPL-2.0

// Package issue classifies updater failures into a small set of kinds and
// turns them into user-facing messages with remediation steps.
//
// Every package in the updater wraps one of the sentinel errors declared in
// kind.go, so the CLI can pick an exit code and a help page with KindOf
// without knowing which component failed.
package issue
