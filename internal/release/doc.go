// SPDX-License-Identifier: MPL-2.0

// Package release is the updater's client for the GitHub Releases API.
//
// It answers two questions: what is the latest published release of a
// project, and what are the bytes of a named asset in a given release.
// Downloads are written to a temporary file next to the destination and
// renamed into place, so a failed download never leaves a partial file
// where the caller expects a complete one.
//
// The package is organized into:
//   - client.go: HTTP client, request headers, rate-limit detection
//   - release.go: Release/Asset types and the wire format
//   - download.go: streaming, verified, atomic asset downloads
//   - digest.go: verification of the SHA256 digest GitHub attaches to assets
package release
