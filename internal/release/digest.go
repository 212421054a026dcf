// SPDX-License-Identifier: MPL-2.0

package release

import (
	"errors"
	"fmt"
	"strings"

	"dorion-updater/internal/issue"
)

const sha256Prefix = "sha256:"

// ErrDigestMismatch indicates the downloaded bytes do not match the digest
// the release host published for the asset.
var ErrDigestMismatch = errors.New("digest mismatch")

// DigestError details a digest verification failure. It wraps
// ErrDigestMismatch and, because a corrupted transfer is a transport
// problem, issue.ErrNetwork.
type DigestError struct {
	Asset    string
	Expected string
	Got      string
}

// Error shows both the expected and actual digests.
func (e *DigestError) Error() string {
	return fmt.Sprintf("digest verification failed for %s\nExpected: %s\nGot:      %s", e.Asset, e.Expected, e.Got)
}

// Unwrap returns ErrDigestMismatch and issue.ErrNetwork.
func (e *DigestError) Unwrap() []error { return []error{ErrDigestMismatch, issue.ErrNetwork} }

// expectedSHA256 extracts the lowercase hex SHA256 from a host digest such as
// "sha256:ab12...". It returns "" when the host published no usable digest,
// in which case nothing is verified.
func expectedSHA256(digest string) string {
	if !strings.HasPrefix(strings.ToLower(digest), sha256Prefix) {
		return ""
	}
	hash := strings.ToLower(digest[len(sha256Prefix):])
	if !isValidHexHash(hash) {
		return ""
	}
	return hash
}

// verifyDigest compares a computed hex SHA256 with the asset's host digest.
func verifyDigest(a *Asset, gotHex string) error {
	want := expectedSHA256(a.Digest)
	if want == "" {
		return nil
	}
	if !strings.EqualFold(want, gotHex) {
		return &DigestError{Asset: a.Name, Expected: want, Got: strings.ToLower(gotHex)}
	}
	return nil
}

// isValidHexHash checks if s is a 64-character hex-encoded SHA256 hash.
func isValidHexHash(s string) bool {
	if len(s) != 64 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
