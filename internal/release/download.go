// SPDX-License-Identifier: MPL-2.0

package release

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"dorion-updater/internal/issue"
	"dorion-updater/pkg/platform"
)

const (
	// maxAssetBytes is the upper bound on a single asset download (1 GiB).
	maxAssetBytes = 1 << 30

	// defaultAssetMode is used when the destination did not exist before.
	defaultAssetMode fs.FileMode = 0o644
)

var errAssetTooLarge = errors.New("asset exceeds size limit")

// readTracker remembers the last read error so a failed copy can be
// attributed to the network (read side) or the local disk (write side).
type readTracker struct {
	r   io.Reader
	err error
}

func (t *readTracker) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		t.err = err
	}
	return n, err
}

// DownloadAsset resolves the release tagged tag in owner/repo, selects the
// asset named assetName exactly, and streams it to dest. If dest is an
// existing directory the file is written as dest/assetName. It returns the
// path written.
//
// Either the returned path holds the complete new asset or the previous
// contents (or absence) of that path are left untouched: bytes go to a
// temporary file in the same directory, are verified against the host digest
// when one is published, and are renamed into place only on success.
func (c *Client) DownloadAsset(ctx context.Context, owner, repo, tag, assetName, dest string) (string, error) {
	rel, err := c.ReleaseByTag(ctx, owner, repo, tag)
	if err != nil {
		return "", err
	}

	asset, err := rel.FindAsset(assetName)
	if err != nil {
		return "", err
	}

	target, err := resolveTarget(dest, asset.Name)
	if err != nil {
		return "", err
	}

	body, err := c.openAsset(ctx, asset.DownloadURL)
	if err != nil {
		return "", err
	}
	defer func() { _ = body.Close() }() // read-only HTTP response body

	if err := writeAtomic(target, asset, body); err != nil {
		return "", err
	}

	return target, nil
}

// resolveTarget returns dest/assetName when dest is an existing directory,
// and dest otherwise. A host-supplied name that is not a single plain path
// element is rejected before it is joined.
func resolveTarget(dest, assetName string) (string, error) {
	info, err := os.Stat(dest)
	if err != nil || !info.IsDir() {
		return dest, nil
	}
	if !platform.IsPlainFileName(assetName) {
		return "", fmt.Errorf("asset name %q is not a plain file name: %w", assetName, issue.ErrNetwork)
	}
	return filepath.Join(dest, assetName), nil
}

// writeAtomic copies body into a temp file beside target, verifies it, and
// renames it over target. The temp file is removed on every failure path.
func writeAtomic(target string, asset *Asset, body io.Reader) (err error) {
	mode := defaultAssetMode
	if info, statErr := os.Stat(target); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".download-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w: %w", asset.Name, issue.ErrIO, err)
	}
	tmpPath := tmp.Name()

	renamed := false
	defer func() {
		if !renamed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	src := &readTracker{r: io.LimitReader(body, maxAssetBytes+1)}
	hash := sha256.New()

	n, err := io.Copy(io.MultiWriter(tmp, hash), src)
	if err != nil {
		if src.err != nil {
			return fmt.Errorf("receiving %s: %w: %w", asset.Name, issue.ErrNetwork, err)
		}
		return fmt.Errorf("writing %s: %w: %w", asset.Name, issue.ErrIO, err)
	}
	if n > maxAssetBytes {
		return fmt.Errorf("receiving %s: %w: %w", asset.Name, issue.ErrNetwork, errAssetTooLarge)
	}

	if err := verifyDigest(asset, hex.EncodeToString(hash.Sum(nil))); err != nil {
		return err
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w: %w", asset.Name, issue.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w: %w", asset.Name, issue.ErrIO, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("setting mode of %s: %w: %w", asset.Name, issue.ErrIO, err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("replacing %s: %w: %w", target, issue.ErrIO, err)
	}
	renamed = true

	return nil
}
