// SPDX-License-Identifier: MPL-2.0

package apply

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"dorion-updater/internal/issue"
	"dorion-updater/internal/release"
	"dorion-updater/pkg/platform"
)

// diskImage downloads and opens the newest disk image.
type diskImage struct {
	deps Deps
}

func (d *diskImage) Strategy() platform.Family { return platform.DiskImage }

func (d *diskImage) Apply(ctx context.Context) (Result, error) {
	rel, err := d.deps.Source.LatestRelease(ctx, d.deps.Owner, d.deps.Repo)
	if err != nil {
		return Result{}, fmt.Errorf("fetching latest application release: %w", err)
	}

	asset, err := SelectAsset(rel.Assets, d.deps.ImageSuffix)
	if err != nil {
		return Result{}, fmt.Errorf("release %s: %w", rel.Tag, err)
	}
	d.deps.Logger.Info("downloading application image", "tag", rel.Tag, "asset", asset.Name)

	if err := os.MkdirAll(d.deps.TempDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating download directory %s: %w: %w", d.deps.TempDir, issue.ErrIO, err)
	}
	// A full file path keeps the image suffix even if the directory vanishes
	// before the download lands.
	dest := filepath.Join(d.deps.TempDir, asset.Name)
	path, err := d.deps.Source.DownloadAsset(ctx, d.deps.Owner, d.deps.Repo, rel.Tag, asset.Name, dest)
	if err != nil {
		return Result{}, fmt.Errorf("downloading %s: %w", asset.Name, err)
	}

	if err := d.deps.Launcher.Start(ctx, "open", path); err != nil {
		return Result{}, fmt.Errorf("opening %s: %w: %w", path, issue.ErrIO, err)
	}
	d.deps.Logger.Info("opened application image", "path", path)

	// The image is already open; a surviving old process only delays the
	// user's reinstall.
	if err := d.deps.Launcher.Start(ctx, "pkill", "-9", d.deps.ProcessName); err != nil {
		d.deps.Logger.Warn("could not stop the running application", "process", d.deps.ProcessName, "error", err)
	}

	return Result{Applied: true, Tag: rel.Tag, Path: path}, nil
}

// SelectAsset returns the first asset, in host order, whose name ends with
// suffix. It fails with issue.ErrAssetNotFound when none does.
func SelectAsset(assets []release.Asset, suffix string) (release.Asset, error) {
	asset, ok := lo.Find(assets, func(a release.Asset) bool {
		return strings.HasSuffix(a.Name, suffix)
	})
	if !ok {
		return release.Asset{}, fmt.Errorf("no asset ending in %q: %w", suffix, issue.ErrAssetNotFound)
	}
	return asset, nil
}
