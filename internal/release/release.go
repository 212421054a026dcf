// SPDX-License-Identifier: MPL-2.0

package release

import (
	"context"
	"fmt"

	"dorion-updater/internal/issue"
)

type (
	// Release is one published release of a project. It is immutable once
	// fetched and never persisted.
	Release struct {
		Tag    string  // Git tag, e.g. "v2.1.0"
		Name   string  // Human-readable release name
		Assets []Asset // Attached artifacts in host order
	}

	// Asset is a single downloadable file attached to a release.
	Asset struct {
		Name        string // File name, e.g. "browser.js"
		DownloadURL string // Direct download URL
		Size        int64  // Size in bytes as reported by the host
		ContentType string // MIME type
		Digest      string // Host-provided digest, e.g. "sha256:<hex>"; may be empty
	}

	// Source is what the appliers need from a release host.
	Source interface {
		// LatestRelease returns the most recent published release.
		LatestRelease(ctx context.Context, owner, repo string) (*Release, error)
		// DownloadAsset writes the named asset of the tagged release to dest
		// and returns the path written.
		DownloadAsset(ctx context.Context, owner, repo, tag, assetName, dest string) (string, error)
	}

	// githubRelease is the JSON wire format for a GitHub Release API response.
	githubRelease struct {
		TagName    string        `json:"tag_name"`
		Name       string        `json:"name"`
		Draft      bool          `json:"draft"`
		Prerelease bool          `json:"prerelease"`
		Assets     []githubAsset `json:"assets"`
	}

	// githubAsset is the JSON wire format for a GitHub Release asset.
	githubAsset struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
		Size               int64  `json:"size"`
		ContentType        string `json:"content_type"`
		Digest             string `json:"digest"`
	}
)

// AssetNames returns the names of all attached assets, preserving host order.
func (r *Release) AssetNames() []string {
	names := make([]string, 0, len(r.Assets))
	for i := range r.Assets {
		names = append(names, r.Assets[i].Name)
	}
	return names
}

// FindAsset returns the asset whose name equals name exactly. It fails with
// an error wrapping issue.ErrAssetNotFound when there is none.
func (r *Release) FindAsset(name string) (*Asset, error) {
	for i := range r.Assets {
		if r.Assets[i].Name == name {
			return &r.Assets[i], nil
		}
	}
	return nil, fmt.Errorf("asset %q not in release %s: %w", name, r.Tag, issue.ErrAssetNotFound)
}

// toRelease converts the wire type to the exported Release type.
func toRelease(gr githubRelease) Release {
	assets := make([]Asset, 0, len(gr.Assets))
	for _, ga := range gr.Assets {
		assets = append(assets, Asset{
			Name:        ga.Name,
			DownloadURL: ga.BrowserDownloadURL,
			Size:        ga.Size,
			ContentType: ga.ContentType,
			Digest:      ga.Digest,
		})
	}

	return Release{
		Tag:    gr.TagName,
		Name:   gr.Name,
		Assets: assets,
	}
}
