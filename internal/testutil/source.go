// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"dorion-updater/internal/issue"
	"dorion-updater/internal/release"
)

type (
	// FakeSource is an in-memory release.Source keyed by "owner/repo".
	FakeSource struct {
		mu       sync.Mutex
		projects map[string]*FakeProject
		calls    []string
	}

	// FakeProject is the latest published release of one project.
	FakeProject struct {
		Tag   string
		Files map[string]string // asset name -> content
		// Order lists asset names in host order. Defaults to the names passed
		// to Publish.
		Order []string
		// Fail maps an asset name to the error its download returns.
		Fail map[string]error
		// LatestErr, when set, is returned by LatestRelease.
		LatestErr error
	}
)

var _ release.Source = (*FakeSource)(nil)

// NewFakeSource returns an empty FakeSource.
func NewFakeSource() *FakeSource {
	return &FakeSource{projects: make(map[string]*FakeProject)}
}

// Publish registers p as the latest release of owner/repo.
func (s *FakeSource) Publish(owner, repo string, p *FakeProject, names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(p.Order) == 0 {
		p.Order = names
	}
	s.projects[owner+"/"+repo] = p
}

// Calls returns the operations performed so far, e.g.
// "latest SpikeHD/Dorion" or "download SpikeHD/Vencordorion@v1 browser.js".
func (s *FakeSource) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// LatestRelease implements release.Source.
func (s *FakeSource) LatestRelease(_ context.Context, owner, repo string) (*release.Release, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "latest "+owner+"/"+repo)

	p, ok := s.projects[owner+"/"+repo]
	if !ok {
		return nil, release.ErrReleaseNotFound
	}
	if p.LatestErr != nil {
		return nil, p.LatestErr
	}

	rel := &release.Release{Tag: p.Tag}
	for _, name := range p.Order {
		rel.Assets = append(rel.Assets, release.Asset{
			Name:        name,
			DownloadURL: "https://example.invalid/" + owner + "/" + repo + "/" + p.Tag + "/" + name,
			Size:        int64(len(p.Files[name])),
		})
	}
	return rel, nil
}

// DownloadAsset implements release.Source. Like the real client it writes
// into dest/assetName when dest is a directory and leaves dest untouched on
// failure.
func (s *FakeSource) DownloadAsset(_ context.Context, owner, repo, tag, assetName, dest string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, fmt.Sprintf("download %s/%s@%s %s", owner, repo, tag, assetName))

	p, ok := s.projects[owner+"/"+repo]
	if !ok || p.Tag != tag {
		return "", release.ErrReleaseNotFound
	}
	if err := p.Fail[assetName]; err != nil {
		return "", err
	}
	content, ok := p.Files[assetName]
	if !ok {
		return "", fmt.Errorf("asset %q: %w", assetName, issue.ErrAssetNotFound)
	}

	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		dest = filepath.Join(dest, assetName)
	}
	if err := os.WriteFile(dest, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w: %w", dest, issue.ErrIO, err)
	}
	return dest, nil
}
