// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/mod/semver"

	"dorion-updater/internal/issue"
	"dorion-updater/internal/release"
)

// Files that make up an installed bundle.
const (
	CSSAsset   = "browser.css"
	JSAsset    = "browser.js"
	MarkerFile = "vencord.version"
)

type (
	// Applier downloads the latest bundle from a release Source.
	Applier struct {
		source release.Source
		logger *log.Logger
	}

	// Status compares the installed bundle with the latest published one.
	Status struct {
		Installed       string // "" when no marker exists
		Latest          string
		UpdateAvailable bool
	}
)

// NewApplier creates an Applier. A nil logger discards output.
func NewApplier(source release.Source, logger *log.Logger) *Applier {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Applier{source: source, logger: logger}
}

// Apply installs the latest release of owner/repo into targetDir and returns
// its tag. Steps run in order and the first failure aborts the rest:
// latest release, browser.css, browser.js, marker.
func (a *Applier) Apply(ctx context.Context, owner, repo, targetDir string) (string, error) {
	rel, err := a.source.LatestRelease(ctx, owner, repo)
	if err != nil {
		return "", fmt.Errorf("fetching latest plugin bundle: %w", err)
	}
	a.logger.Info("latest plugin bundle", "tag", rel.Tag, "repo", owner+"/"+repo)

	for _, name := range []string{CSSAsset, JSAsset} {
		dest := filepath.Join(targetDir, name)
		if _, err := a.source.DownloadAsset(ctx, owner, repo, rel.Tag, name, dest); err != nil {
			return "", fmt.Errorf("updating %s: %w", name, err)
		}
		a.logger.Debug("replaced bundle file", "file", dest)
	}

	if err := writeMarker(targetDir, rel.Tag); err != nil {
		return "", err
	}
	a.logger.Info("plugin bundle updated", "tag", rel.Tag, "dir", targetDir)

	return rel.Tag, nil
}

// Status reports the installed and latest tags without changing anything.
// Tags are compared as semantic versions when both are valid, otherwise any
// difference counts as an update.
func (a *Applier) Status(ctx context.Context, owner, repo, targetDir string) (Status, error) {
	installed, err := InstalledVersion(targetDir)
	if err != nil {
		return Status{}, err
	}

	rel, err := a.source.LatestRelease(ctx, owner, repo)
	if err != nil {
		return Status{}, fmt.Errorf("fetching latest plugin bundle: %w", err)
	}

	return Status{
		Installed:       installed,
		Latest:          rel.Tag,
		UpdateAvailable: newer(rel.Tag, installed),
	}, nil
}

// InstalledVersion returns the tag recorded in targetDir's marker, or ""
// when there is no marker yet.
func InstalledVersion(targetDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(targetDir, MarkerFile))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w: %w", MarkerFile, issue.ErrIO, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// newer reports whether latest should replace installed.
func newer(latest, installed string) bool {
	if installed == "" {
		return latest != ""
	}
	if semver.IsValid(latest) && semver.IsValid(installed) {
		return semver.Compare(latest, installed) > 0
	}
	return latest != installed
}

// writeMarker replaces the marker with tag via a temp file and rename.
func writeMarker(dir, tag string) error {
	tmp, err := os.CreateTemp(dir, "."+MarkerFile+"-*")
	if err != nil {
		return fmt.Errorf("writing %s: %w: %w", MarkerFile, issue.ErrIO, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(tag); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w: %w", MarkerFile, issue.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w: %w", MarkerFile, issue.ErrIO, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w: %w", MarkerFile, issue.ErrIO, err)
	}
	if err := os.Rename(tmpPath, filepath.Join(dir, MarkerFile)); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w: %w", MarkerFile, issue.ErrIO, err)
	}
	return nil
}

