// SPDX-License-Identifier: MPL-2.0

package apply

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"dorion-updater/internal/release"
	"dorion-updater/pkg/platform"
)

// Defaults for Deps fields left empty.
const (
	DefaultImageSuffix = ".dmg"
	DefaultProcessName = "Dorion"
)

type (
	// Applier performs the main-application update for one platform family.
	Applier interface {
		Apply(ctx context.Context) (Result, error)
		Strategy() platform.Family
	}

	// Result describes what Apply did.
	Result struct {
		// Applied is false for strategies that intentionally do nothing.
		Applied bool
		Tag     string
		// Path is the downloaded artifact, if any.
		Path string
	}

	// Deps carries what the appliers need. Owner and Repo name the main
	// application's release project.
	Deps struct {
		Source      release.Source
		Launcher    Launcher
		Logger      *log.Logger
		Owner       string
		Repo        string
		ImageSuffix string
		ProcessName string
		// TempDir receives downloaded images. Defaults to os.TempDir().
		TempDir string
	}
)

// New returns the Applier for family.
func New(family platform.Family, deps Deps) Applier {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}

	switch family {
	case platform.PromptInstall, platform.Unmanaged:
		return noop{family: family, logger: deps.Logger}
	case platform.DiskImage:
		if deps.Launcher == nil {
			deps.Launcher = ExecLauncher{}
		}
		if deps.ImageSuffix == "" {
			deps.ImageSuffix = DefaultImageSuffix
		}
		if deps.ProcessName == "" {
			deps.ProcessName = DefaultProcessName
		}
		if deps.TempDir == "" {
			deps.TempDir = os.TempDir()
		}
		return &diskImage{deps: deps}
	}
	return noop{family: platform.Unmanaged, logger: deps.Logger}
}

// noop is the strategy for platforms whose main update is handled elsewhere.
type noop struct {
	family platform.Family
	logger *log.Logger
}

func (n noop) Apply(context.Context) (Result, error) {
	switch n.family {
	case platform.PromptInstall:
		n.logger.Info("main application updates are handled by its installer; skipping")
	default:
		n.logger.Warn("main application updates are not supported on this platform; skipping")
	}
	return Result{}, nil
}

func (n noop) Strategy() platform.Family { return n.family }
