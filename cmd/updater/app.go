// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"dorion-updater/internal/apply"
	"dorion-updater/internal/config"
	"dorion-updater/internal/elevate"
	"dorion-updater/internal/logging"
	"dorion-updater/internal/release"
	"dorion-updater/pkg/platform"
)

type (
	// SourceFactory builds the release host client for a configuration.
	SourceFactory func(cfg *config.Config) release.Source

	// EscalatorFactory builds the privilege escalator for a session logger.
	EscalatorFactory func(logger *log.Logger) elevate.Escalator

	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer; all Cobra handlers receive an App reference.
	App struct {
		Config    config.Provider
		Releases  SourceFactory
		Escalator EscalatorFactory
		Launcher  apply.Launcher
		Family    platform.Family
		stdout    io.Writer
		stderr    io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config    config.Provider
		Releases  SourceFactory
		Escalator EscalatorFactory
		Launcher  apply.Launcher
		// Family defaults to the running platform's family.
		Family *platform.Family
		Stdout io.Writer
		Stderr io.Writer
	}

	// session is the per-invocation state shared by the commands: the loaded
	// configuration, the logger and the release source built from both.
	session struct {
		loaded *config.Loaded
		logger *log.Logger
		source release.Source
		closer io.Closer
	}
)

// NewApp creates the CLI composition root.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:    deps.Config,
		Releases:  deps.Releases,
		Escalator: deps.Escalator,
		Launcher:  deps.Launcher,
		Family:    platform.Current(),
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}
	if deps.Family != nil {
		app.Family = *deps.Family
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.Releases == nil {
		app.Releases = newReleaseClient
	}
	if app.Escalator == nil {
		app.Escalator = elevate.New
	}
	if app.Launcher == nil {
		app.Launcher = apply.ExecLauncher{}
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// newReleaseClient builds the GitHub client for cfg.
func newReleaseClient(cfg *config.Config) release.Source {
	return release.NewClient(
		release.WithBaseURL(cfg.GitHub.APIURL),
		release.WithToken(cfg.GitHub.Token),
		release.WithUserAgent("dorion-updater/"+Version),
	)
}

// openSession loads configuration and builds the logger and release source.
// The caller closes the session to flush the log file.
func (a *App) openSession(ctx context.Context, flags rootFlags, stderr io.Writer) (*session, error) {
	loaded, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configFile})
	if err != nil {
		return nil, err
	}
	cfg := loaded.Config

	logFile := cfg.Log.File
	if flags.logFile != "" {
		logFile = flags.logFile
	}

	logger, closer, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Verbose:    flags.verbose,
		File:       logFile,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Stderr:     stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}

	if loaded.FilePath != "" {
		logger.Debug("loaded configuration", "file", loaded.FilePath)
	}

	return &session{
		loaded: loaded,
		logger: logger,
		source: a.Releases(cfg),
		closer: closer,
	}, nil
}

func (s *session) config() *config.Config { return s.loaded.Config }

func (s *session) close() {
	_ = s.closer.Close() // best-effort flush of the log file
}
