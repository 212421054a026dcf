// SPDX-License-Identifier: MPL-2.0

// Package logging builds the updater's charmbracelet logger. Output goes to
// stderr and, when a file is configured, to a size-rotated log file so that
// runs in a short-lived elevated console still leave a trace.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Prefix tags every line.
const Prefix = "dorion-updater"

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Verbose forces debug level.
	Verbose bool
	// File is the rotating log file; empty disables file output.
	File       string
	MaxSizeMB  int
	MaxBackups int
	// Stderr defaults to os.Stderr.
	Stderr io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns the logger and a Closer for the log file. A log file that
// cannot be prepared is reported on the logger and skipped rather than
// failing the run.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	if opts.Verbose {
		level = log.DebugLevel
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var (
		out     = stderr
		closer  io.Closer = nopCloser{}
		fileErr error
	)
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			fileErr = err
		} else {
			rotating := &lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    opts.MaxSizeMB,
				MaxBackups: opts.MaxBackups,
			}
			out = io.MultiWriter(stderr, rotating)
			closer = rotating
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		Prefix:          Prefix,
		Level:           level,
		ReportTimestamp: true,
	})

	if fileErr != nil {
		logger.Warn("log file disabled", "file", opts.File, "error", fileErr)
	}

	return logger, closer, nil
}
