// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"dorion-updater/internal/testutil"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    Options
		want    log.Level
		wantErr bool
	}{
		{name: "default", want: log.InfoLevel},
		{name: "warn", opts: Options{Level: "warn"}, want: log.WarnLevel},
		{name: "verbose wins", opts: Options{Level: "error", Verbose: true}, want: log.DebugLevel},
		{name: "invalid", opts: Options{Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.opts.Stderr = &bytes.Buffer{}
			logger, closer, err := New(tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("New() error = nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer func() { _ = closer.Close() }()

			if logger.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", logger.GetLevel(), tt.want)
			}
		})
	}
}

func TestNew_WritesStderrAndFile(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	file := filepath.Join(t.TempDir(), "logs", "updater.log")

	logger, closer, err := New(Options{File: file, MaxSizeMB: 1, MaxBackups: 1, Stderr: &stderr})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("plugin bundle updated", "tag", "v2.1.0")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	for name, got := range map[string]string{"stderr": stderr.String(), "file": testutil.MustReadFile(t, file)} {
		if !strings.Contains(got, "plugin bundle updated") || !strings.Contains(got, "v2.1.0") {
			t.Errorf("%s output = %q", name, got)
		}
		if !strings.Contains(got, Prefix) {
			t.Errorf("%s output missing prefix: %q", name, got)
		}
	}
}

func TestNew_UnusableLogDirFallsBackToStderr(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "file")
	testutil.MustWriteFile(t, blocker, "x")

	var stderr bytes.Buffer
	logger, closer, err := New(Options{File: filepath.Join(blocker, "sub", "updater.log"), Stderr: &stderr})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = closer.Close() }()

	if !strings.Contains(stderr.String(), "log file disabled") {
		t.Errorf("expected a warning, got %q", stderr.String())
	}
	logger.Info("still logging")
	if !strings.Contains(stderr.String(), "still logging") {
		t.Error("stderr output lost")
	}
}
