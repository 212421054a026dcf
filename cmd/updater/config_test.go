// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"dorion-updater/internal/config"
)

func TestShowConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.GitHub.Token = "ghp_secret"
	cfgFile := filepath.Join(t.TempDir(), "config.cue")
	app := NewApp(Dependencies{
		Config: staticProvider{loaded: &config.Loaded{Config: cfg, Dir: filepath.Dir(cfgFile), FilePath: cfgFile}},
	})

	var out bytes.Buffer
	if err := showConfig(context.Background(), app, rootFlags{}, &out); err != nil {
		t.Fatalf("showConfig() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, cfgFile) {
		t.Errorf("output does not name the config file:\n%s", got)
	}
	if !strings.Contains(got, `repo:  "Vencordorion"`) {
		t.Errorf("output missing plugin repo:\n%s", got)
	}
	if strings.Contains(got, "ghp_secret") {
		t.Error("showConfig() leaked the token")
	}
}

func TestShowConfigPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name   string
		loaded *config.Loaded
		want   string
	}{
		{
			name:   "file loaded",
			loaded: &config.Loaded{Config: testConfig(), Dir: dir, FilePath: filepath.Join(dir, "config.toml")},
			want:   filepath.Join(dir, "config.toml") + "\n",
		},
		{
			name:   "defaults only",
			loaded: &config.Loaded{Config: testConfig(), Dir: dir},
			want:   filepath.Join(dir, "config.cue"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := NewApp(Dependencies{Config: staticProvider{loaded: tt.loaded}})
			var out bytes.Buffer
			if err := showConfigPath(context.Background(), app, rootFlags{}, &out); err != nil {
				t.Fatalf("showConfigPath() error = %v", err)
			}
			if !strings.HasPrefix(out.String(), tt.want) {
				t.Errorf("output = %q, want prefix %q", out.String(), tt.want)
			}
		})
	}
}

func TestConfigCommand_LoadErrorExitCode(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config: staticProvider{err: errors.New("schema violation")},
		Stdout: &bytes.Buffer{},
		Stderr: &stderr,
	})

	root := NewRootCommand(app)
	root.SetArgs([]string{"config", "show"})
	err := root.ExecuteContext(context.Background())

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != ExitFailure {
		t.Fatalf("Execute() error = %v, want ExitError with code %d", err, ExitFailure)
	}
	if !strings.Contains(stderr.String(), "schema violation") {
		t.Errorf("stderr = %q", stderr.String())
	}
}
