// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"dorion-updater/internal/issue"
	"dorion-updater/pkg/platform"
)

const (
	// AppName names the config directory.
	AppName = "dorion-updater"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// EnvPrefix prefixes environment overrides: DORION_UPDATER_LOG_LEVEL sets log.level.
	EnvPrefix = "DORION_UPDATER"
	// TokenEnv is consulted when no token is configured.
	TokenEnv = "GITHUB_TOKEN"

	// maxConfigFileBytes bounds the config file size (1 MB).
	maxConfigFileBytes = 1 << 20
)

//go:embed config_schema.cue
var configSchema string

// configDirOverride allows tests to override the config directory.
// os.UserHomeDir() doesn't reliably respect HOME on all platforms.
var configDirOverride string

// SetConfigDirOverride sets a custom config directory path for tests.
// An empty dir restores platform lookup.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// ConfigDir returns the updater configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// DefaultLogFile returns the log file location inside cfgDir.
func DefaultLogFile(cfgDir string) string {
	return filepath.Join(cfgDir, "logs", "updater.log")
}

func lookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions, lookup func(string) (string, bool)) (*Loaded, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, cfgDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath, err := resolveFile(opts, cfgDir)
	if err != nil {
		return nil, err
	}

	if resolvedPath != "" {
		if err := loadFileIntoViper(v, resolvedPath); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE or TOML syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Use 'dorion-updater config show' to see the effective configuration").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.GitHub.Token == "" {
		if tok, ok := lookup(TokenEnv); ok {
			cfg.GitHub.Token = tok
		}
	}

	return &Loaded{Config: &cfg, Dir: cfgDir, FilePath: resolvedPath}, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, cfgDir string) {
	d := DefaultConfig()
	v.SetDefault("github.api_url", d.GitHub.APIURL)
	v.SetDefault("github.token", d.GitHub.Token)
	v.SetDefault("main.owner", d.Main.Owner)
	v.SetDefault("main.repo", d.Main.Repo)
	v.SetDefault("main.image_suffix", d.Main.ImageSuffix)
	v.SetDefault("main.process_name", d.Main.ProcessName)
	v.SetDefault("main.download_dir", d.Main.DownloadDir)
	v.SetDefault("plugin.owner", d.Plugin.Owner)
	v.SetDefault("plugin.repo", d.Plugin.Repo)
	v.SetDefault("policy.continue_on_plugin_failure", d.Policy.ContinueOnPluginFailure)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", DefaultLogFile(cfgDir))
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
}

// resolveFile picks the config file: the explicit path when given (it must
// exist), else config.cue, else config.toml in cfgDir. No file is not an error.
func resolveFile(opts LoadOptions, cfgDir string) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	for _, ext := range []string{".cue", ".toml"} {
		path := filepath.Join(cfgDir, ConfigFileName+ext)
		if fileExists(path) {
			return path, nil
		}
	}
	return "", nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// loadFileIntoViper parses a CUE or TOML file, validates it against the
// #Config schema, and merges its contents into Viper.
func loadFileIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) > maxConfigFileBytes {
		return fmt.Errorf("%s: file exceeds %d bytes", path, maxConfigFileBytes)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	var userValue cue.Value
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		userValue = ctx.Encode(raw)
	} else {
		userValue = ctx.CompileBytes(data, cue.Filename(path))
	}
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err(), path)
	}

	// Unify with schema to validate against the #Config definition.
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return formatCUEError(err, path)
	}

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// formatCUEError renders CUE errors as "<file>: <path>: <message>" lines.
func formatCUEError(err error, filePath string) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := e.Error()
		if p := strings.Join(cueerrors.Path(e), "."); p != "" && !strings.HasPrefix(msg, p) {
			msg = p + ": " + msg
		}
		lines = append(lines, msg)
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filePath, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// GenerateCUE renders cfg as a config.cue document. The token is redacted.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// dorion-updater configuration\n\n")

	token := ""
	if cfg.GitHub.Token != "" {
		token = "<redacted>"
	}
	sb.WriteString("github: {\n")
	fmt.Fprintf(&sb, "\tapi_url: %q\n", cfg.GitHub.APIURL)
	fmt.Fprintf(&sb, "\ttoken:   %q\n", token)
	sb.WriteString("}\n")

	sb.WriteString("\nmain: {\n")
	fmt.Fprintf(&sb, "\towner:        %q\n", cfg.Main.Owner)
	fmt.Fprintf(&sb, "\trepo:         %q\n", cfg.Main.Repo)
	fmt.Fprintf(&sb, "\timage_suffix: %q\n", cfg.Main.ImageSuffix)
	fmt.Fprintf(&sb, "\tprocess_name: %q\n", cfg.Main.ProcessName)
	fmt.Fprintf(&sb, "\tdownload_dir: %q\n", cfg.Main.DownloadDir)
	sb.WriteString("}\n")

	sb.WriteString("\nplugin: {\n")
	fmt.Fprintf(&sb, "\towner: %q\n", cfg.Plugin.Owner)
	fmt.Fprintf(&sb, "\trepo:  %q\n", cfg.Plugin.Repo)
	sb.WriteString("}\n")

	sb.WriteString("\npolicy: {\n")
	fmt.Fprintf(&sb, "\tcontinue_on_plugin_failure: %v\n", cfg.Policy.ContinueOnPluginFailure)
	sb.WriteString("}\n")

	sb.WriteString("\nlog: {\n")
	fmt.Fprintf(&sb, "\tlevel:       %q\n", cfg.Log.Level)
	fmt.Fprintf(&sb, "\tfile:        %q\n", cfg.Log.File)
	fmt.Fprintf(&sb, "\tmax_size_mb: %d\n", cfg.Log.MaxSizeMB)
	fmt.Fprintf(&sb, "\tmax_backups: %d\n", cfg.Log.MaxBackups)
	sb.WriteString("}\n")

	return sb.String()
}
