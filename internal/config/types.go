// SPDX-License-Identifier: MPL-2.0

package config

type (
	// Config is the effective updater configuration.
	Config struct {
		GitHub GitHubConfig `json:"github" mapstructure:"github"`
		Main   MainConfig   `json:"main" mapstructure:"main"`
		Plugin PluginConfig `json:"plugin" mapstructure:"plugin"`
		Policy PolicyConfig `json:"policy" mapstructure:"policy"`
		Log    LogConfig    `json:"log" mapstructure:"log"`
	}

	// GitHubConfig configures the release host.
	GitHubConfig struct {
		APIURL string `json:"api_url" mapstructure:"api_url"`
		Token  string `json:"token" mapstructure:"token"`
	}

	// MainConfig names the main application's release project and how its
	// image is picked and its process stopped.
	MainConfig struct {
		Owner       string `json:"owner" mapstructure:"owner"`
		Repo        string `json:"repo" mapstructure:"repo"`
		ImageSuffix string `json:"image_suffix" mapstructure:"image_suffix"`
		ProcessName string `json:"process_name" mapstructure:"process_name"`
		// DownloadDir receives the disk image; empty means the OS temp dir.
		DownloadDir string `json:"download_dir" mapstructure:"download_dir"`
	}

	// PluginConfig names the plugin bundle's release project.
	PluginConfig struct {
		Owner string `json:"owner" mapstructure:"owner"`
		Repo  string `json:"repo" mapstructure:"repo"`
	}

	// PolicyConfig holds partial-failure policy.
	PolicyConfig struct {
		ContinueOnPluginFailure bool `json:"continue_on_plugin_failure" mapstructure:"continue_on_plugin_failure"`
	}

	// LogConfig configures the log level and the rotating log file.
	LogConfig struct {
		Level string `json:"level" mapstructure:"level"`
		// File is the log file path; empty disables file logging.
		File       string `json:"file" mapstructure:"file"`
		MaxSizeMB  int    `json:"max_size_mb" mapstructure:"max_size_mb"`
		MaxBackups int    `json:"max_backups" mapstructure:"max_backups"`
	}
)

// DefaultConfig returns the built-in defaults. Log.File is filled in by the
// loader because it depends on the config directory.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIURL: "https://api.github.com",
		},
		Main: MainConfig{
			Owner:       "SpikeHD",
			Repo:        "Dorion",
			ImageSuffix: ".dmg",
			ProcessName: "Dorion",
		},
		Plugin: PluginConfig{
			Owner: "SpikeHD",
			Repo:  "Vencordorion",
		},
		Policy: PolicyConfig{
			ContinueOnPluginFailure: false,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}
}
