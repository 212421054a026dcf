// SPDX-License-Identifier: MPL-2.0

// Package config handles updater configuration using Viper with CUE as the
// primary file format.
//
// Configuration is loaded from config.cue in the platform config directory
// ($XDG_CONFIG_HOME/dorion-updater on Linux, ~/Library/Application
// Support/dorion-updater on macOS, %APPDATA%\dorion-updater on Windows).
// A config.toml in the same place is accepted when no config.cue exists.
// Both formats are validated against the embedded CUE schema
// (config_schema.cue). DORION_UPDATER_* environment variables override file
// values, e.g. DORION_UPDATER_GITHUB_API_URL for github.api_url.
package config
