// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"dorion-updater/internal/config"
)

// newConfigCommand creates the `dorion-updater config` command tree.
// Subcommands read configuration through the App's config.Provider.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the updater configuration",
		Long: `Inspect the updater configuration.

Configuration is read from config.cue (or config.toml) in:
  - Linux: $XDG_CONFIG_HOME/dorion-updater
  - macOS: ~/Library/Application Support/dorion-updater
  - Windows: %APPDATA%\dorion-updater

Every key can be overridden with a DORION_UPDATER_* environment variable,
for example DORION_UPDATER_GITHUB_API_URL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true
			if err := showConfig(cmd.Context(), app, *flags, cmd.OutOrStdout()); err != nil {
				return reportFailure(cmd.ErrOrStderr(), err, flags.verbose)
			}
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true
			if err := showConfigPath(cmd.Context(), app, *flags, cmd.OutOrStdout()); err != nil {
				return reportFailure(cmd.ErrOrStderr(), err, flags.verbose)
			}
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, flags rootFlags, w io.Writer) error {
	loaded, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configFile})
	if err != nil {
		return err
	}

	source := SubtitleStyle.Render("(defaults and environment only)")
	if loaded.FilePath != "" {
		source = loaded.FilePath
	}
	fmt.Fprintf(w, "// %s: %s\n", TitleStyle.Render("Config file"), source)
	fmt.Fprint(w, config.GenerateCUE(loaded.Config))
	return nil
}

// showConfigPath prints the file that was loaded or, when none exists, the
// path where config.cue is looked up.
func showConfigPath(ctx context.Context, app *App, flags rootFlags, w io.Writer) error {
	loaded, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configFile})
	if err != nil {
		return err
	}

	if loaded.FilePath != "" {
		fmt.Fprintln(w, loaded.FilePath)
		return nil
	}
	fmt.Fprintf(w, "%s %s\n", filepath.Join(loaded.Dir, "config.cue"), SubtitleStyle.Render("(not created)"))
	return nil
}
