// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"dorion-updater/internal/apply"
	"dorion-updater/internal/bundle"
	"dorion-updater/internal/issue"
	"dorion-updater/pkg/platform"
)

// checkParams bundles the inputs of the check command.
type checkParams struct {
	stdout    io.Writer
	stderr    io.Writer
	app       *App
	flags     rootFlags
	pluginDir string
}

// newCheckCommand creates `dorion-updater check [plugin-dir]`, which reports
// available updates without writing anything.
func newCheckCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check [plugin-dir]",
		Short: "Report available updates without installing them",
		Long: `Report the latest Dorion release and, when a plugin directory is given,
the installed and latest plugin bundle versions. Nothing is downloaded.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			p := checkParams{
				stdout: cmd.OutOrStdout(),
				stderr: cmd.ErrOrStderr(),
				app:    app,
				flags:  *flags,
			}
			if len(args) > 0 {
				p.pluginDir = args[0]
			}

			if err := runCheck(cmd.Context(), p); err != nil {
				return reportFailure(p.stderr, err, flags.verbose)
			}
			return nil
		},
	}
}

func runCheck(ctx context.Context, p checkParams) error {
	s, err := p.app.openSession(ctx, p.flags, p.stderr)
	if err != nil {
		return err
	}
	defer s.close()

	cfg := s.config()
	out := p.stdout

	if p.pluginDir != "" {
		dir, err := filepath.Abs(p.pluginDir)
		if err != nil {
			return fmt.Errorf("resolving %s: %w: %w", p.pluginDir, issue.ErrIO, err)
		}

		st, err := bundle.NewApplier(s.source, s.logger).Status(ctx, cfg.Plugin.Owner, cfg.Plugin.Repo, dir)
		if err != nil {
			return actionable("check the plugin bundle", cfg.Plugin.Owner+"/"+cfg.Plugin.Repo, err)
		}

		fmt.Fprintln(out, TitleStyle.Render("Plugin bundle"))
		installed := st.Installed
		if installed == "" {
			installed = "(none)"
		}
		fmt.Fprintf(out, "  Installed: %s\n", ValueStyle.Render(installed))
		fmt.Fprintf(out, "  Latest:    %s\n", ValueStyle.Render(st.Latest))
		if st.UpdateAvailable {
			fmt.Fprintln(out, "  "+WarningStyle.Render("Update available"))
		} else {
			fmt.Fprintln(out, "  "+SuccessStyle.Render("Up to date"))
		}
		fmt.Fprintln(out)
	}

	rel, err := s.source.LatestRelease(ctx, cfg.Main.Owner, cfg.Main.Repo)
	if err != nil {
		return actionable("check Dorion releases", cfg.Main.Owner+"/"+cfg.Main.Repo, err)
	}

	fmt.Fprintln(out, TitleStyle.Render("Dorion"))
	fmt.Fprintf(out, "  Latest:    %s\n", ValueStyle.Render(rel.Tag))

	if p.app.Family != platform.DiskImage {
		fmt.Fprintln(out, "  "+SubtitleStyle.Render("Not updated by this tool on this platform"))
		return nil
	}

	asset, err := apply.SelectAsset(rel.Assets, cfg.Main.ImageSuffix)
	switch {
	case err == nil:
		fmt.Fprintf(out, "  Image:     %s\n", ValueStyle.Render(asset.Name))
	case errors.Is(err, issue.ErrAssetNotFound):
		fmt.Fprintf(out, "  %s\n", WarningStyle.Render("No "+cfg.Main.ImageSuffix+" image in this release"))
	default:
		return err
	}
	return nil
}
