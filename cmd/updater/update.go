// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"dorion-updater/internal/apply"
	"dorion-updater/internal/bundle"
	"dorion-updater/internal/issue"
	"dorion-updater/internal/orchestrator"
)

// updateParams bundles the dependencies and flags for the update run,
// enabling runUpdate to be tested without a real Cobra command.
type updateParams struct {
	stdout io.Writer
	stderr io.Writer
	app    *App
	flags  rootFlags
}

// runUpdate is the core update logic, separated from Cobra for testability.
// All user-facing output goes through p.stdout; logs go to p.stderr.
//
// Flow:
//  1. Load configuration and open the log.
//  2. Build the appliers for this platform and hand the intent to the orchestrator.
//  3. Print what happened. A run taken over by an elevated child exits 0
//     whatever the child's exit code was; the code is logged.
func runUpdate(ctx context.Context, p updateParams) error {
	s, err := p.app.openSession(ctx, p.flags, p.stderr)
	if err != nil {
		return err
	}
	defer s.close()

	cfg := s.config()
	intent := orchestrator.Intent{
		UpdateMain: p.flags.main,
		Elevated:   p.flags.elevated,
	}
	if p.flags.pluginDir != "" {
		dir, err := filepath.Abs(p.flags.pluginDir)
		if err != nil {
			return fmt.Errorf("resolving %s: %w: %w", p.flags.pluginDir, issue.ErrIO, err)
		}
		intent.PluginDir = dir
	}

	orch := orchestrator.New(orchestrator.Deps{
		Escalator: p.app.Escalator(s.logger),
		Plugin:    bundle.NewApplier(s.source, s.logger),
		Main: apply.New(p.app.Family, apply.Deps{
			Source:      s.source,
			Launcher:    p.app.Launcher,
			Logger:      s.logger,
			Owner:       cfg.Main.Owner,
			Repo:        cfg.Main.Repo,
			ImageSuffix: cfg.Main.ImageSuffix,
			ProcessName: cfg.Main.ProcessName,
			TempDir:     cfg.Main.DownloadDir,
		}),
		PluginOwner: cfg.Plugin.Owner,
		PluginRepo:  cfg.Plugin.Repo,
		Policy: orchestrator.Policy{
			ContinueOnPluginFailure: cfg.Policy.ContinueOnPluginFailure,
		},
		Args:   p.flags.forwardArgs(),
		Logger: s.logger,
	})

	rep, err := orch.Run(ctx, intent)
	if err != nil {
		s.logger.Error("update failed", "kind", issue.KindOf(err), "error", err)
		return actionable("update Dorion", intent.PluginDir, err)
	}

	printReport(p.stdout, intent, rep)
	return nil
}

func printReport(w io.Writer, intent orchestrator.Intent, rep orchestrator.Report) {
	if rep.Delegated {
		if rep.ChildExitCode != 0 {
			fmt.Fprintln(w, WarningStyle.Render(fmt.Sprintf("The elevated updater exited with code %d; see the log for details.", rep.ChildExitCode)))
			return
		}
		fmt.Fprintln(w, SuccessStyle.Render("✓")+" Update completed by the elevated updater")
		return
	}

	if !intent.UpdateMain && intent.PluginDir == "" {
		fmt.Fprintln(w, SubtitleStyle.Render("Nothing to update. Pass --main and/or --vencord <dir>."))
		return
	}

	if rep.PluginUpdated {
		fmt.Fprintf(w, "%s Plugin bundle updated to %s in %s\n",
			SuccessStyle.Render("✓"), ValueStyle.Render(rep.PluginTag), intent.PluginDir)
	}

	if rep.MainAttempted {
		if rep.Main.Applied {
			fmt.Fprintf(w, "%s Opened Dorion %s installer %s\n",
				SuccessStyle.Render("✓"), ValueStyle.Render(rep.Main.Tag), rep.Main.Path)
		} else {
			fmt.Fprintln(w, SubtitleStyle.Render("Dorion itself is not updated by this tool on this platform."))
		}
	}
}
