// SPDX-License-Identifier: MPL-2.0

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"dorion-updater/internal/apply"
	"dorion-updater/internal/elevate"
	"dorion-updater/internal/issue"
	"dorion-updater/internal/probe"
)

type (
	// Intent is what the user asked for.
	Intent struct {
		UpdateMain bool
		// PluginDir is the plugin bundle directory; empty means no plugin update.
		PluginDir string
		// Elevated marks an invocation started by the escalator.
		Elevated bool
	}

	// Policy holds the explicit choices for partial failure.
	Policy struct {
		// ContinueOnPluginFailure runs the main update even if the plugin
		// update failed. Both errors are then reported together.
		ContinueOnPluginFailure bool
	}

	// Report summarizes a Run.
	Report struct {
		PluginTag     string
		PluginUpdated bool
		MainAttempted bool
		Main          apply.Result
		Escalated     bool
		// Delegated is true when an elevated child did the work; ChildExitCode
		// is its exit code.
		Delegated     bool
		ChildExitCode int
	}

	// PluginApplier installs the plugin bundle into a directory.
	PluginApplier interface {
		Apply(ctx context.Context, owner, repo, targetDir string) (string, error)
	}

	// Deps wires an Orchestrator.
	Deps struct {
		Escalator elevate.Escalator
		Plugin    PluginApplier
		Main      apply.Applier
		// Probe defaults to probe.Probe.
		Probe       func(dir string) probe.Result
		PluginOwner string
		PluginRepo  string
		Policy      Policy
		// Args are the invocation arguments forwarded on escalation.
		Args   []string
		Logger *log.Logger
	}

	// Orchestrator runs the update state machine.
	Orchestrator struct {
		deps Deps
	}
)

// New creates an Orchestrator.
func New(deps Deps) *Orchestrator {
	if deps.Probe == nil {
		deps.Probe = probe.Probe
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	return &Orchestrator{deps: deps}
}

// Run executes intent. When an elevated child took over, Run returns with
// Report.Delegated set and does nothing else; the caller is expected to exit.
func (o *Orchestrator) Run(ctx context.Context, intent Intent) (Report, error) {
	var rep Report
	logger := o.deps.Logger

	if !intent.UpdateMain && intent.PluginDir == "" {
		logger.Info("nothing to update")
		return rep, nil
	}

	if intent.PluginDir != "" {
		if err := o.ensureWritable(ctx, intent, &rep); err != nil {
			return rep, err
		}
		if rep.Delegated {
			return rep, nil
		}
	}

	var errs []error

	if intent.PluginDir != "" {
		logger.Info("updating plugin bundle", "dir", intent.PluginDir)
		tag, err := o.deps.Plugin.Apply(ctx, o.deps.PluginOwner, o.deps.PluginRepo, intent.PluginDir)
		switch {
		case err == nil:
			rep.PluginTag, rep.PluginUpdated = tag, true
		case o.deps.Policy.ContinueOnPluginFailure && intent.UpdateMain:
			logger.Error("plugin bundle update failed; continuing with main update", "error", err)
			errs = append(errs, err)
		default:
			return rep, err
		}
	}

	if intent.UpdateMain {
		logger.Info("updating main application", "strategy", o.deps.Main.Strategy())
		rep.MainAttempted = true
		res, err := o.deps.Main.Apply(ctx)
		rep.Main = res
		if err != nil {
			errs = append(errs, err)
		}
	}

	return rep, errors.Join(errs...)
}

// ensureWritable probes the plugin directory and escalates once if needed.
func (o *Orchestrator) ensureWritable(ctx context.Context, intent Intent, rep *Report) error {
	logger := o.deps.Logger

	res := o.deps.Probe(intent.PluginDir)
	if res.Writable {
		logger.Debug("plugin directory is writable", "dir", intent.PluginDir)
		return nil
	}
	logger.Warn("plugin directory is not writable", "dir", intent.PluginDir, "reason", res.Reason)

	if intent.Elevated {
		return notWritable(res)
	}

	logger.Info("escalating privileges")
	rep.Escalated = true
	out, err := o.deps.Escalator.Escalate(ctx, o.deps.Args)
	if err != nil {
		return fmt.Errorf("elevating to write %s: %w", intent.PluginDir, err)
	}

	switch out.Kind {
	case elevate.DelegatedToChild:
		rep.Delegated, rep.ChildExitCode = true, out.ExitCode
		if out.ExitCode != 0 {
			logger.Warn("elevated updater reported failure", "exit_code", out.ExitCode)
		} else {
			logger.Info("elevated updater finished")
		}
		return nil
	case elevate.BecamePrivileged:
		if res = o.deps.Probe(intent.PluginDir); !res.Writable {
			return notWritable(res)
		}
		logger.Info("plugin directory writable after elevation", "dir", intent.PluginDir)
		return nil
	}

	return fmt.Errorf("unexpected escalation outcome %v: %w", out.Kind, issue.ErrPermissionDenied)
}

// notWritable is the terminal PermissionDenied error for a directory that
// stays unwritable after elevation.
func notWritable(res probe.Result) error {
	err := fmt.Errorf("%s is not writable even with elevated privileges: %w", res.Dir, issue.ErrPermissionDenied)
	if res.Reason != nil {
		return fmt.Errorf("%w: %w", err, res.Reason)
	}
	return err
}
