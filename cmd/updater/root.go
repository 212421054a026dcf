// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"dorion-updater/internal/elevate"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

var errMainValueWithoutFlag = errors.New("a true/false value is only accepted after --main")

// rootFlags holds every flag of the root command. Persistent flags
// (config, verbose, log file) are shared with the subcommands.
type rootFlags struct {
	main       bool
	pluginDir  string
	elevated   bool
	configFile string
	verbose    bool
	logFile    string
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// NewRootCommand builds the dorion-updater command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "dorion-updater [--main] [--vencord <dir>]",
		Short: "Update Dorion and its Vencord plugin bundle",
		Long: TitleStyle.Render("dorion-updater") + SubtitleStyle.Render(" - update Dorion and its Vencord plugin bundle") + `

Downloads the latest plugin bundle (browser.js, browser.css) into the given
directory and, where the platform supports it, the latest Dorion release.
If the plugin directory is not writable the updater asks for elevated
privileges once.`,
		Example: `  # Update the plugin bundle
  dorion-updater --vencord "/Applications/Dorion.app/Contents/Resources/injection"

  # Update both the bundle and the main application
  dorion-updater --main --vencord ./injection

  # Report available updates without changing anything
  dorion-updater check ./injection`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			updateMain, err := resolveMainArg(flags.main, args)
			if err != nil {
				return reportFailure(cmd.ErrOrStderr(), err, flags.verbose)
			}

			p := updateParams{
				stdout: cmd.OutOrStdout(),
				stderr: cmd.ErrOrStderr(),
				app:    app,
				flags:  *flags,
			}
			p.flags.main = updateMain

			if err := runUpdate(cmd.Context(), p); err != nil {
				return reportFailure(p.stderr, err, flags.verbose)
			}
			return nil
		},
	}
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "config file (default is <config dir>/dorion-updater/config.cue)")
	pf.BoolVar(&flags.verbose, "verbose", false, "enable debug logging and detailed error output")
	pf.StringVar(&flags.logFile, "log-file", "", "log file path (overrides log.file from config)")

	f := root.Flags()
	f.BoolVarP(&flags.main, "main", "m", false, "update the main Dorion application")
	f.StringVarP(&flags.pluginDir, "vencord", "v", "", "plugin bundle directory to update")
	elevatedName := strings.TrimPrefix(elevate.ElevatedFlag, "--")
	f.BoolVar(&flags.elevated, elevatedName, false, "set by the updater when it relaunches itself with elevated privileges")
	_ = f.MarkHidden(elevatedName)

	root.AddCommand(newCheckCommand(app, flags))
	root.AddCommand(newConfigCommand(app, flags))

	return root
}

// resolveMainArg applies the legacy "--main true|false" form, where the
// value ends up as a positional argument.
func resolveMainArg(mainFlag bool, args []string) (bool, error) {
	if len(args) == 0 {
		return mainFlag, nil
	}
	if !mainFlag {
		return false, fmt.Errorf("unexpected argument %q: %w", args[0], errMainValueWithoutFlag)
	}
	v, err := strconv.ParseBool(args[0])
	if err != nil {
		return false, fmt.Errorf("--main value %q: %w", args[0], err)
	}
	return v, nil
}

// forwardArgs rebuilds the invocation for an elevated relaunch. Paths are
// made absolute because the elevated process may start in another
// working directory. The escalator appends elevate.ElevatedFlag.
func (f rootFlags) forwardArgs() []string {
	var args []string
	if f.main {
		args = append(args, "--main")
	}
	if f.pluginDir != "" {
		args = append(args, "--vencord", absOrSelf(f.pluginDir))
	}
	if f.configFile != "" {
		args = append(args, "--config", absOrSelf(f.configFile))
	}
	if f.logFile != "" {
		args = append(args, "--log-file", absOrSelf(f.logFile))
	}
	if f.verbose {
		args = append(args, "--verbose")
	}
	return args
}

func absOrSelf(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// Execute runs the CLI and exits with the code of the failure, if any.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := NewRootCommand(app)

	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	)
	if code := processExitCode(err); code != ExitOK {
		os.Exit(code)
	}
}

// processExitCode is the exit status for the error fang.Execute returned.
// Errors that are not an ExitError come from cobra itself (bad flags,
// unknown commands).
func processExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// handleError defers to fang's styled output except for ExitError, whose
// message the command has already printed.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
