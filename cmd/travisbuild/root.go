// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "travis-build",
		Short: "Compile CI build configurations into build scripts",
		Long: TitleStyle.Render("travis-build") + SubtitleStyle.Render(" - compile CI build configurations into build scripts") + `

travis-build reads a .travis.yml (or .travis.toml) and compiles it into a
single bash script: toolchain bootstrap, dependency installation and the
test command, with fold and timing markers for the log viewer.

` + SubtitleStyle.Render("Examples:") + `
  travis-build compile              Print the script for ./.travis.yml
  travis-build compile --format     Print it pretty-printed
  travis-build run                  Compile and run it in the embedded shell
  travis-build slug                 Print the dependency cache key
  travis-build languages node_js    Describe a language`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.loadSettings(cmd.Context())
		},
	}
	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.cfgFile, "config", "", "settings file (default is $XDG_CONFIG_HOME/travis-build/config.cue)")

	rootCmd.AddCommand(newCompileCommand(app))
	rootCmd.AddCommand(newRunCommand(app))
	rootCmd.AddCommand(newSlugCommand(app))
	rootCmd.AddCommand(newLanguagesCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(_ io.Writer, _ fang.Styles, err error) {
			app.reportError(err)
		}),
	)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
