// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"path/filepath"

	"github.com/oschwald/travis-build/internal/issue"
	"github.com/oschwald/travis-build/internal/runtime"
	"github.com/oschwald/travis-build/internal/uroot"

	"github.com/spf13/cobra"
)

func newRunCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run [file]",
		Short: "Compile a build configuration and run it in the embedded shell",
		Long: `Compile a build configuration and run the script in the embedded shell.

The script runs in the directory of the build configuration with the host
environment. Commands such as nvm or npm must be installed on the host; the
exit status of the script becomes the exit status of travis-build.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := firstArg(args)
			out, err := app.compile(path)
			if err != nil {
				return err
			}

			dir := "."
			if path != "" {
				dir = filepath.Dir(path)
			}
			rt := runtime.NewVirtual(
				runtime.WithDir(dir),
				runtime.WithStdIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()),
				runtime.WithBuiltins(uroot.DefaultRegistry),
				runtime.WithLogger(app.logger),
			)
			res := rt.Run(cmd.Context(), out.Script)
			if res.Error != nil {
				return issue.NewErrorContext().
					WithOperation("run build script").
					WithIssue(issue.ScriptExecutionFailedId).
					Wrap(res.Error).
					BuildError()
			}
			app.logger.Debug("build finished", "outcome", res.ExitCode.Outcome(), "status", res.ExitCode)
			return buildResult(res.ExitCode)
		},
	}
}
