// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oschwald/travis-build/internal/issue"
	"github.com/oschwald/travis-build/internal/shell"
	"github.com/oschwald/travis-build/internal/watch"
	"github.com/oschwald/travis-build/pkg/buildconfig"

	"github.com/spf13/cobra"
)

type compileFlags struct {
	format bool
	output string
	watch  bool
}

func newCompileCommand(app *App) *cobra.Command {
	var flags compileFlags
	compileCmd := &cobra.Command{
		Use:   "compile [file]",
		Short: "Compile a build configuration into a build script",
		Long: `Compile a build configuration into a build script.

The file defaults to .travis.yml in the working directory. Files ending in
.toml are read as TOML. With --watch the script is compiled again every time
the file changes, until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := firstArg(args)
			if !flags.watch {
				return app.emitScript(cmd.OutOrStdout(), path, flags)
			}
			return app.watchScript(cmd.Context(), cmd.OutOrStdout(), path, flags)
		},
	}
	compileCmd.Flags().BoolVar(&flags.format, "format", false, "pretty-print the script")
	compileCmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the script to a file instead of stdout")
	compileCmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "recompile whenever the build configuration changes")
	return compileCmd
}

// emitScript compiles the build configuration at path and writes the script
// to flags.output, or to w when no output file is set.
func (a *App) emitScript(w io.Writer, path string, flags compileFlags) error {
	out, err := a.compile(path)
	if err != nil {
		return err
	}
	text := out.Script
	if flags.format {
		if text, err = shell.Format(text); err != nil {
			return issue.NewErrorContext().
				WithOperation("format build script").
				WithIssue(issue.MalformedScriptId).
				Wrap(err).
				BuildError()
		}
	}
	if flags.output == "" {
		_, err = fmt.Fprint(w, text)
		return err
	}
	if err := os.WriteFile(flags.output, []byte(text), 0o755); err != nil {
		return issue.WrapWithContext(err, "write build script", flags.output)
	}
	a.logger.Debug("wrote build script", "path", flags.output, "slug", out.CacheSlug)
	return nil
}

// watchScript compiles once, then again on every change of the build
// configuration. Compile errors are reported and do not stop watching.
func (a *App) watchScript(ctx context.Context, w io.Writer, path string, flags compileFlags) error {
	file := buildconfig.DefaultFile.String()
	if path != "" {
		file = path
	}

	if err := a.emitScript(w, path, flags); err != nil {
		a.reportError(err)
	}

	opts := watch.ForFile(file, func(_ context.Context, changed []string) error {
		a.logger.Info("build config changed, recompiling", "files", changed)
		if err := a.emitScript(w, path, flags); err != nil {
			a.reportError(err)
		}
		return nil
	})
	opts.Stderr = a.stderr
	watcher, err := watch.New(opts)
	if err != nil {
		return issue.WrapWithContext(err, "watch build config", file)
	}
	a.logger.Info("watching for changes", "dir", watcher.Dir(), "file", file)
	return watcher.Run(ctx)
}

func newSlugCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "slug [file]",
		Short: "Print the dependency cache key of a build configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app.compile(firstArg(args))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.CacheSlug)
			for _, dir := range out.CacheDirectories {
				app.logger.Debug("cached directory", "path", dir)
			}
			return nil
		},
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
