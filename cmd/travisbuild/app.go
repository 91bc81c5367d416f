// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/oschwald/travis-build/internal/config"
	"github.com/oschwald/travis-build/internal/issue"
	"github.com/oschwald/travis-build/internal/script"
	"github.com/oschwald/travis-build/pkg/buildconfig"
	"github.com/oschwald/travis-build/pkg/types"

	"github.com/charmbracelet/log"
)

type (
	// App wires the CLI's dependencies. Every command handler receives it.
	App struct {
		Config config.Provider
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
		logger *log.Logger

		// set by the root command's persistent flags
		verbose bool
		cfgFile string

		settings config.Config
	}

	// Dependencies are the injection points of NewApp. Nil fields get
	// production defaults.
	Dependencies struct {
		Config config.Provider
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp creates an App from deps.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:   deps.Config,
		stdin:    deps.Stdin,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
		settings: *config.DefaultConfig(),
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdin == nil {
		app.stdin = os.Stdin
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	app.logger = log.NewWithOptions(app.stderr, log.Options{Prefix: config.AppName})
	return app
}

// loadSettings reads the compiler settings. A missing default settings file
// is not an error; a broken one is.
func (a *App) loadSettings(ctx context.Context) error {
	if a.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return err
	}
	a.settings = *cfg
	if cfg.UI.Verbose && !a.verbose {
		a.verbose = true
		a.logger.SetLevel(log.DebugLevel)
	}
	a.logger.Debug("settings loaded", "app_host", cfg.AppHost, "validate", cfg.Script.Validate)
	return nil
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: types.FilesystemPath(a.cfgFile)}
}

// loadBuildConfig reads the build configuration at path, defaulting to
// .travis.yml in the working directory.
func (a *App) loadBuildConfig(path string) (*buildconfig.BuildConfig, error) {
	p := buildconfig.DefaultFile
	if path != "" {
		p = types.FilesystemPath(path)
	}
	a.logger.Debug("loading build config", "path", p)

	cfg, err := buildconfig.Load(p)
	if err == nil {
		return cfg, nil
	}
	ctx := issue.NewErrorContext().
		WithOperation("load build config").
		WithResource(p.String()).
		Wrap(err)
	if errors.Is(err, fs.ErrNotExist) {
		ctx = ctx.WithIssue(issue.BuildConfigNotFoundId).
			WithSuggestion("Run the command in a directory containing .travis.yml").
			WithSuggestion("Pass the build configuration file as an argument")
	} else {
		ctx = ctx.WithIssue(issue.BuildConfigParseErrorId).
			WithSuggestion("Check the file against the build config schema")
	}
	return nil, ctx.BuildError()
}

// compile loads and compiles the build configuration at path.
func (a *App) compile(path string) (*script.Compiled, error) {
	cfg, err := a.loadBuildConfig(path)
	if err != nil {
		return nil, err
	}
	out, err := script.Compile(cfg,
		script.WithSettings(script.SettingsFrom(&a.settings)),
		script.WithLogger(a.logger),
	)
	if err == nil {
		return out, nil
	}

	ctx := issue.NewErrorContext().
		WithOperation("compile build script").
		WithResource(cfg.Source()).
		Wrap(err)
	if errors.Is(err, script.ErrUnknownLanguage) {
		ctx = ctx.WithIssue(issue.UnknownLanguageId).
			WithSuggestion(fmt.Sprintf("Supported languages: %v", script.DefaultRegistry.Names()))
	} else {
		ctx = ctx.WithIssue(issue.MalformedScriptId)
	}
	return nil, ctx.BuildError()
}

// reportError prints err with its guidance. Exit errors carrying only a
// script status are not printed.
func (a *App) reportError(err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.verbose))

	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.Issue == 0 {
		return
	}
	if is := issue.Get(ae.Issue); is != nil {
		if rendered, renderErr := is.Render(a.glamourStyle()); renderErr == nil {
			fmt.Fprint(a.stderr, rendered)
		}
	}
}

func (a *App) glamourStyle() string {
	switch a.settings.UI.ColorScheme {
	case config.ColorSchemeLight:
		return "light"
	case config.ColorSchemeDark:
		return "dark"
	}
	if f, ok := a.stdout.(*os.File); ok && isTerminal(f) {
		return "dark"
	}
	return "notty"
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// formatErrorForDisplay formats an error for user display.
// In verbose mode, ActionableErrors show the full error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
