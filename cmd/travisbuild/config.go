// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/oschwald/travis-build/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Show travis-build settings",
		Long: `Show travis-build settings.

Settings are read from --config, otherwise from config.cue in the
travis-build config directory, otherwise from ./config.cue. The environment
variables ` + config.EnvAppHost + ` and ` + config.EnvNPMCache + ` override the file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, source, err := config.Load(cmd.Context(), app.loadOptions())
			if err != nil {
				return err
			}
			showConfig(cmd.OutOrStdout(), &app.settings, source)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the settings file path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.Path(app.loadOptions())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective settings as CUE",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(&app.settings))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, cfg *config.Config, source string) {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Settings"))
	fmt.Fprintln(w)
	if source == "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Settings file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Settings file"), source)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("app_host"), valueOrNone(cfg.AppHost.String()))
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("hosts"))
	fmt.Fprintf(w, "  npm_cache: %s\n", valueOrNone(cfg.Hosts.NPMCache))
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("script"))
	fmt.Fprintf(w, "  validate: %s\n", valueStyle.Render(fmt.Sprint(cfg.Script.Validate)))
	fmt.Fprintf(w, "  quote_values: %s\n", valueStyle.Render(fmt.Sprint(cfg.Script.QuoteValues)))
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprint(cfg.UI.Verbose)))
}

func valueOrNone(v string) string {
	if v == "" {
		return SubtitleStyle.Render("(none)")
	}
	return SuccessStyle.Render(v)
}
