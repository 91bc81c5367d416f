// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/oschwald/travis-build/internal/script"
	"github.com/oschwald/travis-build/pkg/buildconfig"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newLanguagesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "languages [name]",
		Short: "List supported languages or describe one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintln(w, TitleStyle.Render("Supported languages"))
				for _, name := range script.DefaultRegistry.Names() {
					a, _ := script.DefaultRegistry.Lookup(buildconfig.Language(name))
					line := "  " + CmdStyle.Render(name)
					if len(a.Aliases) > 0 {
						line += SubtitleStyle.Render(" (aliases: " + strings.Join(a.Aliases, ", ") + ")")
					}
					fmt.Fprintln(w, line)
				}
				return nil
			}

			a, err := script.DefaultRegistry.Lookup(buildconfig.Language(strings.ToLower(args[0])))
			if err != nil {
				return err
			}
			rendered, err := glamour.Render(describeAdapter(a), app.glamourStyle())
			if err != nil {
				return err
			}
			fmt.Fprint(w, rendered)
			return nil
		},
	}
}

// describeAdapter returns a markdown description of a and its lifecycle.
func describeAdapter(a *script.Adapter) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", a.Name)
	if len(a.Aliases) > 0 {
		fmt.Fprintf(&sb, "Also selected by `language: %s`.\n\n", strings.Join(a.Aliases, "`, `language: "))
	}
	if a.Summary != "" {
		sb.WriteString(a.Summary)
		sb.WriteString("\n\n")
	}
	sb.WriteString("## Lifecycle\n\n")
	for i, p := range script.Phases() {
		fmt.Fprintf(&sb, "%d. `%s`\n", i+1, p)
	}
	return sb.String()
}
