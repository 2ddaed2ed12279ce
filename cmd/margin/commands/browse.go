package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/margin/internal/app"
)

func (c *CLI) newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse <page-url>",
		Short: "Open the annotation overlay on a page",
		Long: "Open the annotation overlay on a page.\n\n" +
			"In a terminal the overlay is interactive. Otherwise commands are read from\n" +
			"stdin one per line: toggle, list, click <locator> [x y], type <field> <text>,\n" +
			"save, cancel, backdrop, escape, marker <n>, show and quit.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint, _ := cmd.Flags().GetString("endpoint")
			outputMode, _ := cmd.Flags().GetString("output-mode")
			ci, _ := cmd.Flags().GetBool("ci")

			if ci {
				outputMode = "linear"
			}

			return c.app.Browse(cmd.Context(), args[0], app.BrowseOptions{
				Endpoint:   endpoint,
				OutputMode: outputMode,
			})
		},
	}
	cmd.Flags().String("endpoint", "", "Annotation API path, overrides the page's margin-api meta tag")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, tui, or linear")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")
	return cmd
}
