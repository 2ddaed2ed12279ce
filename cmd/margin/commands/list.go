package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/margin/internal/app"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <page-url>",
		Short: "Print the annotations of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint, _ := cmd.Flags().GetString("endpoint")
			asJSON, _ := cmd.Flags().GetBool("json")

			return c.app.List(cmd.Context(), args[0], app.ListOptions{
				Endpoint: endpoint,
				JSON:     asJSON,
			})
		},
	}
	cmd.Flags().String("endpoint", "", "Annotation API path, overrides the page's margin-api meta tag")
	cmd.Flags().Bool("json", false, "Print the API response as JSON")
	return cmd
}
