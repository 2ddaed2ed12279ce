package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/margin/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the annotation API and inject the overlay endpoint into pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			addr, _ := cmd.Flags().GetString("addr")

			return c.app.Serve(cmd.Context(), app.ServeOptions{
				ConfigPath: configPath,
				Addr:       addr,
			})
		},
	}
	cmd.Flags().StringP("config", "c", "", "Path to the configuration file (default: margin.yaml)")
	cmd.Flags().String("addr", "", "Listen address, overrides server.addr")
	return cmd
}
