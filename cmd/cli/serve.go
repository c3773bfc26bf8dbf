package main

import (
	"github.com/spf13/cobra"

	"chronostat/internal/api"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the statistics API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			if port != "" {
				c.Config.Server.Port = port
			}
			return api.Serve(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (default PORT or 8080)")
	return cmd
}
