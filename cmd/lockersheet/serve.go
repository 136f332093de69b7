package main

import (
	"github.com/spf13/cobra"

	"github.com/ukaji3/lockersheet-go/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload form over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := server.New(*a.cfg, a.logger)
			if err != nil {
				return err
			}
			return srv.Start()
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default from config, :8080)")
	cmd.Flags().String("logo", "", "Branding image for the page header (default from config)")
	cmd.Flags().String("sheet", "", "Sheet to read (default: first sheet)")

	return cmd
}
