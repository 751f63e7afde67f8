package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"newsum/internal/app"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the single-page web client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Server.Host = addr
			}
			if port, _ := cmd.Flags().GetInt("port"); port != 0 {
				cfg.Server.Port = port
			}

			r, addr := app.NewServer(cfg)
			fmt.Fprintf(cmd.OutOrStdout(), "Starting server on %s%s\n", addr, cfg.Server.Subpath)
			return r.Run(addr)
		},
	}
	cmd.Flags().String("addr", "", "Host to listen on (overrides config)")
	cmd.Flags().Int("port", 0, "Port to listen on (overrides config)")
	return cmd
}
