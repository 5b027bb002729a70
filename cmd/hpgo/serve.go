package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/hpgo/internal/api"
	"github.com/spf13/cobra"
)

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection API over HTTP",
		Long: `Serve POST /v1/projections, /v1/amortizations, /v1/affordability and
/v1/comparisons until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				a.cfg.Server.HTTPAddr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return api.NewServer(a.cfg, a.engine, a.log).ListenAndServe(ctx)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides server.http_addr)")
	return cmd
}
