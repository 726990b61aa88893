package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gamma-guide/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Serve the chain and risk endpoints over HTTP:

  GET  /healthz     liveness probe
  GET  /api/price   live spot quote
  GET  /api/chain   full chain snapshot
  POST /api/risk    evaluate an order

The server shuts down gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			addr, _ := cmd.Flags().GetString("addr")
			cfg := app.Config.Server
			if addr != "" {
				cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(cfg, app.Engine, app.Feed, app.Logger)
			output.Info("Serving %s on %s", app.Config.Chain.Symbol, cfg.Addr)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().String("addr", "", "listen address (overrides config)")

	return cmd
}
