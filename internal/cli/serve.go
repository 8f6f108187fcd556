package cli

import (
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"navtree/internal/web"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var (
		addr         string
		metricsAddr  string
		allowOrigins []string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the admin HTTP API",
		Long: strings.TrimSpace(`
Serve the menu admin API (JSON over HTTP plus a websocket change feed).

Mutations are serialized per process. Prometheus metrics are served from a
separate listener when --metrics-addr is set.
`),
		Example: strings.TrimSpace(`
navtree serve --addr 127.0.0.1:8080
navtree serve --addr :8080 --metrics-addr :9090 --allow-origin https://admin.example.com
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr := strings.TrimSpace(addr)
			if listenAddr == "" {
				return writeErr(cmd, errors.New("serve: missing --addr"))
			}
			// Servers log JSON lines.
			if err := app.setupLogger(cmd.ErrOrStderr(), "", false); err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := web.NewServer(web.Config{
				Store:        s,
				Log:          app.log,
				Metrics:      app.metrics,
				AllowOrigins: allowOrigins,
				NewItemID:    app.newItemID,
				NewMenuID:    app.newMenuID,
			})
			app.log.Info().Str("dir", s.Dir).Msg("serving menus")
			if err := srv.Run(ctx, listenAddr, metricsAddr); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", envOr("NAVTREE_ADDR", "127.0.0.1:8080"), "Listen address for the API")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", envOr("NAVTREE_METRICS_ADDR", ""), "Listen address for /metrics (empty: disabled)")
	cmd.Flags().StringSliceVar(&allowOrigins, "allow-origin", nil, "CORS allowed origins")
	return cmd
}
