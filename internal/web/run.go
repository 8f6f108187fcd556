package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const DefaultShutdownTimeout = 5 * time.Second

// Run serves the API on addr and, when metricsAddr is set, the metrics endpoint on a
// second listener. It blocks until ctx is canceled or a listener fails, then shuts
// both servers down.
func (s *Server) Run(ctx context.Context, addr, metricsAddr string) error {
	servers := []*http.Server{{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}}
	if strings.TrimSpace(metricsAddr) != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", s.MetricsHandler())
		servers = append(servers, &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second})
	}

	listeners := make([]net.Listener, 0, len(servers))
	for _, srv := range servers {
		ln, err := net.Listen("tcp", srv.Addr)
		if err != nil {
			for _, l := range listeners {
				_ = l.Close()
			}
			return fmt.Errorf("failed to create listener: %w", err)
		}
		listeners = append(listeners, ln)
	}

	g, gCtx := errgroup.WithContext(ctx)
	for i, srv := range servers {
		srv, ln := srv, listeners[i]
		s.cfg.Log.Info().Str("addr", ln.Addr().String()).Msg("starting server")
		g.Go(func() error {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		s.cfg.Log.Info().Dur("grace_period", DefaultShutdownTimeout).Msg("shutting down")
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.cfg.Log.Error().Err(err).Str("addr", srv.Addr).Msg("server shutdown error")
			}
		}
		return nil
	})

	return g.Wait()
}
