package cli

import (
	"fmt"
	"strings"

	"navtree/internal/backend"
	"navtree/internal/mutate"

	"github.com/spf13/cobra"
)

type remoteFlags struct {
	api   string
	token string
}

func (f *remoteFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.api, "api", envOr("NAVTREE_API_URL", ""), "Backend base URL (env NAVTREE_API_URL)")
	cmd.Flags().StringVar(&f.token, "token", envOr("NAVTREE_API_TOKEN", ""), "Bearer token passed through to the backend (env NAVTREE_API_TOKEN)")
}

func (f *remoteFlags) client() (*backend.Client, error) {
	if strings.TrimSpace(f.api) == "" {
		return nil, missingFlag("api (or set NAVTREE_API_URL)")
	}
	return backend.New(f.api, f.token)
}

func newFetchCmd(app *App) *cobra.Command {
	var f remoteFlags
	cmd := &cobra.Command{
		Use:   "fetch <menu-id>",
		Short: "Fetch a menu from the backend and replace the local copy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := f.client()
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			m, err := c.FetchMenu(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := mutate.ValidateMenu(m); err != nil {
				return writeErr(cmd, fmt.Errorf("backend menu rejected: %w", err))
			}
			saved, err := s.SaveMenu(cmd.Context(), m)
			if err != nil {
				return writeErr(cmd, err)
			}
			recordEvent(cmd.Context(), app, s, "menu.fetch", saved.ID, map[string]any{"api": f.api})
			app.log.Debug().Str("menu", saved.ID).Str("api", f.api).Msg("menu fetched")
			return writeOut(cmd, app, map[string]any{"data": saved})
		},
	}
	f.bind(cmd)
	return cmd
}

func newPushCmd(app *App) *cobra.Command {
	var f remoteFlags
	cmd := &cobra.Command{
		Use:   "push <menu-id>",
		Short: "Save the local menu to the backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := f.client()
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			m, err := s.GetMenu(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			remote, err := c.SaveMenu(cmd.Context(), m)
			if err != nil {
				return writeErr(cmd, err)
			}
			recordEvent(cmd.Context(), app, s, "menu.push", m.ID, map[string]any{"api": f.api})
			app.log.Debug().Str("menu", m.ID).Str("api", f.api).Msg("menu pushed")
			return writeOut(cmd, app, map[string]any{"data": remote})
		},
	}
	f.bind(cmd)
	return cmd
}
