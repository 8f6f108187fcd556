package cli

import (
	"errors"
	"os"
	"strings"

	"navtree/internal/model"
	"navtree/internal/store"
	"navtree/internal/tui"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [menu-id]",
		Short: "Edit a menu interactively (default: the last opened menu)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return runTUI(cmd, app, id)
		},
	}
}

func runTUI(cmd *cobra.Command, app *App, menuID string) error {
	s, err := openStore(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	m, err := pickMenu(cmd, s, menuID)
	if err != nil {
		return writeErr(cmd, err)
	}

	// The terminal belongs to the TUI; logs go to a file only when asked for.
	app.log = zerolog.Nop()
	if path := strings.TrimSpace(os.Getenv("NAVTREE_TUI_LOG")); path != "" {
		if err := app.setupLogger(nil, path, true); err != nil {
			return writeErr(cmd, err)
		}
	}

	return tui.Run(tui.Options{
		Store:     s,
		Menu:      m,
		Log:       app.log,
		Metrics:   app.metrics,
		NewItemID: app.newItemID,
	})
}

// pickMenu resolves the menu to open: the named one, else the last opened, else
// the first stored menu.
func pickMenu(cmd *cobra.Command, s store.Store, menuID string) (model.Menu, error) {
	ctx := cmd.Context()
	if id := strings.TrimSpace(menuID); id != "" {
		return s.GetMenu(ctx, id)
	}
	if st, err := s.LoadTUIState(); err == nil && st.LastMenuID != "" {
		if m, err := s.GetMenu(ctx, st.LastMenuID); err == nil {
			return m, nil
		}
	}
	menus, err := s.ListMenus(ctx)
	if err != nil {
		return model.Menu{}, err
	}
	if len(menus) == 0 {
		return model.Menu{}, errors.New("no menus yet; create one with `navtree menus create --name <name>`")
	}
	return menus[0], nil
}
