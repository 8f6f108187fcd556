package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"navtree/internal/format"
	"navtree/internal/model"
	"navtree/internal/mutate"
	"navtree/internal/store"

	"github.com/spf13/cobra"
)

func newMenusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menus",
		Short: "Menu commands (containers for item trees)",
	}
	cmd.AddCommand(newMenusListCmd(app))
	cmd.AddCommand(newMenusShowCmd(app))
	cmd.AddCommand(newMenusCreateCmd(app))
	cmd.AddCommand(newMenusDeleteCmd(app))
	cmd.AddCommand(newMenusTreeCmd(app))
	cmd.AddCommand(newMenusImportCmd(app))
	cmd.AddCommand(newMenusExportCmd(app))
	cmd.AddCommand(newMenusRenderCmd(app))
	cmd.AddCommand(newMenusPublishCmd(app))
	return cmd
}

func newMenusListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List menus",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			menus, err := s.ListMenus(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if menus == nil {
				menus = []model.Menu{}
			}
			return writeOut(cmd, app, map[string]any{"data": menus})
		},
	}
}

func newMenusShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <menu-id>",
		Short: "Show a menu with its item tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			m, err := s.GetMenu(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": m})
		},
	}
}

func newMenusCreateCmd(app *App) *cobra.Command {
	var (
		id          string
		name        string
		location    string
		menuType    string
		status      string
		description string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an empty menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return writeErr(cmd, missingFlag("name"))
			}
			loc, err := model.ParseLocation(location)
			if err != nil {
				return writeErr(cmd, err)
			}
			mt, err := model.ParseMenuType(menuType)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := model.ParseStatus(status)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			mid := strings.TrimSpace(id)
			if mid == "" {
				mid = app.newMenuID()
			}
			if _, err := s.GetMenu(cmd.Context(), mid); err == nil {
				return writeErr(cmd, fmt.Errorf("menu already exists: %s", mid))
			} else if !errors.Is(err, store.ErrMenuNotFound) {
				return writeErr(cmd, err)
			}
			saved, err := s.SaveMenu(cmd.Context(), model.Menu{
				ID:          mid,
				Name:        strings.TrimSpace(name),
				Location:    loc,
				Type:        mt,
				Status:      st,
				Description: description,
				Items:       []model.MenuItem{},
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.AppendEvent(cmd.Context(), "menu.create", saved.ID, map[string]any{"name": saved.Name}); err != nil {
				app.log.Warn().Err(err).Msg("event log append failed")
			}
			app.metrics.Record("menu.create", "created")
			return writeOut(cmd, app, map[string]any{"data": saved})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Menu id (default: generated)")
	cmd.Flags().StringVar(&name, "name", "", "Menu name")
	cmd.Flags().StringVar(&location, "location", "header", "Location (header|footer|sidebar|mobile)")
	cmd.Flags().StringVar(&menuType, "type", "main", "Menu type (main|secondary|utility)")
	cmd.Flags().StringVar(&status, "status", "active", "Status (active|inactive)")
	cmd.Flags().StringVar(&description, "description", "", "Markdown description")
	return cmd
}

func newMenusDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <menu-id>",
		Short: "Delete a menu and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			if err := s.DeleteMenu(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.AppendEvent(cmd.Context(), "menu.delete", id, nil); err != nil {
				app.log.Warn().Err(err).Msg("event log append failed")
			}
			app.metrics.Record("menu.delete", "deleted")
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "deleted": true}})
		},
	}
}

func newMenusTreeCmd(app *App) *cobra.Command {
	var ascii bool
	cmd := &cobra.Command{
		Use:   "tree <menu-id>",
		Short: "Print the item tree as text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			m, err := s.GetMenu(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return format.WriteTree(cmd.OutOrStdout(), m.Items, ascii)
		},
	}
	cmd.Flags().BoolVar(&ascii, "ascii", strings.EqualFold(os.Getenv("NAVTREE_TUI_GLYPHS"), "ascii"), "Use ASCII branch glyphs")
	return cmd
}

func newMenusImportCmd(app *App) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import (create or replace) a menu from a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			var m model.Menu
			if err := json.Unmarshal(raw, &m); err != nil {
				return writeErr(cmd, fmt.Errorf("invalid menu document: %w", err))
			}
			if v := strings.TrimSpace(id); v != "" {
				m.ID = v
			}
			if strings.TrimSpace(m.ID) == "" {
				m.ID = app.newMenuID()
			}
			if _, err := model.ParseLocation(string(m.Location)); err != nil {
				return writeErr(cmd, err)
			}
			if err := mutate.ValidateMenu(m); err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			saved, err := s.SaveMenu(cmd.Context(), m)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.AppendEvent(cmd.Context(), "menu.import", saved.ID, map[string]any{"items": len(saved.Items)}); err != nil {
				app.log.Warn().Err(err).Msg("event log append failed")
			}
			app.metrics.Record("menu.import", "saved")
			return writeOut(cmd, app, map[string]any{"data": saved})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Override the menu id from the document")
	return cmd
}

func newMenusExportCmd(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export <menu-id>",
		Short: "Export a menu as a JSON document (no envelope)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			m, err := s.GetMenu(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(out) == "" {
				return format.WriteJSON(cmd.OutOrStdout(), m, true)
			}
			f, err := os.Create(out)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer f.Close()
			if err := format.WriteJSON(f, m, true); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": m.ID, "path": out}})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Write to a file instead of stdout")
	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func newEventsCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "events [menu-id]",
		Short: "Show the mutation log, oldest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			menuID := ""
			if len(args) == 1 {
				menuID = args[0]
			}
			evs, err := s.ReadEvents(cmd.Context(), menuID, limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			if evs == nil {
				evs = []model.Event{}
			}
			return writeOut(cmd, app, map[string]any{"data": evs})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "At most N events (0: all)")
	return cmd
}
