package cli

import (
	"context"
	"strings"

	"navtree/internal/model"
	"navtree/internal/mutate"
	"navtree/internal/store"
	"navtree/internal/tree"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Menu item commands",
	}
	cmd.AddCommand(newItemsAddCmd(app))
	cmd.AddCommand(newItemsEditCmd(app))
	cmd.AddCommand(newItemsDeleteCmd(app))
	cmd.AddCommand(newItemsMoveCmd(app))
	cmd.AddCommand(newItemsIndentCmd(app, true))
	cmd.AddCommand(newItemsIndentCmd(app, false))
	cmd.AddCommand(newItemsFindCmd(app))
	return cmd
}

// itemFlags binds the editable item fields to flags shared by add and edit.
type itemFlags struct {
	title, url, itemType, target, icon, cssClass, htmlID string
	rel, visibility, roles                               []string
	inactive                                             bool
}

func (f *itemFlags) bind(cmd *cobra.Command, defaultType string) {
	cmd.Flags().StringVar(&f.title, "title", "", "Item title")
	cmd.Flags().StringVar(&f.url, "url", "", "Item URL")
	cmd.Flags().StringVar(&f.itemType, "type", defaultType, "Item type (custom|page|category|post)")
	cmd.Flags().StringVar(&f.target, "target", "", "Link target (_self|_blank)")
	cmd.Flags().StringVar(&f.icon, "icon", "", "Icon name (home|news|category|tag|user|search|star|link|mail|video|image|info)")
	cmd.Flags().StringVar(&f.cssClass, "css-class", "", "CSS class")
	cmd.Flags().StringVar(&f.htmlID, "html-id", "", "HTML id attribute")
	cmd.Flags().StringSliceVar(&f.rel, "rel", nil, "Link rel values (nofollow,noopener,noreferrer,external)")
	cmd.Flags().StringSliceVar(&f.visibility, "visibility", nil, "Visibility (desktop,mobile,logged-in,guests)")
	cmd.Flags().StringSliceVar(&f.roles, "roles", nil, "Roles allowed to see the item")
	cmd.Flags().BoolVar(&f.inactive, "inactive", false, "Mark the item inactive")
}

// apply overlays the flags the user actually set onto in.
func (f *itemFlags) apply(cmd *cobra.Command, in mutate.ItemInput) mutate.ItemInput {
	set := func(name string) bool { return cmd.Flags().Changed(name) }
	if set("title") {
		in.Title = f.title
	}
	if set("url") {
		in.URL = f.url
	}
	if set("type") || in.Type == "" {
		in.Type = f.itemType
	}
	if set("target") {
		in.Target = f.target
	}
	if set("icon") {
		in.Icon = f.icon
	}
	if set("css-class") {
		in.CSSClass = f.cssClass
	}
	if set("html-id") {
		in.HTMLID = f.htmlID
	}
	if set("rel") {
		in.Rel = f.rel
	}
	if set("visibility") {
		in.Visibility = f.visibility
	}
	if set("roles") {
		in.Roles = f.roles
	}
	if set("inactive") || in.Active == nil {
		active := !f.inactive
		in.Active = &active
	}
	return in
}

// mutateMenu runs one read-modify-write cycle against a stored menu and prints
// the result envelope.
func mutateMenu(cmd *cobra.Command, app *App, menuID, op string, fn func(model.Menu) (mutate.Result, error)) error {
	s, err := openStore(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	ctx := cmd.Context()
	m, err := s.GetMenu(ctx, menuID)
	if err != nil {
		return writeErr(cmd, err)
	}
	res, err := fn(m)
	if err != nil {
		app.metrics.Record(op, "rejected")
		return writeErr(cmd, err)
	}
	out := res.Menu
	if res.Changed() {
		out, err = s.SaveMenu(ctx, res.Menu)
		if err != nil {
			return writeErr(cmd, err)
		}
		recordEvent(ctx, app, s, op, out.ID, res.Payload())
	}
	app.metrics.Record(op, string(res.Outcome))
	app.log.Debug().Str("op", op).Str("menu", out.ID).Str("outcome", string(res.Outcome)).Msg("menu mutated")
	return writeOut(cmd, app, map[string]any{"data": map[string]any{
		"outcome": res.Outcome,
		"message": res.Message(),
		"itemId":  res.ItemID,
		"menu":    out,
	}})
}

func recordEvent(ctx context.Context, app *App, s store.Store, op, menuID string, payload any) {
	if err := s.AppendEvent(ctx, op, menuID, payload); err != nil {
		app.log.Warn().Err(err).Str("menu", menuID).Str("op", op).Msg("event log append failed")
	}
}

func newItemsAddCmd(app *App) *cobra.Command {
	var (
		f      itemFlags
		parent string
		id     string
	)
	cmd := &cobra.Command{
		Use:   "add <menu-id>",
		Short: "Add an item at the top level or under --parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := f.apply(cmd, mutate.ItemInput{})
			newID := strings.TrimSpace(id)
			if newID == "" {
				newID = app.newItemID()
			}
			return mutateMenu(cmd, app, args[0], "item.add", func(m model.Menu) (mutate.Result, error) {
				return mutate.AddItem(m, parent, newID, in)
			})
		},
	}
	f.bind(cmd, string(model.ItemTypeCustom))
	cmd.Flags().StringVar(&parent, "parent", "", "Parent item id (default: top level)")
	cmd.Flags().StringVar(&id, "id", "", "Item id (default: generated)")
	return cmd
}

func newItemsEditCmd(app *App) *cobra.Command {
	var f itemFlags
	cmd := &cobra.Command{
		Use:   "edit <menu-id> <item-id>",
		Short: "Edit item fields; flags not given keep their current value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID := args[1]
			return mutateMenu(cmd, app, args[0], "item.edit", func(m model.Menu) (mutate.Result, error) {
				it, _, ok := tree.Find(m.Items, itemID)
				if !ok {
					return mutate.Result{}, mutate.NotFoundError{Kind: "item", ID: itemID}
				}
				return mutate.EditItem(m, itemID, f.apply(cmd, mutate.InputFromItem(*it)))
			})
		},
	}
	f.bind(cmd, string(model.ItemTypeCustom))
	return cmd
}

func newItemsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <menu-id> <item-id>",
		Short: "Delete an item and its nested items",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateMenu(cmd, app, args[0], "item.delete", func(m model.Menu) (mutate.Result, error) {
				return mutate.DeleteItem(m, args[1])
			})
		},
	}
}

func newItemsMoveCmd(app *App) *cobra.Command {
	var toRoot bool
	cmd := &cobra.Command{
		Use:   "move <menu-id> <active-id> [over-id]",
		Short: "Drop an item onto another item's position (or --root to append at the top level)",
		Long: strings.TrimSpace(`
Move an item the way a drag and drop does: when both items share a parent the
active item takes the over item's position; otherwise it is placed right after
the over item in the over item's parent.
`),
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			activeID := args[1]
			if toRoot {
				return mutateMenu(cmd, app, args[0], "item.move", func(m model.Menu) (mutate.Result, error) {
					return mutate.MoveToRoot(m, activeID)
				})
			}
			if len(args) < 3 {
				return writeErr(cmd, missingFlag("root (or pass <over-id>)"))
			}
			return mutateMenu(cmd, app, args[0], "item.move", func(m model.Menu) (mutate.Result, error) {
				return mutate.Move(m, activeID, args[2])
			})
		},
	}
	cmd.Flags().BoolVar(&toRoot, "root", false, "Append the item to the top level")
	return cmd
}

func newItemsIndentCmd(app *App, indent bool) *cobra.Command {
	use, short, op := "indent", "Make an item the last child of its previous sibling", "item.indent"
	if !indent {
		use, short, op = "outdent", "Move an item out to just after its parent", "item.outdent"
	}
	return &cobra.Command{
		Use:   use + " <menu-id> <item-id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateMenu(cmd, app, args[0], op, func(m model.Menu) (mutate.Result, error) {
				if indent {
					return mutate.Indent(m, args[1])
				}
				return mutate.Outdent(m, args[1])
			})
		},
	}
}

// itemSource adapts flattened items for fuzzy matching on title and url.
type itemSource []model.MenuItem

func (s itemSource) String(i int) string { return s[i].Title + " " + s[i].URL }

func (s itemSource) Len() int { return len(s) }

func newItemsFindCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "find <menu-id> <query>",
		Short: "Fuzzy-find items by title or URL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			m, err := s.GetMenu(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			var src itemSource
			tree.Walk(m.Items, func(it *model.MenuItem, _ int, _ string) bool {
				src = append(src, *it)
				return true
			})
			ix := tree.NewIndex(m.Items)
			out := make([]map[string]any, 0)
			for _, match := range fuzzy.FindFrom(args[1], src) {
				if limit > 0 && len(out) >= limit {
					break
				}
				it := src[match.Index]
				path := make([]string, 0)
				for _, a := range ix.Ancestors(it.ID) {
					if n, _, ok := tree.Find(m.Items, a); ok {
						path = append(path, n.Title)
					}
				}
				out = append(out, map[string]any{
					"id":    it.ID,
					"title": it.Title,
					"url":   it.URL,
					"path":  path,
					"score": match.Score,
				})
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum matches (0: all)")
	return cmd
}
