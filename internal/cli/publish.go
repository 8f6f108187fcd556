package cli

import (
	"fmt"
	"io"
	"strings"

	"navtree/internal/docs"
	"navtree/internal/perm"
	"navtree/internal/publish"

	"github.com/spf13/cobra"
)

type viewerFlags struct {
	loggedIn        bool
	roles           []string
	device          string
	asViewer        bool
	includeInactive bool
}

func (f *viewerFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.asViewer, "as-viewer", false, "Filter items by visibility rules for the viewer below")
	cmd.Flags().BoolVar(&f.loggedIn, "logged-in", false, "Viewer is logged in (implies --as-viewer)")
	cmd.Flags().StringSliceVar(&f.roles, "roles", nil, "Viewer roles (implies --as-viewer)")
	cmd.Flags().StringVar(&f.device, "device", "", "Viewer device: desktop|mobile (implies --as-viewer)")
	cmd.Flags().BoolVar(&f.includeInactive, "include-inactive", false, "Include inactive items (ignored with a viewer)")
}

func (f *viewerFlags) options(cmd *cobra.Command) (publish.RenderOptions, error) {
	opt := publish.RenderOptions{IncludeInactive: f.includeInactive}
	changed := f.asViewer
	for _, name := range []string{"logged-in", "roles", "device"} {
		if cmd.Flags().Changed(name) {
			changed = true
		}
	}
	if !changed {
		return opt, nil
	}
	dev := perm.Device(strings.ToLower(strings.TrimSpace(f.device)))
	switch dev {
	case "", perm.DeviceDesktop, perm.DeviceMobile:
	default:
		return opt, fmt.Errorf("invalid --device %q (expected desktop|mobile)", f.device)
	}
	opt.Viewer = &perm.Viewer{LoggedIn: f.loggedIn, Roles: f.roles, Device: dev}
	return opt, nil
}

func newMenusRenderCmd(app *App) *cobra.Command {
	var (
		as string
		vf viewerFlags
	)
	cmd := &cobra.Command{
		Use:   "render <menu-id>",
		Short: "Render a menu as markdown or HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := vf.options(cmd)
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
			var out string
			switch strings.ToLower(strings.TrimSpace(as)) {
			case "", "markdown", "md":
				out = publish.RenderMarkdown(m, opt)
			case "html":
				out = publish.RenderHTML(m, opt)
			default:
				return writeErr(cmd, fmt.Errorf("invalid --as %q (expected markdown|html)", as))
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVar(&as, "as", "markdown", "Output: markdown|html")
	vf.bind(cmd)
	return cmd
}

func newMenusPublishCmd(app *App) *cobra.Command {
	var (
		to        string
		overwrite bool
		vf        viewerFlags
	)
	cmd := &cobra.Command{
		Use:   "publish <menu-id>",
		Short: "Write <menu-id>.md and <menu-id>.html to a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := vf.options(cmd)
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
			res, err := publish.WriteMenu(m, to, publish.WriteOptions{RenderOptions: opt, Overwrite: overwrite})
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.AppendEvent(cmd.Context(), "menu.publish", m.ID, map[string]any{"written": res.Written}); err != nil {
				app.log.Warn().Err(err).Msg("event log append failed")
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Output directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
	vf.bind(cmd)
	return cmd
}

func newDocsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"topics": docs.Topics()}})
			}
			body, ok := docs.Get(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown topic %q (available: %s)", args[0], strings.Join(docs.Topics(), ", ")))
			}
			_, err := io.WriteString(cmd.OutOrStdout(), body)
			return err
		},
	}
}
