package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"navtree/internal/format"
	"navtree/internal/logging"
	"navtree/internal/metric"
	"navtree/internal/store"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
	LogLevel   string

	log      zerolog.Logger
	closeLog func() error
	metrics  *metric.Mutations

	// newItemID and newMenuID are swapped in tests for stable ids.
	newItemID func() string
	newMenuID func() string
}

func NewRootCmd() *cobra.Command {
	app := &App{
		log:       zerolog.Nop(),
		closeLog:  func() error { return nil },
		metrics:   metric.NewMutations(),
		newItemID: store.NewItemID,
		newMenuID: store.NewMenuID,
	}
	return newRootCmd(app)
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "navtree",
		Short:        "Navigation menu editor (CLI + TUI + admin API)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Edit the last opened menu interactively
  navtree

  # Direct menu lookup (shortcut for: navtree tui <menu-id>)
  navtree menu-01j9x...

  # Scriptable commands
  navtree menus create --name Main --location header
  navtree items add <menu-id> --title Blog --url /blog --type category
  navtree items move <menu-id> <active-id> <over-id>

  # Serve the admin API
  navtree serve --addr 127.0.0.1:8080 --metrics-addr 127.0.0.1:9090
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app, "")
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.setupLogger(cmd.ErrOrStderr(), "", true); err != nil {
			return writeErr(cmd, fmt.Errorf("invalid --log-level: %w", err))
		}
		return nil
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.closeLog()
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("NAVTREE_DIR", ""), "Path to store dir (default: nearest .navtree directory)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("NAVTREE_FORMAT", "json"), "Output format ("+strings.Join(format.Formats, "|")+")")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("LOG_LEVEL", "info"), "Log level (debug|info|warn|error)")

	cmd.AddCommand(newMenusCmd(app))
	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newFetchCmd(app))
	cmd.AddCommand(newPushCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newTUICmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// setupLogger builds the command logger. Interactive commands get the console
// writer; serve logs JSON lines.
func (app *App) setupLogger(w io.Writer, path string, console bool) error {
	lvl, err := logging.ParseLevel(app.LogLevel)
	if err != nil {
		return err
	}
	l, closeFn, err := logging.New().FromWriter(w).FromPath(path).Console(console).Level(lvl).Make()
	if err != nil {
		return err
	}
	app.log = l
	app.closeLog = closeFn
	return nil
}

func openStore(app *App) (store.Store, error) {
	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}
	s := store.Store{Dir: dir}
	if err := s.Ensure(); err != nil {
		return store.Store{}, err
	}
	return s, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

func missingFlag(name string) error {
	return errors.New("missing --" + name)
}
