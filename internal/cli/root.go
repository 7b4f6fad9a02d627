// Package cli wires the planner's cobra commands: the bare invocation
// starts the TUI, subcommands cover the scriptable feed and store flows.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"wayplan/internal/catalog"
	"wayplan/internal/config"
	"wayplan/internal/store"
	"wayplan/internal/tui"
)

// App carries the resolved runtime pieces shared by every command.
type App struct {
	Cfg *config.Config
	Cat *catalog.Catalog
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "wayplan",
		Short:        "Interactive multi-day trip planner",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand means the interactive TUI.
			if len(args) > 0 {
				return cmd.Help()
			}
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		app.Cfg = cfg

		cat := catalog.Builtin()
		if cfg.Data.Catalog != "" {
			cat, err = catalog.Load(cfg.Data.Catalog)
			if err != nil {
				return err
			}
		}
		app.Cat = cat
		return nil
	}

	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newResetCmd(app))
	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	closeLog := setupLogging(app.Cfg.Data.Dir)
	defer closeLog()

	st, err := store.Open(cmd.Context(), app.Cfg.Data.Dir)
	if err != nil {
		// Storage failure degrades to a session-only planner.
		slog.Warn("store unavailable, running without persistence", "err", err)
		st = nil
	} else {
		defer st.Close()
	}
	return tui.Run(app.Cfg, app.Cat, st)
}

// setupLogging sends slog to a file in the data dir while the TUI owns
// the terminal. Returns a close func; on any failure logs are discarded.
func setupLogging(dir string) func() {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "wayplan.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))
	return func() { _ = f.Close() }
}

func openStore(cmd *cobra.Command, app *App) (*store.Store, error) {
	st, err := store.Open(cmd.Context(), app.Cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("open store in %s: %w", app.Cfg.Data.Dir, err)
	}
	return st, nil
}
