package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// App carries what every subcommand shares.
type App struct {
	ConfigPath string
	APIBaseURL string
	DataDir    string
	Driver     string
	LogLevel   string
	Theme      string
	Timeout    time.Duration

	cfg       *config.Config
	logger    *log.Logger
	logCloser io.Closer
	adapter   *store.Adapter
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "tada",
		Short:         "A tiny todo list, local or backed by a todo API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		Example: strings.TrimSpace(`
  # Start the interactive view
  tada

  # Use a remote API instead of local storage
  TADA_API_BASE_URL=http://localhost:8080 tada

  # Scriptable commands
  tada add "Buy milk"
  tada ls
  tada done 2
  tada rm 3
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Adapter(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), a, app.logger)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		interactive := cmd.Parent() == nil
		return app.setup(cmd, interactive)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.Close()
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError{msg: fmt.Sprintf("%s\nusage: %s", err, c.UseLine())}
	})

	f := cmd.PersistentFlags()
	f.StringVar(&app.ConfigPath, "config", "", "Path to config file (default: $XDG_CONFIG_HOME/tada/config.toml)")
	f.StringVar(&app.APIBaseURL, "api", "", "Todo API base URL; empty means local storage")
	f.StringVar(&app.DataDir, "data-dir", "", "Directory for local storage (default ~/.tada)")
	f.StringVar(&app.Driver, "driver", "", "Local storage driver (json|sqlite)")
	f.StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	f.StringVar(&app.Theme, "theme", "", "Color theme (classic|neon|mono)")
	f.DurationVar(&app.Timeout, "timeout", 0, "Timeout for API requests (0 = none)")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newModeCmd(app))
	cmd.AddCommand(newCheckCmd(app))

	return cmd
}

// setup resolves configuration once: file and env first, then any flag the user set.
func (app *App) setup(cmd *cobra.Command, interactive bool) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("api") {
		cfg.APIBaseURL = app.APIBaseURL
	}
	if flags.Changed("data-dir") {
		cfg.Local.DataDir = app.DataDir
	}
	if flags.Changed("driver") {
		cfg.Local.Driver = app.Driver
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = app.LogLevel
	}
	if flags.Changed("theme") {
		cfg.Theme = app.Theme
	}
	if flags.Changed("timeout") {
		cfg.Remote.Timeout.Duration = app.Timeout
	}
	if err := cfg.Finalize(); err != nil {
		return err
	}
	app.cfg = cfg
	ui.SetTheme(cfg.Theme)

	// The interactive view owns the terminal; its logs only go to a file.
	var fallback io.Writer = cmd.ErrOrStderr()
	if interactive {
		fallback = io.Discard
	}
	logger, closer, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	}, fallback)
	if err != nil {
		return err
	}
	app.logger, app.logCloser = logger, closer
	return nil
}

// Adapter opens the storage layer on first use.
func (app *App) Adapter(ctx context.Context) (*store.Adapter, error) {
	if app.adapter != nil {
		return app.adapter, nil
	}
	if app.cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	opts := store.Options{
		BaseURL: app.cfg.APIBaseURL,
		Timeout: app.cfg.Remote.Timeout.Duration,
		Logger:  app.logger,
	}
	if opts.BaseURL == "" {
		kv, err := store.OpenKV(ctx, app.cfg.Local.Driver, app.cfg.Local.DataDir)
		if err != nil {
			return nil, err
		}
		opts.KV = kv
	}
	app.adapter = store.New(opts)
	return app.adapter, nil
}

func (app *App) Close() error {
	var err error
	if app.adapter != nil {
		err = app.adapter.Close()
		app.adapter = nil
	}
	if app.logCloser != nil {
		if cerr := app.logCloser.Close(); err == nil {
			err = cerr
		}
		app.logCloser = nil
	}
	return err
}
