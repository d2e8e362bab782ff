package cli

import (
	"fmt"
	"log/slog"

	"github.com/alexanderramin/prodsched/internal/config"
	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/alexanderramin/prodsched/internal/logging"
	"github.com/alexanderramin/prodsched/internal/service"
	"github.com/spf13/cobra"

	schedapp "github.com/alexanderramin/prodsched/internal/app"
)

// App holds the services and process settings used by CLI commands.
type App struct {
	*service.Services

	Config config.Config
	Logger *slog.Logger

	// Open wires Services once the configuration is known. Tests leave it
	// nil and pre-wire Services instead.
	Open func(cfg config.Config, logger *slog.Logger) error

	// IsInteractive reports whether stdin is a terminal, which enables
	// prompts for missing input.
	IsInteractive func() bool

	configPath string
	userID     string
	userName   string
}

func (a *App) actor() domain.Actor {
	return schedapp.NewActor(a.userID, a.userName)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// bootstrap loads configuration and builds the logger, then opens the
// store when the App is not pre-wired.
func (a *App) bootstrap(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.Config = cfg
	if a.Logger == nil {
		logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return err
		}
		a.Logger = logger
	}
	if a.Open != nil && a.Services == nil {
		if err := a.Open(cfg, a.Logger); err != nil {
			return fmt.Errorf("opening schedule store: %w", err)
		}
	}
	if a.Services == nil {
		return fmt.Errorf("no schedule store configured")
	}
	return nil
}

// NewRootCmd creates the top-level "prodsched" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "prodsched",
		Short:         "Production task and resource scheduler",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.bootstrap(cmd)
		},
	}

	root.PersistentFlags().StringVar(&app.configPath, "config", "", "Config file (TOML); defaults to $PRODSCHED_CONFIG")
	root.PersistentFlags().StringVar(&app.userID, "user", "", "Acting user id recorded on changes")
	root.PersistentFlags().StringVar(&app.userName, "user-name", "", "Acting user display name")

	root.AddCommand(
		newTaskCmd(app),
		newResourceCmd(app),
		newAssignCmd(app),
		newUnassignCmd(app),
		newConflictsCmd(app),
		newRescheduleCmd(app),
		newImportCmd(app),
		newServeCmd(app),
	)

	return root
}
