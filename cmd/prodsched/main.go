package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/prodsched/internal/cli"
	"github.com/alexanderramin/prodsched/internal/config"
	"github.com/alexanderramin/prodsched/internal/db"
	"github.com/alexanderramin/prodsched/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{}
	app.Open = func(cfg config.Config, logger *slog.Logger) error {
		var err error
		database, err = db.OpenDB(cfg.DBPath)
		if err != nil {
			return err
		}
		logger.Debug("schedule store opened", "path", cfg.DBPath)
		app.Services = service.NewServices(database, cfg.Schedule.WorkdayHours,
			service.NewLogUseCaseObserver(logger))
		return nil
	}

	// Detect interactive terminal for prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
