package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/stagehand/internal/cli"
	"github.com/alexanderramin/stagehand/internal/config"
	"github.com/alexanderramin/stagehand/internal/db"
	"github.com/alexanderramin/stagehand/internal/repository"
	"github.com/alexanderramin/stagehand/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.EnsureDBDir(); err != nil {
		return err
	}
	if cfg.NoColor {
		// lipgloss/termenv honor NO_COLOR; set it before anything renders.
		os.Setenv("NO_COLOR", "1")
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	resourceRepo := repository.NewSQLiteResourceRepo(database)
	allocationRepo := repository.NewSQLiteAllocationRepo(database)
	conflictRepo := repository.NewSQLiteConflictRepo(database)

	// Wire unit of work for transactional detection runs
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Resources:   service.NewResourceService(resourceRepo),
		Allocations: service.NewAllocationService(allocationRepo, resourceRepo),
		Detection:   service.NewDetectionService(resourceRepo, allocationRepo, uow),
		Conflicts:   service.NewConflictService(conflictRepo),
	}

	// Detect interactive terminal for prompt-driven flows.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
