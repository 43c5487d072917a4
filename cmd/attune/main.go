package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lucbaten/attune/internal/catalog"
	"github.com/lucbaten/attune/internal/cli"
	"github.com/lucbaten/attune/internal/config"
	"github.com/lucbaten/attune/internal/db"
	"github.com/lucbaten/attune/internal/lexicon"
	"github.com/lucbaten/attune/internal/monitor"
	"github.com/lucbaten/attune/internal/repository"
	"github.com/lucbaten/attune/internal/service"
	"github.com/lucbaten/attune/internal/signal"
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

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cfg.LogUseCases {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	progressRepo := repository.NewSQLiteGoalProgressRepo(database)
	archiveRepo := repository.NewSQLiteSessionArchiveRepo(database)
	interventionRepo := repository.NewSQLiteInterventionRepo(database)
	snapshotRepo := repository.NewSQLiteSnapshotRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Resolve the emotional lexicon: built-in by default, file override
	// optionally kept hot by a filesystem watcher.
	extractor := signal.NewExtractor(nil)
	if cfg.LexiconPath != "" {
		if cfg.WatchLexicon {
			watcher, err := lexicon.Watch(context.Background(), cfg.LexiconPath, logger)
			if err != nil {
				return fmt.Errorf("watching lexicon: %w", err)
			}
			defer watcher.Close()
			extractor.SetLexicon(watcher.Current())
			go func() {
				for lex := range watcher.Updates() {
					extractor.SetLexicon(lex)
				}
			}()
		} else {
			lex, err := lexicon.LoadFile(cfg.LexiconPath)
			if err != nil {
				return fmt.Errorf("loading lexicon: %w", err)
			}
			extractor.SetLexicon(lex)
		}
	}

	// Resolve the goal catalog
	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
	}

	mon := monitor.New(extractor, logger)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	// Wire services
	insightSvc := service.NewInsightService(progressRepo, snapshotRepo, cat, cfg.InsightCacheTTL, cfg.SnapshotWindow, observers...)

	app := &cli.App{
		Monitoring: service.NewMonitoringService(mon, archiveRepo, interventionRepo, uow, observers...),
		Insights:   insightSvc,
		Advisor:    service.NewAdvisorService(progressRepo, archiveRepo, insightSvc, mon, cat, observers...),
		Progress:   service.NewProgressService(progressRepo, uow, observers...),
		Catalog:    cat,
	}

	// Detect interactive terminal for console and plan entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
