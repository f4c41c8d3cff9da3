package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/mindcanvas/internal/cli"
	"github.com/alexanderramin/mindcanvas/internal/config"
	"github.com/alexanderramin/mindcanvas/internal/db"
	"github.com/alexanderramin/mindcanvas/internal/repository"
	"github.com/alexanderramin/mindcanvas/internal/service"
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

	logger, logFile, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logFile.Close()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	sqlLogger := logger.With("component", "sql")
	mapRepo := repository.NewSQLiteMindMapRepo(db.Trace(database, sqlLogger))
	uow := db.NewSQLiteUnitOfWork(database, db.WithTxLogger(sqlLogger))

	var observer service.MapObserver = service.NoopMapObserver{}
	if cfg.Log.MapOps {
		observer = service.NewSlogMapObserver(logger.With("component", "store"))
	}

	app := &cli.App{
		MindMaps: service.NewMindMapService(mapRepo, uow, observer),
		Config:   cfg,
		Logger:   logger,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	logger.Debug("starting", "db", cfg.DBPath)
	return cli.NewRootCmd(app).Execute()
}
