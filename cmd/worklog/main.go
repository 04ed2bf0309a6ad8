package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/avdeyev/worklog/internal/auth"
	"github.com/avdeyev/worklog/internal/backup"
	"github.com/avdeyev/worklog/internal/cli"
	"github.com/avdeyev/worklog/internal/config"
	"github.com/avdeyev/worklog/internal/keyring"
	"github.com/avdeyev/worklog/internal/notes"
	"github.com/avdeyev/worklog/internal/storage/sqlite"
	"github.com/avdeyev/worklog/internal/tracker"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	dbPath := flag.String("db", "", "Path to database file (default: ~/.worklog/worklog.db)")
	dataDir := flag.String("data-dir", "", "Data directory (default: ~/.worklog)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Флаги важнее окружения
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	if err := cfg.EnsureDataDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	command := ""
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	ctx := context.Background()

	// Открываем SQLite storage (миграции применяются при старте)
	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Открываем keyring с локальными секретами
	ring, err := keyring.Open(cfg.KeyringPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open keyring: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := ring.Close(); err != nil {
			slog.Error("failed to close keyring", "error", err)
		}
	}()

	// Собираем сервисы ядра
	authService := auth.NewService(store, store, ring)
	notesService := notes.NewService(store, store, ring)
	trackerService := tracker.NewService(store, notesService)
	backupService := backup.NewService(store, store.Path(), cfg.BackupDir)

	// Плановый бэкап - побочный эффект любой команды. Сбои логируются
	// и не мешают самой команде.
	backupService.MaybeRun(ctx)

	app := &cli.App{
		Auth:     authService,
		Tracker:  trackerService,
		Notes:    notesService,
		Backup:   backupService,
		Settings: store,
		DBPath:   cfg.DBPath,
	}

	if err := app.Run(ctx, command, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("Worklog\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
