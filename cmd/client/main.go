package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/simplenote/simplenote-cli/internal/client/api"
	"github.com/simplenote/simplenote-cli/internal/client/auth"
	"github.com/simplenote/simplenote-cli/internal/client/cli"
	"github.com/simplenote/simplenote-cli/internal/client/iocli"
	"github.com/simplenote/simplenote-cli/internal/client/notes"
	"github.com/simplenote/simplenote-cli/internal/client/storage/boltdb"
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
	serverURL := flag.String("server", "http://localhost:8000", "Server URL")
	dbPath := flag.String("db", "simplenote-client.db", "Path to local session database")
	pageSize := flag.Int("page-size", notes.DefaultPageSize, "Notes per page")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx := context.Background()

	// Открываем BoltDB storage для персистентной части сессии
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Восстанавливаем сессию из сохранённого refresh токена
	tokenStore, err := auth.NewStore(ctx, boltStorage, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to restore session: %v\n", err)
		os.Exit(1)
	}

	apiClient := api.NewClient(*serverURL, tokenStore, logger)
	authService := auth.NewService(apiClient, tokenStore, logger)
	reconciler := notes.NewReconciler(apiClient, *pageSize, logger)

	app := cli.New(iocli.NewStdio(), apiClient, authService, reconciler, logger)

	if err := app.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("SimpleNote Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
