package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/webcards/internal/client/cli"
	"github.com/iudanet/webcards/internal/client/config"
	"github.com/iudanet/webcards/internal/client/gateway"
	"github.com/iudanet/webcards/internal/client/iocli"
	"github.com/iudanet/webcards/internal/client/session"
	"github.com/iudanet/webcards/internal/client/storage/boltdb"
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
	configPath := flag.String("config", "", "Path to TOML config file")
	serverURL := flag.String("server", "", "Backend base URL override")
	dbPath := flag.String("db", "", "Path to local database override")
	launchURL := flag.String("launch-url", "", "Launch URL handed over by the container")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.APIBaseURL = *serverURL
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	// Завершаемся по сигналу, не бросая watcher
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	sessions := session.NewService(boltStorage)
	gatewayClient := gateway.NewClient(cfg.APIBaseURL)

	// initData приходит из контейнера; в CLI его передает окружение
	initData := os.Getenv("WEBCARD_INIT_DATA")

	c := cli.New(iocli.NewStdio(), sessions, gatewayClient, cfg, *launchURL, initData)
	if err := c.Run(ctx, command); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("Web Cards Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
