package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storageapi/internal/api"
	"storageapi/internal/config"
	"storageapi/internal/ledgerstate"
	"storageapi/internal/ledgerstate/retry"
	"storageapi/internal/storage"

	"github.com/joho/godotenv"
	rpcclient "github.com/stellar/go/clients/rpcclient"
)

func main() {
	// 1. Load configuration
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Configure logger
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("Configuration loaded",
		"rpc_server", cfg.RPCServerURL,
		"api_port", cfg.APIPort,
		"log_level", cfg.LogLevel,
		"ledger_cache_ttl", cfg.LedgerCacheTTL,
	)

	// 3. Initialize database connection
	ctx := context.Background()
	repository, err := storage.NewPostgresRepository(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repository.Close()
	slog.Info("Database connected successfully")

	// 4. Create the latest-ledger collaborator over the RPC client
	rpcClient := rpcclient.NewClient(cfg.RPCServerURL, &http.Client{})
	strategy := retry.NewStrategy(retry.LoadConfig())
	ledgerSource := ledgerstate.NewClient(rpcClient, cfg.LedgerCacheTTL, strategy)

	// 5. Start the API server
	server := api.NewServer(cfg.APIPort, repository, ledgerSource)
	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start API server: %v", err)
	}

	// 6. Wait for interrupt, then shut down gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Warn("Interrupt received, shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Error shutting down API server", "error", err)
	}

	slog.Info("Contract storage API stopped")
}
