package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/natserract/hubspot/pkg/config"
	"github.com/natserract/hubspot/pkg/hubspot"
	"github.com/natserract/hubspot/pkg/tokenfile"
	"github.com/natserract/hubspot/propertysync/schema/postgres"
	"github.com/natserract/hubspot/propertysync/services"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	token, err := tokenfile.Load(cfg.TokenFile)
	if err != nil {
		logger.Error("Failed to load token", zap.String("path", cfg.TokenFile), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to load token from %s: %v\n", cfg.TokenFile, err)
		fmt.Fprintf(os.Stderr, "Run `hubspot auth exchange` first\n")
		os.Exit(1)
	}

	db, err := postgres.New(postgres.NewConfig(), logger)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("Database connection established")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.InitSchema(ctx); err != nil {
		logger.Error("Failed to initialize schema", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to initialize schema: %v\n", err)
		os.Exit(1)
	}

	client := hubspot.NewHubSpotWithLogger(cfg, token.Auth, logger)
	client.SetAuth(token.Auth, token.PortalID)
	client.OnRefresh(tokenfile.Persist(cfg.TokenFile, func(err error) {
		logger.Warn("Failed to persist refreshed token", zap.Error(err))
	}))

	syncSvc := services.NewSyncService(client,
		services.NewGroupService(db.Pool(), logger),
		services.NewRunService(db.Pool(), logger),
		logger)

	runID, metrics, err := syncSvc.SyncAll(ctx)
	if err != nil {
		logger.Error("Failed to sync properties", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Successfully completed property sync",
		zap.String("run_id", runID.String()),
		zap.Int("total_succeeded", metrics.TotalSucceeded()),
		zap.Int("total_failed", metrics.TotalFailed()))

	fmt.Printf("Sync run %s\n", runID)
	fmt.Printf("  Groups: %d succeeded, %d failed\n", metrics.GroupsSucceeded, metrics.GroupsFailed)
	fmt.Printf("  Properties: %d succeeded, %d failed\n", metrics.PropertiesSucceeded, metrics.PropertiesFailed)
	fmt.Printf("  Total: %d succeeded, %d failed\n", metrics.TotalSucceeded(), metrics.TotalFailed())
}
