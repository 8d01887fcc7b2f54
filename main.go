package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mustachebash/v1-migration/database"
	"github.com/mustachebash/v1-migration/logger"
	"github.com/mustachebash/v1-migration/migration"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	configPath := flag.String("config", "config.toml", "path to the migration config file")
	flag.Parse()

	slog.Info("Starting v1 migration",
		slog.String("version", version),
		slog.String("commit", commit))

	if err := run(context.Background(), customHandler, *configPath); err != nil {
		logger.LogError("Migration aborted", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, handler *logger.CustomHandler, configPath string) error {
	config, err := migration.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	handler.SetLevel(logger.ParseLevel(config.Log.Level))

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, mongooptions.Client().ApplyURI(config.Source.URI))
	if err != nil {
		return fmt.Errorf("failed to connect to source database: %w", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(connectCtx, nil); err != nil {
		return fmt.Errorf("failed to ping source database: %w", err)
	}

	db, err := database.New(ctx, config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to target database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping target database: %w", err)
	}

	if err := db.InitializeSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.LogSystem("Migration starting",
		slog.String("source", config.Source.Database),
		slog.String("target", config.DB.Database),
	)

	migrator := migration.New(db, client.Database(config.Source.Database), config.Users)
	stats := migrator.Run(ctx)
	stats.LogSummary()

	if report, err := stats.WriteReport(); err != nil {
		logger.LogError("Failed to write migration report", err)
	} else {
		logger.LogSystem("Report written", slog.String("file", report))
	}

	if stats.Failed() {
		return fmt.Errorf("%d of %d stages failed", stats.FailedCount(), len(stats.Stages))
	}

	return nil
}
