// Command ingest prepares the country collection and loads the dataset once.
// Steps already recorded in the migrations history are skipped.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/AbdulWasayUl/graphql-countries/internal/config"
	"github.com/AbdulWasayUl/graphql-countries/internal/db"
	"github.com/AbdulWasayUl/graphql-countries/internal/db/migrations"
	"github.com/AbdulWasayUl/graphql-countries/internal/logger"
	"github.com/AbdulWasayUl/graphql-countries/services/ingest"
)

func main() {
	logger.Init()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)

	err = run(cfg)
	if isFatal(err) {
		log.Fatalf("Ingestion failed: %v", err)
	}
	if err != nil {
		logger.Error("Ingestion skipped, no data written: %v", err)
		return
	}
	logger.Info("Ingestion complete.")
}

// isFatal reports whether err should end the process with a failure.
// An unreadable upstream only leaves the collection empty until the next run.
func isFatal(err error) bool {
	return err != nil && !errors.Is(err, ingest.ErrFetch)
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := db.ConnectMongoDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.DisconnectMongoDB(context.Background(), client); err != nil {
			logger.Error("Error disconnecting MongoDB: %v", err)
		}
	}()

	return db.RunMigrations(ctx, client, cfg, migrations.All(cfg))
}
