package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AbdulWasayUl/graphql-countries/internal/config"
	"github.com/AbdulWasayUl/graphql-countries/internal/db"
	"github.com/AbdulWasayUl/graphql-countries/internal/logger"
	"github.com/AbdulWasayUl/graphql-countries/internal/metrics"
	"github.com/AbdulWasayUl/graphql-countries/internal/schema"
	"github.com/AbdulWasayUl/graphql-countries/internal/server"
	"github.com/AbdulWasayUl/graphql-countries/services/country"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger.Init()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	client, err := db.ConnectMongoDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := db.DisconnectMongoDB(context.Background(), client); err != nil {
			logger.Error("Error disconnecting MongoDB: %v", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	store := country.NewMongoStore(client, cfg.DBName, cfg.CollectionCountries)
	s, err := schema.New(country.NewResolver(store), m)
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}

	router := server.NewRouter(server.Options{
		Schema:         s,
		RequestTimeout: cfg.RequestTimeout,
		Ping:           pinger(client),
		Metrics:        m,
		Gatherer:       reg,
	})
	srv := server.New(cfg.Addr(), otelhttp.NewHandler(router, "graphql-countries"))

	go func() {
		logger.Info("Development server running at http://%s/", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed: %v", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	logger.Info("Received interrupt signal. Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down server: %v", err)
	}
	logger.Info("Shutdown complete.")
}

func pinger(client *mongo.Client) server.PingFunc {
	return func(ctx context.Context) error {
		return db.Ping(ctx, client)
	}
}
