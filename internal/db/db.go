package db

import (
	"context"
	"fmt"
	"time"

	"github.com/AbdulWasayUl/graphql-countries/internal/config"
	"github.com/AbdulWasayUl/graphql-countries/internal/logger"
	"github.com/AbdulWasayUl/graphql-countries/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const pingTimeout = 10 * time.Second

// ConnectMongoDB opens the pooled client shared by every request.
func ConnectMongoDB(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.DBConnectionString).
		SetMaxPoolSize(cfg.MongoMaxPoolSize)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := Ping(ctx, client); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Info("Successfully connected to MongoDB!")
	return client, nil
}

func DisconnectMongoDB(ctx context.Context, client *mongo.Client) error {
	if err := client.Disconnect(ctx); err != nil {
		return err
	}
	logger.Info("Disconnected from MongoDB.")
	return nil
}

// Ping checks that the primary is reachable.
func Ping(ctx context.Context, client *mongo.Client) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(ctxTimeout, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping failed: %w", err)
	}
	return nil
}

// RunMigrations applies each migration not yet recorded in the history
// collection, in order. A failing migration stops the run and is not recorded.
func RunMigrations(ctx context.Context, client *mongo.Client, cfg *config.Config, migrations []models.Migration) error {
	db := client.Database(cfg.DBName)

	coll := db.Collection(cfg.CollectionMigrationsHistory)

	for _, m := range migrations {
		var result struct{ Name string }
		err := coll.FindOne(ctx, bson.M{"name": m.Name}).Decode(&result)
		if err == mongo.ErrNoDocuments {
			logger.Info("Running migration: %s", m.Name)
			if err := m.Func(ctx, client); err != nil {
				logger.Error("Error applying migration %s: %v", m.Name, err)
				return fmt.Errorf("migration %s: %w", m.Name, err)
			}
			_, err = coll.InsertOne(ctx, bson.M{"name": m.Name, "applied_at": time.Now()})
			if err != nil {
				return err
			}
			logger.Info("Migration %s applied successfully.", m.Name)
		} else if err != nil {
			return err
		} else {
			logger.Info("Migration %s already applied, skipping.", m.Name)
		}
	}

	return nil
}
