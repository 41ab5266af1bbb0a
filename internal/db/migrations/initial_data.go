package migrations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AbdulWasayUl/graphql-countries/internal/api"
	"github.com/AbdulWasayUl/graphql-countries/internal/config"
	"github.com/AbdulWasayUl/graphql-countries/models"
	"github.com/AbdulWasayUl/graphql-countries/services/country"
	"github.com/AbdulWasayUl/graphql-countries/services/ingest"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	namespaceExistsCode = 48
	sourceTimeout       = 60 * time.Second
)

// All returns the setup steps in the order they must be applied.
func All(cfg *config.Config) []models.Migration {
	return []models.Migration{
		{Name: "create_country_collection", Func: CreateCountryCollection(cfg)},
		{Name: "initial_data_restcountries", Func: MigrateRestCountriesData(cfg, SourceFor(cfg))},
	}
}

// SourceFor picks the snapshot file when one is configured, else the REST API.
func SourceFor(cfg *config.Config) ingest.Source {
	if cfg.IngestSourceFile != "" {
		return ingest.FileSource{Path: cfg.IngestSourceFile}
	}
	return ingest.HTTPSource{
		Client: api.NewClient(sourceTimeout),
		URL:    cfg.RestCountriesAPIBaseURL,
	}
}

func createCollectionIfNotExists(ctx context.Context, db *mongo.Database, name string) error {
	if err := db.CreateCollection(ctx, name); err != nil {
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Code == namespaceExistsCode {
			return nil
		}
		return fmt.Errorf("failed to create collection %s: %w", name, err)
	}
	return nil
}

// CreateCountryCollection creates the country collection and the index used
// by language lookups.
func CreateCountryCollection(cfg *config.Config) func(ctx context.Context, client *mongo.Client) error {
	return func(ctx context.Context, client *mongo.Client) error {
		db := client.Database(cfg.DBName)

		if err := createCollectionIfNotExists(ctx, db, cfg.CollectionCountries); err != nil {
			return err
		}

		_, err := db.Collection(cfg.CollectionCountries).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "languages", Value: 1}},
			Options: options.Index().SetName("languages_1"),
		})
		if err != nil {
			return fmt.Errorf("failed to create languages index: %w", err)
		}
		return nil
	}
}

// MigrateRestCountriesData loads every country from source once.
func MigrateRestCountriesData(cfg *config.Config, source ingest.Source) func(ctx context.Context, client *mongo.Client) error {
	return func(ctx context.Context, client *mongo.Client) error {
		store := country.NewMongoStore(client, cfg.DBName, cfg.CollectionCountries)
		svc := ingest.NewService(source, store)

		stats, err := ingest.Run(ctx, svc, cfg.IngestWorkers)
		if err != nil {
			return err
		}
		if stats.Stored == 0 {
			return fmt.Errorf("no countries stored from %s", source)
		}
		return nil
	}
}
