package db_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/AbdulWasayUl/graphql-countries/internal/config"
	"github.com/AbdulWasayUl/graphql-countries/internal/db"
	"github.com/AbdulWasayUl/graphql-countries/models"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Helper: Start temporary MongoDB container
func setupMongoContainer(ctx context.Context) (tc.Container, string, error) {
	req := tc.ContainerRequest{
		Image:        "mongo:7.0",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp"),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, "", err
	}

	port, err := container.MappedPort(ctx, nat.Port("27017"))
	if err != nil {
		return nil, "", err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, "", err
	}

	mongoURI := fmt.Sprintf("mongodb://%s:%s/countries_test", host, port.Port())
	return container, mongoURI, nil
}

func testConfig(uri, dbName string) *config.Config {
	return &config.Config{
		DBConnectionString:          uri,
		DBName:                      dbName,
		CollectionCountries:         "country",
		CollectionMigrationsHistory: "migrations_history",
		MongoMaxPoolSize:            10,
	}
}

func TestMongoDBFunctions(t *testing.T) {
	ctx := context.Background()

	container, mongoURI, err := setupMongoContainer(ctx)
	require.NoError(t, err, "Failed to start MongoDB container")
	defer container.Terminate(ctx)

	cfg := testConfig(mongoURI, "countries_test")

	client, err := db.ConnectMongoDB(ctx, cfg)
	require.NoError(t, err)

	assert.NoError(t, db.Ping(ctx, client))
	assert.NoError(t, db.DisconnectMongoDB(ctx, client))
	assert.Error(t, db.Ping(ctx, client), "ping after disconnect should fail")
}

func TestConnectMongoDB_Unreachable(t *testing.T) {
	cfg := testConfig("mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200", "countries_test")

	_, err := db.ConnectMongoDB(context.Background(), cfg)
	assert.Error(t, err)
}

func TestRunMigrations(t *testing.T) {
	ctx := context.Background()

	container, mongoURI, err := setupMongoContainer(ctx)
	require.NoError(t, err, "Failed to start MongoDB container")
	defer container.Terminate(ctx)

	cfg := testConfig(mongoURI, "countries_test_migrations")

	client, err := db.ConnectMongoDB(ctx, cfg)
	require.NoError(t, err)
	defer db.DisconnectMongoDB(ctx, client)

	history := client.Database(cfg.DBName).Collection(cfg.CollectionMigrationsHistory)
	_, err = history.InsertOne(ctx, bson.M{"name": "already_applied", "applied_at": time.Now()})
	require.NoError(t, err)

	calls := map[string]int{}
	step := func(name string, err error) models.Migration {
		return models.Migration{
			Name: name,
			Func: func(ctx context.Context, client *mongo.Client) error {
				calls[name]++
				return err
			},
		}
	}

	t.Run("applies pending migrations once", func(t *testing.T) {
		migrations := []models.Migration{
			step("already_applied", nil),
			step("first", nil),
			step("second", nil),
		}

		require.NoError(t, db.RunMigrations(ctx, client, cfg, migrations))
		require.NoError(t, db.RunMigrations(ctx, client, cfg, migrations))

		assert.Equal(t, 0, calls["already_applied"])
		assert.Equal(t, 1, calls["first"])
		assert.Equal(t, 1, calls["second"])

		count, err := history.CountDocuments(ctx, bson.M{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("failed migration is not recorded", func(t *testing.T) {
		boom := errors.New("boom")
		migrations := []models.Migration{
			step("failing", boom),
			step("after_failing", nil),
		}

		err := db.RunMigrations(ctx, client, cfg, migrations)
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 0, calls["after_failing"])

		err = history.FindOne(ctx, bson.M{"name": "failing"}).Err()
		assert.ErrorIs(t, err, mongo.ErrNoDocuments)

		// A rerun retries the failed step.
		_ = db.RunMigrations(ctx, client, cfg, migrations)
		assert.Equal(t, 2, calls["failing"])
	})
}
