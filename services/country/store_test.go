package country

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoContainer struct {
	tc.Container
	URI string
}

func setupMongoContainer(ctx context.Context) (*mongoContainer, error) {
	req := tc.ContainerRequest{
		Image:        "mongo:7.0",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForLog("Waiting for connections"),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, err
	}

	mappedPort, err := container.MappedPort(ctx, "27017")
	if err != nil {
		return nil, err
	}

	return &mongoContainer{
		Container: container,
		URI:       fmt.Sprintf("mongodb://%s:%s", host, mappedPort.Port()),
	}, nil
}

func setupTestStore(t *testing.T) (*MongoStore, *mongo.Collection) {
	t.Helper()
	ctx := context.Background()

	mongoC, err := setupMongoContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mongoC.Terminate(ctx) })

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoC.URI))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	store := NewMongoStore(client, "countries_test", "country")
	return store, client.Database("countries_test").Collection("country")
}

func sampleRecord(common string, languages ...string) Record {
	return Record{
		Name: map[string]interface{}{
			"common":   common,
			"official": "Official " + common,
			"nativeName": map[string]interface{}{
				"xx": map[string]interface{}{"common": common},
			},
		},
		Independent: true,
		Status:      true,
		UnMember:    false,
		Currencies:  map[string]Currency{"USD": {Name: "United States dollar", Symbol: "$"}},
		Capital:     []string{"Capital of " + common},
		Languages:   languages,
		LatLng:      []float64{12.5, -69.97},
		Flag:        "🏳",
		Maps:        map[string]string{"openStreetMaps": "https://www.openstreetmap.org/relation/1"},
		Population:  106766,
		Timezones:   []string{"UTC-04:00"},
		Continents:  []string{"North America"},
	}
}

func TestMongoStore(t *testing.T) {
	store, coll := setupTestStore(t)
	ctx := context.Background()

	names := []string{"Aruba", "Belize", "Chile", "Denmark", "Egypt"}
	ids := make([]primitive.ObjectID, 0, len(names))
	for i, n := range names {
		lang := "Spanish"
		if i%2 == 1 {
			lang = "English"
		}
		id, err := store.Insert(ctx, sampleRecord(n, lang, "Papiamento"))
		require.NoError(t, err)
		require.False(t, id.IsZero())
		ids = append(ids, id)
	}

	count, err := coll.CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	t.Run("find by id round trip", func(t *testing.T) {
		got, err := store.FindByID(ctx, ids[0])
		require.NoError(t, err)
		want := sampleRecord("Aruba", "Spanish", "Papiamento")
		want.ID = ids[0]
		assert.Equal(t, Project(want), Project(got))
		assert.Equal(t, "Official Aruba", got.Name["official"])
		assert.Equal(t, want.Currencies, got.Currencies)
	})

	t.Run("find by id missing", func(t *testing.T) {
		_, err := store.FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("find all", func(t *testing.T) {
		all, err := store.FindAll(ctx, ListOptions{})
		require.NoError(t, err)
		require.Len(t, all, 5)

		page, err := store.FindAll(ctx, ListOptions{Skip: 2, Limit: 2})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, all[2].ID, page[0].ID)
		assert.Equal(t, all[3].ID, page[1].ID)

		beyond, err := store.FindAll(ctx, ListOptions{Skip: 10, Limit: 2})
		require.NoError(t, err)
		assert.NotNil(t, beyond)
		assert.Empty(t, beyond)
	})

	t.Run("find where language", func(t *testing.T) {
		english, err := store.FindWhere(ctx, Filter{Language: "English"})
		require.NoError(t, err)
		require.Len(t, english, 2)
		for _, r := range english {
			assert.Contains(t, r.Languages, "English")
		}

		none, err := store.FindWhere(ctx, Filter{Language: "english"})
		require.NoError(t, err)
		assert.Empty(t, none)

		empty, err := store.FindWhere(ctx, Filter{Language: ""})
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})

	t.Run("update supplied fields only", func(t *testing.T) {
		before, err := store.FindByID(ctx, ids[1])
		require.NoError(t, err)

		after, err := store.Update(ctx, ids[1], Update{Population: Some(999), Capital: Some([]string{})})
		require.NoError(t, err)
		assert.Equal(t, 999, after.Population)
		assert.Empty(t, after.Capital)

		before.Population = 999
		before.Capital = after.Capital
		assert.Equal(t, Project(before), Project(after))

		reread, err := store.FindByID(ctx, ids[1])
		require.NoError(t, err)
		assert.Equal(t, 999, reread.Population)
	})

	t.Run("empty update returns current record", func(t *testing.T) {
		got, err := store.Update(ctx, ids[2], Update{})
		require.NoError(t, err)
		assert.Equal(t, "Chile", got.CommonName())
	})

	t.Run("update missing", func(t *testing.T) {
		_, err := store.Update(ctx, primitive.NewObjectID(), Update{Flag: Some("X")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("with session", func(t *testing.T) {
		err := store.WithSession(ctx, func(sc context.Context) error {
			_, err := store.FindByID(sc, ids[3])
			return err
		})
		assert.NoError(t, err)

		err = store.WithSession(ctx, func(sc context.Context) error {
			_, err := store.FindByID(sc, primitive.NewObjectID())
			return err
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("concurrent edits last writer wins", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				_, err := store.Update(ctx, ids[4], Update{Population: Some(n)})
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		got, err := store.FindByID(ctx, ids[4])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.Population, 0)
		assert.Less(t, got.Population, 10)
		assert.Equal(t, "Egypt", got.CommonName())
	})
}

func TestFilterEmptyLanguage(t *testing.T) {
	f := Filter{Language: ""}
	assert.Equal(t, bson.M{"languages": ""}, f.BSON())
	assert.False(t, f.Matches(sampleRecord("Spain", "Spanish")))
	assert.False(t, f.Matches(Record{}))
	assert.True(t, Filter{Language: "Spanish"}.Matches(sampleRecord("Spain", "Spanish")))
}
