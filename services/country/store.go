package country

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// Store is the document collection holding one Record per country.
// FindAll and FindWhere return records in the collection's natural order.
type Store interface {
	// WithSession runs fn with store access scoped to a single session that
	// is released when fn returns, whatever the outcome.
	WithSession(ctx context.Context, fn func(ctx context.Context) error) error
	Insert(ctx context.Context, r Record) (primitive.ObjectID, error)
	FindAll(ctx context.Context, opts ListOptions) ([]Record, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (Record, error)
	FindWhere(ctx context.Context, f Filter) ([]Record, error)
	Update(ctx context.Context, id primitive.ObjectID, u Update) (Record, error)
}

// ListOptions selects a window of the natural order. Limit 0 means no window.
type ListOptions struct {
	Skip  int64
	Limit int64
}

// Filter is the predicate for FindWhere. Language matches exactly, so an
// empty Language matches only records listing an empty language.
type Filter struct {
	Language string
}

func (f Filter) BSON() bson.M {
	return bson.M{"languages": f.Language}
}

func (f Filter) Matches(r Record) bool {
	for _, l := range r.Languages {
		if l == f.Language {
			return true
		}
	}
	return false
}

// ParseID converts a hex identifier into an ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q is not a valid ObjectId", ErrInvalidID, id)
	}
	return oid, nil
}

// MongoStore is the Store backed by a MongoDB collection. The client pool is
// shared by every caller.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoStore(client *mongo.Client, dbName, collectionName string) *MongoStore {
	return &MongoStore{
		client: client,
		coll:   client.Database(dbName).Collection(collectionName),
	}
}

func (s *MongoStore) WithSession(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.client.UseSession(ctx, func(sc mongo.SessionContext) error {
		return fn(sc)
	})
}

func (s *MongoStore) Insert(ctx context.Context, r Record) (primitive.ObjectID, error) {
	res, err := s.coll.InsertOne(ctx, r)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert country: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

func (s *MongoStore) FindAll(ctx context.Context, opts ListOptions) ([]Record, error) {
	findOpts := options.Find()
	if opts.Limit > 0 {
		findOpts.SetSkip(opts.Skip).SetLimit(opts.Limit)
	}
	return s.find(ctx, bson.M{}, findOpts)
}

func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (Record, error) {
	var r Record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id.Hex())
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to find country %s: %w", id.Hex(), err)
	}
	return r, nil
}

func (s *MongoStore) FindWhere(ctx context.Context, f Filter) ([]Record, error) {
	return s.find(ctx, f.BSON(), options.Find())
}

// Update sets the supplied fields in a single document write and returns
// the document as it is after the write.
func (s *MongoStore) Update(ctx context.Context, id primitive.ObjectID, u Update) (Record, error) {
	if u.IsEmpty() {
		return s.FindByID(ctx, id)
	}

	var r Record
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": u.SetDocument()},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id.Hex())
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to update country %s: %w", id.Hex(), err)
	}
	return r, nil
}

func (s *MongoStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]Record, error) {
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer cursor.Close(ctx)

	records := []Record{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode countries: %w", err)
	}
	return records, nil
}
