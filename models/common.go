package models

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// DataRequest is one unit of ingestion work: a raw source item that is
// parsed into a storable value and then stored.
type DataRequest struct {
	ID        string
	Service   string
	Payload   []byte
	ParseFunc func([]byte) (interface{}, error)
	StoreFunc func(ctx context.Context, data interface{}) error
}

type Migration struct {
	Name string
	Func func(ctx context.Context, client *mongo.Client) error
}
