package country

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound        = errors.New("country not found")
	ErrInvalidID       = errors.New("invalid identifier")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Currency is the descriptive info stored under an ISO currency code.
type Currency struct {
	Name   string `bson:"name" json:"name"`
	Symbol string `bson:"symbol" json:"symbol"`
}

// Record is one country document as stored in the collection.
type Record struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty"`
	Name        map[string]interface{} `bson:"name"`
	Independent bool                   `bson:"independent"`
	Status      bool                   `bson:"status"`
	UnMember    bool                   `bson:"unMember"`
	Currencies  map[string]Currency    `bson:"currencies"`
	Capital     []string               `bson:"capital"`
	Languages   []string               `bson:"languages"`
	LatLng      []float64              `bson:"latlng"`
	Flag        string                 `bson:"flag"`
	Maps        map[string]string      `bson:"maps"`
	Population  int                    `bson:"population"`
	Timezones   []string               `bson:"timezones"`
	Continents  []string               `bson:"continents"`
}

// Country is the API-visible shape of a Record.
type Country struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Independent bool              `json:"independent"`
	Status      bool              `json:"status"`
	UnMember    bool              `json:"unMember"`
	Currencies  string            `json:"currencies"`
	Capital     []string          `json:"capital"`
	Languages   []string          `json:"languages"`
	LatLng      []float64         `json:"latlng"`
	Flag        string            `json:"flag"`
	Maps        map[string]string `json:"maps"`
	Population  int               `json:"population"`
	Timezones   []string          `json:"timezones"`
	Continents  []string          `json:"continents"`
}

// Nearby is a projected country ranked by distance from a query point.
// It only lives for the duration of a nearby query.
type Nearby struct {
	Country
	Distance float64 `json:"distance"`
}
