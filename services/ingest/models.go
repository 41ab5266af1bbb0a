package ingest

import "github.com/AbdulWasayUl/graphql-countries/services/country"

// SourceCountry is one item of the REST Countries v3.1 export, restricted to
// the keys that are stored.
type SourceCountry struct {
	Name        map[string]interface{}      `json:"name"`
	Independent bool                        `json:"independent"`
	Status      interface{}                 `json:"status"`
	UnMember    bool                        `json:"unMember"`
	Currencies  map[string]country.Currency `json:"currencies"`
	Capital     []string                    `json:"capital"`
	Languages   map[string]string           `json:"languages"`
	LatLng      []float64                   `json:"latlng"`
	Flag        string                      `json:"flag"`
	Maps        map[string]string           `json:"maps"`
	Population  int                         `json:"population"`
	Timezones   []string                    `json:"timezones"`
	Continents  []string                    `json:"continents"`
}
