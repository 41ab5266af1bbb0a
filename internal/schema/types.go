package schema

import (
	"github.com/AbdulWasayUl/graphql-countries/services/country"
	"github.com/graphql-go/graphql"
)

func asCountry(src interface{}) (country.Country, bool) {
	switch c := src.(type) {
	case country.Country:
		return c, true
	case *country.Country:
		if c != nil {
			return *c, true
		}
	case country.Nearby:
		return c.Country, true
	case *country.Nearby:
		if c != nil {
			return c.Country, true
		}
	}
	return country.Country{}, false
}

func countryField(t graphql.Output, get func(c country.Country) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: t,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c, ok := asCountry(p.Source)
			if !ok {
				return nil, nil
			}
			return get(c), nil
		},
	}
}

func countryFields() graphql.Fields {
	return graphql.Fields{
		"id":          countryField(graphql.ID, func(c country.Country) interface{} { return c.ID }),
		"name":        countryField(graphql.String, func(c country.Country) interface{} { return c.Name }),
		"independent": countryField(graphql.Boolean, func(c country.Country) interface{} { return c.Independent }),
		"status":      countryField(graphql.Boolean, func(c country.Country) interface{} { return c.Status }),
		"unMember":    countryField(graphql.Boolean, func(c country.Country) interface{} { return c.UnMember }),
		"currencies":  countryField(graphql.String, func(c country.Country) interface{} { return c.Currencies }),
		"capital":     countryField(graphql.NewList(graphql.String), func(c country.Country) interface{} { return c.Capital }),
		"languages":   countryField(graphql.NewList(graphql.String), func(c country.Country) interface{} { return c.Languages }),
		"latlng":      countryField(graphql.NewList(graphql.Float), func(c country.Country) interface{} { return c.LatLng }),
		"flag":        countryField(graphql.String, func(c country.Country) interface{} { return c.Flag }),
		"maps":        countryField(JSON, func(c country.Country) interface{} { return c.Maps }),
		"population":  countryField(graphql.Int, func(c country.Country) interface{} { return c.Population }),
		"timezones":   countryField(graphql.NewList(graphql.String), func(c country.Country) interface{} { return c.Timezones }),
		"continents":  countryField(graphql.NewList(graphql.String), func(c country.Country) interface{} { return c.Continents }),
	}
}

var countryType = graphql.NewObject(graphql.ObjectConfig{
	Name:   "Country",
	Fields: countryFields(),
})

var nearestCountryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "NearestCountry",
	Fields: func() graphql.Fields {
		fields := countryFields()
		fields["distance"] = &graphql.Field{
			Type:        graphql.Float,
			Description: "Great-circle distance in kilometers from the query point.",
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				switch n := p.Source.(type) {
				case country.Nearby:
					return n.Distance, nil
				case *country.Nearby:
					if n != nil {
						return n.Distance, nil
					}
				}
				return nil, nil
			},
		}
		return fields
	}(),
})

var editCountryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "EditCountry",
	Fields: graphql.Fields{
		"country": &graphql.Field{
			Type: countryType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source, nil
			},
		},
	},
})
