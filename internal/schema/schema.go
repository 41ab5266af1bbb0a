// Package schema binds the country resolver to a GraphQL schema.
package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AbdulWasayUl/graphql-countries/internal/logger"
	"github.com/AbdulWasayUl/graphql-countries/internal/metrics"
	"github.com/AbdulWasayUl/graphql-countries/services/country"
	"github.com/graphql-go/graphql"
)

type builder struct {
	resolver *country.Resolver
	metrics  *metrics.Metrics
}

// New builds the schema. m may be nil.
func New(resolver *country.Resolver, m *metrics.Metrics) (graphql.Schema, error) {
	b := &builder{resolver: resolver, metrics: m}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"countriesQuery": &graphql.Field{
				Type: graphql.NewList(countryType),
				Args: graphql.FieldConfigArgument{
					"page":  &graphql.ArgumentConfig{Type: graphql.Int},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: b.observe("countriesQuery", b.countries),
			},
			"countryQuery": &graphql.Field{
				Type: countryType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: b.observe("countryQuery", b.country),
			},
			"countriesNearbyQuery": &graphql.Field{
				Type: graphql.NewList(nearestCountryType),
				Args: graphql.FieldConfigArgument{
					"lat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: b.observe("countriesNearbyQuery", b.nearby),
			},
			"countriesByLanguageQuery": &graphql.Field{
				Type: graphql.NewList(countryType),
				Args: graphql.FieldConfigArgument{
					"language": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: b.observe("countriesByLanguageQuery", b.byLanguage),
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"countryEditMutation": &graphql.Field{
				Type: editCountryType,
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name":        &graphql.ArgumentConfig{Type: JSON},
					"independent": &graphql.ArgumentConfig{Type: graphql.Boolean},
					"status":      &graphql.ArgumentConfig{Type: graphql.Boolean},
					"unMember":    &graphql.ArgumentConfig{Type: graphql.Boolean},
					"currencies":  &graphql.ArgumentConfig{Type: JSON},
					"capital":     &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"languages":   &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"latlng":      &graphql.ArgumentConfig{Type: graphql.NewList(graphql.Float)},
					"flag":        &graphql.ArgumentConfig{Type: graphql.String},
					"maps":        &graphql.ArgumentConfig{Type: JSON},
					"population":  &graphql.ArgumentConfig{Type: graphql.Int},
					"timezones":   &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"continents":  &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				},
				Resolve: b.observe("countryEditMutation", b.edit),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

// Execute runs one query or mutation document against s.
func Execute(ctx context.Context, s graphql.Schema, request string, variables map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         s,
		RequestString:  request,
		VariableValues: variables,
		Context:        ctx,
	})
}

func (b *builder) observe(operation string, fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		start := time.Now()
		out, err := fn(p)
		b.metrics.ObserveOperation(operation, start, err)
		if err != nil {
			logger.Debug("%s failed: %v", operation, err)
			return nil, err
		}
		return out, nil
	}
}

func (b *builder) countries(p graphql.ResolveParams) (interface{}, error) {
	return b.resolver.List(p.Context, optionalInt(p.Args, "page"), optionalInt(p.Args, "limit"))
}

func (b *builder) country(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)
	return b.resolver.Get(p.Context, id)
}

func (b *builder) nearby(p graphql.ResolveParams) (interface{}, error) {
	lat, _ := p.Args["lat"].(float64)
	lng, _ := p.Args["lng"].(float64)
	return b.resolver.Nearby(p.Context, lat, lng)
}

func (b *builder) byLanguage(p graphql.ResolveParams) (interface{}, error) {
	language, _ := p.Args["language"].(string)
	return b.resolver.ByLanguage(p.Context, language)
}

func (b *builder) edit(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)
	u, err := updateFromArgs(p.Args)
	if err != nil {
		return nil, err
	}
	return b.resolver.Edit(p.Context, id, u)
}

func optionalInt(args map[string]interface{}, key string) *int {
	v, ok := args[key].(int)
	if !ok {
		return nil
	}
	return &v
}

func updateFromArgs(args map[string]interface{}) (country.Update, error) {
	var u country.Update
	for _, err := range []error{
		argument(args, country.FieldName, &u.Name),
		argument(args, country.FieldIndependent, &u.Independent),
		argument(args, country.FieldStatus, &u.Status),
		argument(args, country.FieldUnMember, &u.UnMember),
		argument(args, country.FieldCurrencies, &u.Currencies),
		argument(args, country.FieldCapital, &u.Capital),
		argument(args, country.FieldLanguages, &u.Languages),
		argument(args, country.FieldLatLng, &u.LatLng),
		argument(args, country.FieldFlag, &u.Flag),
		argument(args, country.FieldMaps, &u.Maps),
		argument(args, country.FieldPopulation, &u.Population),
		argument(args, country.FieldTimezones, &u.Timezones),
		argument(args, country.FieldContinents, &u.Continents),
	} {
		if err != nil {
			return country.Update{}, err
		}
	}
	return u, nil
}

// argument decodes the supplied value of f, if any, into dst.
func argument[T any](args map[string]interface{}, f country.Field, dst *country.Optional[T]) error {
	raw, ok := args[string(f)]
	if !ok {
		return nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", country.ErrInvalidArgument, f, err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %s has the wrong shape: %v", country.ErrInvalidArgument, f, err)
	}
	*dst = country.Some(v)
	return nil
}
