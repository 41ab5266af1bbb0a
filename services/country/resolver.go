package country

import (
	"context"
	"fmt"
	"sort"

	"github.com/AbdulWasayUl/graphql-countries/internal/logger"
)

// The nearby ranking drops the closest country and returns the ten after it.
// Existing clients depend on this window.
const (
	nearbySkip  = 1
	nearbyLimit = 10
)

// Resolver implements the read queries and the edit mutation on top of a Store.
// Every operation runs inside its own store session.
type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// List returns countries in store order. When both page (1-indexed) and limit
// are given only that page is returned, otherwise the whole collection.
func (r *Resolver) List(ctx context.Context, page, limit *int) ([]Country, error) {
	opts := ListOptions{}
	if page != nil && limit != nil {
		// Zero or negative values are rejected rather than read as "no paging".
		if *page < 1 || *limit < 1 {
			return nil, fmt.Errorf("%w: page and limit must be positive, got page=%d limit=%d", ErrInvalidArgument, *page, *limit)
		}
		opts.Skip = int64(*page-1) * int64(*limit)
		opts.Limit = int64(*limit)
	}

	var out []Country
	err := r.store.WithSession(ctx, func(ctx context.Context) error {
		records, err := r.store.FindAll(ctx, opts)
		if err != nil {
			return err
		}
		out = ProjectAll(records)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resolver) Get(ctx context.Context, id string) (Country, error) {
	oid, err := ParseID(id)
	if err != nil {
		return Country{}, err
	}

	var out Country
	err = r.store.WithSession(ctx, func(ctx context.Context) error {
		rec, err := r.store.FindByID(ctx, oid)
		if err != nil {
			return err
		}
		out = Project(rec)
		return nil
	})
	return out, err
}

// Nearby ranks every country with usable coordinates by great-circle
// distance from (lat, lng) and returns the window after the nearest one.
func (r *Resolver) Nearby(ctx context.Context, lat, lng float64) ([]Nearby, error) {
	var records []Record
	err := r.store.WithSession(ctx, func(ctx context.Context) error {
		var err error
		records, err = r.store.FindAll(ctx, ListOptions{})
		return err
	})
	if err != nil {
		return nil, err
	}

	ranked := make([]Nearby, 0, len(records))
	for _, rec := range records {
		cLat, cLng, ok := rec.Coordinates()
		if !ok {
			logger.Debug("Skipping country %s without usable latlng %v", rec.ID.Hex(), rec.LatLng)
			continue
		}
		ranked = append(ranked, Nearby{
			Country:  Project(rec),
			Distance: Distance(lat, lng, cLat, cLng),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})

	return window(ranked, nearbySkip, nearbyLimit), nil
}

func (r *Resolver) ByLanguage(ctx context.Context, language string) ([]Country, error) {
	var out []Country
	err := r.store.WithSession(ctx, func(ctx context.Context) error {
		records, err := r.store.FindWhere(ctx, Filter{Language: language})
		if err != nil {
			return err
		}
		out = ProjectAll(records)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Edit overwrites the supplied fields of a country and returns the result.
// Concurrent edits of the same country are not coordinated; the last write wins.
func (r *Resolver) Edit(ctx context.Context, id string, u Update) (Country, error) {
	oid, err := ParseID(id)
	if err != nil {
		return Country{}, err
	}
	if err := u.Validate(); err != nil {
		return Country{}, err
	}

	var out Country
	err = r.store.WithSession(ctx, func(ctx context.Context) error {
		rec, err := r.store.Update(ctx, oid, u)
		if err != nil {
			return err
		}
		out = Project(rec)
		return nil
	})
	if err != nil {
		return Country{}, err
	}

	logger.Info("Country %s updated, fields: %v", id, u.Fields())
	return out, nil
}

func window(ranked []Nearby, skip, limit int) []Nearby {
	if skip >= len(ranked) {
		return []Nearby{}
	}
	end := skip + limit
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[skip:end]
}
