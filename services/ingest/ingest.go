package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/AbdulWasayUl/graphql-countries/internal/channels"
	"github.com/AbdulWasayUl/graphql-countries/internal/logger"
	"github.com/AbdulWasayUl/graphql-countries/internal/workpool"
	"github.com/AbdulWasayUl/graphql-countries/models"
	"github.com/AbdulWasayUl/graphql-countries/services/country"
)

const serviceName = "ingest"

// ErrFetch marks a source that could not be read or did not hold a country list.
// Nothing is written when it is returned.
var ErrFetch = errors.New("fetch failed")

type Service struct {
	Source Source
	Store  country.Store
}

func NewService(source Source, store country.Store) *Service {
	return &Service{
		Source: source,
		Store:  store,
	}
}

// ParseData splits the fetched list into its raw items.
func (s *Service) ParseData(data []byte) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse country list: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("empty response from %s", s.Source)
	}
	return items, nil
}

// CleanData turns one raw item into a storable record. Items missing a
// required key are skipped; items that do not decode or validate fail.
func (s *Service) CleanData(data []byte) (interface{}, error) {
	var keys map[string]interface{}
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse country item: %w", err)
	}
	if missing := country.MissingKeys(keys); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing keys %v", workpool.ErrSkip, missing)
	}

	var src SourceCountry
	if err := json.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("failed to decode country item: %w", err)
	}

	rec := toRecord(src)
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) StoreData(ctx context.Context, data interface{}) error {
	rec, ok := data.(country.Record)
	if !ok {
		return fmt.Errorf("expected country.Record, got %T", data)
	}
	if _, err := s.Store.Insert(ctx, rec); err != nil {
		return fmt.Errorf("failed to store country %s: %w", rec.CommonName(), err)
	}
	return nil
}

// RunBatchJob fetches the source once and queues every item for the workers.
// Nothing is queued when the fetch fails.
func (s *Service) RunBatchJob(ctx context.Context, chans *channels.Channels) error {
	logger.Info("[%s] Starting batch job from %s...", serviceName, s.Source)

	data, err := s.Source.Fetch(ctx)
	if err != nil {
		logger.Error("[%s] Failed to fetch countries: %v", serviceName, err)
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}

	items, err := s.ParseData(data)
	if err != nil {
		logger.Error("[%s] %v", serviceName, err)
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}

	for i, item := range items {
		chans.Submit(models.DataRequest{
			ID:        strconv.Itoa(i),
			Service:   serviceName,
			Payload:   item,
			ParseFunc: s.CleanData,
			StoreFunc: s.StoreData,
		})
	}

	logger.Info("[%s] Queued %d countries", serviceName, len(items))
	return nil
}

// Run ingests the whole source with a pool of workers and waits for it to drain.
func Run(ctx context.Context, s *Service, workers int) (workpool.Stats, error) {
	chans := channels.New()
	wp := workpool.New(chans, workers)
	wp.Start(ctx)

	err := s.RunBatchJob(ctx, chans)
	wp.Stop()
	chans.WG.Wait()

	stats := wp.Stats()
	if err != nil {
		return stats, err
	}

	logger.Info("[%s] Finished: %d stored, %d skipped, %d failed", serviceName, stats.Stored, stats.Skipped, stats.Failed)
	return stats, nil
}

func toRecord(src SourceCountry) country.Record {
	languages := make([]string, 0, len(src.Languages))
	for _, name := range src.Languages {
		languages = append(languages, name)
	}
	sort.Strings(languages)

	return country.Record{
		Name:        src.Name,
		Independent: src.Independent,
		Status:      truthy(src.Status),
		UnMember:    src.UnMember,
		Currencies:  src.Currencies,
		Capital:     src.Capital,
		Languages:   languages,
		LatLng:      src.LatLng,
		Flag:        src.Flag,
		Maps:        src.Maps,
		Population:  src.Population,
		Timezones:   src.Timezones,
		Continents:  src.Continents,
	}
}

// truthy coerces a JSON value to a bool: empty strings, zero, false and null
// are false, anything else is true.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case []interface{}:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	default:
		return true
	}
}
