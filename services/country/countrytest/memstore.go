// Package countrytest provides an in-memory country.Store for tests.
package countrytest

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/AbdulWasayUl/graphql-countries/services/country"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps records in insertion order, which is its natural order.
type MemoryStore struct {
	mu      sync.RWMutex
	records []country.Record

	// Sessions counts WithSession calls that have not returned yet.
	Sessions atomic.Int32
	// SessionsOpened counts every WithSession call.
	SessionsOpened atomic.Int32
}

func NewMemoryStore(records ...country.Record) *MemoryStore {
	s := &MemoryStore{}
	for _, r := range records {
		_, _ = s.Insert(context.Background(), r)
	}
	return s
}

func (s *MemoryStore) WithSession(ctx context.Context, fn func(ctx context.Context) error) error {
	s.Sessions.Add(1)
	s.SessionsOpened.Add(1)
	defer s.Sessions.Add(-1)
	return fn(ctx)
}

func (s *MemoryStore) Insert(_ context.Context, r country.Record) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	for _, existing := range s.records {
		if existing.ID == r.ID {
			return primitive.NilObjectID, fmt.Errorf("duplicate id %s", r.ID.Hex())
		}
	}
	s.records = append(s.records, r)
	return r.ID, nil
}

func (s *MemoryStore) FindAll(_ context.Context, opts country.ListOptions) ([]country.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]country.Record{}, s.records...)
	if opts.Limit <= 0 {
		return out, nil
	}
	start := opts.Skip
	if start > int64(len(out)) {
		start = int64(len(out))
	}
	end := start + opts.Limit
	if end > int64(len(out)) {
		end = int64(len(out))
	}
	return out[start:end], nil
}

func (s *MemoryStore) FindByID(_ context.Context, id primitive.ObjectID) (country.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return country.Record{}, fmt.Errorf("%w: %s", country.ErrNotFound, id.Hex())
}

func (s *MemoryStore) FindWhere(_ context.Context, f country.Filter) ([]country.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []country.Record{}
	for _, r := range s.records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, id primitive.ObjectID, u country.Update) (country.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			u.Apply(&s.records[i])
			return s.records[i], nil
		}
	}
	return country.Record{}, fmt.Errorf("%w: %s", country.ErrNotFound, id.Hex())
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
