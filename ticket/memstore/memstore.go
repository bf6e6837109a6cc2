// Package memstore provides an in-memory ticket store backed by go-cache.
// Suitable for single-node deployments and tests.
package memstore

import (
	"context"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/jrsteele09/go-token-service/ticket"
)

var _ ticket.Store = (*Store)(nil)

// Store keeps tickets in a go-cache instance keyed by ticket id. The cache
// evicts tickets at their own expiry; Get and Consume re-check expiry so a
// ticket is never observable past its lifetime even between cleanup runs.
type Store struct {
	tickets *cache.Cache
	mu      sync.Mutex // serializes Consume so only one caller wins a code
	nowFunc func() time.Time
}

// Option configures the store.
type Option func(*Store)

// WithNowFunc overrides the time source (for tests).
func WithNowFunc(now func() time.Time) Option {
	return func(s *Store) {
		s.nowFunc = now
	}
}

// New creates an empty store. cleanupInterval controls how often expired
// entries are physically evicted; zero disables the background sweeper.
func New(cleanupInterval time.Duration, options ...Option) *Store {
	s := &Store{
		tickets: cache.New(cache.NoExpiration, cleanupInterval),
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Add implements ticket.Store.
func (s *Store) Add(_ context.Context, t *ticket.Ticket) error {
	ttl := time.Until(t.ExpiresAt)
	if ttl <= 0 {
		// Already expired; storing it would make it resolvable forever
		// because go-cache treats non-positive durations as "no expiry".
		return nil
	}
	s.tickets.Set(t.ID, t, ttl)
	return nil
}

// Consume implements ticket.Store. The lock makes get-and-invalidate atomic:
// of any number of concurrent callers presenting the same id, exactly one
// receives the ticket.
func (s *Store) Consume(_ context.Context, id string) (*ticket.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	s.tickets.Delete(id)
	return t, nil
}

// Get implements ticket.Store.
func (s *Store) Get(_ context.Context, id string) (*ticket.Ticket, error) {
	return s.lookup(id)
}

// Delete implements ticket.Store.
func (s *Store) Delete(_ context.Context, id string) error {
	s.tickets.Delete(id)
	return nil
}

func (s *Store) lookup(id string) (*ticket.Ticket, error) {
	v, ok := s.tickets.Get(id)
	if !ok {
		return nil, ticket.ErrNotFound
	}
	t := v.(*ticket.Ticket)
	if t.Expired(s.nowFunc()) {
		s.tickets.Delete(id)
		return nil, ticket.ErrNotFound
	}
	return t, nil
}
