// Package redisstore provides a Redis-backed ticket store for multi-node
// deployments. Single-use consumption relies on GETDEL, so the atomicity
// guarantee holds across every node sharing the Redis instance.
package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/jrsteele09/go-token-service/ticket"
)

const keyPrefix = "ticket:"

var _ ticket.Store = (*Store)(nil)

// Store persists tickets as JSON values with a Redis TTL matching the
// ticket's own expiry.
type Store struct {
	client  redis.UniversalClient
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

// New creates a store on the given Redis client.
func New(client redis.UniversalClient, options ...Option) *Store {
	s := &Store{
		client:  client,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Add implements ticket.Store.
func (s *Store) Add(ctx context.Context, t *ticket.Ticket) error {
	ttl := t.ExpiresAt.Sub(s.nowFunc())
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(t)
	if err != nil {
		return errors.Wrap(err, "[redisstore.Add] marshal ticket")
	}
	if err := s.client.Set(ctx, keyPrefix+t.ID, payload, ttl).Err(); err != nil {
		return errors.Wrap(err, "[redisstore.Add] SET")
	}
	return nil
}

// Consume implements ticket.Store. GETDEL retrieves and removes the value
// in one server-side operation, so concurrent callers cannot both win.
func (s *Store) Consume(ctx context.Context, id string) (*ticket.Ticket, error) {
	payload, err := s.client.GetDel(ctx, keyPrefix+id).Result()
	if err == redis.Nil {
		return nil, ticket.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[redisstore.Consume] GETDEL")
	}
	return s.decode(payload)
}

// Get implements ticket.Store.
func (s *Store) Get(ctx context.Context, id string) (*ticket.Ticket, error) {
	payload, err := s.client.Get(ctx, keyPrefix+id).Result()
	if err == redis.Nil {
		return nil, ticket.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[redisstore.Get] GET")
	}
	return s.decode(payload)
}

// Delete implements ticket.Store.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return errors.Wrap(err, "[redisstore.Delete] DEL")
	}
	return nil
}

func (s *Store) decode(payload string) (*ticket.Ticket, error) {
	var t ticket.Ticket
	if err := json.Unmarshal([]byte(payload), &t); err != nil {
		return nil, errors.Wrap(err, "[redisstore] unmarshal ticket")
	}
	// Redis TTL normally handles expiry; this covers clock skew between
	// the writer's TTL calculation and the ticket's absolute expiry.
	if t.Expired(s.nowFunc()) {
		return nil, ticket.ErrNotFound
	}
	return &t, nil
}
