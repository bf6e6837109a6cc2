// Package ticket defines the tickets the token endpoint consumes and mints
// (authorization codes, access tokens, refresh tokens), the store contract
// they are persisted through, and the expiration policy applied when new
// tickets are created.
package ticket

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind identifies the ticket family. Single-use semantics depend on it:
// authorization codes are consumed on first read, tokens are reusable until
// they expire or are revoked.
type Kind string

const (
	KindAuthorizationCode Kind = "authorization_code"
	KindAccessToken       Kind = "access_token"
	KindRefreshToken      Kind = "refresh_token"
)

// Ticket id prefixes, one per kind.
const (
	AuthorizationCodePrefix = "OC"
	AccessTokenPrefix       = "AT"
	RefreshTokenPrefix      = "RT"
)

// Ticket is one stored credential. Tickets are immutable after creation;
// they are never updated, only removed by consumption, expiry or revocation.
type Ticket struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Service   string    `json:"service"`   // client id of the bound registered service
	Principal string    `json:"principal"` // resolved principal the ticket was granted to
	Scopes    []string  `json:"scopes,omitempty"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the ticket's own lifetime has passed.
func (t *Ticket) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// TTL returns the lifetime the ticket was created with.
func (t *Ticket) TTL() time.Duration {
	return t.ExpiresAt.Sub(t.IssuedAt)
}

// NewID mints an opaque prefixed ticket id, e.g. "AT-5f1c…".
func NewID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

// NewAccessToken creates an access token bound to the given service and
// principal, expiring after ttl.
func NewAccessToken(service, principal string, scopes []string, now time.Time, ttl time.Duration) *Ticket {
	return &Ticket{
		ID:        NewID(AccessTokenPrefix),
		Kind:      KindAccessToken,
		Service:   service,
		Principal: principal,
		Scopes:    scopes,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

// NewRefreshToken creates a refresh token under the same binding rules.
func NewRefreshToken(service, principal string, now time.Time, ttl time.Duration) *Ticket {
	return &Ticket{
		ID:        NewID(RefreshTokenPrefix),
		Kind:      KindRefreshToken,
		Service:   service,
		Principal: principal,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

// NewAuthorizationCode creates a single-use code. Codes are normally minted
// by the upstream authorize flow; this constructor exists for that flow and
// for tests.
func NewAuthorizationCode(service, principal string, scopes []string, now time.Time, ttl time.Duration) *Ticket {
	return &Ticket{
		ID:        NewID(AuthorizationCodePrefix),
		Kind:      KindAuthorizationCode,
		Service:   service,
		Principal: principal,
		Scopes:    scopes,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}
