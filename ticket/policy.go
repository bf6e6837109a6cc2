package ticket

import "time"

// ExpirationPolicy maps a ticket kind to the time-to-live applied when a
// ticket of that kind is minted. Owned by configuration; read-only here.
type ExpirationPolicy interface {
	TimeToLive(kind Kind) time.Duration
}

// Policy is a fixed per-kind expiration policy.
type Policy struct {
	AuthorizationCodeTTL time.Duration
	AccessTokenTTL       time.Duration
	RefreshTokenTTL      time.Duration
}

var _ ExpirationPolicy = Policy{}

// TimeToLive implements ExpirationPolicy.
func (p Policy) TimeToLive(kind Kind) time.Duration {
	switch kind {
	case KindAuthorizationCode:
		return p.AuthorizationCodeTTL
	case KindAccessToken:
		return p.AccessTokenTTL
	case KindRefreshToken:
		return p.RefreshTokenTTL
	}
	return 0
}
