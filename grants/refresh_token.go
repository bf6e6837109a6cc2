package grants

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-token-service/oauthmodel"
	"github.com/jrsteele09/go-token-service/profile"
	"github.com/jrsteele09/go-token-service/registry"
	"github.com/jrsteele09/go-token-service/ticket"
)

var _ Extractor = (*RefreshTokenExtractor)(nil)

// RefreshTokenExtractor resolves a refresh-token grant. The read is plain
// and non-invalidating: refresh tokens are not rotated, the presented token
// stays usable until its own expiry or revocation.
type RefreshTokenExtractor struct {
	store    ticket.Store
	registry registry.Repo
	log      zerolog.Logger
}

// NewRefreshTokenExtractor creates the extractor.
func NewRefreshTokenExtractor(store ticket.Store, reg registry.Repo, log zerolog.Logger) *RefreshTokenExtractor {
	return &RefreshTokenExtractor{store: store, registry: reg, log: log}
}

// Supports implements Extractor.
func (e *RefreshTokenExtractor) Supports(req *oauthmodel.AccessTokenRequest) bool {
	return req.GrantType == oauthmodel.GrantTypeRefreshToken
}

// Extract implements Extractor.
func (e *RefreshTokenExtractor) Extract(ctx context.Context, req *oauthmodel.AccessTokenRequest, _ *profile.CallerProfile) (*IssuanceContext, error) {
	rt, err := e.store.Get(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, ticket.ErrNotFound) {
			e.log.Warn().Msg("refresh token absent or expired")
			return nil, oauthmodel.InvalidGrant("refresh token is invalid")
		}
		return nil, errors.Wrap(err, "[RefreshTokenExtractor.Extract] Get")
	}
	if rt.Kind != ticket.KindRefreshToken {
		e.log.Warn().Str("kind", string(rt.Kind)).Msg("ticket presented as refresh token has wrong kind")
		return nil, oauthmodel.InvalidGrant("refresh token is invalid")
	}

	service, err := e.registry.Get(rt.Service)
	if err != nil {
		e.log.Warn().Str("client_id", rt.Service).Msg("refresh token bound to unknown service")
		return nil, oauthmodel.InvalidGrant("service no longer registered")
	}

	return &IssuanceContext{
		GrantType:        oauthmodel.GrantTypeRefreshToken,
		Service:          service,
		Principal:        rt.Principal,
		Scopes:           rt.Scopes,
		MintRefreshToken: false,
	}, nil
}
