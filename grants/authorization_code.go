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

var _ Extractor = (*AuthorizationCodeExtractor)(nil)

// AuthorizationCodeExtractor exchanges a single-use authorization code for
// an issuance context. Consuming the code and issuing the tokens are not
// transactional: the code is invalidated as part of resolving it, so it is
// burned even if issuance fails afterwards.
type AuthorizationCodeExtractor struct {
	store    ticket.Store
	registry registry.Repo
	log      zerolog.Logger
}

// NewAuthorizationCodeExtractor creates the extractor.
func NewAuthorizationCodeExtractor(store ticket.Store, reg registry.Repo, log zerolog.Logger) *AuthorizationCodeExtractor {
	return &AuthorizationCodeExtractor{store: store, registry: reg, log: log}
}

// Supports implements Extractor.
func (e *AuthorizationCodeExtractor) Supports(req *oauthmodel.AccessTokenRequest) bool {
	return req.GrantType == oauthmodel.GrantTypeAuthorizationCode
}

// Extract implements Extractor. The store's Consume guarantees that under
// concurrent submissions of the same code exactly one request reaches this
// point with the ticket in hand.
func (e *AuthorizationCodeExtractor) Extract(ctx context.Context, req *oauthmodel.AccessTokenRequest, _ *profile.CallerProfile) (*IssuanceContext, error) {
	code, err := e.store.Consume(ctx, req.Code)
	if err != nil {
		if errors.Is(err, ticket.ErrNotFound) {
			e.log.Warn().Msg("authorization code absent or already consumed")
			return nil, oauthmodel.InvalidGrant("authorization code is invalid")
		}
		return nil, errors.Wrap(err, "[AuthorizationCodeExtractor.Extract] Consume")
	}
	if code.Kind != ticket.KindAuthorizationCode {
		e.log.Warn().Str("kind", string(code.Kind)).Msg("ticket presented as code has wrong kind")
		return nil, oauthmodel.InvalidGrant("authorization code is invalid")
	}

	service, err := e.registry.Get(code.Service)
	if err != nil {
		// The code is already burned; the service it was bound to has
		// since vanished from the registry.
		e.log.Warn().Str("client_id", code.Service).Msg("consumed code bound to unknown service")
		return nil, oauthmodel.InvalidGrant("service no longer registered")
	}

	return &IssuanceContext{
		GrantType:        oauthmodel.GrantTypeAuthorizationCode,
		Service:          service,
		Principal:        code.Principal,
		Scopes:           code.Scopes,
		MintRefreshToken: true,
	}, nil
}
