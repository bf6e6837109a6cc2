package grants

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-token-service/oauthmodel"
	"github.com/jrsteele09/go-token-service/profile"
	"github.com/jrsteele09/go-token-service/registry"
)

var _ Extractor = (*PasswordExtractor)(nil)

// PasswordExtractor resolves a resource-owner password grant. The
// credentials are authenticated here, against the external authentication
// collaborator, so a wrong password is an extraction failure
// (invalid_grant) rather than a validation failure.
type PasswordExtractor struct {
	authenticator CallerAuthenticator
	registry      registry.Repo
	log           zerolog.Logger
}

// NewPasswordExtractor creates the extractor.
func NewPasswordExtractor(authenticator CallerAuthenticator, reg registry.Repo, log zerolog.Logger) *PasswordExtractor {
	return &PasswordExtractor{authenticator: authenticator, registry: reg, log: log}
}

// Supports implements Extractor.
func (e *PasswordExtractor) Supports(req *oauthmodel.AccessTokenRequest) bool {
	return req.GrantType == oauthmodel.GrantTypePassword
}

// Extract implements Extractor.
func (e *PasswordExtractor) Extract(ctx context.Context, req *oauthmodel.AccessTokenRequest, _ *profile.CallerProfile) (*IssuanceContext, error) {
	authenticated, err := e.authenticator.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		e.log.Warn().Str("client_id", req.ClientID).Msg("resource owner authentication failed")
		return nil, oauthmodel.InvalidGrant("authentication failed")
	}

	service, err := e.registry.Get(req.ClientID)
	if err != nil {
		e.log.Warn().Str("client_id", req.ClientID).Msg("no registered service for client_id")
		return nil, oauthmodel.InvalidGrant("service not registered")
	}

	return &IssuanceContext{
		GrantType:        oauthmodel.GrantTypePassword,
		Service:          service,
		Principal:        authenticated.ID,
		Scopes:           service.Scopes,
		MintRefreshToken: true,
	}, nil
}
