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

// Pipeline runs one token request end to end: validate, dispatch to the
// matching extractor, generate the token pair, shape the response. Each
// request is processed synchronously; the only shared state is the ticket
// store behind the extractors and the generator.
type Pipeline struct {
	validator  *Validator
	dispatcher *Dispatcher
	generator  TokenGenerator
	log        zerolog.Logger
}

// NewPipeline wires the standard pipeline: validator over the registry and
// the extractors in their fixed priority order (authorization_code,
// refresh_token, password).
func NewPipeline(store ticket.Store, reg registry.Repo, authenticator CallerAuthenticator, generator TokenGenerator, log zerolog.Logger) (*Pipeline, error) {
	if store == nil {
		return nil, errors.New("[NewPipeline] ticket store is required")
	}
	if reg == nil {
		return nil, errors.New("[NewPipeline] service registry is required")
	}
	if authenticator == nil {
		return nil, errors.New("[NewPipeline] caller authenticator is required")
	}
	if generator == nil {
		return nil, errors.New("[NewPipeline] token generator is required")
	}

	return &Pipeline{
		validator: NewValidator(reg, log),
		dispatcher: NewDispatcher(log,
			NewAuthorizationCodeExtractor(store, reg, log),
			NewRefreshTokenExtractor(store, reg, log),
			NewPasswordExtractor(authenticator, reg, log),
		),
		generator: generator,
		log:       log,
	}, nil
}

// Handle processes one request. The returned error always carries one of
// the oauthmodel error classes; transport maps it to the wire code with
// oauthmodel.ErrorCode.
func (p *Pipeline) Handle(ctx context.Context, req *oauthmodel.AccessTokenRequest, caller *profile.CallerProfile) (*oauthmodel.AccessTokenResponse, error) {
	if err := p.validator.Validate(req, caller); err != nil {
		return nil, err
	}

	grant, err := p.dispatcher.Dispatch(ctx, req, caller)
	if err != nil {
		if errors.Is(err, oauthmodel.ErrInvalidGrant) {
			return nil, err
		}
		// A store failure during extraction is indistinguishable to the
		// caller from any other extraction failure.
		p.log.Error().Err(err).Msg("extraction failed")
		return nil, oauthmodel.InvalidGrant(err.Error())
	}

	issued, err := p.generator.Generate(ctx, grant)
	if err != nil {
		p.log.Error().Err(err).Str("grant_type", string(grant.GrantType)).Msg("token generation failed")
		return nil, oauthmodel.ServerError(err)
	}

	p.log.Debug().
		Str("grant_type", string(grant.GrantType)).
		Str("client_id", grant.Service.ClientID).
		Str("access_token", issued.AccessToken.ID).
		Msg("issued access token")

	resp := &oauthmodel.AccessTokenResponse{
		AccessToken: issued.AccessTokenValue,
		TokenType:   oauthmodel.TokenTypeBearer,
		ExpiresIn:   int64(issued.AccessToken.TTL().Seconds()),
	}
	if issued.RefreshToken != nil {
		resp.RefreshToken = issued.RefreshToken.ID
	}
	return resp, nil
}
