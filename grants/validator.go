package grants

import (
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-token-service/oauthmodel"
	"github.com/jrsteele09/go-token-service/profile"
	"github.com/jrsteele09/go-token-service/registry"
)

// Validator checks grant-type support and profile/parameter preconditions
// before any ticket is touched. It is a pure read: a request rejected here
// has caused no state mutation and maps to invalid_request.
type Validator struct {
	registry registry.Repo
	log      zerolog.Logger
}

// NewValidator creates a Validator over the given service registry.
func NewValidator(reg registry.Repo, log zerolog.Logger) *Validator {
	return &Validator{registry: reg, log: log}
}

// Validate returns nil when the request may proceed to extraction, or an
// invalid_request error describing the first failed precondition.
func (v *Validator) Validate(req *oauthmodel.AccessTokenRequest, caller *profile.CallerProfile) error {
	if !req.GrantType.Supported() {
		v.log.Warn().Str("grant_type", string(req.GrantType)).Msg("unsupported grant type")
		return oauthmodel.InvalidRequest("unsupported grant type")
	}

	if caller == nil {
		v.log.Warn().Str("grant_type", string(req.GrantType)).Msg("no authenticated profile for request")
		return oauthmodel.InvalidRequest("no caller profile")
	}

	switch req.GrantType {
	case oauthmodel.GrantTypeAuthorizationCode:
		return v.validateAuthorizationCode(req, caller)
	case oauthmodel.GrantTypeRefreshToken:
		return v.validateRefreshToken(req, caller)
	case oauthmodel.GrantTypePassword:
		return v.validatePassword(req, caller)
	}
	return oauthmodel.InvalidRequest("unsupported grant type")
}

func (v *Validator) validateAuthorizationCode(req *oauthmodel.AccessTokenRequest, caller *profile.CallerProfile) error {
	if !caller.IsClient() {
		return oauthmodel.InvalidRequest("authorization_code grant requires a client profile")
	}
	if req.RedirectURI == "" {
		return oauthmodel.InvalidRequest("missing redirect_uri")
	}
	if req.Code == "" {
		return oauthmodel.InvalidRequest("missing code")
	}

	service, err := v.registry.Get(caller.ID)
	if err != nil {
		v.log.Warn().Str("client_id", caller.ID).Msg("no registered service for client profile")
		return oauthmodel.InvalidRequest("unknown client")
	}
	if !service.CallbackMatches(req.RedirectURI) {
		v.log.Warn().
			Str("client_id", caller.ID).
			Str("redirect_uri", req.RedirectURI).
			Msg("redirect_uri does not match registered callback")
		return oauthmodel.InvalidRequest("redirect_uri does not match registered callback")
	}
	return nil
}

func (v *Validator) validateRefreshToken(req *oauthmodel.AccessTokenRequest, caller *profile.CallerProfile) error {
	if !caller.IsClient() {
		return oauthmodel.InvalidRequest("refresh_token grant requires a client profile")
	}
	if req.RefreshToken == "" {
		return oauthmodel.InvalidRequest("missing refresh_token")
	}
	return nil
}

func (v *Validator) validatePassword(req *oauthmodel.AccessTokenRequest, caller *profile.CallerProfile) error {
	if req.ClientID == "" {
		return oauthmodel.InvalidRequest("missing client_id")
	}

	service, err := v.registry.Get(req.ClientID)
	if err != nil {
		v.log.Warn().Str("client_id", req.ClientID).Msg("no registered service for client_id")
		return oauthmodel.InvalidRequest("unknown client")
	}
	if !service.Enabled {
		return oauthmodel.InvalidRequest("service is disabled")
	}
	if !caller.IsUser() {
		return oauthmodel.InvalidRequest("password grant requires a user profile")
	}
	return nil
}
