// Package oauthmodel holds the wire-level vocabulary of the token endpoint:
// grant types, request and response shapes, response-format negotiation and
// the OAuth2 error codes the endpoint may emit.
package oauthmodel

// GrantType identifies the credential proof a caller presents in exchange
// for tokens.
type GrantType string

const (
	GrantTypeAuthorizationCode GrantType = "authorization_code"
	GrantTypePassword          GrantType = "password"
	GrantTypeRefreshToken      GrantType = "refresh_token"
)

// Supported reports whether the grant type is one the token endpoint serves.
func (g GrantType) Supported() bool {
	switch g {
	case GrantTypeAuthorizationCode, GrantTypePassword, GrantTypeRefreshToken:
		return true
	}
	return false
}

// Form parameter names used by the token endpoint.
const (
	ParamGrantType    = "grant_type"
	ParamClientID     = "client_id"
	ParamClientSecret = "client_secret"
	ParamCode         = "code"
	ParamRedirectURI  = "redirect_uri"
	ParamRefreshToken = "refresh_token"
	ParamUsername     = "username"
	ParamPassword     = "password"
	ParamFormat       = "format"
)
