package oauthmodel

import (
	"net/url"
	"strings"
)

// ResponseFormat selects the wire shape of the token response.
type ResponseFormat string

const (
	// FormatText renders key=value pairs with a text/plain content type.
	// This is the default, matching the historical behaviour of the endpoint.
	FormatText ResponseFormat = "text"

	// FormatJSON renders a JSON object with the same keys.
	FormatJSON ResponseFormat = "json"
)

// AccessTokenRequest holds the parsed parameters of one token request.
// Transport concerns (headers, body limits) are resolved before this value
// is built; the pipeline only ever sees this canonical form.
type AccessTokenRequest struct {
	// GrantType is the credential-proof mechanism claimed by the caller.
	GrantType GrantType

	// ClientID identifies the registered service. Required for the
	// password grant; for the other grants the client identity comes from
	// the authenticated caller profile instead.
	ClientID string

	// Code is the single-use authorization code (authorization_code grant).
	Code string

	// RedirectURI must match a callback registered for the service
	// (authorization_code grant).
	RedirectURI string

	// RefreshToken is the reusable token id (refresh_token grant).
	RefreshToken string

	// Username and Password are the resource-owner credentials
	// (password grant). Never logged.
	Username string
	Password string

	// Format is the negotiated response shape.
	Format ResponseFormat
}

// ParseAccessTokenRequest builds the canonical request from submitted form
// values and the Accept header.
func ParseAccessTokenRequest(form url.Values, acceptHeader string) *AccessTokenRequest {
	return &AccessTokenRequest{
		GrantType:    GrantType(strings.TrimSpace(form.Get(ParamGrantType))),
		ClientID:     strings.TrimSpace(form.Get(ParamClientID)),
		Code:         strings.TrimSpace(form.Get(ParamCode)),
		RedirectURI:  strings.TrimSpace(form.Get(ParamRedirectURI)),
		RefreshToken: strings.TrimSpace(form.Get(ParamRefreshToken)),
		Username:     strings.TrimSpace(form.Get(ParamUsername)),
		Password:     form.Get(ParamPassword),
		Format:       NegotiateFormat(form.Get(ParamFormat), acceptHeader),
	}
}

// NegotiateFormat resolves the response format from an explicit format
// parameter or, failing that, the Accept header. Text is the default.
func NegotiateFormat(formatParam, acceptHeader string) ResponseFormat {
	if strings.EqualFold(strings.TrimSpace(formatParam), string(FormatJSON)) {
		return FormatJSON
	}
	if strings.Contains(acceptHeader, "application/json") {
		return FormatJSON
	}
	return FormatText
}
