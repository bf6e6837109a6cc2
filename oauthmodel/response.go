package oauthmodel

import (
	"net/url"
	"strconv"
)

// AccessTokenResponse is the success payload of the token endpoint.
type AccessTokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// TokenTypeBearer is the only token type this endpoint issues.
const TokenTypeBearer = "bearer"

// FormEncoded renders the response as key=value pairs for the text format.
// refresh_token is omitted when no refresh token was minted.
func (r *AccessTokenResponse) FormEncoded() string {
	v := url.Values{}
	v.Set("access_token", r.AccessToken)
	v.Set("token_type", r.TokenType)
	v.Set("expires_in", strconv.FormatInt(r.ExpiresIn, 10))
	if r.RefreshToken != "" {
		v.Set("refresh_token", r.RefreshToken)
	}
	return v.Encode()
}

// ErrorResponse is the failure payload, a single OAuth2 error code.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FormEncoded renders the error as a key=value pair for the text format.
func (r *ErrorResponse) FormEncoded() string {
	v := url.Values{}
	v.Set("error", r.Error)
	return v.Encode()
}
