// Package grants implements the grant-dispatch pipeline of the token
// endpoint: request validation, selection of the grant extractor, resolution
// of the underlying credential into an issuance context, and handoff to the
// token issuer.
package grants

import (
	"context"

	"github.com/jrsteele09/go-token-service/oauthmodel"
	"github.com/jrsteele09/go-token-service/profile"
	"github.com/jrsteele09/go-token-service/registry"
	"github.com/jrsteele09/go-token-service/ticket"
)

// IssuanceContext is the canonical result of a successful extraction. It
// lives for one request and carries everything the token issuer needs.
type IssuanceContext struct {
	// GrantType records which extractor produced the context.
	GrantType oauthmodel.GrantType

	// Service is the registered service the tokens will be bound to.
	Service *registry.RegisteredService

	// Principal is the resolved principal (resource owner or client).
	Principal string

	// Scopes granted to the new access token.
	Scopes []string

	// MintRefreshToken is false when the request arrived via the
	// refresh_token grant: refresh tokens are not rotated, so no new one
	// is created.
	MintRefreshToken bool
}

// IssuedTokens is the outcome of token generation. RefreshToken is nil when
// the context forbade minting one. AccessTokenValue is the wire form of the
// access token: the ticket id for opaque tokens, or the signed JWT for
// services that opted in.
type IssuedTokens struct {
	AccessToken      *ticket.Ticket
	AccessTokenValue string
	RefreshToken     *ticket.Ticket
}

// TokenGenerator mints and stores the token pair for a resolved grant.
// Implemented by token.Issuer.
type TokenGenerator interface {
	Generate(ctx context.Context, grant *IssuanceContext) (*IssuedTokens, error)
}

// CallerAuthenticator is the external collaborator the password extractor
// authenticates resource-owner credentials against.
type CallerAuthenticator interface {
	Authenticate(ctx context.Context, username, password string) (*profile.CallerProfile, error)
}
