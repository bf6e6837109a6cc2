// Package token mints the access/refresh token pair for a resolved grant
// and persists it through the ticket store.
package token

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/jrsteele09/go-token-service/grants"
	"github.com/jrsteele09/go-token-service/ticket"
)

var _ grants.TokenGenerator = (*Issuer)(nil)

// Issuer creates and stores new tokens under the configured expiration
// policy. It performs no re-validation of the issuance context and no
// retries: a storage failure is fatal for the request. The context's
// extractor invariants are trusted as-is.
type Issuer struct {
	store   ticket.Store
	policy  ticket.ExpirationPolicy
	signer  Signer // only consulted for services flagged for JWT access tokens
	issuer  string // iss claim on JWT access tokens
	nowFunc func() time.Time
}

// IssuerOption configures the Issuer.
type IssuerOption func(*Issuer)

// WithNowFunc overrides the time source (for tests).
func WithNowFunc(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.nowFunc = now
	}
}

// WithSigner sets the signer used for services that opted into JWT access
// tokens. Without a signer those services fall back to opaque tokens.
func WithSigner(signer Signer, issuer string) IssuerOption {
	return func(i *Issuer) {
		i.signer = signer
		i.issuer = issuer
	}
}

// NewIssuer creates an Issuer over the given store and expiration policy.
func NewIssuer(store ticket.Store, policy ticket.ExpirationPolicy, options ...IssuerOption) (*Issuer, error) {
	if store == nil {
		return nil, errors.New("[NewIssuer] ticket store is required")
	}
	if policy == nil {
		return nil, errors.New("[NewIssuer] expiration policy is required")
	}

	i := &Issuer{
		store:   store,
		policy:  policy,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(i)
	}
	return i, nil
}

// Generate implements grants.TokenGenerator. It always mints and stores a
// new access token; a refresh token is minted under the same binding unless
// the context says not to (refresh_token grant — tokens are not rotated).
func (i *Issuer) Generate(ctx context.Context, grant *grants.IssuanceContext) (*grants.IssuedTokens, error) {
	now := i.nowFunc()

	accessToken := ticket.NewAccessToken(
		grant.Service.ClientID,
		grant.Principal,
		grant.Scopes,
		now,
		i.policy.TimeToLive(ticket.KindAccessToken),
	)
	if err := i.store.Add(ctx, accessToken); err != nil {
		return nil, errors.Wrap(err, "[Issuer.Generate] store access token")
	}

	value, err := i.accessTokenValue(accessToken, grant)
	if err != nil {
		return nil, errors.Wrap(err, "[Issuer.Generate] encode access token")
	}

	issued := &grants.IssuedTokens{
		AccessToken:      accessToken,
		AccessTokenValue: value,
	}

	if grant.MintRefreshToken {
		refreshToken := ticket.NewRefreshToken(
			grant.Service.ClientID,
			grant.Principal,
			now,
			i.policy.TimeToLive(ticket.KindRefreshToken),
		)
		if err := i.store.Add(ctx, refreshToken); err != nil {
			return nil, errors.Wrap(err, "[Issuer.Generate] store refresh token")
		}
		issued.RefreshToken = refreshToken
	}

	return issued, nil
}

// accessTokenValue returns the wire form of the access token: the opaque
// ticket id, or a signed JWT carrying the same binding for services that
// opted in. The JWT's jti is the ticket id, so introspection and revocation
// still resolve through the store.
func (i *Issuer) accessTokenValue(at *ticket.Ticket, grant *grants.IssuanceContext) (string, error) {
	if !grant.Service.JWTAccessTokens || i.signer == nil {
		return at.ID, nil
	}

	claims := jwt.MapClaims{
		"iss":   i.issuer,
		"sub":   at.Principal,
		"aud":   at.Service,
		"iat":   at.IssuedAt.Unix(),
		"exp":   at.ExpiresAt.Unix(),
		"jti":   at.ID,
		"scope": strings.Join(at.Scopes, " "),
	}
	return i.signer.Sign(claims)
}
