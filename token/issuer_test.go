package token_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-token-service/grants"
	"github.com/jrsteele09/go-token-service/registry"
	"github.com/jrsteele09/go-token-service/ticket"
	"github.com/jrsteele09/go-token-service/ticket/memstore"
	"github.com/jrsteele09/go-token-service/token"
)

var issuerPolicy = ticket.Policy{
	AuthorizationCodeTTL: 15 * time.Minute,
	AccessTokenTTL:       time.Hour,
	RefreshTokenTTL:      24 * time.Hour,
}

func testService() *registry.RegisteredService {
	return &registry.RegisteredService{
		ClientID: "web-app",
		Name:     "Test Web App",
		Enabled:  true,
	}
}

func issuanceContext(service *registry.RegisteredService, mintRefresh bool) *grants.IssuanceContext {
	return &grants.IssuanceContext{
		GrantType:        "authorization_code",
		Service:          service,
		Principal:        "user-1",
		Scopes:           []string{"profile"},
		MintRefreshToken: mintRefresh,
	}
}

func TestGenerateMintsAndStoresTokenPair(t *testing.T) {
	store := memstore.New(0)
	issuer, err := token.NewIssuer(store, issuerPolicy)
	require.NoError(t, err)

	issued, err := issuer.Generate(context.Background(), issuanceContext(testService(), true))
	require.NoError(t, err)

	require.Equal(t, issued.AccessToken.ID, issued.AccessTokenValue, "opaque tokens are the ticket id")
	require.Equal(t, issuerPolicy.AccessTokenTTL, issued.AccessToken.TTL())
	require.NotNil(t, issued.RefreshToken)
	require.Equal(t, issuerPolicy.RefreshTokenTTL, issued.RefreshToken.TTL())

	_, err = store.Get(context.Background(), issued.AccessToken.ID)
	require.NoError(t, err)
	_, err = store.Get(context.Background(), issued.RefreshToken.ID)
	require.NoError(t, err)
}

func TestGenerateWithoutRefreshToken(t *testing.T) {
	store := memstore.New(0)
	issuer, err := token.NewIssuer(store, issuerPolicy)
	require.NoError(t, err)

	issued, err := issuer.Generate(context.Background(), issuanceContext(testService(), false))
	require.NoError(t, err)
	require.Nil(t, issued.RefreshToken)
}

func TestGenerateSignedAccessToken(t *testing.T) {
	const secret = "jwt-test-secret"
	store := memstore.New(0)
	signer := token.NewHMACSigner(secret)
	issuer, err := token.NewIssuer(store, issuerPolicy, token.WithSigner(signer, "https://issuer.example"))
	require.NoError(t, err)

	service := testService()
	service.JWTAccessTokens = true

	issued, err := issuer.Generate(context.Background(), issuanceContext(service, true))
	require.NoError(t, err)
	require.NotEqual(t, issued.AccessToken.ID, issued.AccessTokenValue)

	parsed, err := jwt.Parse(issued.AccessTokenValue, signer.GetVerificationKey,
		jwt.WithValidMethods([]string{signer.GetSigningMethod().Alg()}))
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	require.Equal(t, "https://issuer.example", claims["iss"])
	require.Equal(t, "user-1", claims["sub"])
	require.Equal(t, "web-app", claims["aud"])
	require.Equal(t, issued.AccessToken.ID, claims["jti"], "jti resolves back to the stored ticket")
	require.Equal(t, "profile", claims["scope"])
}

func TestGenerateOpaqueWhenServiceNotOptedIn(t *testing.T) {
	store := memstore.New(0)
	issuer, err := token.NewIssuer(store, issuerPolicy, token.WithSigner(token.NewHMACSigner("secret"), "https://issuer.example"))
	require.NoError(t, err)

	issued, err := issuer.Generate(context.Background(), issuanceContext(testService(), false))
	require.NoError(t, err)
	require.Equal(t, issued.AccessToken.ID, issued.AccessTokenValue)
}

func TestGenerateStorageFailure(t *testing.T) {
	issuer, err := token.NewIssuer(&failingStore{}, issuerPolicy)
	require.NoError(t, err)

	_, err = issuer.Generate(context.Background(), issuanceContext(testService(), true))
	require.Error(t, err)
}

func TestNewIssuerRequiresDependencies(t *testing.T) {
	_, err := token.NewIssuer(nil, issuerPolicy)
	require.Error(t, err)

	_, err = token.NewIssuer(memstore.New(0), nil)
	require.Error(t, err)
}

type failingStore struct{}

func (f *failingStore) Add(context.Context, *ticket.Ticket) error {
	return errors.New("storage unavailable")
}

func (f *failingStore) Consume(context.Context, string) (*ticket.Ticket, error) {
	return nil, ticket.ErrNotFound
}

func (f *failingStore) Get(context.Context, string) (*ticket.Ticket, error) {
	return nil, ticket.ErrNotFound
}

func (f *failingStore) Delete(context.Context, string) error {
	return nil
}
