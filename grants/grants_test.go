package grants_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-token-service/grants"
	"github.com/jrsteele09/go-token-service/oauthmodel"
	"github.com/jrsteele09/go-token-service/profile"
	"github.com/jrsteele09/go-token-service/registry"
	registryfake "github.com/jrsteele09/go-token-service/registry/repofake"
	"github.com/jrsteele09/go-token-service/ticket"
	"github.com/jrsteele09/go-token-service/ticket/memstore"
	"github.com/jrsteele09/go-token-service/token"
	"github.com/jrsteele09/go-token-service/users"
	userfake "github.com/jrsteele09/go-token-service/users/repofake"
)

const (
	testClientID     = "web-app"
	testClientSecret = "test-secret-1"
	testCallback     = "https://svc.example/cb"
	testUsername     = "john.doe"
	testPassword     = "password123"
	testPrincipal    = "user-1"
)

var testPolicy = ticket.Policy{
	AuthorizationCodeTTL: 15 * time.Minute,
	AccessTokenTTL:       1 * time.Hour,
	RefreshTokenTTL:      7 * 24 * time.Hour,
}

// testFixture holds all pipeline dependencies.
type testFixture struct {
	store    *memstore.Store
	registry *registryfake.FakeServiceRepo
	userRepo *userfake.FakeUserRepo
	pipeline *grants.Pipeline
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	store := memstore.New(0)
	reg := registryfake.NewFakeServiceRepo()

	secretHash, err := registry.HashSecret(testClientSecret)
	require.NoError(t, err)
	reg.Upsert(&registry.RegisteredService{
		ClientID:     testClientID,
		Name:         "Test Web App",
		SecretHash:   secretHash,
		RedirectURIs: []string{testCallback},
		Scopes:       []string{"profile", "email"},
		Enabled:      true,
	})

	userRepo := userfake.NewFakeUserRepo()
	passwordHash, err := users.HashPassword(testPassword)
	require.NoError(t, err)
	require.NoError(t, userRepo.Upsert(&users.User{
		ID:           testPrincipal,
		Username:     testUsername,
		PasswordHash: passwordHash,
	}))

	issuer, err := token.NewIssuer(store, testPolicy)
	require.NoError(t, err)

	pipeline, err := grants.NewPipeline(store, reg, users.NewAuthenticator(userRepo), issuer, zerolog.Nop())
	require.NoError(t, err)

	return &testFixture{
		store:    store,
		registry: reg,
		userRepo: userRepo,
		pipeline: pipeline,
	}
}

// addCode stores a fresh single-use authorization code bound to the test
// service and returns it.
func (f *testFixture) addCode(t *testing.T) *ticket.Ticket {
	t.Helper()
	code := ticket.NewAuthorizationCode(testClientID, testPrincipal, []string{"profile"}, time.Now(), 15*time.Minute)
	require.NoError(t, f.store.Add(context.Background(), code))
	return code
}

func (f *testFixture) addRefreshToken(t *testing.T) *ticket.Ticket {
	t.Helper()
	rt := ticket.NewRefreshToken(testClientID, testPrincipal, time.Now(), 24*time.Hour)
	require.NoError(t, f.store.Add(context.Background(), rt))
	return rt
}

func clientProfile() *profile.CallerProfile {
	return profile.NewClientProfile(testClientID)
}

func userProfile() *profile.CallerProfile {
	return profile.NewUserProfile(testUsername)
}

func codeRequest(code string) *oauthmodel.AccessTokenRequest {
	return &oauthmodel.AccessTokenRequest{
		GrantType:   oauthmodel.GrantTypeAuthorizationCode,
		Code:        code,
		RedirectURI: testCallback,
	}
}

func TestAuthorizationCodeGrantIssuesTokenPair(t *testing.T) {
	f := setupTestFixture(t)
	code := f.addCode(t)

	resp, err := f.pipeline.Handle(context.Background(), codeRequest(code.ID), clientProfile())
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(resp.AccessToken, ticket.AccessTokenPrefix+"-"))
	require.Equal(t, oauthmodel.TokenTypeBearer, resp.TokenType)
	require.Equal(t, int64(testPolicy.AccessTokenTTL.Seconds()), resp.ExpiresIn)
	require.True(t, strings.HasPrefix(resp.RefreshToken, ticket.RefreshTokenPrefix+"-"))

	// Both tokens are persisted under the code's binding.
	at, err := f.store.Get(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, testClientID, at.Service)
	require.Equal(t, testPrincipal, at.Principal)
	require.Equal(t, []string{"profile"}, at.Scopes)

	rt, err := f.store.Get(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, ticket.KindRefreshToken, rt.Kind)
}

func TestAuthorizationCodeIsSingleUse(t *testing.T) {
	f := setupTestFixture(t)
	code := f.addCode(t)

	_, err := f.pipeline.Handle(context.Background(), codeRequest(code.ID), clientProfile())
	require.NoError(t, err)

	// The identical, otherwise valid request fails: the code is burned.
	_, err = f.pipeline.Handle(context.Background(), codeRequest(code.ID), clientProfile())
	require.ErrorIs(t, err, oauthmodel.ErrInvalidGrant)
}

func TestAuthorizationCodeConcurrentUse(t *testing.T) {
	f := setupTestFixture(t)
	code := f.addCode(t)

	const callers = 8
	var wg sync.WaitGroup
	results := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.pipeline.Handle(context.Background(), codeRequest(code.ID), clientProfile())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, invalidGrants int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		require.ErrorIs(t, err, oauthmodel.ErrInvalidGrant)
		invalidGrants++
	}
	require.Equal(t, 1, successes, "exactly one concurrent caller may win the code")
	require.Equal(t, callers-1, invalidGrants)
}

func TestRefreshTokenGrantDoesNotRotate(t *testing.T) {
	f := setupTestFixture(t)
	rt := f.addRefreshToken(t)

	req := &oauthmodel.AccessTokenRequest{
		GrantType:    oauthmodel.GrantTypeRefreshToken,
		RefreshToken: rt.ID,
	}

	resp, err := f.pipeline.Handle(context.Background(), req, clientProfile())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(resp.AccessToken, ticket.AccessTokenPrefix+"-"))
	require.Empty(t, resp.RefreshToken, "refresh tokens are not rotated")

	// The presented token remains valid and reusable.
	resp2, err := f.pipeline.Handle(context.Background(), req, clientProfile())
	require.NoError(t, err)
	require.NotEqual(t, resp.AccessToken, resp2.AccessToken)
}

func TestRefreshTokenGrantExpiredToken(t *testing.T) {
	f := setupTestFixture(t)
	rt := ticket.NewRefreshToken(testClientID, testPrincipal, time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, f.store.Add(context.Background(), rt))

	_, err := f.pipeline.Handle(context.Background(), &oauthmodel.AccessTokenRequest{
		GrantType:    oauthmodel.GrantTypeRefreshToken,
		RefreshToken: rt.ID,
	}, clientProfile())
	require.ErrorIs(t, err, oauthmodel.ErrInvalidGrant)
}

func TestPasswordGrantIssuesServiceScopes(t *testing.T) {
	f := setupTestFixture(t)

	resp, err := f.pipeline.Handle(context.Background(), &oauthmodel.AccessTokenRequest{
		GrantType: oauthmodel.GrantTypePassword,
		ClientID:  testClientID,
		Username:  testUsername,
		Password:  testPassword,
	}, userProfile())
	require.NoError(t, err)
	require.NotEmpty(t, resp.RefreshToken)

	at, err := f.store.Get(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, testUsername, at.Principal)
	require.Equal(t, []string{"profile", "email"}, at.Scopes)
}

func TestPasswordGrantBadCredentials(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.pipeline.Handle(context.Background(), &oauthmodel.AccessTokenRequest{
		GrantType: oauthmodel.GrantTypePassword,
		ClientID:  testClientID,
		Username:  testUsername,
		Password:  "wrong-password",
	}, userProfile())

	// A failed authentication is an extraction failure, never a
	// validation failure.
	require.ErrorIs(t, err, oauthmodel.ErrInvalidGrant)
	require.NotErrorIs(t, err, oauthmodel.ErrInvalidRequest)
}

func TestUnsupportedGrantTypeRejectedBeforeExtraction(t *testing.T) {
	f := setupTestFixture(t)
	code := f.addCode(t)

	req := codeRequest(code.ID)
	req.GrantType = "bogus"
	_, err := f.pipeline.Handle(context.Background(), req, clientProfile())
	require.ErrorIs(t, err, oauthmodel.ErrInvalidRequest)

	// The ticket store was never touched: the code is still usable.
	_, err = f.pipeline.Handle(context.Background(), codeRequest(code.ID), clientProfile())
	require.NoError(t, err)
}

func TestMissingCallerProfile(t *testing.T) {
	f := setupTestFixture(t)
	code := f.addCode(t)

	_, err := f.pipeline.Handle(context.Background(), codeRequest(code.ID), nil)
	require.ErrorIs(t, err, oauthmodel.ErrInvalidRequest)
}

func TestRedirectURIMismatchLeavesCodeUnconsumed(t *testing.T) {
	f := setupTestFixture(t)
	code := f.addCode(t)

	req := codeRequest(code.ID)
	req.RedirectURI = "https://evil.example/cb"
	_, err := f.pipeline.Handle(context.Background(), req, clientProfile())
	require.ErrorIs(t, err, oauthmodel.ErrInvalidRequest)

	// Validation failed before extraction; the code survives.
	_, err = f.pipeline.Handle(context.Background(), codeRequest(code.ID), clientProfile())
	require.NoError(t, err)
}

func TestDispatcherWithoutMatchSignalsInvalidGrant(t *testing.T) {
	// Defensive branch: an empty dispatch table classes the failure with
	// extraction failures.
	d := grants.NewDispatcher(zerolog.Nop())
	_, err := d.Dispatch(context.Background(), codeRequest("OC-unknown"), clientProfile())
	require.ErrorIs(t, err, oauthmodel.ErrInvalidGrant)
}
