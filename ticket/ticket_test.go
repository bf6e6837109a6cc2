package ticket_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-token-service/ticket"
)

func TestNewIDCarriesPrefix(t *testing.T) {
	id := ticket.NewID(ticket.AccessTokenPrefix)
	require.True(t, strings.HasPrefix(id, "AT-"))
	require.Greater(t, len(id), len("AT-"))
}

func TestConstructorsBindKindAndLifetime(t *testing.T) {
	now := time.Now()

	at := ticket.NewAccessToken("web-app", "user-1", []string{"profile"}, now, time.Hour)
	require.Equal(t, ticket.KindAccessToken, at.Kind)
	require.Equal(t, "web-app", at.Service)
	require.Equal(t, "user-1", at.Principal)
	require.Equal(t, time.Hour, at.TTL())

	rt := ticket.NewRefreshToken("web-app", "user-1", now, 24*time.Hour)
	require.Equal(t, ticket.KindRefreshToken, rt.Kind)
	require.Empty(t, rt.Scopes)

	oc := ticket.NewAuthorizationCode("web-app", "user-1", []string{"profile"}, now, 15*time.Minute)
	require.Equal(t, ticket.KindAuthorizationCode, oc.Kind)
	require.True(t, strings.HasPrefix(oc.ID, "OC-"))
}

func TestExpired(t *testing.T) {
	now := time.Now()
	at := ticket.NewAccessToken("web-app", "user-1", nil, now, time.Hour)

	require.False(t, at.Expired(now))
	require.False(t, at.Expired(now.Add(59*time.Minute)))
	require.True(t, at.Expired(now.Add(time.Hour)), "a ticket is expired at its exact deadline")
	require.True(t, at.Expired(now.Add(2*time.Hour)))
}
