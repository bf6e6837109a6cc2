package config

import "time"

// OAuthConfig owns the expiration policy: the time-to-live per token kind.
type OAuthConfig interface {
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetAuthCodeExpiry() time.Duration
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetAccessTokenExpiry() time.Duration {
	return GetDurationEnv("ACCESS_TOKEN_EXPIRY", 1*time.Hour)
}

func (OAuth) GetRefreshTokenExpiry() time.Duration {
	return GetDurationEnv("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour)
}

func (OAuth) GetAuthCodeExpiry() time.Duration {
	return GetDurationEnv("AUTH_CODE_EXPIRY", 15*time.Minute)
}
