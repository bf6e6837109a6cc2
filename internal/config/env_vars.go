package config

import (
	"fmt"
	"os"
	"time"
)

const (
	portEnvVar        = "PORT"
	metricsPortEnvVar = "METRICS_PORT"
	appNameVar        = "APP_NAME"
	accessTokenRoute  = "ACCESS_TOKEN_ROUTE"
	servicesFileVar   = "SERVICES_FILE"
	usersFileVar      = "USERS_FILE"
	issuerVar         = "ISSUER"
	jwtSecretVar      = "JWT_SECRET"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetMetricsPort() string {
	port := GetEnv(metricsPortEnvVar, "9090")
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Go Token Service")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetAccessTokenRoute returns the path the token endpoint is served on.
// The exact path is a deployment detail; the default matches the protocol
// family this service fronts.
func (EnvVars) GetAccessTokenRoute() string {
	return GetEnv(accessTokenRoute, "/oauth2.0/accessToken")
}

func (EnvVars) GetServicesFile() string {
	return GetEnv(servicesFileVar, "./data/services.yaml")
}

func (EnvVars) GetUsersFile() string {
	return GetEnv(usersFileVar, "./data/users.yaml")
}

// GetIssuer returns the iss claim stamped on JWT access tokens.
func (EnvVars) GetIssuer() string {
	return GetEnv(issuerVar, "http://localhost:8080")
}

// GetJWTSecret returns the HMAC secret for JWT access tokens. Empty
// disables JWT access tokens entirely.
func (EnvVars) GetJWTSecret() string {
	return GetEnv(jwtSecretVar, "")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetDurationEnv parses a duration env var, falling back to the default on
// absence or parse failure.
func GetDurationEnv(envVar string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
