// Package config exposes runtime configuration behind small per-concern
// interfaces, all backed by environment variables. A .env file in the
// working directory is honoured for local development.
package config

import "github.com/joho/godotenv"

type Config interface {
	EnvConfig
	OAuthConfig
	StoreConfig
}

type EnvConfig interface {
	GetPort() string
	GetMetricsPort() string
	GetAppName() string
	GetEnv() string
	GetAccessTokenRoute() string
	GetServicesFile() string
	GetUsersFile() string
	GetIssuer() string
	GetJWTSecret() string
}

type mainConfig struct {
	EnvVars
	OAuth
	Store
}

func New() Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()
	return mainConfig{}
}
