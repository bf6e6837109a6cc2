package config

import (
	"strconv"
	"time"
)

// StoreConfig selects and parameterises the ticket store backend.
type StoreConfig interface {
	// GetStoreBackend returns "memory" or "redis".
	GetStoreBackend() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetStoreCleanupInterval() time.Duration
}

type Store struct{}

var _ StoreConfig = Store{}

func (Store) GetStoreBackend() string {
	return GetEnv("TICKET_STORE", "memory")
}

func (Store) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "localhost:6379")
}

func (Store) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

func (Store) GetRedisDB() int {
	db, err := strconv.Atoi(GetEnv("REDIS_DB", "0"))
	if err != nil {
		return 0
	}
	return db
}

func (Store) GetStoreCleanupInterval() time.Duration {
	return GetDurationEnv("TICKET_STORE_CLEANUP_INTERVAL", time.Minute)
}
