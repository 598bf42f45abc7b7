package repository

import (
	"time"
)

// CacheRepository defines cache operations. The leaderboard service uses it
// to keep computed positions as a derived view with a bounded staleness
// window; cached values are never a source of truth.
type CacheRepository interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
	SetJSON(key string, value interface{}, expiration time.Duration) error
	GetJSON(key string, dest interface{}) error
	// SetNX sets the key only when absent; it backs short-lived cooldowns.
	SetNX(key string, value interface{}, expiration time.Duration) (bool, error)
}
