package store

import (
	"context"

	"github.com/akolanti/DocSummarizer/internal/config"
	"github.com/akolanti/DocSummarizer/internal/domain/authModel"
)

// NewUserStore prefers Redis and falls back to memory when it is offline.
func NewUserStore(ctx context.Context, cfg config.RedisConfig) authModel.UserStore {
	s, err := GetRedisUserStore(ctx, cfg)
	if err != nil {
		inMemLogger.Warn("Redis unavailable, using in-memory user store", "error", err)
		return InitInMemoryUserStore()
	}
	return s
}

func NewSessionStore(ctx context.Context, cfg config.RedisConfig) authModel.SessionStore {
	s, err := GetRedisSessionStore(ctx, cfg)
	if err != nil {
		inMemLogger.Warn("Redis unavailable, using in-memory session store", "error", err)
		return InitInMemorySessionStore()
	}
	return s
}
