package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/akolanti/DocSummarizer/internal/config"
	"github.com/akolanti/DocSummarizer/internal/data/redisStore"
	"github.com/akolanti/DocSummarizer/internal/domain/authModel"
	"github.com/akolanti/DocSummarizer/pkg/logger_i"
)

const sessionKeyPrefix = "session:"

type RedisSessionStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisSessionStore(ctx context.Context, cfg config.RedisConfig) (*RedisSessionStore, error) {
	s, err := redisStore.GetRedisStore(ctx, cfg, cfg.SessionDB)
	if err != nil {
		return nil, err
	}
	return &RedisSessionStore{store: s, logger: logger_i.NewLogger("SessionStore")}, nil
}

// SaveSession lets Redis expire the key at the session's ExpiresAt.
func (s *RedisSessionStore) SaveSession(ctx context.Context, session authModel.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, sessionKeyPrefix+session.Token, data, ttl); err != nil {
		s.logger.ForContext(ctx).Error("Failed to save session", "error", err)
		return err
	}
	return nil
}

func (s *RedisSessionStore) GetSession(ctx context.Context, token string) (authModel.Session, bool) {
	var session authModel.Session
	val, err := s.store.Get(ctx, sessionKeyPrefix+token)
	if s.store.IsNil(err) {
		return session, false
	} else if err != nil {
		s.logger.ForContext(ctx).Error("Failed to read session", "error", err)
		return session, false
	}
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return session, false
	}
	return session, true
}

func (s *RedisSessionStore) DeleteSession(ctx context.Context, token string) {
	if err := s.store.Del(ctx, sessionKeyPrefix+token); err != nil {
		s.logger.ForContext(ctx).Error("Error deleting session from Redis", "error", err)
		return
	}
	s.logger.ForContext(ctx).Debug("Session deleted from Redis")
}

func TestSessionStore(store *redisStore.Store) *RedisSessionStore {
	return &RedisSessionStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
