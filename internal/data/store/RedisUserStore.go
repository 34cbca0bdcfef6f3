package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/DocSummarizer/internal/config"
	"github.com/akolanti/DocSummarizer/internal/data/redisStore"
	"github.com/akolanti/DocSummarizer/internal/domain/authModel"
	"github.com/akolanti/DocSummarizer/pkg/logger_i"
)

const userKeyPrefix = "user:"

type RedisUserStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisUserStore(ctx context.Context, cfg config.RedisConfig) (*RedisUserStore, error) {
	s, err := redisStore.GetRedisStore(ctx, cfg, cfg.UserDB)
	if err != nil {
		return nil, err
	}
	return &RedisUserStore{store: s, logger: logger_i.NewLogger("UserStore")}, nil
}

func (s *RedisUserStore) CreateUser(ctx context.Context, user authModel.User) error {
	log := s.logger.ForContext(ctx).With("username", user.Username)
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	created, err := s.store.SetNX(ctx, userKeyPrefix+user.Username, data, 0)
	if err != nil {
		log.Error("Failed to save user", "error", err)
		return err
	}
	if !created {
		return authModel.ErrUserExists
	}
	log.Debug("Saved user to Redis")
	return nil
}

func (s *RedisUserStore) GetUser(ctx context.Context, username string) (authModel.User, bool) {
	var user authModel.User
	log := s.logger.ForContext(ctx).With("username", username)

	val, err := s.store.Get(ctx, userKeyPrefix+username)
	if s.store.IsNil(err) {
		return user, false
	} else if err != nil {
		log.Error("Failed to read user", "error", err)
		return user, false
	}

	if err := json.Unmarshal([]byte(val), &user); err != nil {
		log.Error("Corrupt user record", "error", err)
		return user, false
	}
	return user, true
}

func TestUserStore(store *redisStore.Store) *RedisUserStore {
	return &RedisUserStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
