package store

import (
	"context"
	"sync"

	"github.com/akolanti/DocSummarizer/internal/domain/authModel"
	"github.com/akolanti/DocSummarizer/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem AuthStore")

type InMemoryUserStore struct {
	userMutex *sync.RWMutex
	userMap   map[string]authModel.User
}

func InitInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		userMutex: new(sync.RWMutex),
		userMap:   make(map[string]authModel.User),
	}
}

func (store *InMemoryUserStore) CreateUser(ctx context.Context, user authModel.User) error {
	store.userMutex.Lock()
	defer store.userMutex.Unlock()
	if _, taken := store.userMap[user.Username]; taken {
		return authModel.ErrUserExists
	}
	store.userMap[user.Username] = user
	inMemLogger.Debug("Saved user to store", "username", user.Username)
	return nil
}

func (store *InMemoryUserStore) GetUser(ctx context.Context, username string) (authModel.User, bool) {
	store.userMutex.RLock()
	defer store.userMutex.RUnlock()
	user, found := store.userMap[username]
	return user, found
}
