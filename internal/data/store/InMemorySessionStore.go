package store

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/DocSummarizer/internal/domain/authModel"
)

type InMemorySessionStore struct {
	sessionLock *sync.RWMutex
	sessionMap  map[string]authModel.Session
	now         func() time.Time
}

func InitInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessionLock: new(sync.RWMutex),
		sessionMap:  make(map[string]authModel.Session),
		now:         time.Now,
	}
}

func (store *InMemorySessionStore) SaveSession(ctx context.Context, session authModel.Session) error {
	store.sessionLock.Lock()
	defer store.sessionLock.Unlock()
	store.sessionMap[session.Token] = session
	return nil
}

// GetSession drops expired sessions lazily on lookup.
func (store *InMemorySessionStore) GetSession(ctx context.Context, token string) (authModel.Session, bool) {
	store.sessionLock.RLock()
	session, ok := store.sessionMap[token]
	store.sessionLock.RUnlock()
	if !ok {
		return authModel.Session{}, false
	}
	if !session.ExpiresAt.IsZero() && store.now().After(session.ExpiresAt) {
		store.DeleteSession(ctx, token)
		return authModel.Session{}, false
	}
	return session, true
}

func (store *InMemorySessionStore) DeleteSession(ctx context.Context, token string) {
	store.sessionLock.Lock()
	defer store.sessionLock.Unlock()
	delete(store.sessionMap, token)
}
