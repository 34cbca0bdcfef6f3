package authModel

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionNotFound    = errors.New("session not found or expired")
)

type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

type UserStore interface {
	// CreateUser fails with ErrUserExists if the username is taken.
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, username string) (User, bool)
}

type SessionStore interface {
	SaveSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, token string) (Session, bool)
	DeleteSession(ctx context.Context, token string)
}
