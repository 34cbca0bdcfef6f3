package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/akolanti/DocSummarizer/internal/adapter/utils"
	"github.com/akolanti/DocSummarizer/internal/config"
	"github.com/akolanti/DocSummarizer/internal/domain/authModel"
	"github.com/akolanti/DocSummarizer/internal/domain/commonModels"
	"github.com/akolanti/DocSummarizer/pkg/logger_i"
	"golang.org/x/crypto/bcrypt"
)

var hashCost = bcrypt.DefaultCost

// Service owns accounts and the opaque session tokens handed out at login.
type Service struct {
	users    authModel.UserStore
	sessions authModel.SessionStore
	ttl      time.Duration
	now      func() time.Time
	logger   *logger_i.Logger
}

func NewService(users authModel.UserStore, sessions authModel.SessionStore, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = config.SessionTTL
	}
	return &Service{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger_i.NewLogger("Auth"),
	}
}

func (s *Service) Signup(ctx context.Context, username string, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return &commonModels.InputError{Field: "username", Message: "username is required"}
	}
	if password == "" {
		return &commonModels.InputError{Field: "password", Message: "password is required"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return err
	}
	err = s.users.CreateUser(ctx, authModel.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return err
	}
	s.logger.ForContext(ctx).Info("User signed up", "username", username)
	return nil
}

func (s *Service) Login(ctx context.Context, username string, password string) (authModel.Session, error) {
	username = strings.TrimSpace(username)
	user, found := s.users.GetUser(ctx, username)
	if !found {
		return authModel.Session{}, authModel.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.ForContext(ctx).Error("Stored hash unusable", "username", username, "error", err)
		}
		return authModel.Session{}, authModel.ErrInvalidCredentials
	}

	session := authModel.Session{
		Token:     utils.GetNewUUID(),
		Username:  user.Username,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return authModel.Session{}, err
	}
	s.logger.ForContext(ctx).Info("User logged in", "username", username)
	return session, nil
}

func (s *Service) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	s.sessions.DeleteSession(ctx, token)
}

// Validate resolves a token to a live session.
func (s *Service) Validate(ctx context.Context, token string) (authModel.Session, bool) {
	if token == "" {
		return authModel.Session{}, false
	}
	session, ok := s.sessions.GetSession(ctx, token)
	if !ok || s.now().After(session.ExpiresAt) {
		return authModel.Session{}, false
	}
	return session, true
}
