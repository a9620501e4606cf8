package auth

import (
	"context"
	"fmt"
	"strings"

	"chuipos/internal/core/apperror"
	"chuipos/pkg/logger"
)

// Service signs cashiers in and out.
type Service struct {
	repo  Repository
	store SessionStore
}

// NewService creates a new auth service.
func NewService(repo Repository, store SessionStore) *Service {
	return &Service{repo: repo, store: store}
}

// Login validates creds, authenticates remotely and stores the session.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Session, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	if err := creds.Validate(ctx); err != nil {
		return nil, err
	}

	session, err := s.repo.Login(ctx, creds)
	if err != nil {
		logger.Warn(ctx, "login failed", "username", creds.Username, "error", err)
		return nil, fmt.Errorf("login: %w", err)
	}
	if session.Token == "" {
		return nil, apperror.NewDecode(fmt.Errorf("login response without token"))
	}
	if session.Username == "" {
		session.Username = creds.Username
	}

	if err := s.store.Save(*session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	logger.Info(ctx, "cashier logged in",
		"username", session.Username,
		"permissions", len(session.Permissions))

	return session, nil
}

// Logout forgets the stored session.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	logger.Info(ctx, "cashier logged out")
	return nil
}

// Current returns the stored session, if any.
func (s *Service) Current() (*Session, bool) {
	return s.store.Current()
}
