// Package session persists the signed-in cashier between runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"chuipos/internal/domain/auth"
)

// Store keeps the session in memory and mirrors it to a JSON file readable
// only by the current user. The zero path keeps it in memory only.
type Store struct {
	path string

	mu      sync.RWMutex
	current *auth.Session
}

// Open loads the session saved at path, if any.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var saved auth.Session
	if err := json.Unmarshal(data, &saved); err != nil {
		// A corrupt file means "signed out".
		return s, nil
	}
	if saved.Token != "" {
		s.current = &saved
	}
	return s, nil
}

// Save replaces the session.
func (s *Store) Save(session auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path != "" {
		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
		if err := os.WriteFile(s.path, data, 0o600); err != nil {
			return fmt.Errorf("write session file: %w", err)
		}
	}
	s.current = &session
	return nil
}

// Current returns a copy of the session.
func (s *Store) Current() (*auth.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, false
	}
	cp := *s.current
	cp.Permissions = append([]string(nil), s.current.Permissions...)
	return &cp, true
}

// Token returns the bearer token or "".
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Clear signs the cashier out.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// IsLoggedIn reports whether a session with an unexpired token exists.
func (s *Store) IsLoggedIn() bool {
	token := s.Token()
	if token == "" {
		return false
	}
	exp, ok := ExpiresAt(token)
	return !ok || time.Now().Before(exp)
}

// HasPermission checks the stored session's permissions.
func (s *Store) HasPermission(code string) bool {
	current, ok := s.Current()
	return ok && current.HasPermission(code)
}

// ExpiresAt reads the exp claim without verifying the signature; the
// backend remains the authority on validity.
func ExpiresAt(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
