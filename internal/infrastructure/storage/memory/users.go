package memory

import (
	"context"
	"errors"
	"time"

	"chuipos/internal/core/apperror"
	appctx "chuipos/internal/core/context"
	"chuipos/internal/core/security"
)

// MsgInvalidCredentials is returned for any unknown user or wrong PIN.
const MsgInvalidCredentials = "Invalid username or PIN"

// User is a cashier account.
type User struct {
	Username    string
	FullName    string
	PINHash     string
	Permissions []string
	IsActive    bool

	FailedLoginAttempts int
	LockedUntil         *time.Time
}

// IsLocked returns true if account is locked at now.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// CanLogin checks if user can login.
func (u *User) CanLogin(now time.Time) error {
	if !u.IsActive {
		return apperror.NewForbidden("Account is disabled")
	}
	if u.IsLocked(now) {
		return apperror.NewForbidden("Account is temporarily locked. Try again later.")
	}
	return nil
}

// RecordFailedLogin increments failed login counter.
func (u *User) RecordFailedLogin(now time.Time, maxAttempts int, lockDuration time.Duration) {
	u.FailedLoginAttempts++
	if maxAttempts > 0 && u.FailedLoginAttempts >= maxAttempts {
		lockUntil := now.Add(lockDuration)
		u.LockedUntil = &lockUntil
	}
}

// RecordSuccessfulLogin resets failed login counter.
func (u *User) RecordSuccessfulLogin() {
	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
}

// AddUser registers a cashier with a plain PIN that is hashed on the way in.
func (s *Store) AddUser(_ context.Context, username, fullName, pin string, permissions []string) error {
	hash, err := security.HashPIN(pin)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return apperror.NewConflict("user already exists").WithDetail("username", username)
	}
	s.users[username] = &User{
		Username:    username,
		FullName:    fullName,
		PINHash:     hash,
		Permissions: append([]string(nil), permissions...),
		IsActive:    true,
	}
	return nil
}

// Authenticate checks a username and PIN and returns the cashier identity.
func (s *Store) Authenticate(ctx context.Context, username, pin string) (*appctx.UserContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return nil, apperror.NewUnauthorized(MsgInvalidCredentials)
	}

	now := s.now()
	if err := user.CanLogin(now); err != nil {
		return nil, err
	}

	if err := security.ComparePIN(user.PINHash, pin); err != nil {
		if !errors.Is(err, security.ErrPINMismatch) {
			return nil, apperror.NewInternal(err)
		}
		user.RecordFailedLogin(now, s.cfg.MaxLoginAttempts, s.cfg.LockDuration)
		s.log.WithContext(ctx).Warnw("failed login",
			"username", username,
			"attempts", user.FailedLoginAttempts,
			"locked", user.IsLocked(now),
		)
		return nil, apperror.NewUnauthorized(MsgInvalidCredentials)
	}

	user.RecordSuccessfulLogin()
	return &appctx.UserContext{
		Username:    user.Username,
		FullName:    user.FullName,
		Permissions: append([]string(nil), user.Permissions...),
	}, nil
}
