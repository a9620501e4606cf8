package auth

import "context"

// Repository is the remote login endpoint.
type Repository interface {
	// Login exchanges credentials for a session.
	Login(ctx context.Context, creds Credentials) (*Session, error)
}

// SessionStore keeps the session between runs.
type SessionStore interface {
	Save(s Session) error
	Current() (*Session, bool)
	Clear() error
}
