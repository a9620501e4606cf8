package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chuipos/internal/core/apperror"
)

type fakeRepo struct {
	session *Session
	err     error
	calls   int
}

func (f *fakeRepo) Login(context.Context, Credentials) (*Session, error) {
	f.calls++
	return f.session, f.err
}

type memStore struct {
	session *Session
}

func (m *memStore) Save(s Session) error { m.session = &s; return nil }

func (m *memStore) Current() (*Session, bool) { return m.session, m.session != nil }

func (m *memStore) Clear() error { m.session = nil; return nil }

func TestCredentials_Validate(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, Credentials{Username: "cashier01", PIN: "1234"}.Validate(ctx))
	assert.True(t, apperror.IsValidation(Credentials{Username: "", PIN: "1234"}.Validate(ctx)))
	assert.True(t, apperror.IsValidation(Credentials{Username: "a", PIN: "123"}.Validate(ctx)))
	assert.True(t, apperror.IsValidation(Credentials{Username: "a", PIN: "12a4"}.Validate(ctx)))
}

func TestService_LoginStoresSession(t *testing.T) {
	repo := &fakeRepo{session: &Session{Token: "tok", FullName: "Jane Doe", Permissions: []string{"sale:create"}}}
	store := &memStore{}
	svc := NewService(repo, store)

	s, err := svc.Login(context.Background(), Credentials{Username: " cashier01 ", PIN: "1234"})
	require.NoError(t, err)

	assert.Equal(t, "cashier01", s.Username)
	current, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, "tok", current.Token)
	assert.True(t, current.HasPermission("sale:create"))
}

func TestService_LoginRejectsBadPINLocally(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, &memStore{})

	_, err := svc.Login(context.Background(), Credentials{Username: "cashier01", PIN: "12"})
	assert.True(t, apperror.IsValidation(err))
	assert.Zero(t, repo.calls)
}

func TestService_LoginFailure(t *testing.T) {
	store := &memStore{}
	svc := NewService(&fakeRepo{err: apperror.NewServer(401, "Invalid username or PIN")}, store)

	_, err := svc.Login(context.Background(), Credentials{Username: "cashier01", PIN: "0000"})
	require.Error(t, err)
	assert.Equal(t, "Invalid username or PIN", apperror.UserMessage(err))
	_, ok := store.Current()
	assert.False(t, ok)
}

func TestService_Logout(t *testing.T) {
	store := &memStore{session: &Session{Token: "tok"}}
	svc := NewService(&fakeRepo{err: errors.New("unused")}, store)

	require.NoError(t, svc.Logout(context.Background()))
	_, ok := svc.Current()
	assert.False(t, ok)
}
