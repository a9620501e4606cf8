package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chuipos/internal/domain/auth"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "cashier01",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := Open(path)
	require.NoError(t, err)
	assert.False(t, s.IsLoggedIn())

	token := signed(t, time.Now().Add(time.Hour))
	require.NoError(t, s.Save(auth.Session{
		Token:       token,
		Username:    "cashier01",
		FullName:    "Jane Doe",
		Permissions: []string{"sale:create"},
	}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, token, reopened.Token())
	assert.True(t, reopened.IsLoggedIn())
	assert.True(t, reopened.HasPermission("sale:create"))
	assert.False(t, reopened.HasPermission("report:read"))
}

func TestStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(auth.Session{Token: "x"}))

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Token())
	assert.NoFileExists(t, path)
	require.NoError(t, s.Clear())
}

func TestStore_ExpiredToken(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	require.NoError(t, s.Save(auth.Session{Token: signed(t, time.Now().Add(-time.Minute))}))

	assert.False(t, s.IsLoggedIn())
}

func TestStore_CorruptFileIsSignedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := Open(path)
	require.NoError(t, err)
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestExpiresAt(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got, ok := ExpiresAt(signed(t, exp))
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = ExpiresAt("opaque-token")
	assert.False(t, ok)
}
