package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "chuipos/internal/core/context"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc, err := NewJWTService(DefaultJWTConfig("test-secret"))
	require.NoError(t, err)

	token, expiresAt, err := svc.GenerateAccessToken(appctx.UserContext{
		Username:    "cashier01",
		FullName:    "Front Counter",
		Permissions: []string{"sale:create"},
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(12*time.Hour), expiresAt, time.Minute)

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cashier01", user.Username)
	assert.Equal(t, "Front Counter", user.FullName)
	assert.Equal(t, []string{"sale:create"}, user.Permissions)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	issuer, err := NewJWTService(DefaultJWTConfig("one"))
	require.NoError(t, err)
	verifier, err := NewJWTService(DefaultJWTConfig("two"))
	require.NoError(t, err)

	token, _, err := issuer.GenerateAccessToken(appctx.UserContext{Username: "cashier01"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	cfg := DefaultJWTConfig("secret")
	cfg.AccessTokenTTL = time.Nanosecond
	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	token, _, err := svc.GenerateAccessToken(appctx.UserContext{Username: "cashier01"})
	require.NoError(t, err)
	time.Sleep(time.Second)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(DefaultJWTConfig(""))
	assert.Error(t, err)
}

func TestPIN(t *testing.T) {
	hash, err := HashPIN("1234")
	require.NoError(t, err)

	assert.NoError(t, ComparePIN(hash, "1234"))
	assert.ErrorIs(t, ComparePIN(hash, "4321"), ErrPINMismatch)
}
