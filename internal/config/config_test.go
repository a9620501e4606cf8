package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chuipos/internal/core/apperror"
)

func TestLoad_CreatesFileWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, int64(1), cfg.WalkInCustomerID)
	assert.FileExists(t, path)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"base_url: http://10.0.0.5:9000/api/pos\nprinter_name: EPSON\nwalk_in_customer_id: 3\n"), 0o644))

	t.Setenv("POS_REQUEST_TIMEOUT", "5s")
	t.Setenv("POS_WALK_IN_CUSTOMER_ID", "9")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:9000/api/pos", cfg.BaseURL)
	assert.Equal(t, "http://10.0.0.5:9000/api/pos/", cfg.NormalizedBaseURL())
	assert.Equal(t, "EPSON", cfg.PrinterName)
	assert.Equal(t, int64(9), cfg.WalkInCustomerID)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.BaseURL = "not a url"
	assert.True(t, apperror.IsValidation(cfg.Validate()))

	cfg = Default()
	cfg.RequestTimeout = 0
	assert.True(t, apperror.IsValidation(cfg.Validate()))

	assert.NoError(t, Default().Validate())
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	cfg := Default()
	cfg.PrinterName = "XP-80"
	cfg.SoundEnabled = false

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "XP-80", loaded.PrinterName)
	assert.False(t, loaded.SoundEnabled)
}
