package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailgate/internal/config"
)

// Tests here use t.Setenv and therefore cannot run in parallel.

func missingFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_KEYS", " key-one , ,key-two")
	t.Setenv("SMTP_USER", "mailer@example.com")

	cfg, err := config.Load(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"key-one", "key-two"}, cfg.APIKeys)
	assert.Equal(t, ":3000", cfg.Address)
	assert.Equal(t, config.TransportSMTP, cfg.Transport)
	assert.Equal(t, "mailer@example.com", cfg.SenderAddress())
	assert.Equal(t, "Default App Name", cfg.FromName)
	assert.Equal(t, int64(300000), cfg.ConfigCacheTTL)
	assert.Equal(t, int64(3000), cfg.ConfigFetchTimeout)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 30*time.Second, cfg.SMTP.Timeout)
	assert.Equal(t, 1, cfg.BulkConcurrency)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	assert.Len(t, cfg.SenderConfigOptions(), 4)
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte(
		"API_KEYS=from-file\nSMTP_FROM=noreply@example.com\nMAIL_TRANSPORT=RESEND\nCONFIG_CACHE_TTL=1000\n",
	), 0o600))
	t.Setenv("API_KEYS", "from-env")
	// godotenv sets variables directly; register them for cleanup.
	t.Setenv("SMTP_FROM", "")
	t.Setenv("MAIL_TRANSPORT", "")
	t.Setenv("CONFIG_CACHE_TTL", "")
	for _, k := range []string{"SMTP_FROM", "MAIL_TRANSPORT", "CONFIG_CACHE_TTL"} {
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := config.Load(file)
	require.NoError(t, err)

	assert.Equal(t, []string{"from-env"}, cfg.APIKeys)
	assert.Equal(t, "noreply@example.com", cfg.SenderAddress())
	assert.Equal(t, config.TransportResend, cfg.Transport)
	assert.Equal(t, int64(1000), cfg.ConfigCacheTTL)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("API_KEYS", "")
	t.Setenv("SMTP_USER", "")
	t.Setenv("SMTP_FROM", "")
	t.Setenv("MAIL_TRANSPORT", "pigeon")

	_, err := config.Load(missingFile(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrNoAPIKeys)
	assert.ErrorIs(t, err, config.ErrUnknownTransport)
	assert.ErrorIs(t, err, config.ErrNoSenderAddress)
}

func TestLoad_BadValue(t *testing.T) {
	t.Setenv("API_KEYS", "k")
	t.Setenv("SMTP_USER", "u@example.com")
	t.Setenv("SMTP_PORT", "not-a-port")

	_, err := config.Load(missingFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}
