package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetClientConfig(t *testing.T) {
	t.Setenv("STROBE_ADDRESS", "")
	t.Setenv("STROBE_USERNAME", "env-user")
	t.Setenv("STROBE_PASSWORD", "env-secret")

	cfg, rest, err := GetClientConfig([]string{"-u", "flag-user", "-t", "3s", "movie", "Inception"})
	require.NoError(t, err)

	assert.Equal(t, "env-user", cfg.Username, "env wins over flags")
	assert.Equal(t, "env-secret", cfg.Password)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, defaultHTTPAddress, cfg.ServerAddress)
	assert.Equal(t, defaultLogLevel, cfg.LogLevel)
	assert.Equal(t, []string{"movie", "Inception"}, rest)
}

func TestGetClientConfig_BadFlag(t *testing.T) {
	_, _, err := GetClientConfig([]string{"-unknown"})
	assert.Error(t, err)
}
