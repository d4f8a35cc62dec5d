package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "https://crm.aipilot.ps", config.CRM.BaseURL)
	assert.Equal(t, "propdesk_session", config.Sessions.CookieName)
	assert.Equal(t, "en", config.Locale.Default)
	assert.False(t, config.IsProduction())
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "propdesk.toml")
	content := `
environment = "production"

[server]
port = 9090

[crm]
base_url = "http://localhost:4000"
timeout = "5s"

[sessions]
ttl = "1h"

[locale]
default = "ar"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.True(t, config.IsProduction())
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "http://localhost:4000", config.CRM.BaseURL)
	assert.Equal(t, "ar", config.Locale.Default)
	assert.Equal(t, "5s", config.CRM.Timeout)
	// Values not in the file keep their defaults.
	assert.Equal(t, "propdesk_session", config.Sessions.CookieName)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, config.Server.Port)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PROPDESK_ENV", "prod")
	t.Setenv("PROPDESK_PORT", "3000")
	t.Setenv("PROPDESK_CRM_BASE_URL", "http://crm.test")
	t.Setenv("PROPDESK_SESSION_SECRET", "supersecret")
	t.Setenv("PROPDESK_LOCALE", "AR")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, config.IsProduction())
	assert.Equal(t, 3000, config.Server.Port)
	assert.Equal(t, "http://crm.test", config.CRM.BaseURL)
	assert.Equal(t, "supersecret", config.Sessions.Secret)
	assert.Equal(t, "ar", config.Locale.Default)
}

func TestInvalidLocaleFallsBackToEnglish(t *testing.T) {
	t.Setenv("PROPDESK_LOCALE", "fr")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "en", config.Locale.Default)
}

func TestDurationAccessors(t *testing.T) {
	crm := CRMConfig{Timeout: "bogus"}
	assert.Equal(t, "30s", crm.GetTimeout().String())

	sessions := SessionsConfig{TTL: "2h"}
	assert.Equal(t, "2h0m0s", sessions.GetTTL().String())
}
