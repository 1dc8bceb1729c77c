package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WARDEN_CONFIG_PATH", t.TempDir()) // no file there

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1800, cfg.SessionTTLSeconds)
	assert.Equal(t, 480, cfg.TokenTTLSeconds)
	assert.Equal(t, "roles", cfg.RolesClaim)
	assert.Equal(t, []string{"apikey"}, cfg.Authenticators)
	assert.Equal(t, "default", cfg.Source("session_ttl"))
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("session_ttl: 600\nissuer: warden-test\nauthenticators: [apikey, jwt]\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), content, 0o600))
	t.Setenv("WARDEN_CONFIG_PATH", dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 600, cfg.SessionTTLSeconds)
	assert.Equal(t, "warden-test", cfg.Issuer)
	assert.Equal(t, []string{"apikey", "jwt"}, cfg.Authenticators)
	assert.Equal(t, "file", cfg.Source("session_ttl"))
	assert.Equal(t, "file", cfg.Source("issuer"))

	// Untouched attributes keep defaults.
	assert.Equal(t, 480, cfg.TokenTTLSeconds)
	assert.Equal(t, "default", cfg.Source("token_ttl"))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("session_ttl: 600\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), content, 0o600))
	t.Setenv("WARDEN_CONFIG_PATH", dir)
	t.Setenv("WARDEN_SESSION_TTL", "120")
	t.Setenv("WARDEN_AUTHENTICATORS", "jwt, apikey")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.SessionTTLSeconds)
	assert.Equal(t, "environment", cfg.Source("session_ttl"))
	assert.Equal(t, []string{"jwt", "apikey"}, cfg.Authenticators)
}

func TestLoad_BadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{not yaml"), 0o600))
	t.Setenv("WARDEN_CONFIG_PATH", dir)

	_, err := Load()
	assert.Error(t, err)
}

func TestConfig_Attributes(t *testing.T) {
	t.Setenv("WARDEN_CONFIG_PATH", t.TempDir())
	t.Setenv("WARDEN_ISSUER", "warden-test")

	cfg, err := Load()
	require.NoError(t, err)

	attrs := cfg.Attributes()
	byName := map[string]Attribute{}
	for _, a := range attrs {
		byName[a.Name] = a
	}

	assert.Equal(t, "warden-test", byName["issuer"].Value)
	assert.Equal(t, "environment", byName["issuer"].Source)
	assert.Equal(t, "1800", byName["session_ttl"].Value)
	assert.Equal(t, "default", byName["session_ttl"].Source)
}

func TestConfig_Durations(t *testing.T) {
	cfg := newDefault()
	assert.Equal(t, "30m0s", cfg.SessionTTL().String())
	assert.Equal(t, "8m0s", cfg.TokenTTL().String())
}

func TestConfig_IsAuthenticatorEnabled(t *testing.T) {
	cfg := newDefault()
	assert.True(t, cfg.IsAuthenticatorEnabled("apikey"))
	assert.False(t, cfg.IsAuthenticatorEnabled("jwt"))
}
