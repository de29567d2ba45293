package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("IDENTITY_BACKEND", "memory")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, time.Hour, cfg.Session.Expiration)
	assert.True(t, cfg.CSRF.Enabled)
	assert.Equal(t, time.Minute, cfg.GenAI.Timeout)
	assert.Equal(t, "INR", cfg.Prompt.Currency)
	assert.True(t, cfg.Render.Markdown)
	assert.Equal(t, "tolerate", cfg.Intake.DestinationPolicy)
	assert.False(t, cfg.OAuth.Google.Enabled())
}

func TestLoadLegacyEnvironment(t *testing.T) {
	t.Setenv("API_KEY", "gemini-key")
	t.Setenv("MODEL_NAME", "gemini-1.5-pro")
	t.Setenv("FIREBASE_API_KEY", "firebase-key")
	t.Setenv("GOOGLE_CLIENT_ID", "client")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gemini-key", cfg.GenAI.APIKey)
	assert.Equal(t, "gemini-1.5-pro", cfg.GenAI.Model)
	assert.Equal(t, "firebase-key", cfg.Identity.APIKey)
	assert.True(t, cfg.OAuth.Google.Enabled())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "itinerary.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":8088"
session:
  expiration: 30m
identity:
  backend: memory
intake:
  destination_policy: reject
genai:
  timeout: 15s
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8088", cfg.Server.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Session.Expiration)
	assert.Equal(t, "reject", cfg.Intake.DestinationPolicy)
	assert.Equal(t, 15*time.Second, cfg.GenAI.Timeout)
}

func TestLoadRejectsBadIdentityConfig(t *testing.T) {
	t.Setenv("IDENTITY_BACKEND", "toolkit")
	t.Setenv("IDENTITY_API_KEY", "")
	t.Setenv("FIREBASE_API_KEY", "")

	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("IDENTITY_BACKEND", "ldap")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
