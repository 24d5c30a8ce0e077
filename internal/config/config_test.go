package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/illmade-knight/service-info/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// An empty file keeps every default.
	cfg, err := config.Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, config.SourceMemory, cfg.Source.Kind)
	assert.Equal(t, "en", cfg.I18n.DefaultLanguage)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.PubSub.Enabled())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
source:
  kind: api
  base_url: https://services.example.org
  timeout: 3s
logging:
  format: console
`)
	t.Setenv("SERVICEINFO_SOURCE_TOKEN", "secret")
	t.Setenv("SERVICEINFO_LOGGING_LEVEL", "debug")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, config.SourceAPI, cfg.Source.Kind)
	assert.Equal(t, "https://services.example.org", cfg.Source.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Source.Timeout)
	assert.Equal(t, "secret", cfg.Source.Token)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "api without base url", body: "source:\n  kind: api\n"},
		{name: "unknown source", body: "source:\n  kind: ftp\n"},
		{name: "firestore without project", body: "source:\n  kind: firestore\n"},
		{name: "topic without project", body: "pubsub:\n  topic: notifications\n"},
		{name: "bad port", body: "server:\n  port: 0\n"},
		{name: "bad log format", body: "logging:\n  format: xml\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tc.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
