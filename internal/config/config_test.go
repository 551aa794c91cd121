package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, time.Hour, cfg.Share.DefaultExpire.Std())
	assert.Equal(t, 10*time.Minute, cfg.Share.SweepInterval.Std())
	assert.Equal(t, time.Minute, cfg.Notes.CleanupInterval.Std())
}

func Test_Load_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
  external_url: https://notes.example.com
share:
  default_expire: 30m
  max_expire: 48h
smtp:
  host: mail.example.com
  from: noreply@example.com
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://notes.example.com", cfg.Server.ExternalURL)
	assert.Equal(t, 30*time.Minute, cfg.Share.DefaultExpire.Std())
	assert.Equal(t, 48*time.Hour, cfg.Share.MaxExpire.Std())
	assert.Equal(t, "mail.example.com", cfg.SMTP.Host)

	externalURL, err := cfg.WebExternalURL()
	require.NoError(t, err)
	assert.Equal(t, "notes.example.com", externalURL.Host)
}

func Test_Load_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func Test_Load_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "1234")
	t.Setenv("POSTGRES_URL", "postgres://db.example.com:5432/notes")
	t.Setenv("SHARE_DEFAULT_EXPIRE", "15m")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 1234, cfg.Server.Port)
	assert.Equal(t, "postgres://db.example.com:5432/notes", cfg.Database.URL)
	assert.Equal(t, 15*time.Minute, cfg.Share.DefaultExpire.Std())
}

func Test_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 72000 }},
		{"bad external url", func(c *Config) { c.Server.ExternalURL = "not a url" }},
		{"empty database url", func(c *Config) { c.Database.URL = "" }},
		{"zero default expire", func(c *Config) { c.Share.DefaultExpire = 0 }},
		{"max below default", func(c *Config) { c.Share.MaxExpire = Duration(time.Minute) }},
		{"zero max data size", func(c *Config) { c.Server.MaxDataSize = 0 }},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			cfg := Default()
			testCase.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
