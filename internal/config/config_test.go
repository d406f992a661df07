package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600))
	return dir
}

func TestLoad_FileThenEnvOverrides(t *testing.T) {
	dir := writeConfig(t, `
port: "8081"
env: development
db:
  path: data/projects.db
auth:
  secret: from-file
  token_expires_in: 2h
images:
  bucket: pics
`)
	t.Setenv("APP_SECRET", "from-env")
	t.Setenv("NODE_ENV", "production")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "data/projects.db", cfg.DBPath)
	assert.Equal(t, "from-env", cfg.Auth.Secret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "accessToken", cfg.Auth.CookieName)
	assert.Equal(t, "pics", cfg.Images.Bucket)
	assert.Equal(t, "projects", cfg.Images.Folder)
	assert.Equal(t, int64(5<<20), cfg.Images.MaxUploadSize)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("APP_SECRET", "s")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FrontendOrigins(t *testing.T) {
	t.Setenv("APP_SECRET", "s")
	t.Setenv("FRONTEND_URL", "https://app.example.com, http://localhost:5173 ,")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:5173"}, cfg.FrontendOrigins)
}

func TestLoad_MissingSecretIsFatal(t *testing.T) {
	t.Setenv("APP_SECRET", "")

	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestLoad_BadTTL(t *testing.T) {
	t.Setenv("APP_SECRET", "s")
	t.Setenv("TOKEN_EXPIRES_IN", "forever")

	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestParseTTL(t *testing.T) {
	cases := map[string]time.Duration{
		"1d":   24 * time.Hour,
		"7d":   7 * 24 * time.Hour,
		"90m":  90 * time.Minute,
		"3600": time.Hour,
		" 1h ": time.Hour,
	}
	for in, want := range cases {
		got, err := ParseTTL(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "0", "-1h", "xd", "soon"} {
		_, err := ParseTTL(bad)
		assert.Error(t, err, bad)
	}
}
