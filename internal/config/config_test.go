package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "jobseek")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "9090")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.App.HTTPPort)
	assert.Equal(t, 50, cfg.Import.BatchSize)
	assert.Equal(t, 100, cfg.Sync.PageSize)
	assert.Equal(t, "@every 1h", cfg.Sync.Schedule)
	assert.Equal(t, "data/search-index.db", cfg.Index.Path)
	assert.Empty(t, cfg.Redis.Host)
	assert.False(t, cfg.Sync.ClearCache)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")

	_, err := LoadFile("")
	require.Error(t, err)
	assert.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "APP_NAME")
	assert.Contains(t, err.Error(), "APP_ENV")
	assert.Contains(t, err.Error(), "HTTP_PORT")
}

func TestLoad_YAMLThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := `
app:
  name: from-file
  env: staging
  http_port: "7000"
import:
  batch_size: 25
sync:
  page_size: 10
  schedule: "@every 30m"
  clear_cache: true
database:
  connect_timeout: 3s
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("SYNC_PAGE_SIZE", "250")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.App.AppName)
	assert.Equal(t, "7000", cfg.App.HTTPPort)
	assert.Equal(t, 25, cfg.Import.BatchSize)
	assert.Equal(t, 250, cfg.Sync.PageSize)
	assert.Equal(t, "@every 30m", cfg.Sync.Schedule)
	assert.True(t, cfg.Sync.ClearCache)
	assert.Equal(t, 3*time.Second, cfg.Database.ConnectTimeout)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	setRequired(t)
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Import.BatchSize)
}

func TestLoad_InvalidNumbers(t *testing.T) {
	setRequired(t)
	t.Setenv("IMPORT_BATCH_SIZE", "many")
	_, err := LoadFile("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IMPORT_BATCH_SIZE")

	t.Setenv("IMPORT_BATCH_SIZE", "0")
	_, err = LoadFile("")
	require.Error(t, err)
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}

func TestLoadDotEnv_DoesNotOverrideExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_PORT=1111\nINDEX_PATH=/tmp/from-dotenv.db\n"), 0o600))

	setRequired(t)
	t.Setenv("INDEX_PATH", "")
	require.NoError(t, os.Unsetenv("INDEX_PATH"))

	require.NoError(t, LoadDotEnv(path))
	t.Cleanup(func() { _ = os.Unsetenv("INDEX_PATH") })

	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.App.HTTPPort)
	assert.Equal(t, "/tmp/from-dotenv.db", cfg.Index.Path)
}
