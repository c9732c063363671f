package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	require.Equal(t, 10*time.Second, cfg.API.Timeout)
	require.Equal(t, "pt-BR", cfg.UI.Locale)
}

func TestLoadFileKeepsUnsetDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://hotel.example.com/api
  timeout: 3s
ui:
  locale: en-US
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://hotel.example.com/api", cfg.API.BaseURL)
	require.Equal(t, 3*time.Second, cfg.API.Timeout)
	require.Equal(t, "en-US", cfg.UI.Locale)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://file/api\n"), 0644))

	t.Setenv("HOTELMGR_API_URL", "http://env/api")
	t.Setenv("HOTELMGR_API_TIMEOUT", "1500ms")
	t.Setenv("HOTELMGR_LOG_LEVEL", "debug")
	t.Setenv("HOTELMGR_LOCALE", "en-US")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://env/api", cfg.API.BaseURL)
	require.Equal(t, 1500*time.Millisecond, cfg.API.Timeout)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "en-US", cfg.UI.Locale)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://saved/api"
	cfg.API.Timeout = 7 * time.Second

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.API, loaded.API)
}
