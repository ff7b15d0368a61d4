package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, DefaultServerURL, cfg.APIBaseURL)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.Empty(t, cfg.CardID)

	// Неустановленные тайминги отдаются нулями, дефолты у контроллера
	assert.Zero(t, cfg.WatchInterval())
	assert.Zero(t, cfg.CloseDelay())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
api_base_url = "https://api.example.com/api/v1"
card_id = "card-7"
db_path = "/tmp/webcard.db"
watch_interval_seconds = 30
close_delay_seconds = 5

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/api/v1", cfg.APIBaseURL)
	assert.Equal(t, "card-7", cfg.CardID)
	assert.Equal(t, "/tmp/webcard.db", cfg.DBPath)
	assert.Equal(t, 30*time.Second, cfg.WatchInterval())
	assert.Equal(t, 5*time.Second, cfg.CloseDelay())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`card_id = "card-7"`), 0600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "card-7", cfg.CardID)
	assert.Equal(t, DefaultServerURL, cfg.APIBaseURL)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url = [broken"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}
