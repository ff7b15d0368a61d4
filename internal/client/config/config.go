package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default settings for a local setup
const (
	DefaultServerURL = "http://localhost:8080/api/v1"
	DefaultDBPath    = "webcard.db"
)

// Config represents a complete client configuration
type Config struct {
	// APIBaseURL — базовый URL бэкенда (без пути эндпоинта)
	APIBaseURL string `toml:"api_base_url,omitempty"`

	// CardID — карточка по умолчанию, если card_id не пришел в launch URL
	CardID string `toml:"card_id,omitempty"`

	// DBPath — путь к локальной BoltDB базе
	DBPath string `toml:"db_path,omitempty"`

	// WatchIntervalSeconds — период проверки срока действия сессии
	WatchIntervalSeconds int64 `toml:"watch_interval_seconds,omitempty"`

	// CloseDelaySeconds — задержка перед закрытием хоста после отказа
	CloseDelaySeconds int64 `toml:"close_delay_seconds,omitempty"`

	Log LogConfig `toml:"log,omitempty"`
}

// LogConfig represents a configuration for the global logger
type LogConfig struct {
	Level string `toml:"level,omitempty"`
}

// Load loads a configuration from the given TOML file. An empty path
// yields the defaults; a missing or unparseable file is an error.
func Load(path string) (Config, error) {
	c := Config{
		APIBaseURL: DefaultServerURL,
		DBPath:     DefaultDBPath,
	}

	if path != "" {
		f, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(f, &c); err != nil {
			return c, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultServerURL
	}
	if c.DBPath == "" {
		c.DBPath = DefaultDBPath
	}

	c.setupLogger()
	return c, nil
}

// WatchInterval returns the configured expiry-check period, zero when unset
// (the controller applies its own default)
func (c *Config) WatchInterval() time.Duration {
	return time.Duration(c.WatchIntervalSeconds) * time.Second
}

// CloseDelay returns the configured denial close delay, zero when unset
func (c *Config) CloseDelay() time.Duration {
	return time.Duration(c.CloseDelaySeconds) * time.Second
}

// setupLogger sets up the global logger configuration
func (c *Config) setupLogger() {
	level := slog.LevelInfo
	switch c.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
