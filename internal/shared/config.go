package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// GeniusTokenEnv names the environment variable that overrides credentials.genius.access_token.
const GeniusTokenEnv = "GENIUS_ACCESS_TOKEN"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Filter      FilterConfig      `toml:"filter"`
	Lyrics      LyricsConfig      `toml:"lyrics"`
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
}

// FilterConfig contains the default policy and engine options.
type FilterConfig struct {
	Level          string `toml:"level"`
	StrictCacheKey bool   `toml:"strict_cache_key"`
	BatchSize      int    `toml:"batch_size"`
}

// LyricsConfig contains outbound request settings shared by all lyrics providers.
type LyricsConfig struct {
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RateLimit      float64 `toml:"rate_limit"` // requests per second across providers
	Burst          int     `toml:"burst"`
}

// Timeout returns the per-request timeout as a [time.Duration].
func (l LyricsConfig) Timeout() time.Duration {
	if l.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// CredentialsConfig contains provider-specific endpoints and credentials.
type CredentialsConfig struct {
	LyricsOvh LyricsOvhConfig `toml:"lyrics_ovh"`
	Genius    GeniusConfig    `toml:"genius"`
}

// LyricsOvhConfig contains the lyrics.ovh endpoint. No credential is required.
type LyricsOvhConfig struct {
	BaseURL string `toml:"base_url"`
}

// GeniusConfig contains Genius API credentials.
type GeniusConfig struct {
	AccessToken string `toml:"access_token"`
	BaseURL     string `toml:"base_url"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config.applyEnv(), nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return config.applyEnv()
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) applyEnv() *Config {
	if token := os.Getenv(GeniusTokenEnv); token != "" {
		c.Credentials.Genius.AccessToken = token
	}
	return c
}
