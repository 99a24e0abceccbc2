package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	Vinyl       VinylConfig       `toml:"vinyl"`
	Mood        MoodConfig        `toml:"mood"`
	Generator   GeneratorConfig   `toml:"generator"`
	Logging     LoggingConfig     `toml:"logging"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
	Weather WeatherConfig `toml:"weather"`
}

// SpotifyConfig contains Spotify app credentials used for cover art lookups.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	TokenURL     string `toml:"token_url"`
	APIURL       string `toml:"api_url"`
}

// Enabled reports whether real credentials were configured.
func (s SpotifyConfig) Enabled() bool {
	return s.ClientID != "" && s.ClientSecret != "" && s.ClientID != "your_spotify_client_id"
}

// WeatherConfig contains OpenWeather settings.
type WeatherConfig struct {
	APIKey string  `toml:"api_key"`
	APIURL string  `toml:"api_url"`
	Lat    float64 `toml:"lat"`
	Lon    float64 `toml:"lon"`
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

// Addr joins host and port for [net/http.Server].
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// VinylConfig holds the rotation thresholds and animation timings of the vinyl control.
//
// Angles are degrees, durations are milliseconds.
type VinylConfig struct {
	PaginateDeg         float64 `toml:"paginate_deg"`
	ZoneEntryDeg        float64 `toml:"zone_entry_deg"`
	RegenerateDeg       float64 `toml:"regenerate_deg"`
	IdleRevolutionMs    int     `toml:"idle_revolution_ms"`
	SnapBackPerTurnMs   int     `toml:"snapback_per_turn_ms"`
	SnapBackMinMs       int     `toml:"snapback_min_ms"`
	FrameMs             int     `toml:"frame_ms"`
	Easing              string  `toml:"easing"`
	EnableRegenerate    bool    `toml:"enable_regenerate"`
	EnableRegenerateAll bool    `toml:"enable_regenerate_all"`
}

// MoodConfig sets the ambient context used when no live weather is available.
type MoodConfig struct {
	Weather string   `toml:"weather"`
	Genres  []string `toml:"genres"`
}

// GeneratorConfig controls playlist generation.
type GeneratorConfig struct {
	ProxyURL          string  `toml:"proxy_url"`
	Workers           int     `toml:"workers"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
}

// LoggingConfig controls log verbosity and where the TUI writes logs.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w at %s", ErrConfigAlreadyExists, path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
