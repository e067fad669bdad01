package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Timeline TimelineConfig `mapstructure:"timeline"`
	Review   ReviewConfig   `mapstructure:"review"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig holds Immich server configuration
type ServerConfig struct {
	URL    string `mapstructure:"url"`     // Server URL
	APIKey string `mapstructure:"api_key"` // Immich API key
}

// TimelineConfig holds the location-history source configuration
type TimelineConfig struct {
	Path string `mapstructure:"path"` // Location-history export (Records.json)
}

// ReviewConfig holds review session preferences
type ReviewConfig struct {
	PageSize        int  `mapstructure:"page_size"`         // Assets fetched per page
	NotInAlbum      bool `mapstructure:"not_in_album"`      // Only review assets outside albums
	RefetchDelayMs  int  `mapstructure:"refetch_delay_ms"`  // Wait before post-commit refetch
	ExactWindowMins int  `mapstructure:"exact_window_mins"` // Fix-to-photo gap counted as exact
	MaxGapHours     int  `mapstructure:"max_gap_hours"`     // Widest gap interpolation may bridge
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:    "",
			APIKey: "",
		},
		Timeline: TimelineConfig{
			Path: "",
		},
		Review: ReviewConfig{
			PageSize:        50,
			NotInAlbum:      true,
			RefetchDelayMs:  500,
			ExactWindowMins: 15,
			MaxGapHours:     8,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "pindrop", "pindrop.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "pindrop", "pindrop.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "pindrop")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "pindrop")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("PINDROP")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("server.url", cfg.Server.URL)
	viper.Set("server.api_key", cfg.Server.APIKey)

	viper.Set("timeline.path", cfg.Timeline.Path)

	viper.Set("review.page_size", cfg.Review.PageSize)
	viper.Set("review.not_in_album", cfg.Review.NotInAlbum)
	viper.Set("review.refetch_delay_ms", cfg.Review.RefetchDelayMs)
	viper.Set("review.exact_window_mins", cfg.Review.ExactWindowMins)
	viper.Set("review.max_gap_hours", cfg.Review.MaxGapHours)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the server URL and API key are set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != "" && c.Server.APIKey != ""
}

// DataDir returns the directory for persistent state (seen-set database)
func DataDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "pindrop")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "pindrop")
	}
}
