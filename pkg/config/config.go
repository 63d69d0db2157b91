package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		// Set default values
		setDefaults()

		// Set up environment variable reading for overrides
		viper.SetEnvPrefix("RADIO")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		// Load config from fixed location (cleaned for safety)
		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		// Try to read the config file
		if err := viper.ReadInConfig(); err != nil {
			// If the config file doesn't exist, just use defaults and env vars
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		// Validate the configuration
		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	// The default station timezone must parse; a bad zone here would make
	// every schedule write fail.
	zone := viper.GetString("station.timezone")
	if zone != "" {
		if _, err := time.LoadLocation(zone); err != nil {
			return fmt.Errorf("invalid station timezone %q: %w", zone, err)
		}
	}

	if viper.GetString("database.path") == "" {
		fmt.Println("Warning: No database path configured")
	}

	// Auto-correct nonsensical recorder settings rather than refusing to
	// start; the recorder is resilient by design.
	if viper.GetDuration("recorder.poll_interval") <= 0 {
		viper.Set("recorder.poll_interval", 5*time.Second)
	}
	if viper.GetDuration("schedule.min_slot_duration") <= 0 {
		viper.Set("schedule.min_slot_duration", 15*time.Minute)
	}
	if viper.GetInt("schedule.max_occurrences") <= 0 {
		viper.Set("schedule.max_occurrences", 52)
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Station.Timezone != "" {
		if _, err := time.LoadLocation(c.Station.Timezone); err != nil {
			return fmt.Errorf("invalid station timezone %q: %w", c.Station.Timezone, err)
		}
	}

	if c.Recorder.PollInterval <= 0 {
		c.Recorder.PollInterval = 5 * time.Second
	}
	if c.Schedule.MinSlotDuration <= 0 {
		c.Schedule.MinSlotDuration = 15 * time.Minute
	}
	if c.Schedule.MaxOccurrences <= 0 {
		c.Schedule.MaxOccurrences = 52
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Station defaults (seed values for the settings row)
	viper.SetDefault("station.name", "Community Radio")
	viper.SetDefault("station.description", "")
	viper.SetDefault("station.timezone", "UTC")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.base_url", "http://localhost:8080")

	// Database defaults
	viper.SetDefault("database.path", "./data/station.db")
	viper.SetDefault("database.max_connections", 10)
	viper.SetDefault("database.max_idle_connections", 5)
	viper.SetDefault("database.connection_max_lifetime", 30*time.Minute)
	viper.SetDefault("database.log_queries", false)
	viper.SetDefault("database.verbose", false)

	// Recorder defaults
	viper.SetDefault("recorder.enabled", true)
	viper.SetDefault("recorder.poll_interval", 5*time.Second)
	viper.SetDefault("recorder.stop_grace", 10*time.Second)

	// Schedule policy defaults
	viper.SetDefault("schedule.min_slot_duration", 15*time.Minute)
	viper.SetDefault("schedule.max_occurrences", 52)

	// Processing defaults
	viper.SetDefault("processing.ffmpeg_path", "ffmpeg")
	viper.SetDefault("processing.ffprobe_path", "ffprobe")
	viper.SetDefault("processing.ffmpeg_timeout", 5*time.Minute)

	// Storage defaults
	viper.SetDefault("storage.recordings_dir", "./data/recordings")
	viper.SetDefault("storage.backups_dir", "./data/backups")
	viper.SetDefault("storage.temp_dir", "./tmp")

	// Feed defaults
	viper.SetDefault("feed.enabled", true)
	viper.SetDefault("feed.max_episodes", 100)
	viper.SetDefault("feed.language", "en")

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
}
