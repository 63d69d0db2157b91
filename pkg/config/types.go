package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string           `mapstructure:"environment"`
	Station      StationConfig    `mapstructure:"station"`
	Server       ServerConfig     `mapstructure:"server"`
	Database     DatabaseConfig   `mapstructure:"database"`
	Recorder     RecorderConfig   `mapstructure:"recorder"`
	Schedule     ScheduleConfig   `mapstructure:"schedule"`
	Processing   ProcessingConfig `mapstructure:"processing"`
	Storage      StorageConfig    `mapstructure:"storage"`
	Feed         FeedConfig       `mapstructure:"feed"`
	RateLimiting RateLimitConfig  `mapstructure:"rate_limiting"`
	Security     SecurityConfig   `mapstructure:"security"`
	Logging      LoggingConfig    `mapstructure:"logging"`
}

// StationConfig contains station identity defaults used when the
// settings row is first created.
type StationConfig struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Timezone    string `mapstructure:"timezone"` // IANA zone id
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	BaseURL         string        `mapstructure:"base_url"` // external URL for feed enclosures
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path                  string        `mapstructure:"path"`
	MaxConnections        int           `mapstructure:"max_connections"`
	MaxIdleConnections    int           `mapstructure:"max_idle_connections"`
	ConnectionMaxLifetime time.Duration `mapstructure:"connection_max_lifetime"`
	LogQueries            bool          `mapstructure:"log_queries"`
	Verbose               bool          `mapstructure:"verbose"`
}

// RecorderConfig contains recorder loop settings
type RecorderConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	StopGrace    time.Duration `mapstructure:"stop_grace"` // SIGINT-to-SIGKILL window for capture processes
}

// ScheduleConfig contains scheduling policy settings
type ScheduleConfig struct {
	MinSlotDuration time.Duration `mapstructure:"min_slot_duration"`
	MaxOccurrences  int           `mapstructure:"max_occurrences"`
}

// ProcessingConfig contains audio engine settings
type ProcessingConfig struct {
	FFmpegPath    string        `mapstructure:"ffmpeg_path"`
	FFprobePath   string        `mapstructure:"ffprobe_path"`
	FFmpegTimeout time.Duration `mapstructure:"ffmpeg_timeout"`
}

// StorageConfig contains file storage settings
type StorageConfig struct {
	RecordingsDir string `mapstructure:"recordings_dir"`
	BackupsDir    string `mapstructure:"backups_dir"`
	TempDir       string `mapstructure:"temp_dir"`
}

// FeedConfig contains podcast feed settings
type FeedConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MaxEpisodes int    `mapstructure:"max_episodes"`
	Language    string `mapstructure:"language"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS  bool     `mapstructure:"enable_cors"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
