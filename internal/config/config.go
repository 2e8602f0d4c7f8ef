package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/JonnyWalker81/remindr/backend/internal/logger"
	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

// Storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverSupabase = "supabase"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Supabase  SupabaseConfig  `mapstructure:"supabase"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port               string   `mapstructure:"port"`
	Env                string   `mapstructure:"env"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	RateLimitRPS       float64  `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int      `mapstructure:"rate_limit_burst"`
}

// StorageConfig selects the persistence backend
type StorageConfig struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// SupabaseConfig holds Supabase-specific configuration
type SupabaseConfig struct {
	URL        string `mapstructure:"url"`
	ServiceKey string `mapstructure:"service_key"`
}

// AnalyticsConfig holds the calendar used for day boundaries
type AnalyticsConfig struct {
	// Timezone is an IANA name; empty or "Local" uses the host zone
	Timezone     string `mapstructure:"timezone"`
	DefaultRange string `mapstructure:"default_range"`

	location *time.Location
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	Backend string `mapstructure:"backend"`
}

// Load reads configuration from .env, environment variables and config files
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("REMINDR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed names used by hosting platforms
	_ = v.BindEnv("server.port", "REMINDR_SERVER_PORT", "PORT")
	_ = v.BindEnv("supabase.url", "REMINDR_SUPABASE_URL", "SUPABASE_URL")
	_ = v.BindEnv("supabase.service_key", "REMINDR_SUPABASE_SERVICE_KEY", "SUPABASE_SERVICE_KEY")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// It's okay if config file doesn't exist
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.cors_allowed_origins", []string{})
	v.SetDefault("server.rate_limit_rps", 10.0)
	v.SetDefault("server.rate_limit_burst", 20)

	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.sqlite_path", "remindr.db")

	v.SetDefault("supabase.url", "")
	v.SetDefault("supabase.service_key", "")

	v.SetDefault("analytics.timezone", "Local")
	v.SetDefault("analytics.default_range", string(models.DefaultTrendRange))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.backend", logger.BackendSlog)
}

// Validate checks that required values are present and resolvable
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.sqlite_path is required for the sqlite driver")
		}
	case DriverSupabase:
		if c.Supabase.URL == "" {
			return fmt.Errorf("SUPABASE_URL is required for the supabase driver")
		}
		if c.Supabase.ServiceKey == "" {
			return fmt.Errorf("SUPABASE_SERVICE_KEY is required for the supabase driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Server.RateLimitRPS <= 0 || c.Server.RateLimitBurst <= 0 {
		return fmt.Errorf("server rate limit must be positive")
	}

	if _, err := models.ParseTrendRange(c.Analytics.DefaultRange); err != nil {
		return fmt.Errorf("analytics.default_range: %w", err)
	}

	loc, err := loadLocation(c.Analytics.Timezone)
	if err != nil {
		return fmt.Errorf("analytics.timezone: %w", err)
	}
	c.Analytics.location = loc

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Backend {
	case "", logger.BackendSlog, logger.BackendZap:
	default:
		return fmt.Errorf("log.backend must be %q or %q", logger.BackendSlog, logger.BackendZap)
	}
	return nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// Location is the calendar used for day boundaries. It is resolved by
// Validate; before that it falls back to the host zone.
func (a AnalyticsConfig) Location() *time.Location {
	if a.location == nil {
		return time.Local
	}
	return a.location
}

// Range is the trend range used when a request names none
func (a AnalyticsConfig) Range() models.TrendRange {
	r, err := models.ParseTrendRange(a.DefaultRange)
	if err != nil {
		return models.DefaultTrendRange
	}
	return r
}

// LoggerConfig converts the log section for logger.New
func (l LogConfig) LoggerConfig() logger.Config {
	level, _ := logger.ParseLevel(l.Level)
	cfg := logger.DefaultConfig()
	cfg.Level = level
	if l.Format != "" {
		cfg.Format = l.Format
	}
	if l.Backend != "" {
		cfg.Backend = l.Backend
	}
	return cfg
}

// IsProduction reports whether the server runs in production mode
func (s ServerConfig) IsProduction() bool {
	return s.Env == "production"
}
