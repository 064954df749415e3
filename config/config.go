package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// FetchConfig holds settings for fetching recipe pages
type FetchConfig struct {
	UserAgent         string        `mapstructure:"user_agent"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxBodyBytes      int64         `mapstructure:"max_body_bytes"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// MatchingConfig holds food catalog matching settings
type MatchingConfig struct {
	EnableFuzzyMatching bool `mapstructure:"enable_fuzzy_matching"`
	FuzzyEditDistance   int  `mapstructure:"fuzzy_edit_distance"`
	EnableDebugLogging  bool `mapstructure:"enable_debug_logging"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/recipelift/")

	// Environment variable settings, e.g. RECIPELIFT_CACHE_TYPE
	v.SetEnvPrefix("RECIPELIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile exports variables from ./.env. Variables already present in the
// environment win.
func loadEnvFile() error {
	if err := gotenv.Load(".env"); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading .env file: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values. Every key needs a default
// so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Fetch defaults
	v.SetDefault("fetch.user_agent", "RecipeLift/1.0")
	v.SetDefault("fetch.timeout", "30s")
	v.SetDefault("fetch.max_body_bytes", 5<<20)
	v.SetDefault("fetch.requests_per_second", 2.0)
	v.SetDefault("fetch.burst", 5)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)

	// Matching defaults
	v.SetDefault("matching.enable_fuzzy_matching", true)
	v.SetDefault("matching.fuzzy_edit_distance", 1)
	v.SetDefault("matching.enable_debug_logging", false)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got: %s", config.Fetch.Timeout)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("per-IP rate limit must be positive, got: %d", config.RateLimit.PerIP)
	}

	if _, err := zapcore.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("unknown log level: %s", config.Log.Level)
	}

	if config.Log.Format != "console" && config.Log.Format != "json" {
		return fmt.Errorf("log format must be 'console' or 'json', got: %s", config.Log.Format)
	}

	return nil
}

// NewLogger builds the process logger from the log settings
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("unknown log level: %s", cfg.Level)
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
