// Package config provides configuration loading and validation for the server and commands.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// DefaultBcryptCost is used when no bcrypt cost is configured.
const DefaultBcryptCost = 12

// Config is the full application configuration.
// Values come from defaults, an optional config file, then environment variables.
type Config struct {
	Port           int              `mapstructure:"port"`
	DatabaseURL    string           `mapstructure:"database-url"`     // empty selects the in-memory store
	SeedSampleData bool             `mapstructure:"seed-sample-data"` // seed the in-memory store with sample internships
	Log            LogConfig        `mapstructure:"log"`
	RateLimit      RateLimitConfig  `mapstructure:"rate-limit"`
	Password       PasswordSettings `mapstructure:"password"`
}

// LogConfig controls logger output.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// RateLimitConfig controls per-client request limiting.
type RateLimitConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	RequestsPerSecond float64       `mapstructure:"requests-per-second"`
	Burst             int           `mapstructure:"burst"`
	IdleTTL           time.Duration `mapstructure:"idle-ttl"` // forget clients idle this long
}

// PasswordSettings holds the raw password hashing settings.
type PasswordSettings struct {
	BcryptCost int    `mapstructure:"bcrypt-cost"`
	Pepper     string `mapstructure:"pepper"`
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"port":                           "PORT",
	"database-url":                   "DATABASE_URL",
	"seed-sample-data":               "SEED_SAMPLE_DATA",
	"log.json":                       "LOG_JSON",
	"log.debug":                      "LOG_DEBUG",
	"rate-limit.enabled":             "RATE_LIMIT_ENABLED",
	"rate-limit.requests-per-second": "RATE_LIMIT_RPS",
	"rate-limit.burst":               "RATE_LIMIT_BURST",
	"rate-limit.idle-ttl":            "RATE_LIMIT_IDLE_TTL",
	"password.bcrypt-cost":           "BCRYPT_COST",
	"password.pepper":                "PASSWORD_PEPPER",
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("database-url", "")
	v.SetDefault("seed-sample-data", true)
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
	v.SetDefault("rate-limit.enabled", true)
	v.SetDefault("rate-limit.requests-per-second", 10.0)
	v.SetDefault("rate-limit.burst", 20)
	v.SetDefault("rate-limit.idle-ttl", 10*time.Minute)
	v.SetDefault("password.bcrypt-cost", DefaultBcryptCost)
	v.SetDefault("password.pepper", "")
}

// BindEnv binds every config key to its environment variable.
func BindEnv(v *viper.Viper) error {
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("binding %s environment variable: %w", env, err)
		}
	}
	return nil
}

// ReadFile reads a config file into v. The format is taken from the file extension.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// Load applies defaults and environment bindings to v, decodes it and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	if err := BindEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("config error: 'rate-limit.requests-per-second' must be positive")
		}
		if c.RateLimit.Burst < 1 {
			return fmt.Errorf("config error: 'rate-limit.burst' must be at least 1")
		}
		if c.RateLimit.IdleTTL < 0 {
			return fmt.Errorf("config error: 'rate-limit.idle-ttl' must be non-negative")
		}
	}

	if c.Password.BcryptCost < 10 || c.Password.BcryptCost > 14 {
		return fmt.Errorf("config error: 'password.bcrypt-cost' must be 10-14, got %d", c.Password.BcryptCost)
	}

	return nil
}

// UsesDatabase reports whether a PostgreSQL store is configured.
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

// PasswordHasher builds the password configuration from the settings.
func (c *Config) PasswordHasher() (*PasswordConfig, error) {
	return NewPasswordConfig(c.Password.BcryptCost, c.Password.Pepper)
}
