package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Recommend RecommendConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StoreConfig holds reference/profile store configuration
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // "sqlite" or "postgres"
	DSN    string `mapstructure:"dsn"`
}

// RecommendConfig holds the tunable knobs of the recommendation engine.
// Small defaults keep test fixtures readable.
type RecommendConfig struct {
	TopN                  int `mapstructure:"top_n"`
	ProductsPerIngredient int `mapstructure:"products_per_ingredient"`
	ProductCandidates     int `mapstructure:"product_candidates"`
}

// RateLimitConfig holds per-client rate limiting configuration
type RateLimitConfig struct {
	PerIP float64 `mapstructure:"per_ip"` // requests per second
	Burst int     `mapstructure:"burst"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Mode string `mapstructure:"mode"` // "development" or "production"
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/nutriguide/")

	// Environment variable settings
	v.SetEnvPrefix("NUTRIGUIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
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

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Store defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", "nutriguide.db")

	// Recommendation engine defaults
	v.SetDefault("recommend.top_n", 3)
	v.SetDefault("recommend.products_per_ingredient", 2)
	v.SetDefault("recommend.product_candidates", 10)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 10.0)
	v.SetDefault("ratelimit.burst", 20)

	// Log defaults
	v.SetDefault("log.mode", "development")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Store.Driver != "sqlite" && config.Store.Driver != "postgres" {
		return fmt.Errorf("store driver must be 'sqlite' or 'postgres', got: %s", config.Store.Driver)
	}

	if config.Store.DSN == "" {
		return fmt.Errorf("store DSN is required (set NUTRIGUIDE_STORE_DSN)")
	}

	if config.Recommend.TopN <= 0 {
		return fmt.Errorf("recommend.top_n must be positive, got: %d", config.Recommend.TopN)
	}

	if config.Recommend.ProductsPerIngredient <= 0 {
		return fmt.Errorf("recommend.products_per_ingredient must be positive, got: %d", config.Recommend.ProductsPerIngredient)
	}

	return nil
}
