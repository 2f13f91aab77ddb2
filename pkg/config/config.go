// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, feed, and agent settings

package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache backend configuration
	Cache CacheConfig

	// Feed contains paper search feed configuration
	Feed FeedConfig

	// Agent contains remote agent runtime configuration
	Agent AgentConfig

	// LogLevel sets the logger verbosity (debug/info/warn/error)
	LogLevel string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int
}

// FeedConfig holds paper search feed settings
type FeedConfig struct {
	// BaseURL is the feed query endpoint; empty uses the built-in default
	BaseURL string

	// MaxResults is the fixed page size per search
	MaxResults int
}

// AgentConfig holds remote agent runtime settings. Region and RuntimeARN may
// legitimately be empty at startup; their absence becomes a configuration
// error when an agent invocation is attempted.
type AgentConfig struct {
	Region      string
	RuntimeARN  string
	Qualifier   string
	BearerToken string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CACHE_TYPE", "memory")
	v.SetDefault("REDIS_ADDRESS", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MEMORY_CACHE_EXPIRATION", 3600)
	v.SetDefault("FEED_BASE_URL", "")
	v.SetDefault("FEED_MAX_RESULTS", 7)
	v.SetDefault("AGENT_REGION", "")
	v.SetDefault("AGENT_RUNTIME_ARN", "")
	v.SetDefault("AGENT_QUALIFIER", "")
	v.SetDefault("AGENT_BEARER_TOKEN", "")

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
		},
		Cache: CacheConfig{
			Type: v.GetString("CACHE_TYPE"),
			Redis: RedisConfig{
				Address:  v.GetString("REDIS_ADDRESS"),
				Password: v.GetString("REDIS_PASSWORD"),
				DB:       v.GetInt("REDIS_DB"),
			},
			Memory: MemoryConfig{
				DefaultExpiration: v.GetInt("MEMORY_CACHE_EXPIRATION"),
			},
		},
		Feed: FeedConfig{
			BaseURL:    v.GetString("FEED_BASE_URL"),
			MaxResults: v.GetInt("FEED_MAX_RESULTS"),
		},
		Agent: AgentConfig{
			Region:      v.GetString("AGENT_REGION"),
			RuntimeARN:  v.GetString("AGENT_RUNTIME_ARN"),
			Qualifier:   v.GetString("AGENT_QUALIFIER"),
			BearerToken: v.GetString("AGENT_BEARER_TOKEN"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Feed.MaxResults < 1 {
		return errors.New("feed max results must be at least 1")
	}

	return nil
}
