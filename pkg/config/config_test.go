package config

import (
	"testing"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}

	if cfg.Server.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Server.Port)
	}
	if cfg.Cache.Type != "memory" {
		t.Errorf("Cache.Type = %q, want memory", cfg.Cache.Type)
	}
	if cfg.Feed.MaxResults != 7 {
		t.Errorf("Feed.MaxResults = %d, want 7", cfg.Feed.MaxResults)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("REDIS_ADDRESS", "redis.internal:6380")
	t.Setenv("AGENT_REGION", "eu-west-1")
	t.Setenv("AGENT_RUNTIME_ARN", "arn:aws:bedrock-agentcore:eu-west-1:1:runtime/x")
	t.Setenv("FEED_MAX_RESULTS", "25")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q", cfg.Server.Port)
	}
	if cfg.Cache.Type != "redis" || cfg.Cache.Redis.Address != "redis.internal:6380" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Agent.Region != "eu-west-1" {
		t.Errorf("Agent.Region = %q", cfg.Agent.Region)
	}
	if cfg.Feed.MaxResults != 25 {
		t.Errorf("Feed.MaxResults = %d", cfg.Feed.MaxResults)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"empty port", func(c *Config) { c.Server.Port = "" }, true},
		{"bad cache type", func(c *Config) { c.Cache.Type = "sqlite" }, true},
		{"redis without address", func(c *Config) {
			c.Cache.Type = "redis"
			c.Cache.Redis.Address = ""
		}, true},
		{"zero max results", func(c *Config) { c.Feed.MaxResults = 0 }, true},
		{"missing agent config is allowed at startup", func(c *Config) {
			c.Agent = AgentConfig{}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _ := LoadFromEnv()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
