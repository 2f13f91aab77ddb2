// ABOUTME: Main entry point for the Scholar Assist API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scholar-assist-api/api"
	"scholar-assist-api/api/handlers"
	"scholar-assist-api/core/agent"
	"scholar-assist-api/core/arxiv"
	"scholar-assist-api/core/interfaces"
	"scholar-assist-api/infrastructure/agentruntime"
	"scholar-assist-api/infrastructure/cache/memory"
	"scholar-assist-api/infrastructure/cache/redis"
	stdhttp "scholar-assist-api/infrastructure/http/standard"
	logruslogger "scholar-assist-api/infrastructure/logger/logrus"
	"scholar-assist-api/pkg/config"
	"scholar-assist-api/pkg/featureflags"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger := logruslogger.New(cfg.LogLevel)
	logger.Info("Starting Scholar Assist API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
	})

	flags := featureflags.NewEnvManager("")

	// Create cache
	var cache interfaces.Cache
	switch {
	case !flags.IsEnabled(featureflags.SearchCache):
		logger.Info("Search cache disabled by feature flag", nil)
	case cfg.Cache.Type == "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache(time.Duration(cfg.Cache.Memory.DefaultExpiration)*time.Second, 10*time.Minute)
		} else {
			cache = redisCache
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	default:
		cache = memory.NewMemoryCache(time.Duration(cfg.Cache.Memory.DefaultExpiration)*time.Second, 10*time.Minute)
		logger.Info("Using memory cache", nil)
	}

	// Create HTTP client
	httpClient := stdhttp.NewStandardHTTPClient(30 * time.Second)

	// Create dependencies container
	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	// Create services
	searchService := arxiv.NewService(deps, arxiv.Config{
		BaseURL:    cfg.Feed.BaseURL,
		MaxResults: cfg.Feed.MaxResults,
	})

	invoker := agentruntime.NewHTTPInvoker(
		agentruntime.WithBearerToken(cfg.Agent.BearerToken),
	)
	agentService := agent.NewService(agent.Config{
		Region:     cfg.Agent.Region,
		RuntimeARN: cfg.Agent.RuntimeARN,
		Qualifier:  cfg.Agent.Qualifier,
	}, invoker, logger)

	// Create API with middleware
	apiConfig := api.APIConfig{}
	if flags.IsEnabled(featureflags.RequestLogging) {
		apiConfig.Logger = logger
	}
	if flags.IsEnabled(featureflags.RateLimit) {
		apiConfig.RateLimit = 100 // 100 requests per minute
		apiConfig.RateWindow = time.Minute
	}
	humaAPI, router := api.NewAPI(apiConfig)

	// Create and register handlers
	searchHandler := handlers.NewSearchHandler(searchService)
	searchHandler.RegisterRoutes(humaAPI)

	agentHandler := handlers.NewAgentHandler(agentService, logger)
	agentHandler.RegisterRoutes(router)

	// Create HTTP server. WriteTimeout stays unset so long-running agent
	// streams are not cut off mid-response.
	srv := &http.Server{
		Addr:        ":" + cfg.Server.Port,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server exited", nil)
}
