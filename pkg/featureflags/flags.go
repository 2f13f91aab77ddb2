// ABOUTME: Feature flag management for toggling optional subsystems
// ABOUTME: Environment-backed flags with a static implementation for tests

package featureflags

import (
	"os"
	"strings"
	"sync"
)

// FeatureFlag represents a single feature flag
type FeatureFlag string

// Defined feature flags. All default to enabled; set FEATURE_<NAME>=false to
// turn one off.
const (
	// SearchCache enables caching of search results
	SearchCache FeatureFlag = "search_cache"

	// RateLimit enables per-IP request rate limiting
	RateLimit FeatureFlag = "rate_limit"

	// RequestLogging enables the request logging middleware
	RequestLogging FeatureFlag = "request_logging"
)

// Manager defines the interface for feature flag management
type Manager interface {
	// IsEnabled checks if a feature flag is enabled
	IsEnabled(flag FeatureFlag) bool

	// SetEnabled sets a feature flag's state (for testing)
	SetEnabled(flag FeatureFlag, enabled bool)
}

// EnvManager implements Manager using environment variables
type EnvManager struct {
	mu        sync.RWMutex
	overrides map[FeatureFlag]bool
	prefix    string
}

// NewEnvManager creates a new environment-based feature flag manager
func NewEnvManager(prefix string) *EnvManager {
	if prefix == "" {
		prefix = "FEATURE_"
	}
	return &EnvManager{
		overrides: make(map[FeatureFlag]bool),
		prefix:    prefix,
	}
}

// IsEnabled checks if a feature flag is enabled. Flags are on unless the
// environment explicitly disables them.
func (m *EnvManager) IsEnabled(flag FeatureFlag) bool {
	m.mu.RLock()
	if enabled, ok := m.overrides[flag]; ok {
		m.mu.RUnlock()
		return enabled
	}
	m.mu.RUnlock()

	envKey := m.prefix + strings.ToUpper(string(flag))
	value := strings.ToLower(os.Getenv(envKey))

	return value != "false" && value != "0" && value != "disabled"
}

// SetEnabled sets a feature flag's state (mainly for testing)
func (m *EnvManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[flag] = enabled
}

// StaticManager implements Manager with static configuration
type StaticManager struct {
	mu    sync.RWMutex
	flags map[FeatureFlag]bool
}

// NewStaticManager creates a manager with predefined flag states
func NewStaticManager(flags map[FeatureFlag]bool) *StaticManager {
	if flags == nil {
		flags = make(map[FeatureFlag]bool)
	}
	return &StaticManager{flags: flags}
}

// IsEnabled checks if a feature flag is enabled
func (m *StaticManager) IsEnabled(flag FeatureFlag) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flags[flag]
}

// SetEnabled sets a feature flag's state
func (m *StaticManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[flag] = enabled
}
