package config

import (
	"sync"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	AppPort               int    `mapstructure:"APP_PORT"`
	LogLevel              string `mapstructure:"LOG_LEVEL"`
	LogFormat             string `mapstructure:"LOG_FORMAT"`
	ViewerUsername        string `mapstructure:"VIEWER_USERNAME"`
	GuestMode             bool   `mapstructure:"GUEST_MODE"`
	CommandQueueSize      int    `mapstructure:"COMMAND_QUEUE_SIZE"`
	WSOutboxBuffer        int    `mapstructure:"WS_OUTBOX_BUFFER"`
	WSMaxSessionSec       int    `mapstructure:"WS_MAX_SESSION_SEC"`
	MutationRatePerMin    int    `mapstructure:"MUTATION_RATE_PER_MIN"`
	RouteMetricsEnabled   bool   `mapstructure:"ROUTE_METRICS_ENABLED"`
	RequestLoggingEnabled bool   `mapstructure:"REQUEST_LOGGING_ENABLED"`
	PyroscopeAddr         string `mapstructure:"PYROSCOPE_ADDR"`
}

var (
	cachedConfig *Config
	configMutex  sync.RWMutex
)

// Load loads configuration from environment variables and .env file
// It caches the result for subsequent calls
func Load() (Config, error) {
	configMutex.RLock()
	if cachedConfig != nil {
		defer configMutex.RUnlock()
		return *cachedConfig, nil
	}
	configMutex.RUnlock()

	configMutex.Lock()
	defer configMutex.Unlock()

	// Double-check in case another goroutine loaded it while we waited for the lock
	if cachedConfig != nil {
		return *cachedConfig, nil
	}

	v := viper.New()

	v.SetDefault("APP_PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("VIEWER_USERNAME", "will")
	v.SetDefault("GUEST_MODE", false)
	v.SetDefault("COMMAND_QUEUE_SIZE", 64)
	v.SetDefault("WS_OUTBOX_BUFFER", 16) // each event carries a full view, keep it short
	v.SetDefault("WS_MAX_SESSION_SEC", 3600)
	v.SetDefault("MUTATION_RATE_PER_MIN", 0) // 0 disables the limiter
	v.SetDefault("ROUTE_METRICS_ENABLED", true)
	v.SetDefault("REQUEST_LOGGING_ENABLED", true)
	v.SetDefault("PYROSCOPE_ADDR", "") // empty disables continuous profiling

	// Configure Viper to read from .env file (if present)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	// Try to read .env file (it's okay if it doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	// Override with OS environment variables
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	cachedConfig = &cfg

	return cfg, nil
}

// ResetCache clears the cached configuration (for testing purposes)
func ResetCache() {
	configMutex.Lock()
	defer configMutex.Unlock()
	cachedConfig = nil
}

// Validate checks if required configuration fields are properly set
func (c Config) Validate() error {
	if c.AppPort <= 0 || c.AppPort > 65535 {
		return ErrAppPortRange
	}
	if c.LogLevel == "" {
		return ErrLogLevelEmpty
	}
	if c.LogFormat == "" {
		return ErrLogFormatEmpty
	}
	if !c.GuestMode && c.ViewerUsername == "" {
		return ErrViewerUsernameEmpty
	}
	if c.CommandQueueSize <= 0 {
		return ErrCommandQueueSize
	}
	if c.WSOutboxBuffer <= 0 {
		return ErrWSOutboxBuffer
	}
	if c.WSMaxSessionSec <= 0 {
		return ErrWSMaxSessionSec
	}
	if c.MutationRatePerMin < 0 {
		return ErrMutationRateNegative
	}
	return nil
}
