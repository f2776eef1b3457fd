package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	config := GetDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/socialscope/")
	viper.AddConfigPath("$HOME/.socialscope/")

	// Environment variable overrides
	viper.SetEnvPrefix("SOCIALSCOPE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configPath != "" {
		viper.SetConfigFile(configPath)
	}

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found is not an error - we'll use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// validateConfig validates the loaded configuration
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Sanitizer.Registry.Backend != "memory" && config.Sanitizer.Registry.Backend != "redis" {
		return fmt.Errorf("invalid registry backend: %s (must be memory or redis)", config.Sanitizer.Registry.Backend)
	}

	if config.Sanitizer.Registry.Backend == "redis" && config.Sanitizer.Registry.RedisURL == "" {
		return fmt.Errorf("registry backend is redis but no redis_url configured")
	}

	if config.Sanitizer.TrackingTTL <= 0 {
		return fmt.Errorf("invalid tracking TTL: %s", config.Sanitizer.TrackingTTL)
	}

	if config.Analysis.Provider != "openai" && config.Analysis.Provider != "stub" {
		return fmt.Errorf("invalid analysis provider: %s (must be openai or stub)", config.Analysis.Provider)
	}

	if config.Auth.Enabled && config.Auth.JWTSecret == "" {
		return fmt.Errorf("auth is enabled but no jwt_secret configured")
	}

	if config.Audit.Enabled && config.Audit.DatabaseURL == "" {
		return fmt.Errorf("audit is enabled but no database_url configured")
	}

	if config.Logging.Level != "debug" && config.Logging.Level != "info" && config.Logging.Level != "warn" && config.Logging.Level != "error" {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.Logging.Level)
	}

	if config.Logging.Format != "json" && config.Logging.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", config.Logging.Format)
	}

	return nil
}

// Watch starts watching the configuration file for changes
func Watch(config *Config, callback func(*Config)) error {
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		newConfig := &Config{}
		if err := viper.Unmarshal(newConfig); err != nil {
			return
		}

		if err := validateConfig(newConfig); err != nil {
			return
		}

		callback(newConfig)
	})

	return nil
}
