package config

import "time"

// Config represents the main configuration structure
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Sanitizer SanitizerConfig `yaml:"sanitizer" mapstructure:"sanitizer"`
	Analysis  AnalysisConfig  `yaml:"analysis" mapstructure:"analysis"`
	Auth      AuthConfig      `yaml:"auth" mapstructure:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Audit     AuditConfig     `yaml:"audit" mapstructure:"audit"`
	WebSocket WebSocketConfig `yaml:"websocket" mapstructure:"websocket"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         int           `yaml:"port" mapstructure:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
}

// SanitizerConfig contains input sanitization configuration
type SanitizerConfig struct {
	TrackingTTL   time.Duration  `yaml:"tracking_ttl" mapstructure:"tracking_ttl"`
	MaxTextLength int            `yaml:"max_text_length" mapstructure:"max_text_length"`
	Registry      RegistryConfig `yaml:"registry" mapstructure:"registry"`
}

// RegistryConfig selects the tracking registry backend
type RegistryConfig struct {
	Backend   string `yaml:"backend" mapstructure:"backend"` // memory or redis
	RedisURL  string `yaml:"redis_url" mapstructure:"redis_url"`
	KeyPrefix string `yaml:"key_prefix" mapstructure:"key_prefix"`
}

// AnalysisConfig contains analysis provider configuration
type AnalysisConfig struct {
	Provider string        `yaml:"provider" mapstructure:"provider"` // openai or stub
	Model    string        `yaml:"model" mapstructure:"model"`
	APIKey   string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL  string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// AuthConfig contains bearer token verification configuration
type AuthConfig struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	Issuer    string `yaml:"issuer" mapstructure:"issuer"`
}

// RateLimitConfig contains per-client rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled" mapstructure:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// CacheConfig contains URL validation cache configuration
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// AuditConfig contains audit log storage configuration
type AuditConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	DatabaseURL     string        `yaml:"database_url" mapstructure:"database_url"`
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
}

// WebSocketConfig contains dashboard event stream configuration
type WebSocketConfig struct {
	Enabled        bool          `yaml:"enabled" mapstructure:"enabled"`
	Path           string        `yaml:"path" mapstructure:"path"`
	AllowedOrigins []string      `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	WriteTimeout   time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	SendBuffer     int           `yaml:"send_buffer" mapstructure:"send_buffer"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // json or console
	File   struct {
		Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
		Path    string `yaml:"path" mapstructure:"path"`
		MaxSize int    `yaml:"max_size" mapstructure:"max_size"`
		MaxAge  int    `yaml:"max_age" mapstructure:"max_age"`
	} `yaml:"file" mapstructure:"file"`
}

// GetDefaults returns a configuration with sensible defaults
func GetDefaults() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Sanitizer: SanitizerConfig{
			TrackingTTL:   time.Hour,
			MaxTextLength: 1000,
			Registry: RegistryConfig{
				Backend:   "memory",
				KeyPrefix: "socialscope:track",
			},
		},
		Analysis: AnalysisConfig{
			Provider: "stub",
			Model:    "gpt-4o-mini",
			Timeout:  30 * time.Second,
		},
		Auth: AuthConfig{
			Enabled: false,
			Issuer:  "socialscope",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 5,
			Burst:             10,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Audit: AuditConfig{
			Enabled:         false,
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		WebSocket: WebSocketConfig{
			Enabled:        true,
			Path:           "/ws",
			AllowedOrigins: []string{"*"},
			WriteTimeout:   10 * time.Second,
			SendBuffer:     16,
		},
	}

	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"
	cfg.Logging.File.Path = "logs/socialscope.log"
	cfg.Logging.File.MaxSize = 100 // MB
	cfg.Logging.File.MaxAge = 30   // days

	return cfg
}
