// Package config provides unified configuration for the edenai-apis
// server.
//
// Configuration is loaded with a layered approach:
//  1. Optional .env file (godotenv)
//  2. Built-in defaults
//  3. YAML config file (discovered or explicitly specified)
//  4. Environment variable overrides (EDENAI_ prefix)
//  5. File reference resolution (_file suffix fields)
//  6. Validation
package config

import "time"

// Config holds all configuration for the edenai-apis server.
type Config struct {
	Server        ServerConfig              `yaml:"server"`
	Auth          AuthConfig                `yaml:"auth"`
	Storage       StorageConfig             `yaml:"storage"`
	Upload        UploadConfig              `yaml:"upload"`
	Async         AsyncConfig               `yaml:"async"`
	Observability ObservabilityConfig       `yaml:"observability"`
	Providers     map[string]ProviderConfig `yaml:"providers"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `yaml:"port"`          // default: 8080
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"` // default: 120s
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	Type    string         `yaml:"type"`     // "none", "apikey", or "jwt", default: "none"
	APIKeys []APIKeyConfig `yaml:"api_keys"` // API key entries for type=apikey
	JWT     JWTConfig      `yaml:"jwt"`      // settings for type=jwt
}

// APIKeyConfig describes a single API key entry.
type APIKeyConfig struct {
	Key     string `yaml:"key"`
	KeyFile string `yaml:"key_file"` // _file variant for key
	Subject string `yaml:"subject"`
}

// JWTConfig holds settings for HS256 bearer token verification.
type JWTConfig struct {
	Secret     string `yaml:"secret"`
	SecretFile string `yaml:"secret_file"` // _file variant for secret
	Issuer     string `yaml:"issuer"`      // optional expected issuer
}

// StorageConfig holds job persistence settings.
type StorageConfig struct {
	Type     string         `yaml:"type"`     // "memory", "postgres", or "redis", default: "memory"
	MaxSize  int            `yaml:"max_size"` // for memory store, default: 10000
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	DSN            string `yaml:"dsn"`
	DSNFile        string `yaml:"dsn_file"`         // _file variant for dsn
	MaxConns       int32  `yaml:"max_conns"`        // default: 25
	MigrateOnStart bool   `yaml:"migrate_on_start"` // default: false
}

// RedisConfig holds Redis-specific settings.
type RedisConfig struct {
	URL     string        `yaml:"url"`
	URLFile string        `yaml:"url_file"` // _file variant for url
	TTL     time.Duration `yaml:"ttl"`      // default: 168h
}

// UploadConfig holds S3 file hosting settings. When disabled, vendors
// that need a URL only accept requests that already carry one.
type UploadConfig struct {
	Enabled             bool          `yaml:"enabled"`
	Bucket              string        `yaml:"bucket"`
	Region              string        `yaml:"region"`
	AccessKeyID         string        `yaml:"access_key_id"`
	SecretAccessKey     string        `yaml:"secret_access_key"`
	SecretAccessKeyFile string        `yaml:"secret_access_key_file"` // _file variant
	Endpoint            string        `yaml:"endpoint"`               // override for minio/localstack
	URLExpiry           time.Duration `yaml:"url_expiry"`             // default: 1h
}

// AsyncConfig bounds server-side polling of vendor jobs.
type AsyncConfig struct {
	MaxAttempts int           `yaml:"max_attempts"` // default: 10
	Interval    time.Duration `yaml:"interval"`     // default: 2s
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// ProviderConfig holds per-vendor credentials and overrides.
type ProviderConfig struct {
	APIKey     string            `yaml:"api_key"`
	APIKeyFile string            `yaml:"api_key_file"` // _file variant for api_key
	BaseURL    string            `yaml:"base_url"`     // override for tests and proxies
	Extra      map[string]string `yaml:"extra"`        // vendor-specific settings
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
		},
		Auth: AuthConfig{
			Type: "none",
		},
		Storage: StorageConfig{
			Type:    "memory",
			MaxSize: 10000,
			Postgres: PostgresConfig{
				MaxConns: 25,
			},
			Redis: RedisConfig{
				TTL: 7 * 24 * time.Hour,
			},
		},
		Upload: UploadConfig{
			URLExpiry: time.Hour,
		},
		Async: AsyncConfig{
			MaxAttempts: 10,
			Interval:    2 * time.Second,
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
		Providers: map[string]ProviderConfig{},
	}
}
