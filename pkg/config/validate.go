package config

import (
	"errors"
	"fmt"
)

// knownProviders are the vendor adapters the server can construct.
var knownProviders = map[string]bool{
	"deepl":       true,
	"googlecloud": true,
	"mindee":      true,
	"assemblyai":  true,
	"api4ai":      true,
}

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	switch c.Storage.Type {
	case "memory", "postgres", "redis":
		// valid
	default:
		errs = append(errs, fmt.Errorf("storage.type must be \"memory\", \"postgres\", or \"redis\", got %q", c.Storage.Type))
	}

	if c.Storage.Type == "postgres" {
		if c.Storage.Postgres.DSN == "" && c.Storage.Postgres.DSNFile == "" {
			errs = append(errs, fmt.Errorf("storage.postgres.dsn or storage.postgres.dsn_file is required when storage.type is \"postgres\""))
		}
	}
	if c.Storage.Type == "redis" {
		if c.Storage.Redis.URL == "" && c.Storage.Redis.URLFile == "" {
			errs = append(errs, fmt.Errorf("storage.redis.url or storage.redis.url_file is required when storage.type is \"redis\""))
		}
	}

	switch c.Auth.Type {
	case "none", "apikey", "jwt":
		// valid
	default:
		errs = append(errs, fmt.Errorf("auth.type must be \"none\", \"apikey\", or \"jwt\", got %q", c.Auth.Type))
	}
	if c.Auth.Type == "apikey" && len(c.Auth.APIKeys) == 0 {
		errs = append(errs, fmt.Errorf("auth.api_keys must not be empty when auth.type is \"apikey\""))
	}
	if c.Auth.Type == "jwt" && c.Auth.JWT.Secret == "" && c.Auth.JWT.SecretFile == "" {
		errs = append(errs, fmt.Errorf("auth.jwt.secret or auth.jwt.secret_file is required when auth.type is \"jwt\""))
	}

	if c.Upload.Enabled && c.Upload.Bucket == "" {
		errs = append(errs, fmt.Errorf("upload.bucket is required when upload is enabled"))
	}

	if c.Async.MaxAttempts < 0 {
		errs = append(errs, fmt.Errorf("async.max_attempts must be >= 0, got %d", c.Async.MaxAttempts))
	}

	for name := range c.Providers {
		if !knownProviders[name] {
			errs = append(errs, fmt.Errorf("providers.%s: unknown provider", name))
		}
	}

	return errors.Join(errs...)
}
