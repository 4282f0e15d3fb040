package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Optional .env file in the working directory
//  2. Built-in defaults
//  3. YAML config file (explicit path, EDENAI_CONFIG env, ./config.yaml, /etc/edenai/config.yaml)
//  4. Environment variable overrides
//  5. File reference resolution (_file suffix)
//  6. Validation
func Load(configPath string) (*Config, error) {
	// Pull a local .env into the process environment first so that the
	// env override layer sees it. Absence is not an error.
	_ = godotenv.Load()

	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. EDENAI_CONFIG environment variable
// 3. ./config.yaml in the current directory
// 4. /etc/edenai/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}
	if envPath := os.Getenv("EDENAI_CONFIG"); envPath != "" {
		return envPath
	}
	candidates := []string{
		"config.yaml",
		"/etc/edenai/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps environment variables to config fields.
// Per-provider API keys are picked up from EDENAI_<PROVIDER>_API_KEY.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("EDENAI_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("EDENAI_STORAGE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("EDENAI_STORAGE_SIZE"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			cfg.Storage.MaxSize = size
		}
	}
	if v := os.Getenv("EDENAI_POSTGRES_DSN"); v != "" {
		cfg.Storage.Postgres.DSN = v
	}
	if v := os.Getenv("EDENAI_REDIS_URL"); v != "" {
		cfg.Storage.Redis.URL = v
	}
	if v := os.Getenv("EDENAI_AUTH_TYPE"); v != "" {
		cfg.Auth.Type = v
	}
	if v := os.Getenv("EDENAI_JWT_SECRET"); v != "" {
		cfg.Auth.JWT.Secret = v
	}
	if v := os.Getenv("EDENAI_UPLOAD_BUCKET"); v != "" {
		cfg.Upload.Enabled = true
		cfg.Upload.Bucket = v
	}
	if v := os.Getenv("EDENAI_UPLOAD_REGION"); v != "" {
		cfg.Upload.Region = v
	}

	// EDENAI_<PROVIDER>_API_KEY creates or overrides a provider entry.
	for _, kv := range os.Environ() {
		key, value, _ := strings.Cut(kv, "=")
		name, ok := providerFromEnvKey(key)
		if !ok || value == "" {
			continue
		}
		if cfg.Providers == nil {
			cfg.Providers = map[string]ProviderConfig{}
		}
		pc := cfg.Providers[name]
		pc.APIKey = value
		cfg.Providers[name] = pc
	}
}

// providerFromEnvKey parses EDENAI_<PROVIDER>_API_KEY into a lowercase
// provider name.
func providerFromEnvKey(key string) (string, bool) {
	rest, ok := strings.CutPrefix(key, "EDENAI_")
	if !ok {
		return "", false
	}
	name, ok := strings.CutSuffix(rest, "_API_KEY")
	if !ok || name == "" {
		return "", false
	}
	return strings.ToLower(name), true
}

// resolveFileReferences reads _file fields and populates the corresponding
// value fields. For each field ending in _file, if the value field is empty
// and the file field is set, the file is read, whitespace is trimmed, and
// the value field is populated.
func resolveFileReferences(cfg *Config) error {
	if cfg.Storage.Postgres.DSNFile != "" && cfg.Storage.Postgres.DSN == "" {
		val, err := readSecretFile(cfg.Storage.Postgres.DSNFile)
		if err != nil {
			return fmt.Errorf("storage.postgres.dsn_file: %w", err)
		}
		cfg.Storage.Postgres.DSN = val
	}

	if cfg.Storage.Redis.URLFile != "" && cfg.Storage.Redis.URL == "" {
		val, err := readSecretFile(cfg.Storage.Redis.URLFile)
		if err != nil {
			return fmt.Errorf("storage.redis.url_file: %w", err)
		}
		cfg.Storage.Redis.URL = val
	}

	if cfg.Auth.JWT.SecretFile != "" && cfg.Auth.JWT.Secret == "" {
		val, err := readSecretFile(cfg.Auth.JWT.SecretFile)
		if err != nil {
			return fmt.Errorf("auth.jwt.secret_file: %w", err)
		}
		cfg.Auth.JWT.Secret = val
	}

	for i := range cfg.Auth.APIKeys {
		if cfg.Auth.APIKeys[i].KeyFile != "" && cfg.Auth.APIKeys[i].Key == "" {
			val, err := readSecretFile(cfg.Auth.APIKeys[i].KeyFile)
			if err != nil {
				return fmt.Errorf("auth.api_keys[%d].key_file: %w", i, err)
			}
			cfg.Auth.APIKeys[i].Key = val
		}
	}

	if cfg.Upload.SecretAccessKeyFile != "" && cfg.Upload.SecretAccessKey == "" {
		val, err := readSecretFile(cfg.Upload.SecretAccessKeyFile)
		if err != nil {
			return fmt.Errorf("upload.secret_access_key_file: %w", err)
		}
		cfg.Upload.SecretAccessKey = val
	}

	for name, pc := range cfg.Providers {
		if pc.APIKeyFile != "" && pc.APIKey == "" {
			val, err := readSecretFile(pc.APIKeyFile)
			if err != nil {
				return fmt.Errorf("providers.%s.api_key_file: %w", name, err)
			}
			pc.APIKey = val
			cfg.Providers[name] = pc
		}
	}

	return nil
}

// readSecretFile reads a file and returns its content with surrounding
// whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
