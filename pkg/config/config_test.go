package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Type != "memory" {
		t.Errorf("Storage.Type = %q, want memory", cfg.Storage.Type)
	}
	if cfg.Auth.Type != "none" {
		t.Errorf("Auth.Type = %q, want none", cfg.Auth.Type)
	}
	if cfg.Async.MaxAttempts != 10 || cfg.Async.Interval != 2*time.Second {
		t.Errorf("unexpected async defaults %+v", cfg.Async)
	}
	if !cfg.Observability.Metrics.Enabled || cfg.Observability.Metrics.Path != "/metrics" {
		t.Errorf("unexpected metrics defaults %+v", cfg.Observability.Metrics)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
server:
  port: 9090
storage:
  type: memory
  max_size: 500
providers:
  deepl:
    api_key: dk-123
  assemblyai:
    api_key: aak-456
    base_url: https://eu.assemblyai.com
async:
  max_attempts: 5
  interval: 500ms
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Storage.MaxSize != 500 {
		t.Errorf("Storage.MaxSize = %d, want 500", cfg.Storage.MaxSize)
	}
	if cfg.Providers["deepl"].APIKey != "dk-123" {
		t.Errorf("deepl api key = %q", cfg.Providers["deepl"].APIKey)
	}
	if cfg.Providers["assemblyai"].BaseURL != "https://eu.assemblyai.com" {
		t.Errorf("assemblyai base url = %q", cfg.Providers["assemblyai"].BaseURL)
	}
	if cfg.Async.Interval != 500*time.Millisecond {
		t.Errorf("Async.Interval = %v, want 500ms", cfg.Async.Interval)
	}
	// Unset fields keep their defaults.
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want default 30s", cfg.Server.ReadTimeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EDENAI_PORT", "7000")
	t.Setenv("EDENAI_STORAGE", "redis")
	t.Setenv("EDENAI_REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("EDENAI_DEEPL_API_KEY", "dk-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		// An explicit missing file is an error; load without one instead.
		t.Fatal("expected error for missing explicit config file")
	}

	cfg, err = loadWithoutFile(t)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Storage.Type != "redis" || cfg.Storage.Redis.URL != "redis://localhost:6379/1" {
		t.Errorf("unexpected storage %+v", cfg.Storage)
	}
	if cfg.Providers["deepl"].APIKey != "dk-env" {
		t.Errorf("deepl api key = %q, want dk-env", cfg.Providers["deepl"].APIKey)
	}
}

// loadWithoutFile runs Load from an empty working directory so no
// config.yaml is discovered.
func loadWithoutFile(t *testing.T) (*Config, error) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	return Load("")
}

func TestLoad_FileReferences(t *testing.T) {
	dir := t.TempDir()
	keyFile := writeFile(t, dir, "deepl.key", "dk-secret\n")
	dsnFile := writeFile(t, dir, "pg.dsn", "postgres://u:p@db:5432/edenai\n")
	path := writeFile(t, dir, "config.yaml", `
storage:
  type: postgres
  postgres:
    dsn_file: `+dsnFile+`
providers:
  deepl:
    api_key_file: `+keyFile+`
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Storage.Postgres.DSN != "postgres://u:p@db:5432/edenai" {
		t.Errorf("DSN = %q, secret file content should be trimmed", cfg.Storage.Postgres.DSN)
	}
	if cfg.Providers["deepl"].APIKey != "dk-secret" {
		t.Errorf("deepl api key = %q", cfg.Providers["deepl"].APIKey)
	}
}

func TestLoad_InlineValueWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	keyFile := writeFile(t, dir, "deepl.key", "from-file")
	path := writeFile(t, dir, "config.yaml", `
providers:
  deepl:
    api_key: inline
    api_key_file: `+keyFile+`
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Providers["deepl"].APIKey != "inline" {
		t.Errorf("api key = %q, inline value should win", cfg.Providers["deepl"].APIKey)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "unknown storage type",
			mutate:  func(c *Config) { c.Storage.Type = "etcd" },
			wantErr: "storage.type",
		},
		{
			name:    "postgres without dsn",
			mutate:  func(c *Config) { c.Storage.Type = "postgres" },
			wantErr: "storage.postgres.dsn",
		},
		{
			name:    "redis without url",
			mutate:  func(c *Config) { c.Storage.Type = "redis" },
			wantErr: "storage.redis.url",
		},
		{
			name:    "apikey auth without keys",
			mutate:  func(c *Config) { c.Auth.Type = "apikey" },
			wantErr: "auth.api_keys",
		},
		{
			name:    "jwt auth without secret",
			mutate:  func(c *Config) { c.Auth.Type = "jwt" },
			wantErr: "auth.jwt.secret",
		},
		{
			name:    "upload without bucket",
			mutate:  func(c *Config) { c.Upload.Enabled = true },
			wantErr: "upload.bucket",
		},
		{
			name: "unknown provider",
			mutate: func(c *Config) {
				c.Providers = map[string]ProviderConfig{"acme": {APIKey: "x"}}
			},
			wantErr: "unknown provider",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tc.wantErr)
			}
		})
	}
}
