// Command server runs the edenai-apis unification gateway.
//
// Configuration is loaded from an optional YAML file plus environment
// overrides; see pkg/config. The most common knobs:
//
//	EDENAI_CONFIG           - config file path (default: ./config.yaml)
//	EDENAI_PORT             - listen port (default: 8080)
//	EDENAI_STORAGE          - job store: "memory", "postgres" or "redis"
//	EDENAI_<VENDOR>_API_KEY - vendor credential, e.g. EDENAI_DEEPL_API_KEY
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/Jiyath5516F/edenai-apis/pkg/asyncjob"
	"github.com/Jiyath5516F/edenai-apis/pkg/auth"
	"github.com/Jiyath5516F/edenai-apis/pkg/auth/apikey"
	authjwt "github.com/Jiyath5516F/edenai-apis/pkg/auth/jwt"
	"github.com/Jiyath5516F/edenai-apis/pkg/config"
	"github.com/Jiyath5516F/edenai-apis/pkg/debug"
	"github.com/Jiyath5516F/edenai-apis/pkg/provider"
	"github.com/Jiyath5516F/edenai-apis/pkg/provider/api4ai"
	"github.com/Jiyath5516F/edenai-apis/pkg/provider/assemblyai"
	"github.com/Jiyath5516F/edenai-apis/pkg/provider/deepl"
	"github.com/Jiyath5516F/edenai-apis/pkg/provider/googlecloud"
	"github.com/Jiyath5516F/edenai-apis/pkg/provider/mindee"
	"github.com/Jiyath5516F/edenai-apis/pkg/storage"
	"github.com/Jiyath5516F/edenai-apis/pkg/storage/memory"
	"github.com/Jiyath5516F/edenai-apis/pkg/storage/postgres"
	"github.com/Jiyath5516F/edenai-apis/pkg/storage/redisstore"
	"github.com/Jiyath5516F/edenai-apis/pkg/transport"
	"github.com/Jiyath5516F/edenai-apis/pkg/upload"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	debug.Init("", "")

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx := context.Background()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("creating job store: %w", err)
	}
	defer store.Close()

	registry, err := buildRegistry(cfg)
	if err != nil {
		return fmt.Errorf("building vendor registry: %w", err)
	}

	var uploader transport.FileUploader
	if cfg.Upload.Enabled {
		up, err := upload.New(ctx, upload.Config{
			Bucket:          cfg.Upload.Bucket,
			Region:          cfg.Upload.Region,
			AccessKeyID:     cfg.Upload.AccessKeyID,
			SecretAccessKey: cfg.Upload.SecretAccessKey,
			Endpoint:        cfg.Upload.Endpoint,
			URLExpiry:       cfg.Upload.URLExpiry,
		})
		if err != nil {
			return fmt.Errorf("creating uploader: %w", err)
		}
		uploader = up
		slog.Info("file hosting enabled", "bucket", cfg.Upload.Bucket)
	}

	adapter := transport.NewAdapter(registry, store, uploader, slog.Default(), transport.AdapterConfig{
		Poller: asyncjob.Poller{
			MaxAttempts: cfg.Async.MaxAttempts,
			Interval:    cfg.Async.Interval,
		},
	})

	opts := []transport.ServerOption{
		transport.WithAddr(":" + strconv.Itoa(cfg.Server.Port)),
	}
	if cfg.Observability.Metrics.Enabled {
		opts = append(opts, transport.WithMetrics(cfg.Observability.Metrics.Path))
	}
	if mw := buildAuthMiddleware(cfg); mw != nil {
		opts = append(opts, transport.WithMiddleware(mw))
	}

	srv := transport.NewServer(adapter, opts...)
	return srv.ListenAndServe()
}

func buildStore(ctx context.Context, cfg *config.Config) (storage.JobStore, error) {
	switch cfg.Storage.Type {
	case "postgres":
		slog.Info("storage enabled", "type", "postgres")
		return postgres.New(ctx, postgres.Config{
			DSN:            cfg.Storage.Postgres.DSN,
			MaxConns:       cfg.Storage.Postgres.MaxConns,
			MigrateOnStart: cfg.Storage.Postgres.MigrateOnStart,
		})
	case "redis":
		slog.Info("storage enabled", "type", "redis")
		return redisstore.New(ctx, redisstore.Config{
			URL: cfg.Storage.Redis.URL,
			TTL: cfg.Storage.Redis.TTL,
		})
	default:
		slog.Info("storage enabled", "type", "memory", "max_size", cfg.Storage.MaxSize)
		return memory.New(cfg.Storage.MaxSize), nil
	}
}

// buildRegistry creates one adapter per configured vendor. A vendor
// name without a constructor here is caught by config validation.
func buildRegistry(cfg *config.Config) (*provider.Registry, error) {
	registry := provider.NewRegistry()

	for name, pc := range cfg.Providers {
		settings := provider.Settings{
			APIKey:  pc.APIKey,
			BaseURL: pc.BaseURL,
			Extra:   pc.Extra,
		}

		var vendor provider.Vendor
		switch name {
		case "deepl":
			vendor = deepl.New(settings)
		case "googlecloud":
			vendor = googlecloud.New(settings)
		case "mindee":
			vendor = mindee.New(settings)
		case "assemblyai":
			vendor = assemblyai.New(settings)
		case "api4ai":
			vendor = api4ai.New(settings)
		default:
			return nil, fmt.Errorf("no adapter for vendor %q", name)
		}

		if err := registry.Register(vendor); err != nil {
			return nil, err
		}
		slog.Info("vendor registered", "vendor", name)
	}

	return registry, nil
}

func buildAuthMiddleware(cfg *config.Config) transport.Middleware {
	switch cfg.Auth.Type {
	case "apikey":
		entries := make([]apikey.RawKeyEntry, 0, len(cfg.Auth.APIKeys))
		for _, k := range cfg.Auth.APIKeys {
			subject := k.Subject
			if subject == "" {
				subject = "api-key"
			}
			entries = append(entries, apikey.RawKeyEntry{
				Key:      k.Key,
				Identity: auth.Identity{Subject: subject},
			})
		}
		chain := &auth.Chain{
			Authenticators:  []auth.Authenticator{apikey.New(entries)},
			DefaultDecision: auth.No,
		}
		return auth.Middleware(chain, auth.DefaultBypassEndpoints)
	case "jwt":
		chain := &auth.Chain{
			Authenticators: []auth.Authenticator{authjwt.New(authjwt.Config{
				Secret: cfg.Auth.JWT.Secret,
				Issuer: cfg.Auth.JWT.Issuer,
			})},
			DefaultDecision: auth.No,
		}
		return auth.Middleware(chain, auth.DefaultBypassEndpoints)
	default:
		return nil
	}
}
