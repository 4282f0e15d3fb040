// Package redisstore provides a Redis implementation of
// storage.JobStore. Jobs are serialized as JSON values with a
// configurable TTL; a sorted set indexes them by creation time for
// listing.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/Jiyath5516F/edenai-apis/pkg/storage"
)

const keyNS = "edenai:job"

// Config holds Redis connection and behavior settings.
type Config struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379/0").
	URL string

	// TTL is how long a job is kept after its last update
	// (default: 7 days). Zero means the default, negative disables expiry.
	TTL time.Duration
}

// Store is a Redis-backed JobStore.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

var _ storage.JobStore = (*Store)(nil)

// New creates a new Redis store and verifies connectivity.
func New(ctx context.Context, cfg Config) (*Store, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = 7 * 24 * time.Hour
	}
	if ttl < 0 {
		ttl = 0 // no expiry
	}
	return &Store{client: client, ttl: ttl}, nil
}

func jobKey(id string) string { return keyNS + ":" + id }

const indexKey = keyNS + ":index"

// SaveJob persists a new job.
func (s *Store) SaveJob(ctx context.Context, job *storage.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshaling job: %w", err)
	}

	ok, err := s.client.SetNX(ctx, jobKey(job.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("storing job: %w", err)
	}
	if !ok {
		return storage.ErrConflict
	}

	if err := s.client.ZAdd(ctx, indexKey, redis.Z{
		Score:  float64(job.CreatedAt.UnixNano()),
		Member: job.ID,
	}).Err(); err != nil {
		return fmt.Errorf("indexing job: %w", err)
	}
	return nil
}

// GetJob retrieves a job by ID.
func (s *Store) GetJob(ctx context.Context, id string) (*storage.Job, error) {
	data, err := s.client.Get(ctx, jobKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching job: %w", err)
	}

	var job storage.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("unmarshaling job: %w", err)
	}
	return &job, nil
}

// UpdateJob replaces the stored state of an existing job.
func (s *Store) UpdateJob(ctx context.Context, job *storage.Job) error {
	updated := *job
	updated.UpdatedAt = time.Now()

	data, err := json.Marshal(&updated)
	if err != nil {
		return fmt.Errorf("marshaling job: %w", err)
	}

	// SET XX only succeeds when the key exists.
	res, err := s.client.SetXX(ctx, jobKey(job.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("updating job: %w", err)
	}
	if !res {
		return storage.ErrNotFound
	}
	return nil
}

// ListJobs returns up to limit jobs, newest first.
func (s *Store) ListJobs(ctx context.Context, limit int) ([]*storage.Job, error) {
	if limit <= 0 {
		limit = 20
	}

	ids, err := s.client.ZRevRange(ctx, indexKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}

	jobs := make([]*storage.Job, 0, len(ids))
	for _, id := range ids {
		job, err := s.GetJob(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			// Expired entry still in the index.
			s.client.ZRem(ctx, indexKey, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// HealthCheck verifies the Redis connection.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
