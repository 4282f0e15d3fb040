// Package postgres provides a PostgreSQL implementation of
// storage.JobStore. It uses pgx/v5 for connection pooling.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jiyath5516F/edenai-apis/pkg/canonical"
	"github.com/Jiyath5516F/edenai-apis/pkg/storage"
)

// Store is a PostgreSQL-backed JobStore.
type Store struct {
	pool *pgxpool.Pool
}

var _ storage.JobStore = (*Store)(nil)

// New creates a new PostgreSQL store with the given configuration.
// If MigrateOnStart is true, schema migrations are applied automatically.
func New(ctx context.Context, cfg Config) (*Store, error) {
	cfg.defaults()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{pool: pool}

	if cfg.MigrateOnStart {
		if err := s.migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return s, nil
}

// SaveJob persists a new job.
func (s *Store) SaveJob(ctx context.Context, job *storage.Job) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO jobs (
			id, provider, feature, subfeature, provider_job_id,
			status, result, error, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		job.ID, job.Provider, job.Feature, job.Subfeature, job.ProviderJobID,
		string(job.Status), nullBytes(job.Result), nullString(job.Error),
		job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("inserting job: %w", err)
	}
	return nil
}

// GetJob retrieves a job by ID.
func (s *Store) GetJob(ctx context.Context, id string) (*storage.Job, error) {
	var job storage.Job
	var status string
	var result *[]byte
	var errMsg *string

	err := s.pool.QueryRow(ctx, `
		SELECT id, provider, feature, subfeature, provider_job_id,
		       status, result, error, created_at, updated_at
		FROM jobs
		WHERE id = $1
	`, id).Scan(
		&job.ID, &job.Provider, &job.Feature, &job.Subfeature, &job.ProviderJobID,
		&status, &result, &errMsg, &job.CreatedAt, &job.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying job: %w", err)
	}

	job.Status = canonical.JobStatus(status)
	if result != nil {
		job.Result = *result
	}
	if errMsg != nil {
		job.Error = *errMsg
	}
	return &job, nil
}

// UpdateJob replaces the stored state of an existing job.
func (s *Store) UpdateJob(ctx context.Context, job *storage.Job) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE jobs
		SET status = $2, result = $3, error = $4, updated_at = $5
		WHERE id = $1
	`,
		job.ID, string(job.Status), nullBytes(job.Result), nullString(job.Error),
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("updating job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListJobs returns up to limit jobs, newest first.
func (s *Store) ListJobs(ctx context.Context, limit int) ([]*storage.Job, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, provider, feature, subfeature, provider_job_id,
		       status, result, error, created_at, updated_at
		FROM jobs
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*storage.Job
	for rows.Next() {
		var job storage.Job
		var status string
		var result *[]byte
		var errMsg *string
		if err := rows.Scan(
			&job.ID, &job.Provider, &job.Feature, &job.Subfeature, &job.ProviderJobID,
			&status, &result, &errMsg, &job.CreatedAt, &job.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning job: %w", err)
		}
		job.Status = canonical.JobStatus(status)
		if result != nil {
			job.Result = *result
		}
		if errMsg != nil {
			job.Error = *errMsg
		}
		jobs = append(jobs, &job)
	}
	return jobs, rows.Err()
}

// HealthCheck verifies the database connection.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// nullString converts an empty string to nil for nullable TEXT columns.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// nullBytes converts empty byte slices to nil for nullable BYTEA/JSONB columns.
func nullBytes(b []byte) *[]byte {
	if len(b) == 0 {
		return nil
	}
	return &b
}

// isDuplicateKey checks if the error is a PostgreSQL unique violation (23505).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
