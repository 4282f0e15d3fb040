// Package storage defines the persistence contract for asynchronous
// vendor jobs and the sentinel errors shared by its implementations
// (memory, postgres, redisstore).
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/Jiyath5516F/edenai-apis/pkg/canonical"
)

// Sentinel errors for job storage operations.
var (
	// ErrNotFound is returned when a job does not exist.
	ErrNotFound = errors.New("job not found")

	// ErrConflict is returned when a job with the given ID already exists.
	ErrConflict = errors.New("job already exists")
)

// Job tracks one asynchronous vendor job from launch to its terminal
// state. Result holds the serialized async response once the job
// succeeded; Error holds the vendor failure message once it failed.
type Job struct {
	ID            string               `json:"id"`
	Provider      string               `json:"provider"`
	Feature       string               `json:"feature"`
	Subfeature    string               `json:"subfeature"`
	ProviderJobID string               `json:"provider_job_id"`
	Status        canonical.JobStatus  `json:"status"`
	Result        []byte               `json:"result,omitempty"`
	Error         string               `json:"error,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// JobStore persists asynchronous jobs.
//
// Implementations must be safe for concurrent use.
type JobStore interface {
	// SaveJob persists a new job. Returns ErrConflict when the ID is
	// already taken.
	SaveJob(ctx context.Context, job *Job) error

	// GetJob retrieves a job by ID. Returns ErrNotFound when it does
	// not exist.
	GetJob(ctx context.Context, id string) (*Job, error)

	// UpdateJob replaces the stored state of an existing job. Returns
	// ErrNotFound when it does not exist.
	UpdateJob(ctx context.Context, job *Job) error

	// ListJobs returns up to limit jobs ordered by creation time,
	// newest first. A non-positive limit applies a default.
	ListJobs(ctx context.Context, limit int) ([]*Job, error)

	// HealthCheck verifies the backing store is reachable.
	HealthCheck(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}
