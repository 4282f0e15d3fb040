// Package memory provides an in-memory implementation of
// storage.JobStore for testing and lightweight deployments. Jobs are
// lost when the process restarts. Optional LRU eviction limits memory
// usage.
package memory

import (
	"container/list"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Jiyath5516F/edenai-apis/pkg/storage"
)

// entry holds a stored job and its LRU position.
type entry struct {
	job     *storage.Job
	lruElem *list.Element
}

// Store is an in-memory JobStore with optional LRU eviction.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	lruList *list.List // front = most recently used
	maxSize int        // 0 = unlimited
}

var _ storage.JobStore = (*Store)(nil)

// New creates a new in-memory store. If maxSize is 0, the store grows
// without limit. If maxSize > 0, the oldest entry is evicted when the
// limit is reached.
func New(maxSize int) *Store {
	return &Store{
		entries: make(map[string]*entry),
		lruList: list.New(),
		maxSize: maxSize,
	}
}

// SaveJob persists a job in memory.
func (s *Store) SaveJob(_ context.Context, job *storage.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[job.ID]; exists {
		return storage.ErrConflict
	}

	if s.maxSize > 0 && len(s.entries) >= s.maxSize {
		s.evictOldest()
	}

	stored := *job
	elem := s.lruList.PushFront(job.ID)
	s.entries[job.ID] = &entry{job: &stored, lruElem: elem}
	return nil
}

// GetJob retrieves a job by ID.
func (s *Store) GetJob(_ context.Context, id string) (*storage.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	s.lruList.MoveToFront(e.lruElem)

	job := *e.job
	return &job, nil
}

// UpdateJob replaces the stored state of an existing job.
func (s *Store) UpdateJob(_ context.Context, job *storage.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[job.ID]
	if !ok {
		return storage.ErrNotFound
	}

	stored := *job
	stored.UpdatedAt = time.Now()
	e.job = &stored
	s.lruList.MoveToFront(e.lruElem)
	return nil
}

// ListJobs returns up to limit jobs, newest first.
func (s *Store) ListJobs(_ context.Context, limit int) ([]*storage.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]*storage.Job, 0, len(s.entries))
	for _, e := range s.entries {
		job := *e.job
		jobs = append(jobs, &job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		if !jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
		}
		return jobs[i].ID > jobs[j].ID
	})

	if limit <= 0 {
		limit = 20
	}
	if len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

// HealthCheck always returns nil for the in-memory store.
func (s *Store) HealthCheck(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

// evictOldest removes the least recently used entry.
// Must be called with s.mu held.
func (s *Store) evictOldest() {
	back := s.lruList.Back()
	if back == nil {
		return
	}
	id := back.Value.(string)
	s.lruList.Remove(back)
	delete(s.entries, id)
}
