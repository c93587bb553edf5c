package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Ryukazi/Render-yt/pkg/models"
)

// MemoryStore is the default in-process job registry. Expiry is enforced
// twice: lazily on Get, and by a periodic sweep started with StartSweeper.
// A download request that loses the race against the sweep simply observes
// ErrNotFound; nothing pins a job while a request is in flight.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]*models.Job

	ttl time.Duration
	now func() time.Time
}

// NewMemoryStore creates a MemoryStore with the given job TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		jobs: make(map[string]*models.Job),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok || s.expired(job) {
		return nil, ErrNotFound
	}
	return job, nil
}

func (s *MemoryStore) Ping(_ context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

// StartSweeper launches a goroutine that removes expired jobs every
// interval until ctx is cancelled.
func (s *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.sweep(); n > 0 {
					slog.Debug("swept expired jobs", "count", n)
				}
			}
		}
	}()
}

// sweep removes all expired jobs and returns how many were removed.
func (s *MemoryStore) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, job := range s.jobs {
		if s.expired(job) {
			delete(s.jobs, id)
			n++
		}
	}
	return n
}

func (s *MemoryStore) expired(job *models.Job) bool {
	return s.now().Sub(job.CreatedAt) > s.ttl
}
