// Package store holds resolved jobs between the analyze call and the later
// convert/status/download calls. Entries are time-bounded: a job older than
// its TTL reports not found exactly like one that never existed.
package store

import (
	"context"
	"errors"

	"github.com/Ryukazi/Render-yt/pkg/models"
)

var ErrNotFound = errors.New("job not found")

// Store is the job registry interface. Implementations must be safe for
// concurrent use and must never hand out a partially written job.
type Store interface {
	Put(ctx context.Context, job *models.Job) error
	Get(ctx context.Context, id string) (*models.Job, error)
	Ping(ctx context.Context) error
	Close() error
}
