package session

import (
	"context"
	"errors"

	"github.com/hupe1980/agendamesh/core"
)

// ErrNotFound is returned by Store.Get when no session exists for the given
// identifier.
var ErrNotFound = errors.New("session: not found")

// Store persists working schedules keyed by session identifier.
type Store interface {
	// Get returns the stored schedule for the session, or ErrNotFound.
	Get(ctx context.Context, sessionID string) (*core.Schedule, error)
	// Save stores a snapshot of the schedule under the session identifier.
	Save(ctx context.Context, sessionID string, schedule *core.Schedule) error
}
