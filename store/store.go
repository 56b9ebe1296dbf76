// Package store defines the persistence contract for schedule entries and
// provides a GORM-backed implementation plus an in-memory one for tests.
//
// All operations are treated by the orchestration layer as atomic and
// immediately consistent; a returned error is a collaborator fault that fails
// the whole conversation turn.
package store

import (
	"context"

	"github.com/hupe1980/agendamesh/core"
)

// EntryStore is the read/write contract the tool layer consumes. Writes are
// scoped to an owning principal where the operation is destructive; entries
// without an owner are visible to every principal (shared calendar rows).
type EntryStore interface {
	// AddEntry persists a new entry and returns the assigned identifier.
	// The entry's ID field is updated in place as well.
	AddEntry(ctx context.Context, entry *core.Entry) (int64, error)

	// RemoveEntry deletes the entry if it is visible to the principal and
	// returns the number of affected rows (0 or 1).
	RemoveEntry(ctx context.Context, entry *core.Entry, principalID int64) (int64, error)

	// UpdateEntry rewrites all mutable fields of the entry, scoped to the
	// principal, and returns the number of affected rows.
	UpdateEntry(ctx context.Context, entry *core.Entry, principalID int64) (int64, error)

	// GetSchedule loads the entries visible to the principal inside the
	// window, already in canonical order (date, start time, id).
	GetSchedule(ctx context.Context, principalID int64, r core.DateRange) (*core.Schedule, error)

	// GetEntriesByIDs loads specific entries by identifier, in canonical order.
	GetEntriesByIDs(ctx context.Context, ids []int64) ([]core.Entry, error)
}
