package store

import (
	"context"
	"sync"

	"github.com/hupe1980/agendamesh/core"
)

// InMemoryStore is a volatile EntryStore implementation with the same
// visibility semantics as GormStore: rows may be owned by a principal or
// shared (nil owner). Safe for concurrent access; best suited for tests and
// demos.
type InMemoryStore struct {
	mu      sync.Mutex
	nextID  int64
	entries map[int64]memoryRow
}

type memoryRow struct {
	entry core.Entry
	owner *int64
}

var _ EntryStore = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in-memory entry store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[int64]memoryRow)}
}

// AddEntry implements EntryStore. Entries added through the tool layer are
// shared rows, matching the reference schema where user_id may be NULL.
func (s *InMemoryStore) AddEntry(_ context.Context, entry *core.Entry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	entry.ID = s.nextID
	s.entries[entry.ID] = memoryRow{entry: *entry}
	return entry.ID, nil
}

// AddOwnedEntry stores an entry visible only to the given principal. Test
// helper mirroring externally created per-user rows.
func (s *InMemoryStore) AddOwnedEntry(entry *core.Entry, principalID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	entry.ID = s.nextID
	owner := principalID
	s.entries[entry.ID] = memoryRow{entry: *entry, owner: &owner}
	return entry.ID
}

// RemoveEntry implements EntryStore.
func (s *InMemoryStore) RemoveEntry(_ context.Context, entry *core.Entry, principalID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.entries[entry.ID]
	if !ok || !visibleTo(row, principalID) {
		return 0, nil
	}
	delete(s.entries, entry.ID)
	return 1, nil
}

// UpdateEntry implements EntryStore.
func (s *InMemoryStore) UpdateEntry(_ context.Context, entry *core.Entry, principalID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.entries[entry.ID]
	if !ok || !visibleTo(row, principalID) {
		return 0, nil
	}
	row.entry = *entry
	s.entries[entry.ID] = row
	return 1, nil
}

// GetSchedule implements EntryStore.
func (s *InMemoryStore) GetSchedule(_ context.Context, principalID int64, r core.DateRange) (*core.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []core.Entry
	for _, row := range s.entries {
		if !visibleTo(row, principalID) {
			continue
		}
		if !r.ContainsDate(row.entry.Date) {
			continue
		}
		entries = append(entries, row.entry)
	}
	return core.NewSchedule(r, entries), nil
}

// GetEntriesByIDs implements EntryStore.
func (s *InMemoryStore) GetEntriesByIDs(_ context.Context, ids []int64) ([]core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []core.Entry
	for _, id := range ids {
		if row, ok := s.entries[id]; ok {
			entries = append(entries, row.entry)
		}
	}
	sched := core.NewSchedule(core.DateRange{}, entries)
	return sched.Entries, nil
}

// Len returns the number of stored rows. Test helper.
func (s *InMemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func visibleTo(row memoryRow, principalID int64) bool {
	return row.owner == nil || *row.owner == principalID
}
