package core

import "sort"

// Schedule is the working set for one conversation turn: the active date
// window plus the entries visible inside it. It is owned by the turn that
// created it and passed by pointer to every tool, so mutations made by an
// earlier tool call are observable by later calls in the same turn.
//
// Entries are kept in canonical display order: ascending by date, then start
// time, then ID. Every mutator preserves that ordering.
type Schedule struct {
	Range   DateRange `json:"daterange"`
	Entries []Entry   `json:"entries"`
}

// NewSchedule builds a working set over the given window.
func NewSchedule(r DateRange, entries []Entry) *Schedule {
	s := &Schedule{Range: r, Entries: entries}
	s.Sort()
	return s
}

// Sort restores the canonical ordering in place.
func (s *Schedule) Sort() {
	sort.SliceStable(s.Entries, func(i, j int) bool {
		a, b := s.Entries[i], s.Entries[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime.Before(b.StartTime)
		}
		return a.ID < b.ID
	})
}

// Insert adds an entry and re-sorts so the ordering invariant holds.
func (s *Schedule) Insert(e Entry) {
	s.Entries = append(s.Entries, e)
	s.Sort()
}

// Remove drops the entries whose IDs appear in ids and returns how many were
// removed. Relative order of the survivors is untouched.
func (s *Schedule) Remove(ids []int64) int {
	if len(ids) == 0 {
		return 0
	}
	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := s.Entries[:0]
	removed := 0
	for _, e := range s.Entries {
		if _, ok := drop[e.ID]; ok {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.Entries = kept
	return removed
}

// FindByID returns a pointer to the entry with the given ID, or nil.
// The pointer aliases the working set, so callers may flip transient flags.
func (s *Schedule) FindByID(id int64) *Entry {
	for i := range s.Entries {
		if s.Entries[i].ID == id {
			return &s.Entries[i]
		}
	}
	return nil
}

// Len returns the number of visible entries.
func (s *Schedule) Len() int { return len(s.Entries) }

// Clone returns a deep copy, used by session stores to prevent external
// mutation of retained state.
func (s *Schedule) Clone() *Schedule {
	entries := make([]Entry, len(s.Entries))
	copy(entries, s.Entries)
	return &Schedule{Range: s.Range, Entries: entries}
}
