package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agendamesh/core"
)

func entryOn(t *testing.T, date, start, end, title, provider string) core.Entry {
	t.Helper()
	d, err := core.ParseEntryDate(date)
	require.NoError(t, err)
	st, err := core.ParseClockTime(start)
	require.NoError(t, err)
	et, err := core.ParseClockTime(end)
	require.NoError(t, err)
	return core.Entry{Date: d, StartTime: st, EndTime: et, Title: title, Provider: provider}
}

func TestFilterDateRange(t *testing.T) {
	tc, _ := newTestContext(t)

	result, err := NewFilterDateRangeTool().Call(tc, map[string]any{
		"from_date": "2025-12-01",
		"to_date":   "2025-12-07",
	})
	require.NoError(t, err)
	assert.Equal(t, "Success", result["result"])
	assert.Equal(t, "2025-12-01", tc.Schedule().Range.From.Format(core.DateLayout))
	assert.Equal(t, "2025-12-07", tc.Schedule().Range.To.Format(core.DateLayout))
}

func TestFilterDateRangeInvalid(t *testing.T) {
	tc, _ := newTestContext(t)
	before := tc.Schedule().Range

	result, err := NewFilterDateRangeTool().Call(tc, map[string]any{
		"from_date": "soon",
		"to_date":   "later",
	})
	require.NoError(t, err)
	assert.Contains(t, result["error"], "Invalid date range")
	assert.Equal(t, before, tc.Schedule().Range)
}

func TestScheduleTable(t *testing.T) {
	tc, _ := newTestContext(t,
		entryOn(t, "2025-11-12", "09:00", "10:00", "Checkup", "Dr. Patel"),
		entryOn(t, "2025-11-10", "14:00", "15:00", "Follow-up", "Dr. Lee"),
	)

	result, err := NewScheduleTableTool().Call(tc, map[string]any{})
	require.NoError(t, err)

	rows, ok := result["rows"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, rows, 2)
	// Canonical ordering puts the earlier date first.
	assert.Equal(t, "2025-11-10", rows[0]["date"])
	assert.Equal(t, "Follow-up", rows[0]["title"])
	assert.Equal(t, "09:00:00", rows[1]["start_time"])
}

func TestAddEntry(t *testing.T) {
	tc, entryStore := newTestContext(t)

	result, err := NewAddEntryTool().Call(tc, map[string]any{
		"date":       "2025-11-12",
		"start_time": "09:00",
		"end_time":   "11:00",
		"title":      "New patient appointment",
		"provider":   "Dr. Patel",
		"note":       "Tentative",
	})
	require.NoError(t, err)

	assert.Equal(t, "Complete", result["status"])
	assert.Equal(t, int64(1), result["entry_id"])
	assert.Equal(t, true, result["added_to_current_view"])
	assert.Equal(t, 1, tc.Schedule().Len())
	assert.Equal(t, 1, entryStore.Len())
}

func TestAddEntryOutsideViewIsPersistedButNotShown(t *testing.T) {
	tc, entryStore := newTestContext(t)

	result, err := NewAddEntryTool().Call(tc, map[string]any{
		"date":       "2026-01-05",
		"start_time": "09:00",
		"end_time":   "10:00",
		"title":      "After the holidays",
		"provider":   "Dr. Lee",
	})
	require.NoError(t, err)

	assert.Equal(t, false, result["added_to_current_view"])
	assert.Equal(t, 0, tc.Schedule().Len())
	assert.Equal(t, 1, entryStore.Len())
}

func TestAddEntryArgumentErrors(t *testing.T) {
	tc, entryStore := newTestContext(t)
	tool := NewAddEntryTool()

	result, err := tool.Call(tc, map[string]any{
		"date": "someday", "start_time": "09:00", "end_time": "10:00",
		"title": "x", "provider": "y",
	})
	require.NoError(t, err)
	assert.Contains(t, result["error"], "invalid date format")

	result, err = tool.Call(tc, map[string]any{
		"date": "2025-11-12", "start_time": "11:00", "end_time": "09:00",
		"title": "x", "provider": "y",
	})
	require.NoError(t, err)
	assert.Equal(t, "end_time must be strictly after start_time", result["error"])

	// Nothing was persisted on any of the rejected calls.
	assert.Equal(t, 0, entryStore.Len())
}

func TestDeleteEntries(t *testing.T) {
	tc, entryStore := newTestContext(t,
		entryOn(t, "2025-11-10", "09:00", "10:00", "A", "Dr. Patel"),
		entryOn(t, "2025-11-11", "09:00", "10:00", "B", "Dr. Lee"),
		entryOn(t, "2025-11-12", "09:00", "10:00", "C", "Dr. Patel"),
	)

	// Mixed string and numeric IDs, a duplicate, garbage and an unknown ID.
	result, err := NewDeleteEntriesTool().Call(tc, map[string]any{
		"entry_ids": []any{"1", float64(3), "1", "not-a-number", "99"},
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 3}, result["deleted_entry_ids"])
	assert.Equal(t, 2, result["total_deleted"])
	assert.Equal(t, 1, tc.Schedule().Len())
	assert.Equal(t, 1, entryStore.Len())
}

func TestDeleteEntriesEmpty(t *testing.T) {
	tc, _ := newTestContext(t, entryOn(t, "2025-11-10", "09:00", "10:00", "A", "Dr. Patel"))

	result, err := NewDeleteEntriesTool().Call(tc, map[string]any{"entry_ids": []any{}})
	require.NoError(t, err)
	assert.Equal(t, 0, result["total_deleted"])
	assert.Equal(t, 1, tc.Schedule().Len())
}

func TestDeleteByFilterRequiresAFilter(t *testing.T) {
	tc, entryStore := newTestContext(t, entryOn(t, "2025-11-10", "09:00", "10:00", "A", "Dr. Patel"))

	result, err := NewDeleteByFilterTool().Call(tc, map[string]any{})
	require.NoError(t, err)

	assert.Equal(t, 0, result["total_deleted"])
	assert.Contains(t, result["error"], "No filters provided")
	assert.Equal(t, 1, tc.Schedule().Len())
	assert.Equal(t, 1, entryStore.Len())
}

func TestDeleteByFilterSingleDayWithProvider(t *testing.T) {
	tc, _ := newTestContext(t,
		entryOn(t, "2025-11-10", "09:00", "10:00", "A", "Dr. Patel"),
		entryOn(t, "2025-11-10", "11:00", "12:00", "B", "Dr. Lee"),
		entryOn(t, "2025-11-11", "09:00", "10:00", "C", "Dr. Patel"),
	)

	result, err := NewDeleteByFilterTool().Call(tc, map[string]any{
		"date":     "2025-11-10",
		"provider": "dr. patel",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result["total_deleted"])
	assert.Equal(t, []int64{1}, result["deleted_entry_ids"])
	applied, ok := result["applied_filters"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2025-11-10", applied["date"])
	assert.Equal(t, 2, tc.Schedule().Len())
}

func TestDeleteByFilterDateOverridesRange(t *testing.T) {
	tc, _ := newTestContext(t,
		entryOn(t, "2025-11-10", "09:00", "10:00", "A", "Dr. Patel"),
		entryOn(t, "2025-11-12", "09:00", "10:00", "B", "Dr. Patel"),
	)

	result, err := NewDeleteByFilterTool().Call(tc, map[string]any{
		"date":      "2025-11-12",
		"from_date": "2025-11-01",
		"to_date":   "2025-11-30",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result["total_deleted"])
	assert.NotNil(t, tc.Schedule().FindByID(1))
}

func TestDeleteByFilterPartialRangeDefaultsToActiveWindow(t *testing.T) {
	tc, _ := newTestContext(t,
		entryOn(t, "2025-11-10", "09:00", "10:00", "A", "Dr. Patel"),
		entryOn(t, "2025-11-14", "09:00", "10:00", "B", "Dr. Patel"),
	)

	// Only from_date given; to_date falls back to the end of the active
	// window (2025-11-16), so both entries from the 12th on match.
	result, err := NewDeleteByFilterTool().Call(tc, map[string]any{
		"from_date": "2025-11-12",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result["total_deleted"])
	assert.Equal(t, []int64{2}, result["deleted_entry_ids"])
}

func TestDeleteByFilterTitleContains(t *testing.T) {
	tc, _ := newTestContext(t,
		entryOn(t, "2025-11-10", "09:00", "10:00", "Follow-up visit", "Dr. Lee"),
		entryOn(t, "2025-11-11", "09:00", "10:00", "New patient", "Dr. Lee"),
	)

	result, err := NewDeleteByFilterTool().Call(tc, map[string]any{
		"title_contains": "follow-UP",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result["total_deleted"])
	assert.Equal(t, []int64{1}, result["deleted_entry_ids"])
}

func TestDeleteByFilterNothingMatches(t *testing.T) {
	tc, entryStore := newTestContext(t, entryOn(t, "2025-11-10", "09:00", "10:00", "A", "Dr. Patel"))

	result, err := NewDeleteByFilterTool().Call(tc, map[string]any{
		"provider": "Dr. Nobody",
	})
	require.NoError(t, err)

	assert.Equal(t, true, result["matched_filters_but_nothing_found"])
	assert.Equal(t, 0, result["total_deleted"])
	assert.Equal(t, 1, entryStore.Len())
}

func TestDeleteByFilterInvalidDate(t *testing.T) {
	tc, _ := newTestContext(t, entryOn(t, "2025-11-10", "09:00", "10:00", "A", "Dr. Patel"))

	result, err := NewDeleteByFilterTool().Call(tc, map[string]any{"date": "tomorrow-ish"})
	require.NoError(t, err)
	assert.Contains(t, result["error"], "Invalid date")
	assert.Equal(t, 1, tc.Schedule().Len())
}

func TestSelectEntries(t *testing.T) {
	tc, _ := newTestContext(t,
		entryOn(t, "2025-11-10", "09:00", "10:00", "A", "Dr. Patel"),
		entryOn(t, "2025-11-11", "09:00", "10:00", "B", "Dr. Lee"),
	)

	// First selection.
	result, err := NewSelectEntriesTool().Call(tc, map[string]any{"entry_ids": []any{"1"}})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, result["selected_entry_ids"])
	assert.True(t, tc.Schedule().FindByID(1).Selected)

	// A new selection clears the previous one; unknown and unparseable IDs
	// are reported in their own partitions.
	result, err = NewSelectEntriesTool().Call(tc, map[string]any{"entry_ids": []any{float64(2), float64(7), "junk"}})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, result["selected_entry_ids"])
	assert.Equal(t, []int64{7}, result["not_found_entry_ids"])
	assert.Equal(t, []string{"junk"}, result["invalid_entry_ids"])
	assert.False(t, tc.Schedule().FindByID(1).Selected)
	assert.True(t, tc.Schedule().FindByID(2).Selected)
}
