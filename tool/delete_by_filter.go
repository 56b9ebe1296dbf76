package tool

import (
	"strings"
	"time"

	"github.com/hupe1980/agendamesh/core"
	"github.com/hupe1980/agendamesh/internal/util"
)

type deleteByFilterArgs struct {
	Date          string `json:"date,omitempty" description:"Delete entries on this single day (YYYY-MM-DD). Overrides from_date and to_date."`
	FromDate      string `json:"from_date,omitempty" description:"Start of the deletion window (YYYY-MM-DD). Defaults to the start of the active date range."`
	ToDate        string `json:"to_date,omitempty" description:"End of the deletion window (YYYY-MM-DD). Defaults to the end of the active date range."`
	Provider      string `json:"provider,omitempty" description:"Only delete entries with exactly this provider name."`
	TitleContains string `json:"title_contains,omitempty" description:"Only delete entries whose title contains this text."`
}

// DeleteByFilterTool resolves filter criteria against the working set and
// hands the matching identifiers to the same primitive delete_entries uses.
// It never deletes without at least one filter.
type DeleteByFilterTool struct{}

// NewDeleteByFilterTool constructs the filter-based deletion tool.
func NewDeleteByFilterTool() *DeleteByFilterTool { return &DeleteByFilterTool{} }

// Name returns the tool identifier.
func (t *DeleteByFilterTool) Name() string { return "delete_by_filter" }

// Description returns the model-facing description.
func (t *DeleteByFilterTool) Description() string {
	return "Delete schedule entries matching the given filters. Use date for a single day, " +
		"or from_date/to_date for a window; provider and title_contains narrow the match further. " +
		"At least one filter is required."
}

// Parameters returns the argument schema.
func (t *DeleteByFilterTool) Parameters() map[string]any {
	return util.CreateSchema(deleteByFilterArgs{})
}

// Call matches entries against the filters and delegates deletion.
func (t *DeleteByFilterTool) Call(tc *Context, args map[string]any) (Result, error) {
	f := deleteByFilterArgs{
		Date:          strings.TrimSpace(stringArg(args, "date")),
		FromDate:      strings.TrimSpace(stringArg(args, "from_date")),
		ToDate:        strings.TrimSpace(stringArg(args, "to_date")),
		Provider:      strings.TrimSpace(stringArg(args, "provider")),
		TitleContains: strings.TrimSpace(stringArg(args, "title_contains")),
	}

	if f.Date == "" && f.FromDate == "" && f.ToDate == "" && f.Provider == "" && f.TitleContains == "" {
		return Result{
			"deleted_entry_ids": []int64{},
			"total_deleted":     0,
			"error":             "No filters provided. Refusing to delete the entire schedule; pass at least one filter.",
		}, nil
	}

	sched := tc.Schedule()

	var from, to time.Time
	hasWindow := false
	switch {
	case f.Date != "":
		day, err := core.ParseEntryDate(f.Date)
		if err != nil {
			return errorResult("Invalid date %q: %v", f.Date, err), nil
		}
		from, to = day, day
		hasWindow = true
	case f.FromDate != "" || f.ToDate != "":
		from = core.NormalizeDate(sched.Range.From)
		to = core.NormalizeDate(sched.Range.To)
		if f.FromDate != "" {
			d, err := core.ParseEntryDate(f.FromDate)
			if err != nil {
				return errorResult("Invalid from_date %q: %v", f.FromDate, err), nil
			}
			from = d
		}
		if f.ToDate != "" {
			d, err := core.ParseEntryDate(f.ToDate)
			if err != nil {
				return errorResult("Invalid to_date %q: %v", f.ToDate, err), nil
			}
			to = d
		}
		hasWindow = true
	}

	applied := appliedFilters(f)

	var matched []int64
	for i := range sched.Entries {
		e := &sched.Entries[i]
		if hasWindow {
			day := core.NormalizeDate(e.Date)
			if day.Before(from) || day.After(to) {
				continue
			}
		}
		if f.Provider != "" && !strings.EqualFold(strings.TrimSpace(e.Provider), f.Provider) {
			continue
		}
		if f.TitleContains != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(f.TitleContains)) {
			continue
		}
		matched = append(matched, e.ID)
	}

	if len(matched) == 0 {
		return Result{
			"deleted_entry_ids":                 []int64{},
			"total_deleted":                     0,
			"matched_filters_but_nothing_found": true,
			"applied_filters":                   applied,
		}, nil
	}

	deleted, err := deleteByIDs(tc, matched)
	if err != nil {
		return nil, err
	}
	return Result{
		"deleted_entry_ids": deleted,
		"total_deleted":     len(deleted),
		"matched_entry_ids": matched,
		"applied_filters":   applied,
	}, nil
}

func appliedFilters(f deleteByFilterArgs) map[string]any {
	applied := map[string]any{}
	if f.Date != "" {
		applied["date"] = f.Date
	}
	if f.FromDate != "" {
		applied["from_date"] = f.FromDate
	}
	if f.ToDate != "" {
		applied["to_date"] = f.ToDate
	}
	if f.Provider != "" {
		applied["provider"] = f.Provider
	}
	if f.TitleContains != "" {
		applied["title_contains"] = f.TitleContains
	}
	return applied
}

// stringArg reads a string argument, tolerating absence and non-string noise.
func stringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
