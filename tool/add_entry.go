package tool

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/hupe1980/agendamesh/core"
	"github.com/hupe1980/agendamesh/internal/util"
)

type addEntryArgs struct {
	Date      string `json:"date" description:"Calendar date of the appointment, YYYY-MM-DD. A time component is ignored."`
	StartTime string `json:"start_time" description:"Start time, 24-hour clock, HH:MM or HH:MM:SS."`
	EndTime   string `json:"end_time" description:"End time, 24-hour clock, HH:MM or HH:MM:SS. Must be after start_time."`
	Title     string `json:"title" description:"Short title or subject."`
	Provider  string `json:"provider" description:"Provider name."`
	Note      string `json:"note,omitempty" description:"Optional note (context, location, etc.)."`
}

// AddEntryTool creates a new appointment entry: arguments are parsed
// defensively, the entry is persisted through the storage collaborator to
// obtain a real identifier, and the entry is merged into the working set when
// it falls inside the active window so the view stays consistent with storage.
type AddEntryTool struct{}

// NewAddEntryTool constructs the create tool.
func NewAddEntryTool() *AddEntryTool { return &AddEntryTool{} }

// Name returns the tool identifier.
func (t *AddEntryTool) Name() string { return "add_entry" }

// Description returns the model-facing description.
func (t *AddEntryTool) Description() string {
	return "Add a new appointment entry. Call only when the user explicitly requests new " +
		"appointments; call once per appointment when creating a series."
}

// Parameters returns the argument schema.
func (t *AddEntryTool) Parameters() map[string]any {
	return util.CreateSchema(addEntryArgs{})
}

// Call parses, persists and reports the created entry. Malformed dates and
// times or a non-positive duration are argument errors returned to the model,
// never faults; only a storage failure is an error.
func (t *AddEntryTool) Call(tc *Context, args map[string]any) (Result, error) {
	date, err := core.ParseEntryDate(cast.ToString(args["date"]))
	if err != nil {
		return errorResult("%v", err), nil
	}
	start, err := core.ParseClockTime(cast.ToString(args["start_time"]))
	if err != nil {
		return errorResult("%v", err), nil
	}
	end, err := core.ParseClockTime(cast.ToString(args["end_time"]))
	if err != nil {
		return errorResult("%v", err), nil
	}
	if !end.After(start) {
		return errorResult("end_time must be strictly after start_time"), nil
	}

	entry := core.Entry{
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Title:     cast.ToString(args["title"]),
		Provider:  cast.ToString(args["provider"]),
		Note:      cast.ToString(args["note"]),
	}

	id, err := tc.Store().AddEntry(tc.Context(), &entry)
	if err != nil {
		return nil, fmt.Errorf("persisting entry: %w", err)
	}

	sched := tc.Schedule()
	inView := sched.Range.ContainsDate(entry.Date)
	if inView {
		sched.Insert(entry)
	}

	return Result{
		"status":                "Complete",
		"entry_id":              id,
		"date":                  entry.DateString(),
		"start_time":            entry.StartTime.Short(),
		"end_time":              entry.EndTime.Short(),
		"title":                 entry.Title,
		"provider":              entry.Provider,
		"note":                  entry.Note,
		"added_to_current_view": inView,
	}, nil
}
