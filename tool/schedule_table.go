package tool

import (
	"time"

	"github.com/hupe1980/agendamesh/internal/util"
)

type scheduleTableArgs struct{}

// ScheduleTableTool projects the current working set into the flat row format
// the model grounds its natural-language answers in. Strictly read-only.
type ScheduleTableTool struct{}

// NewScheduleTableTool constructs the read-only table tool.
func NewScheduleTableTool() *ScheduleTableTool { return &ScheduleTableTool{} }

// Name returns the tool identifier.
func (t *ScheduleTableTool) Name() string { return "get_schedule_table" }

// Description returns the model-facing description.
func (t *ScheduleTableTool) Description() string {
	return "Return the current appointment table exactly as shown to the user. Read-only; " +
		"use it to ground summaries and answers in real schedule data."
}

// Parameters returns the (empty) argument schema.
func (t *ScheduleTableTool) Parameters() map[string]any {
	return util.CreateSchema(scheduleTableArgs{})
}

// Call renders the entries and active range. The working set is not mutated.
func (t *ScheduleTableTool) Call(tc *Context, _ map[string]any) (Result, error) {
	sched := tc.Schedule()

	rows := make([]map[string]any, 0, sched.Len())
	for _, e := range sched.Entries {
		rows = append(rows, map[string]any{
			"entry_id":    e.ID,
			"date":        e.DateString(),
			"start_time":  e.StartTime.String(),
			"end_time":    e.EndTime.String(),
			"title":       e.Title,
			"provider":    e.Provider,
			"note":        e.Note,
			"is_selected": e.Selected,
		})
	}

	return Result{
		"daterange": map[string]any{
			"from_date": sched.Range.From.Format(time.DateTime),
			"to_date":   sched.Range.To.Format(time.DateTime),
		},
		"rows": rows,
	}, nil
}
