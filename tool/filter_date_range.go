package tool

import (
	"github.com/spf13/cast"

	"github.com/hupe1980/agendamesh/core"
	"github.com/hupe1980/agendamesh/internal/util"
)

type filterDateRangeArgs struct {
	FromDate string `json:"from_date" description:"The start date of the filter range (inclusive), YYYY-MM-DD."`
	ToDate   string `json:"to_date" description:"The end date of the filter range (inclusive), YYYY-MM-DD."`
}

// FilterDateRangeTool replaces the schedule's active window. It never touches
// entries; refetching for the new window is the surrounding application's job
// at the turn boundary.
type FilterDateRangeTool struct{}

// NewFilterDateRangeTool constructs the view-filter tool.
func NewFilterDateRangeTool() *FilterDateRangeTool { return &FilterDateRangeTool{} }

// Name returns the tool identifier.
func (t *FilterDateRangeTool) Name() string { return "filter_date_range" }

// Description returns the model-facing description.
func (t *FilterDateRangeTool) Description() string {
	return "Filter appointment entries by an inclusive date range. Use only when the user asks " +
		"to restrict what is shown by date. Does not delete anything."
}

// Parameters returns the argument schema.
func (t *FilterDateRangeTool) Parameters() map[string]any {
	return util.CreateSchema(filterDateRangeArgs{})
}

// Call replaces the working set's date range and echoes the bounds back.
func (t *FilterDateRangeTool) Call(tc *Context, args map[string]any) (Result, error) {
	from := cast.ToString(args["from_date"])
	to := cast.ToString(args["to_date"])

	r, err := core.ParseDateRange(from, to)
	if err != nil {
		return errorResult("Invalid date range: %v", err), nil
	}

	tc.Schedule().Range = r

	return Result{
		"result":    "Success",
		"from_date": from,
		"to_date":   to,
	}, nil
}
