package tool

import (
	"github.com/hupe1980/agendamesh/internal/util"
)

type selectEntriesArgs struct {
	EntryIDs []string `json:"entry_ids" description:"Entry IDs to highlight, taken from the schedule table."`
}

// SelectEntriesTool flips the selection flag on the requested entries and
// clears it everywhere else. Selection only lives in the working set; nothing
// is persisted.
type SelectEntriesTool struct{}

// NewSelectEntriesTool constructs the selection tool.
func NewSelectEntriesTool() *SelectEntriesTool { return &SelectEntriesTool{} }

// Name returns the tool identifier.
func (t *SelectEntriesTool) Name() string { return "select_entries" }

// Description returns the model-facing description.
func (t *SelectEntriesTool) Description() string {
	return "Highlight specific schedule entries by their entry_id values. " +
		"Previously highlighted entries that are not listed are unhighlighted."
}

// Parameters returns the argument schema.
func (t *SelectEntriesTool) Parameters() map[string]any {
	return util.CreateSchema(selectEntriesArgs{})
}

// Call marks the listed entries as selected and deselects the rest. IDs are
// partitioned into selected, not-found and unparseable so the model can
// report precisely what happened.
func (t *SelectEntriesTool) Call(tc *Context, args map[string]any) (Result, error) {
	ids, invalid := partitionEntryIDs(args["entry_ids"])
	sched := tc.Schedule()

	for i := range sched.Entries {
		sched.Entries[i].Selected = false
	}

	selected := make([]int64, 0, len(ids))
	notFound := make([]int64, 0)
	for _, id := range ids {
		if e := sched.FindByID(id); e != nil {
			e.Selected = true
			selected = append(selected, id)
		} else {
			notFound = append(notFound, id)
		}
	}

	return Result{
		"selected_entry_ids":  selected,
		"not_found_entry_ids": notFound,
		"invalid_entry_ids":   invalid,
		"total_selected":      len(selected),
	}, nil
}
