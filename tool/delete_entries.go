package tool

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/hupe1980/agendamesh/core"
	"github.com/hupe1980/agendamesh/internal/util"
)

type deleteEntriesArgs struct {
	EntryIDs []string `json:"entry_ids" description:"Entry IDs to delete, taken from the schedule table."`
}

// DeleteEntriesTool deletes specific entries by identifier. It is the single
// source of truth for whether a deletion really happened: only entries the
// storage collaborator confirms removed leave the working set and are counted.
type DeleteEntriesTool struct{}

// NewDeleteEntriesTool constructs the delete-by-identifier tool.
func NewDeleteEntriesTool() *DeleteEntriesTool { return &DeleteEntriesTool{} }

// Name returns the tool identifier.
func (t *DeleteEntriesTool) Name() string { return "delete_entries" }

// Description returns the model-facing description.
func (t *DeleteEntriesTool) Description() string {
	return "Delete specific schedule entries by their entry_id values from the schedule table. " +
		"Prefer delete_by_filter when the user states criteria instead of IDs."
}

// Parameters returns the argument schema.
func (t *DeleteEntriesTool) Parameters() map[string]any {
	return util.CreateSchema(deleteEntriesArgs{})
}

// Call normalizes the requested IDs and delegates to the shared primitive.
func (t *DeleteEntriesTool) Call(tc *Context, args map[string]any) (Result, error) {
	ids := normalizeEntryIDs(args["entry_ids"])
	if len(ids) == 0 {
		return Result{
			"deleted_entry_ids": []int64{},
			"total_deleted":     0,
		}, nil
	}

	deleted, err := deleteByIDs(tc, ids)
	if err != nil {
		return nil, err
	}
	return Result{
		"deleted_entry_ids": deleted,
		"total_deleted":     len(deleted),
	}, nil
}

// normalizeEntryIDs accepts identifiers as numbers or numeric strings in any
// JSON list shape, silently dropping duplicates and values that cannot be
// parsed. Tool payloads are untrusted; a garbage ID must not abort the rest.
func normalizeEntryIDs(raw any) []int64 {
	ids, _ := partitionEntryIDs(raw)
	return ids
}

// partitionEntryIDs additionally reports the values that could not be parsed,
// rendered back as strings for the model.
func partitionEntryIDs(raw any) (ids []int64, invalid []string) {
	invalid = []string{}
	items, ok := raw.([]any)
	if !ok {
		return nil, invalid
	}
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		id, err := cast.ToInt64E(item)
		if err != nil {
			invalid = append(invalid, cast.ToString(item))
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, invalid
}

// deleteByIDs is the deletion primitive shared by delete_entries and
// delete_by_filter. For each entry present in the working set it issues a
// principal-scoped storage delete; entries confirmed removed by storage are
// dropped from the working set and reported. A storage error is a
// collaborator fault and fails the turn.
func deleteByIDs(tc *Context, ids []int64) ([]int64, error) {
	sched := tc.Schedule()

	targets := make([]core.Entry, 0, len(ids))
	for _, id := range ids {
		if e := sched.FindByID(id); e != nil {
			targets = append(targets, *e)
		}
	}

	deleted := make([]int64, 0, len(targets))
	for i := range targets {
		affected, err := tc.Store().RemoveEntry(tc.Context(), &targets[i], tc.PrincipalID())
		if err != nil {
			return nil, fmt.Errorf("deleting entry %d: %w", targets[i].ID, err)
		}
		if affected > 0 {
			deleted = append(deleted, targets[i].ID)
		}
	}

	sched.Remove(deleted)
	return deleted, nil
}
