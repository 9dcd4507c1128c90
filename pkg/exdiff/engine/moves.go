package engine

import "github.com/ukaji3/exdiff-go/pkg/exdiff/models"

// Move detail strings.
const (
	DetailAnchorChanged = "anchor changed"
	DetailTextChanged   = "text changed"
)

// ReconcileMoves joins Deleted and Inserted shape items that share a name
// into a single Moved item.
//
// Items not taking part in a merge pass through unchanged and in order.
// Merged items are appended after them, in the order of their Inserted
// halves. When a name repeats, deletions and insertions pair up first with
// first. Unnamed shapes are never joined.
func ReconcileMoves(items []models.DiffItem) []models.DiffItem {
	deleted := make(map[string][]int)
	for i, item := range items {
		if item.ItemType == models.ItemShape && item.DiffType == models.Deleted && item.Location != "" {
			deleted[item.Location] = append(deleted[item.Location], i)
		}
	}

	consumed := make([]bool, len(items))
	var moved []models.DiffItem
	for i, ins := range items {
		if ins.ItemType != models.ItemShape || ins.DiffType != models.Inserted {
			continue
		}
		queue := deleted[ins.Location]
		if len(queue) == 0 {
			continue
		}
		d := queue[0]
		deleted[ins.Location] = queue[1:]
		consumed[d], consumed[i] = true, true
		moved = append(moved, mergeMove(items[d], ins))
	}

	out := make([]models.DiffItem, 0, len(items)-len(moved))
	for i, item := range items {
		if !consumed[i] {
			out = append(out, item)
		}
	}
	return append(out, moved...)
}

func mergeMove(del, ins models.DiffItem) models.DiffItem {
	details := DetailAnchorChanged
	if models.FormatValue(del.OldValue) != models.FormatValue(ins.NewValue) {
		details += ", " + DetailTextChanged
	}
	return models.DiffItem{
		Location: ins.Location,
		ItemType: models.ItemShape,
		DiffType: models.Moved,
		OldValue: del.OldValue,
		NewValue: ins.NewValue,
		Details:  details,
	}
}
