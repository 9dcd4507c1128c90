package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
)

func shapeItem(diffType models.DiffType, name string, oldValue, newValue interface{}) models.DiffItem {
	return models.DiffItem{
		Location: name,
		ItemType: models.ItemShape,
		DiffType: diffType,
		OldValue: oldValue,
		NewValue: newValue,
	}
}

func TestReconcileMoves(t *testing.T) {
	cellChange := models.DiffItem{Location: "A1 -> A1", ItemType: models.ItemCell, DiffType: models.Changed, OldValue: "a", NewValue: "b"}
	items := []models.DiffItem{
		cellChange,
		shapeItem(models.Deleted, "Box", "t", nil),
		shapeItem(models.Match, "X", nil, nil),
		shapeItem(models.Inserted, "Box", nil, "t"),
		shapeItem(models.Inserted, "New", nil, "n"),
	}

	out := ReconcileMoves(items)

	require.Len(t, out, 4)
	assert.Equal(t, cellChange, out[0])
	assert.Equal(t, "X", out[1].Location)
	assert.Equal(t, models.Inserted, out[2].DiffType)
	assert.Equal(t, "New", out[2].Location)
	assert.Equal(t, models.DiffItem{
		Location: "Box",
		ItemType: models.ItemShape,
		DiffType: models.Moved,
		OldValue: "t",
		NewValue: "t",
		Details:  DetailAnchorChanged,
	}, out[3])
}

func TestReconcileMovesTextChanged(t *testing.T) {
	items := []models.DiffItem{
		shapeItem(models.Deleted, "Box", "before", nil),
		shapeItem(models.Inserted, "Box", nil, "after"),
	}

	out := ReconcileMoves(items)

	require.Len(t, out, 1)
	assert.Equal(t, models.Moved, out[0].DiffType)
	assert.Equal(t, "before", out[0].OldValue)
	assert.Equal(t, "after", out[0].NewValue)
	assert.Equal(t, "anchor changed, text changed", out[0].Details)
}

func TestReconcileMovesDuplicateNames(t *testing.T) {
	items := []models.DiffItem{
		shapeItem(models.Deleted, "Dup", "first", nil),
		shapeItem(models.Deleted, "Dup", "second", nil),
		shapeItem(models.Inserted, "Dup", nil, "first"),
	}

	out := ReconcileMoves(items)

	require.Len(t, out, 2)
	assert.Equal(t, models.Deleted, out[0].DiffType)
	assert.Equal(t, "second", out[0].OldValue)
	assert.Equal(t, models.Moved, out[1].DiffType)
	assert.Equal(t, "first", out[1].OldValue)
}

func TestReconcileMovesIgnoresCellsAndUnnamedShapes(t *testing.T) {
	items := []models.DiffItem{
		{Location: "A1", ItemType: models.ItemCell, DiffType: models.Deleted, OldValue: "x"},
		{Location: "A1", ItemType: models.ItemCell, DiffType: models.Inserted, NewValue: "x"},
		shapeItem(models.Deleted, "", "a", nil),
		shapeItem(models.Inserted, "", nil, "a"),
	}

	out := ReconcileMoves(items)
	assert.Equal(t, items, out)
}

func TestReconcileMovesAtMostOneItemPerName(t *testing.T) {
	items := []models.DiffItem{
		shapeItem(models.Deleted, "A", "1", nil),
		shapeItem(models.Deleted, "B", "2", nil),
		shapeItem(models.Inserted, "B", nil, "2"),
		shapeItem(models.Inserted, "A", nil, "1"),
	}

	out := ReconcileMoves(items)

	seen := make(map[string]int)
	for _, item := range out {
		seen[item.Location]++
		assert.Equal(t, models.Moved, item.DiffType)
	}
	assert.Equal(t, map[string]int{"A": 1, "B": 1}, seen)
	assert.Equal(t, "B", out[0].Location)
}

func TestReconcileMovesEmpty(t *testing.T) {
	assert.Empty(t, ReconcileMoves(nil))
}
