package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
)

func cell(row, col int, coord string, value interface{}) models.CellData {
	return models.CellData{Row: row, Col: col, Coordinate: coord, Value: value}
}

func TestDiffCellsShiftedRows(t *testing.T) {
	cellsA := []models.CellData{
		cell(1, 1, "A1", "Title"),
		cell(2, 1, "A2", "Row1"),
		cell(3, 1, "A3", "Row2"),
	}
	cellsB := []models.CellData{
		cell(1, 1, "A1", "Title"),
		cell(2, 1, "A2", "INSERTED ROW"),
		cell(3, 1, "A3", "Row1"),
		cell(4, 1, "A4", "Row2 Changed"),
	}
	mapping := NewRowMapping(3, map[int]int{0: 0, 1: 2, 2: 3})

	items := DiffCells(cellsA, cellsB, mapping)

	require.Len(t, items, 2)
	assert.Equal(t, models.DiffItem{
		Location: "A3 -> A4",
		ItemType: models.ItemCell,
		DiffType: models.Changed,
		OldValue: "Row2",
		NewValue: "Row2 Changed",
	}, items[0])
	assert.Equal(t, models.DiffItem{
		Location: "A2",
		ItemType: models.ItemCell,
		DiffType: models.Inserted,
		NewValue: "INSERTED ROW",
		Details:  DetailRowInserted,
	}, items[1])
}

func TestDiffCellsDeletedRow(t *testing.T) {
	cellsA := []models.CellData{cell(1, 1, "A1", "x"), cell(2, 1, "A2", "y")}
	cellsB := []models.CellData{cell(1, 1, "A1", "x")}

	items := DiffCells(cellsA, cellsB, NewRowMapping(2, map[int]int{0: 0}))

	require.Len(t, items, 1)
	assert.Equal(t, models.Deleted, items[0].DiffType)
	assert.Equal(t, "A2", items[0].Location)
	assert.Equal(t, "y", items[0].OldValue)
	assert.Equal(t, DetailRowDeleted, items[0].Details)
}

func TestDiffCellsMappedRowWithoutCell(t *testing.T) {
	cellsA := []models.CellData{cell(1, 1, "A1", "x"), cell(1, 2, "B1", "z")}
	cellsB := []models.CellData{cell(1, 1, "A1", "x")}

	items := DiffCells(cellsA, cellsB, NewRowMapping(1, map[int]int{0: 0}))

	require.Len(t, items, 1)
	assert.Equal(t, models.Deleted, items[0].DiffType)
	assert.Equal(t, "B1", items[0].Location)
	assert.Equal(t, "Mapped to row 1 but cell empty", items[0].Details)
}

func TestDiffCellsCellAddedInExistingRow(t *testing.T) {
	cellsA := []models.CellData{cell(1, 1, "A1", "x")}
	cellsB := []models.CellData{cell(1, 1, "A1", "x"), cell(1, 2, "B1", "new")}

	items := DiffCells(cellsA, cellsB, NewRowMapping(1, map[int]int{0: 0}))

	require.Len(t, items, 1)
	assert.Equal(t, models.Inserted, items[0].DiffType)
	assert.Equal(t, "B1", items[0].Location)
	assert.Equal(t, "new", items[0].NewValue)
	assert.Equal(t, DetailCellAdded, items[0].Details)
}

func TestDiffCellsComparesStringForms(t *testing.T) {
	cellsA := []models.CellData{cell(1, 1, "A1", int64(1)), cell(1, 2, "B1", 2.5)}
	cellsB := []models.CellData{cell(1, 1, "A1", "1"), cell(1, 2, "B1", "2.5")}

	items := DiffCells(cellsA, cellsB, NewRowMapping(1, map[int]int{0: 0}))
	assert.Empty(t, items)
}

func TestDiffCellsOrdering(t *testing.T) {
	cellsA := []models.CellData{
		cell(2, 1, "A2", "b"),
		cell(1, 1, "A1", "a"),
	}
	cellsB := []models.CellData{
		cell(2, 1, "A2", "b2"),
		cell(1, 1, "A1", "a2"),
		cell(3, 1, "A3", "c"),
		cell(4, 1, "A4", "d"),
	}

	items := DiffCells(cellsA, cellsB, NewRowMapping(2, map[int]int{0: 0, 1: 1}))

	var locations []string
	for _, item := range items {
		locations = append(locations, item.Location)
	}
	assert.Equal(t, []string{"A2 -> A2", "A1 -> A1", "A3", "A4"}, locations)
}
