package engine

import (
	"fmt"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
)

// Cell detail strings.
const (
	DetailRowDeleted  = "Row deleted"
	DetailRowInserted = "Row inserted"
	DetailCellAdded   = "Cell added in existing row"
)

type cellKey struct {
	row, col int
}

// cellIndex is an insertion-ordered (row, col) index. A repeated key keeps
// its first position and takes the last value.
type cellIndex struct {
	keys  []cellKey
	cells map[cellKey]models.CellData
}

func indexCells(cells []models.CellData) cellIndex {
	idx := cellIndex{cells: make(map[cellKey]models.CellData, len(cells))}
	for _, c := range cells {
		k := cellKey{c.Row, c.Col}
		if _, ok := idx.cells[k]; !ok {
			idx.keys = append(idx.keys, k)
		}
		idx.cells[k] = c
	}
	return idx
}

// DiffCells classifies cells of both versions under the given row mapping.
// Mapping keys and targets are 0-based; cell rows are 1-based.
//
// Cells that are present on both sides with equal values produce no item.
// Deletions and changes come first, in the encounter order of cellsA,
// followed by insertions in the encounter order of cellsB.
func DiffCells(cellsA, cellsB []models.CellData, mapping RowMapping) []models.DiffItem {
	idxA := indexCells(cellsA)
	idxB := indexCells(cellsB)

	var items []models.DiffItem

	for _, k := range idxA.keys {
		a := idxA.cells[k]
		target, ok := mapping.Lookup(k.row - 1)
		if !ok {
			items = append(items, models.DiffItem{
				Location: a.Coordinate,
				ItemType: models.ItemCell,
				DiffType: models.Deleted,
				OldValue: a.Value,
				Details:  DetailRowDeleted,
			})
			continue
		}

		rowB := target + 1
		b, ok := idxB.cells[cellKey{rowB, k.col}]
		if !ok {
			// Possibly a column shift rather than a deletion; columns are
			// never realigned.
			items = append(items, models.DiffItem{
				Location: a.Coordinate,
				ItemType: models.ItemCell,
				DiffType: models.Deleted,
				OldValue: a.Value,
				Details:  fmt.Sprintf("Mapped to row %d but cell empty", rowB),
			})
			continue
		}

		if models.FormatValue(a.Value) != models.FormatValue(b.Value) {
			items = append(items, models.DiffItem{
				Location: a.Coordinate + " -> " + b.Coordinate,
				ItemType: models.ItemCell,
				DiffType: models.Changed,
				OldValue: a.Value,
				NewValue: b.Value,
			})
		}
	}

	inverse := mapping.Inverse()
	for _, k := range idxB.keys {
		b := idxB.cells[k]
		source, ok := inverse[k.row-1]
		if !ok {
			items = append(items, models.DiffItem{
				Location: b.Coordinate,
				ItemType: models.ItemCell,
				DiffType: models.Inserted,
				NewValue: b.Value,
				Details:  DetailRowInserted,
			})
			continue
		}
		if _, ok := idxA.cells[cellKey{source + 1, k.col}]; !ok {
			items = append(items, models.DiffItem{
				Location: b.Coordinate,
				ItemType: models.ItemCell,
				DiffType: models.Inserted,
				NewValue: b.Value,
				Details:  DetailCellAdded,
			})
		}
	}

	return items
}
