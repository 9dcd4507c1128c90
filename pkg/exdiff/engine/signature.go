// Package engine implements the structural diff of two sheet snapshots:
// row alignment, cell diffing, shape matching and move reconciliation.
//
// Every function in this package is pure and synchronous. Inputs are never
// modified, so independent comparisons may run concurrently.
package engine

import (
	"strings"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
)

const (
	signatureDelimiter = "|"
	shapeTokenPrefix   = "SHP:"
)

// BuildSignatures returns one signature per row from 1 to maxRow.
// A signature joins the row's cell values in encounter order, followed by a
// "SHP:<name>" token for every shape anchored on that row. Rows without
// content yield the empty string.
func BuildSignatures(cells []models.CellData, shapes []models.ShapeData, maxRow int) []string {
	if maxRow <= 0 {
		return nil
	}

	rows := make(map[int][]string)
	for _, c := range cells {
		rows[c.Row] = append(rows[c.Row], models.FormatValue(c.Value))
	}
	for _, s := range shapes {
		// Drawing rows are 0-based.
		r := s.From.Row + 1
		rows[r] = append(rows[r], shapeTokenPrefix+s.Name)
	}

	signatures := make([]string, maxRow)
	for r := 1; r <= maxRow; r++ {
		if parts, ok := rows[r]; ok {
			signatures[r-1] = strings.Join(parts, signatureDelimiter)
		}
	}
	return signatures
}

// MaxRow returns the highest 1-based row occupied by a cell or a shape anchor.
func MaxRow(cells []models.CellData, shapes []models.ShapeData) int {
	maxRow := 0
	for _, c := range cells {
		if c.Row > maxRow {
			maxRow = c.Row
		}
	}
	for _, s := range shapes {
		if r := s.From.Row + 1; r > maxRow {
			maxRow = r
		}
	}
	return maxRow
}
