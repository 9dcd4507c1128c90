package parser

import (
	"strconv"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
	"github.com/xuri/excelize/v2"
)

// ExtractCells extracts the non-empty cells of a sheet in row-major order.
// When formulas is set, cells holding a formula report "=" + formula
// instead of their cached value.
func ExtractCells(f *excelize.File, sheetName string, formulas bool) ([]models.CellData, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var result []models.CellData
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index

		for colIdx, cellValue := range row {
			colNum := colIdx + 1
			cellName, err := excelize.CoordinatesToCellName(colNum, rowNum)
			if err != nil {
				return nil, err
			}

			var value interface{}
			if formulas {
				formula, err := f.GetCellFormula(sheetName, cellName)
				if err != nil {
					return nil, err
				}
				if formula != "" {
					value = "=" + formula
				}
			}
			if value == nil {
				if cellValue == "" {
					continue
				}
				value = parseValue(cellValue)
			}

			result = append(result, models.CellData{
				Row:        rowNum,
				Col:        colNum,
				Value:      value,
				Coordinate: cellName,
			})
		}
	}

	return result, nil
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}
