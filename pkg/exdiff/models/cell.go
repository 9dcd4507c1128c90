// Package models defines data structures for sheet comparison.
package models

import (
	"fmt"
	"strconv"
	"time"
)

// CellData represents a single non-empty cell of a loaded sheet.
type CellData struct {
	// Row is the row index (1-based).
	Row int `json:"row" yaml:"row"`
	// Col is the column index (1-based).
	Col int `json:"col" yaml:"col"`
	// Value is the cell value: nil, string, int64, float64, bool or time.Time.
	Value interface{} `json:"value" yaml:"value"`
	// Coordinate is the display address (e.g., "B3").
	Coordinate string `json:"coordinate" yaml:"coordinate"`
}

// FormatValue returns the comparable string form of a cell value.
// Signatures and cell comparisons both go through this function.
func FormatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case interface{ String() string }:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
