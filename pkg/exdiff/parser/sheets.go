package parser

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound indicates the requested sheet does not exist in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ResolveSheet returns the sheet to load. An empty name selects the active sheet.
func ResolveSheet(f *excelize.File, name string) (string, error) {
	if name == "" {
		active := f.GetSheetName(f.GetActiveSheetIndex())
		if active == "" {
			return "", fmt.Errorf("%w: workbook has no active sheet", ErrSheetNotFound)
		}
		return active, nil
	}

	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return "", err
	}
	if idx < 0 {
		return "", fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	// Sheet names match case-insensitively; return the stored spelling.
	return f.GetSheetName(idx), nil
}
