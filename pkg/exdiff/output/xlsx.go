package output

import (
	"fmt"
	"strings"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/engine"
	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
	"github.com/ukaji3/exdiff-go/pkg/exdiff/parser"
	"github.com/xuri/excelize/v2"
)

// Report layout.
const (
	SummarySheet   = "Diff Summary"
	CommentAuthor  = "exdiff"
	changedColor   = "FFFF00"
	insertedColor  = "00FF00"
	rowHighlightTo = "S"
)

// SummaryHeader is the header row of the summary sheet.
var SummaryHeader = []interface{}{"Type", "Item", "Location", "Details", "Old Value", "New Value"}

// WriteReport copies the modified workbook to outPath with differences
// highlighted on the given sheet and a summary sheet listing every
// non-match item. An empty sheet name selects the active sheet.
func WriteReport(modifiedPath, sheet string, result models.DiffResult, outPath string) error {
	f, err := excelize.OpenFile(modifiedPath)
	if err != nil {
		return err
	}
	defer f.Close()

	name, err := parser.ResolveSheet(f, sheet)
	if err != nil {
		return err
	}

	changedStyle, err := fillStyle(f, changedColor)
	if err != nil {
		return err
	}
	insertedStyle, err := fillStyle(f, insertedColor)
	if err != nil {
		return err
	}

	for _, item := range result.Items {
		if item.ItemType != models.ItemCell {
			continue
		}
		switch item.DiffType {
		case models.Changed:
			ref := targetCell(item.Location)
			if err := f.SetCellStyle(name, ref, ref, changedStyle); err != nil {
				return fmt.Errorf("highlighting %s: %w", ref, err)
			}
			if err := f.DeleteComment(name, ref); err != nil {
				return err
			}
			if err := f.AddComment(name, excelize.Comment{
				Cell:   ref,
				Author: CommentAuthor,
				Text:   "Was: " + models.FormatValue(item.OldValue),
			}); err != nil {
				return fmt.Errorf("commenting %s: %w", ref, err)
			}
		case models.Inserted:
			from, to := item.Location, item.Location
			if item.Details == engine.DetailRowInserted {
				_, row, err := excelize.CellNameToCoordinates(item.Location)
				if err != nil {
					return err
				}
				from = fmt.Sprintf("A%d", row)
				to = fmt.Sprintf("%s%d", rowHighlightTo, row)
			}
			if err := f.SetCellStyle(name, from, to, insertedStyle); err != nil {
				return fmt.Errorf("highlighting %s: %w", item.Location, err)
			}
		}
	}

	if err := writeSummarySheet(f, result); err != nil {
		return err
	}
	return f.SaveAs(outPath)
}

func fillStyle(f *excelize.File, rgb string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{rgb}},
	})
}

// targetCell returns the modified-side reference of a cell location.
func targetCell(location string) string {
	if i := strings.LastIndex(location, " -> "); i >= 0 {
		return location[i+len(" -> "):]
	}
	return location
}

func writeSummarySheet(f *excelize.File, result models.DiffResult) error {
	idx, err := f.GetSheetIndex(SummarySheet)
	if err != nil {
		return err
	}
	if idx >= 0 {
		if err := f.DeleteSheet(SummarySheet); err != nil {
			return err
		}
	}
	idx, err = f.NewSheet(SummarySheet)
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(SummarySheet, "A1", &SummaryHeader); err != nil {
		return err
	}
	row := 2
	for _, item := range result.Items {
		if item.DiffType == models.Match {
			continue
		}
		values := []interface{}{
			item.DiffType.String(),
			item.ItemType.String(),
			item.Location,
			item.Details,
			models.FormatValue(item.OldValue),
			models.FormatValue(item.NewValue),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &values); err != nil {
			return err
		}
		row++
	}
	if err := f.SetColWidth(SummarySheet, "C", "D", 30); err != nil {
		return err
	}

	f.SetActiveSheet(idx)
	return nil
}
