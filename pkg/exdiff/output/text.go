package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
)

type palette struct {
	changed, inserted, deleted, moved, header *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		changed:  color.New(color.FgYellow),
		inserted: color.New(color.FgGreen),
		deleted:  color.New(color.FgRed),
		moved:    color.New(color.FgCyan),
		header:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.changed, p.inserted, p.deleted, p.moved, p.header} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) forType(d models.DiffType) *color.Color {
	switch d {
	case models.Changed:
		return p.changed
	case models.Inserted:
		return p.inserted
	case models.Deleted:
		return p.deleted
	case models.Moved:
		return p.moved
	}
	return nil
}

// WriteSummary writes one line per difference followed by per-type totals.
// Match items are only counted.
func WriteSummary(w io.Writer, result models.DiffResult, useColor bool) error {
	return writeSummary(w, result, newPalette(useColor))
}

// WriteWorkbookSummary writes a summary for every compared sheet pair and
// lists sheets present in only one workbook.
func WriteWorkbookSummary(w io.Writer, diff *models.WorkbookDiff, useColor bool) error {
	p := newPalette(useColor)
	for _, s := range diff.Sheets {
		title := s.SheetA
		if s.SheetB != s.SheetA {
			title = s.SheetA + " -> " + s.SheetB
		}
		if _, err := p.header.Fprintf(w, "== %s ==\n", title); err != nil {
			return err
		}
		if err := writeSummary(w, s.Result, p); err != nil {
			return err
		}
	}
	for _, name := range diff.OnlyInA {
		if _, err := p.deleted.Fprintf(w, "sheet only in %s: %s\n", diff.BookA, name); err != nil {
			return err
		}
	}
	for _, name := range diff.OnlyInB {
		if _, err := p.inserted.Fprintf(w, "sheet only in %s: %s\n", diff.BookB, name); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(w io.Writer, result models.DiffResult, p palette) error {
	for _, item := range result.Items {
		if item.DiffType == models.Match {
			continue
		}
		if _, err := p.forType(item.DiffType).Fprintln(w, formatItem(item)); err != nil {
			return err
		}
	}

	summary := result.Summary()
	for _, it := range []models.ItemType{models.ItemCell, models.ItemShape} {
		counts := summary[it]
		_, err := fmt.Fprintf(w, "%ss: %d changed, %d inserted, %d deleted, %d moved, %d matched\n",
			it, counts[models.Changed], counts[models.Inserted], counts[models.Deleted],
			counts[models.Moved], counts[models.Match])
		if err != nil {
			return err
		}
	}
	return nil
}

func formatItem(item models.DiffItem) string {
	line := fmt.Sprintf("%-8s %-5s %s", item.DiffType, item.ItemType, item.Location)
	switch item.DiffType {
	case models.Changed, models.Moved:
		line += fmt.Sprintf(": %q -> %q", models.FormatValue(item.OldValue), models.FormatValue(item.NewValue))
	case models.Inserted:
		line += fmt.Sprintf(": %q", models.FormatValue(item.NewValue))
	case models.Deleted:
		line += fmt.Sprintf(": %q", models.FormatValue(item.OldValue))
	}
	if item.Details != "" {
		line += " (" + item.Details + ")"
	}
	return line
}
