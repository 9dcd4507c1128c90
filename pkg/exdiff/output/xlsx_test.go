package output

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeModified(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, v := range []string{"Title", "INSERTED ROW", "Row1", "Row2 Changed"} {
		require.NoError(t, f.SetCellValue("Sheet1", "A"+string(rune('1'+i)), v))
	}
	path := filepath.Join(t.TempDir(), "modified.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func fillColor(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()

	id, err := f.GetCellStyle(sheet, cell)
	require.NoError(t, err)
	style, err := f.GetStyle(id)
	require.NoError(t, err)
	if len(style.Fill.Color) == 0 {
		return ""
	}
	return style.Fill.Color[0]
}

func TestWriteReport(t *testing.T) {
	modified := writeModified(t)
	out := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, WriteReport(modified, "", sampleResult(), out))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Sheet1", SummarySheet}, f.GetSheetList())
	assert.Equal(t, SummarySheet, f.GetSheetName(f.GetActiveSheetIndex()))

	assert.Contains(t, fillColor(t, f, "Sheet1", "A4"), "FFFF00")
	assert.Contains(t, fillColor(t, f, "Sheet1", "A2"), "00FF00")
	assert.Contains(t, fillColor(t, f, "Sheet1", "S2"), "00FF00")

	comments, err := f.GetComments("Sheet1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "A4", comments[0].Cell)
	assert.Equal(t, CommentAuthor, comments[0].Author)
	assert.Equal(t, "Was: Row2", comments[0].Text)

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Type", "Item", "Location", "Details", "Old Value", "New Value"}, rows[0])
	assert.Equal(t, []string{"inserted", "cell", "A2", "Row inserted", "", "INSERTED ROW"}, rows[1])
	assert.Equal(t, []string{"changed", "cell", "A3 -> A4", "", "Row2", "Row2 Changed"}, rows[2])
}

func TestWriteReportReplacesSummarySheet(t *testing.T) {
	modified := writeModified(t)
	first := filepath.Join(t.TempDir(), "first.xlsx")
	second := filepath.Join(t.TempDir(), "second.xlsx")

	require.NoError(t, WriteReport(modified, "Sheet1", sampleResult(), first))
	require.NoError(t, WriteReport(first, "Sheet1", sampleResult(), second))

	f, err := excelize.OpenFile(second)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Sheet1", SummarySheet}, f.GetSheetList())

	comments, err := f.GetComments("Sheet1")
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestWriteReportUnknownSheet(t *testing.T) {
	err := WriteReport(writeModified(t), "Missing", sampleResult(), filepath.Join(t.TempDir(), "out.xlsx"))
	assert.Error(t, err)
}

func TestTargetCell(t *testing.T) {
	assert.Equal(t, "A4", targetCell("A3 -> A4"))
	assert.Equal(t, "B2", targetCell("B2"))
}
