package parser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
	"github.com/xuri/excelize/v2"
)

func TestExtractCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	require.NoError(t, f.SetCellValue(sheetName, "A1", "Header1"))
	require.NoError(t, f.SetCellValue(sheetName, "C1", "Header3"))
	require.NoError(t, f.SetCellValue(sheetName, "A2", 100))
	require.NoError(t, f.SetCellValue(sheetName, "B2", 200.5))
	require.NoError(t, f.SetCellValue(sheetName, "A4", "Text"))

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(tmpFile))

	f2, err := excelize.OpenFile(tmpFile)
	require.NoError(t, err)
	defer f2.Close()

	cells, err := ExtractCells(f2, sheetName, false)
	require.NoError(t, err)

	assert.Equal(t, []models.CellData{
		{Row: 1, Col: 1, Value: "Header1", Coordinate: "A1"},
		{Row: 1, Col: 3, Value: "Header3", Coordinate: "C1"},
		{Row: 2, Col: 1, Value: int64(100), Coordinate: "A2"},
		{Row: 2, Col: 2, Value: 200.5, Coordinate: "B2"},
		{Row: 4, Col: 1, Value: "Text", Coordinate: "A4"},
	}, cells)
}

func TestExtractCellsFormulas(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetCellValue("Sheet1", "A1", 2))
	require.NoError(t, f.SetCellFormula("Sheet1", "B1", "A1*2"))

	cells, err := ExtractCells(f, "Sheet1", true)
	require.NoError(t, err)

	require.Len(t, cells, 2)
	assert.Equal(t, int64(2), cells[0].Value)
	assert.Equal(t, "B1", cells[1].Coordinate)
	assert.Equal(t, "=A1*2", cells[1].Value)
}

func TestExtractCellsUnknownSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := ExtractCells(f, "Missing", false)
	assert.Error(t, err)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseValue(tt.input), "parseValue(%q)", tt.input)
	}
}
