package exdiff

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
	"github.com/ukaji3/exdiff-go/pkg/exdiff/parser"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Load reads one sheet of an xlsx file into a snapshot. An empty sheet name
// selects the active sheet.
func Load(path, sheet string, opts Options) (*models.Snapshot, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name, err := parser.ResolveSheet(f, sheet)
	if err != nil {
		return nil, NewLoadError(path, sheet, "sheet", err)
	}

	var shapes []models.ShapeData
	if !opts.SkipShapes {
		shapes, err = parser.ExtractSheetShapes(path, name)
		if err != nil {
			return nil, NewLoadError(path, name, "shapes", err)
		}
	}

	return loadSheet(f, path, name, shapes, opts)
}

// loadAll reads every sheet of an xlsx file, in workbook order.
func loadAll(path string, opts Options) ([]models.Snapshot, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var shapeMap map[string][]models.ShapeData
	if !opts.SkipShapes {
		shapeMap, err = parser.ExtractShapes(path)
		if err != nil {
			return nil, NewLoadError(path, "", "shapes", err)
		}
	}

	var snaps []models.Snapshot
	for _, name := range f.GetSheetList() {
		snap, err := loadSheet(f, path, name, shapeMap[name], opts)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, *snap)
	}
	return snaps, nil
}

func openWorkbook(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewLoadError(path, "", "workbook", err)
	}
	return f, nil
}

func loadSheet(f *excelize.File, path, name string, shapes []models.ShapeData, opts Options) (*models.Snapshot, error) {
	cells, err := parser.ExtractCells(f, name, opts.Formulas)
	if err != nil {
		return nil, NewLoadError(path, name, "cells", err)
	}

	opts.logger().Debug("sheet loaded",
		zap.String("path", path),
		zap.String("sheet", name),
		zap.Int("cells", len(cells)),
		zap.Int("shapes", len(shapes)))

	return &models.Snapshot{
		Sheet:  name,
		Cells:  cells,
		Shapes: shapes,
	}, nil
}
