package exdiff

import (
	"errors"
	"fmt"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrSheetNotFound indicates the requested sheet does not exist.
var ErrSheetNotFound = parser.ErrSheetNotFound

// LoadError represents an error while loading one workbook.
type LoadError struct {
	Path      string
	SheetName string
	Component string // "workbook", "sheet", "cells", "shapes"
	Err       error
}

func (e *LoadError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("load error in %s (%s): %v", e.Path, e.Component, e.Err)
	}
	return fmt.Sprintf("load error in %s sheet %q (%s): %v", e.Path, e.SheetName, e.Component, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError.
func NewLoadError(path, sheetName, component string, err error) *LoadError {
	return &LoadError{
		Path:      path,
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
