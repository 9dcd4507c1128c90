// Package exdiff compares two versions of an Excel sheet, including the
// shapes anchored on it, and reports classified differences.
package exdiff

import (
	"github.com/ukaji3/exdiff-go/pkg/exdiff/engine"
	"go.uber.org/zap"
)

// Options configures loading and comparison.
type Options struct {
	// SheetA is the sheet to load from the base workbook (active sheet if empty).
	SheetA string
	// SheetB is the sheet to load from the modified workbook (active sheet if empty).
	SheetB string
	// Tolerance is the position and size tolerance in EMU.
	// If zero, engine.DefaultTolerance is used.
	Tolerance int64
	// Formulas compares formula text instead of cached values for formula cells.
	Formulas bool
	// SkipShapes loads cells only.
	SkipShapes bool
	// Logger receives debug and warning messages. If nil, logging is disabled.
	Logger *zap.Logger
}

// DefaultOptions returns default comparison options.
func DefaultOptions() Options {
	return Options{
		Tolerance: engine.DefaultTolerance,
	}
}

// EffectiveTolerance returns the tolerance to use.
func (o Options) EffectiveTolerance() int64 {
	if o.Tolerance > 0 {
		return o.Tolerance
	}
	return engine.DefaultTolerance
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o Options) engineOptions() []engine.Option {
	return []engine.Option{
		engine.WithTolerance(o.EffectiveTolerance()),
		engine.WithLogger(o.logger()),
	}
}
