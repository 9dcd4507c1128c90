package engine

import (
	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
	"go.uber.org/zap"
)

type config struct {
	tolerance int64
	logger    *zap.Logger
}

// Option configures Compare.
type Option func(*config)

// WithTolerance sets the position and size tolerance in EMU.
func WithTolerance(tolerance int64) Option {
	return func(c *config) { c.tolerance = tolerance }
}

// WithLogger sets the logger used for debug statistics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Compare diffs two sheet snapshots.
//
// Phase one produces raw per-entity verdicts (cells, then shapes); phase two
// reconciles orphaned shape deletions and insertions into moves.
func Compare(a, b models.Snapshot, opts ...Option) models.DiffResult {
	cfg := config{tolerance: DefaultTolerance, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	sigsA := BuildSignatures(a.Cells, a.Shapes, MaxRow(a.Cells, a.Shapes))
	sigsB := BuildSignatures(b.Cells, b.Shapes, MaxRow(b.Cells, b.Shapes))
	mapping := Align(sigsA, sigsB)

	cfg.logger.Debug("rows aligned",
		zap.Int("rows_a", len(sigsA)),
		zap.Int("rows_b", len(sigsB)),
		zap.Int("mapped", len(mapping.Pairs())))

	items := DiffCells(a.Cells, b.Cells, mapping)
	items = append(items, MatchShapes(a.Shapes, b.Shapes, mapping, cfg.tolerance)...)
	raw := len(items)
	items = ReconcileMoves(items)

	cfg.logger.Debug("comparison finished",
		zap.Int("raw_items", raw),
		zap.Int("items", len(items)))

	return models.DiffResult{Items: items}
}
