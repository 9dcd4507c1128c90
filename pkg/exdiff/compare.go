package exdiff

import (
	"context"
	"path/filepath"
	"runtime"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/engine"
	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Compare diffs two already loaded snapshots.
func Compare(a, b models.Snapshot, opts Options) models.DiffResult {
	return engine.Compare(a, b, opts.engineOptions()...)
}

// CompareFiles loads one sheet from each file and diffs them.
// Both files are loaded concurrently.
func CompareFiles(ctx context.Context, pathA, pathB string, opts Options) (*models.DiffResult, error) {
	var snapA, snapB *models.Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		snapA, err = Load(pathA, opts.SheetA, opts)
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		snapB, err = Load(pathB, opts.SheetB, opts)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := Compare(*snapA, *snapB, opts)
	opts.logger().Info("comparison complete",
		zap.String("base", pathA),
		zap.String("modified", pathB),
		zap.String("sheet_a", snapA.Sheet),
		zap.String("sheet_b", snapB.Sheet),
		zap.Int("items", len(result.Items)))
	return &result, nil
}

// CompareWorkbooks diffs every sheet present in both workbooks. Sheets are
// paired by name and compared concurrently; the result keeps the sheet order
// of the base workbook.
func CompareWorkbooks(ctx context.Context, pathA, pathB string, opts Options) (*models.WorkbookDiff, error) {
	var snapsA, snapsB []models.Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snapsA, err = loadAll(pathA, opts)
		return err
	})
	g.Go(func() error {
		var err error
		snapsB, err = loadAll(pathB, opts)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byName := make(map[string]int, len(snapsB))
	for i, s := range snapsB {
		byName[s.Sheet] = i
	}

	diff := &models.WorkbookDiff{
		BookA: filepath.Base(pathA),
		BookB: filepath.Base(pathB),
	}
	type pair struct{ a, b int }
	var pairs []pair
	seen := make(map[string]bool, len(snapsA))
	for i, s := range snapsA {
		seen[s.Sheet] = true
		if j, ok := byName[s.Sheet]; ok {
			pairs = append(pairs, pair{i, j})
		} else {
			diff.OnlyInA = append(diff.OnlyInA, s.Sheet)
		}
	}
	for _, s := range snapsB {
		if !seen[s.Sheet] {
			diff.OnlyInB = append(diff.OnlyInB, s.Sheet)
		}
	}

	diff.Sheets = make([]models.SheetDiff, len(pairs))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for k, p := range pairs {
		k, p := k, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, b := snapsA[p.a], snapsB[p.b]
			diff.Sheets[k] = models.SheetDiff{
				SheetA: a.Sheet,
				SheetB: b.Sheet,
				Result: Compare(a, b, opts),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	opts.logger().Info("workbook comparison complete",
		zap.String("base", pathA),
		zap.String("modified", pathB),
		zap.Int("sheets", len(diff.Sheets)),
		zap.Strings("only_in_base", diff.OnlyInA),
		zap.Strings("only_in_modified", diff.OnlyInB))
	return diff, nil
}
