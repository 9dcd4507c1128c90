package engine

import (
	"strings"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
)

// DefaultTolerance is the offset delta (in EMU) below which position and
// size differences are ignored.
const DefaultTolerance int64 = 10000

// Shape reason codes.
const (
	ReasonTextChanged     = "text_changed"
	ReasonTypeChanged     = "type_changed"
	ReasonPositionChanged = "position_changed"
	ReasonSizeChanged     = "size_changed"
)

// DetailMaybeMoved annotates shapes that found no partner.
const DetailMaybeMoved = "Or moved significantly"

// shapeArena holds the modified shapes with a parallel claimed flag.
type shapeArena struct {
	shapes  []models.ShapeData
	claimed []bool
}

func newShapeArena(shapes []models.ShapeData) *shapeArena {
	return &shapeArena{shapes: shapes, claimed: make([]bool, len(shapes))}
}

// find returns the index of the first unclaimed shape satisfying pred.
func (a *shapeArena) find(pred func(models.ShapeData) bool) int {
	for i, s := range a.shapes {
		if !a.claimed[i] && pred(s) {
			return i
		}
	}
	return -1
}

// match runs the priority cascade for sa: id, then name, then position.
func (a *shapeArena) match(sa models.ShapeData, mapping RowMapping) int {
	if sa.ID != "" {
		if i := a.find(func(sb models.ShapeData) bool { return sb.ID == sa.ID }); i >= 0 {
			return i
		}
	}
	if sa.Name != "" {
		if i := a.find(func(sb models.ShapeData) bool { return sb.Name == sa.Name }); i >= 0 {
			return i
		}
	}
	// Anchor rows are already 0-based, the same space as the mapping. A row
	// deleted from the base falls back to its own index rather than skipping
	// the position tier.
	expectedRow := mapping.LookupOr(sa.From.Row, sa.From.Row)
	return a.find(func(sb models.ShapeData) bool {
		return sb.From.Row == expectedRow && sb.From.Col == sa.From.Col
	})
}

// MatchShapes pairs shapes between versions and classifies each pair.
//
// Matched pairs yield Match or Changed in the order of shapesA, unmatched
// base shapes yield Deleted in place, and unclaimed modified shapes yield
// Inserted afterwards in the order of shapesB.
func MatchShapes(shapesA, shapesB []models.ShapeData, mapping RowMapping, tolerance int64) []models.DiffItem {
	arena := newShapeArena(shapesB)
	var items []models.DiffItem

	for _, sa := range shapesA {
		i := arena.match(sa, mapping)
		if i < 0 {
			items = append(items, models.DiffItem{
				Location: sa.Name,
				ItemType: models.ItemShape,
				DiffType: models.Deleted,
				OldValue: sa.Text,
				Details:  DetailMaybeMoved,
			})
			continue
		}

		arena.claimed[i] = true
		sb := arena.shapes[i]
		reasons := compareShapes(sa, sb, tolerance)
		if len(reasons) == 0 {
			items = append(items, models.DiffItem{
				Location: sa.Name,
				ItemType: models.ItemShape,
				DiffType: models.Match,
			})
			continue
		}
		items = append(items, models.DiffItem{
			Location: sa.Name,
			ItemType: models.ItemShape,
			DiffType: models.Changed,
			OldValue: sa.Text,
			NewValue: sb.Text,
			Details:  strings.Join(reasons, ","),
		})
	}

	for i, sb := range arena.shapes {
		if arena.claimed[i] {
			continue
		}
		items = append(items, models.DiffItem{
			Location: sb.Name,
			ItemType: models.ItemShape,
			DiffType: models.Inserted,
			NewValue: sb.Text,
		})
	}

	return items
}

// compareShapes returns the reason codes that differ between a matched pair.
func compareShapes(sa, sb models.ShapeData, tolerance int64) []string {
	var reasons []string
	if sa.Text != sb.Text {
		reasons = append(reasons, ReasonTextChanged)
	}
	if sa.TypeName != sb.TypeName {
		reasons = append(reasons, ReasonTypeChanged)
	}
	if exceeds(sa.From.RowOffset-sb.From.RowOffset, tolerance) ||
		exceeds(sa.From.ColOffset-sb.From.ColOffset, tolerance) {
		reasons = append(reasons, ReasonPositionChanged)
	}
	if sizeChanged(sa, sb, tolerance) {
		reasons = append(reasons, ReasonSizeChanged)
	}
	return reasons
}

// sizeChanged compares cell spans and sub-cell offset spans. Shapes without
// a bottom-right anchor are never reported as resized.
func sizeChanged(sa, sb models.ShapeData, tolerance int64) bool {
	if sa.To == nil || sb.To == nil {
		return false
	}
	if sa.To.Col-sa.From.Col != sb.To.Col-sb.From.Col ||
		sa.To.Row-sa.From.Row != sb.To.Row-sb.From.Row {
		return true
	}
	widthA := sa.To.ColOffset - sa.From.ColOffset
	widthB := sb.To.ColOffset - sb.From.ColOffset
	heightA := sa.To.RowOffset - sa.From.RowOffset
	heightB := sb.To.RowOffset - sb.From.RowOffset
	return exceeds(widthA-widthB, tolerance) || exceeds(heightA-heightB, tolerance)
}

func exceeds(delta, tolerance int64) bool {
	if delta < 0 {
		delta = -delta
	}
	return delta > tolerance
}
