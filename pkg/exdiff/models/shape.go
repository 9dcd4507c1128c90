package models

// AnchorPoint is a position in the native drawing grid (0-based row/col)
// plus a sub-cell offset in EMU.
type AnchorPoint struct {
	Row       int   `json:"row" yaml:"row"`
	Col       int   `json:"col" yaml:"col"`
	RowOffset int64 `json:"row_offset" yaml:"row_offset"`
	ColOffset int64 `json:"col_offset" yaml:"col_offset"`
}

// ShapeData represents a floating object anchored to the sheet grid.
type ShapeData struct {
	// ID is the drawing object id. It may be regenerated on copy/paste.
	ID string `json:"id" yaml:"id"`
	// Name is the display name, assumed unique per sheet.
	Name string `json:"name" yaml:"name"`
	// TypeName is the shape type label (e.g., "AutoShape-Rectangle").
	TypeName string `json:"type_name" yaml:"type_name"`
	// From is the top-left anchor.
	From AnchorPoint `json:"from" yaml:"from"`
	// To is the bottom-right anchor (nil for one-cell anchors).
	To *AnchorPoint `json:"to,omitempty" yaml:"to,omitempty"`
	// Text is the extracted text content.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Snapshot is the loaded content of one sheet.
type Snapshot struct {
	Sheet  string      `json:"sheet" yaml:"sheet"`
	Cells  []CellData  `json:"cells" yaml:"cells"`
	Shapes []ShapeData `json:"shapes,omitempty" yaml:"shapes,omitempty"`
}
