package models

import "fmt"

// ItemType identifies what kind of object a DiffItem refers to.
type ItemType int

const (
	// ItemCell is a grid cell.
	ItemCell ItemType = iota
	// ItemShape is an anchored drawing object.
	ItemShape
)

var itemTypeNames = [...]string{
	ItemCell:  "cell",
	ItemShape: "shape",
}

func (t ItemType) String() string {
	if t < 0 || int(t) >= len(itemTypeNames) {
		return fmt.Sprintf("ItemType(%d)", int(t))
	}
	return itemTypeNames[t]
}

// MarshalText implements encoding.TextMarshaler.
func (t ItemType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(itemTypeNames) {
		return nil, fmt.Errorf("invalid item type %d", int(t))
	}
	return []byte(itemTypeNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ItemType) UnmarshalText(text []byte) error {
	for i, name := range itemTypeNames {
		if name == string(text) {
			*t = ItemType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown item type %q", string(text))
}

// DiffType classifies a difference.
type DiffType int

const (
	// Match means both versions hold an equivalent object.
	Match DiffType = iota
	// Changed means the object exists in both versions with different content.
	Changed
	// Inserted means the object exists only in the modified version.
	Inserted
	// Deleted means the object exists only in the base version.
	Deleted
	// Moved means a shape lost its anchor and reappeared elsewhere.
	Moved
)

var diffTypeNames = [...]string{
	Match:    "match",
	Changed:  "changed",
	Inserted: "inserted",
	Deleted:  "deleted",
	Moved:    "moved",
}

func (d DiffType) String() string {
	if d < 0 || int(d) >= len(diffTypeNames) {
		return fmt.Sprintf("DiffType(%d)", int(d))
	}
	return diffTypeNames[d]
}

// MarshalText implements encoding.TextMarshaler.
func (d DiffType) MarshalText() ([]byte, error) {
	if d < 0 || int(d) >= len(diffTypeNames) {
		return nil, fmt.Errorf("invalid diff type %d", int(d))
	}
	return []byte(diffTypeNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DiffType) UnmarshalText(text []byte) error {
	for i, name := range diffTypeNames {
		if name == string(text) {
			*d = DiffType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown diff type %q", string(text))
}

// DiffItem is a single classified difference.
type DiffItem struct {
	// Location is a cell coordinate ("A3", "A3 -> A4") or a shape name.
	Location string `json:"location" yaml:"location"`
	// ItemType is the kind of object.
	ItemType ItemType `json:"item_type" yaml:"item_type"`
	// DiffType is the verdict.
	DiffType DiffType `json:"diff_type" yaml:"diff_type"`
	// OldValue is the base value (nil when not applicable).
	OldValue interface{} `json:"old_value,omitempty" yaml:"old_value,omitempty"`
	// NewValue is the modified value (nil when not applicable).
	NewValue interface{} `json:"new_value,omitempty" yaml:"new_value,omitempty"`
	// Details holds comma-joined reason codes.
	Details string `json:"details,omitempty" yaml:"details,omitempty"`
}

// DiffResult is the ordered output of one comparison.
type DiffResult struct {
	Items []DiffItem `json:"items" yaml:"items"`
}

// Filter returns the items of the given item and diff type, in order.
func (r DiffResult) Filter(itemType ItemType, diffType DiffType) []DiffItem {
	var out []DiffItem
	for _, item := range r.Items {
		if item.ItemType == itemType && item.DiffType == diffType {
			out = append(out, item)
		}
	}
	return out
}

// Count returns the number of items of the given item and diff type.
func (r DiffResult) Count(itemType ItemType, diffType DiffType) int {
	n := 0
	for _, item := range r.Items {
		if item.ItemType == itemType && item.DiffType == diffType {
			n++
		}
	}
	return n
}

// HasDifferences reports whether any item is not a Match.
func (r DiffResult) HasDifferences() bool {
	for _, item := range r.Items {
		if item.DiffType != Match {
			return true
		}
	}
	return false
}

// Summary counts items per item type and diff type.
type Summary map[ItemType]map[DiffType]int

// Summary returns per-type counts for the result.
func (r DiffResult) Summary() Summary {
	s := make(Summary)
	for _, item := range r.Items {
		if s[item.ItemType] == nil {
			s[item.ItemType] = make(map[DiffType]int)
		}
		s[item.ItemType][item.DiffType]++
	}
	return s
}

// SheetDiff is the result of comparing one pair of sheets.
type SheetDiff struct {
	SheetA string     `json:"sheet_a" yaml:"sheet_a"`
	SheetB string     `json:"sheet_b" yaml:"sheet_b"`
	Result DiffResult `json:"result" yaml:"result"`
}

// WorkbookDiff is the result of comparing every common sheet of two workbooks.
type WorkbookDiff struct {
	BookA   string      `json:"book_a" yaml:"book_a"`
	BookB   string      `json:"book_b" yaml:"book_b"`
	Sheets  []SheetDiff `json:"sheets" yaml:"sheets"`
	OnlyInA []string    `json:"only_in_a,omitempty" yaml:"only_in_a,omitempty"`
	OnlyInB []string    `json:"only_in_b,omitempty" yaml:"only_in_b,omitempty"`
}
