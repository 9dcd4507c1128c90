package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"nil", nil, ""},
		{"string", "abc", "abc"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"float", 3.25, "3.25"},
		{"whole float", 100.0, "100"},
		{"bool", true, "true"},
		{"time", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-01-02T03:04:05Z"},
		{"stringer", Changed, "changed"},
		{"other", []int{1, 2}, "[1 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestEnumText(t *testing.T) {
	for _, d := range []DiffType{Match, Changed, Inserted, Deleted, Moved} {
		text, err := d.MarshalText()
		require.NoError(t, err)
		var back DiffType
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, d, back)
	}

	var d DiffType
	assert.Error(t, d.UnmarshalText([]byte("renamed")))
	_, err := DiffType(9).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "DiffType(9)", DiffType(9).String())

	var it ItemType
	require.NoError(t, it.UnmarshalText([]byte("shape")))
	assert.Equal(t, ItemShape, it)
	assert.Error(t, it.UnmarshalText([]byte("chart")))
	assert.Equal(t, "ItemType(-1)", ItemType(-1).String())
}

func TestDiffItemJSON(t *testing.T) {
	data, err := json.Marshal(DiffItem{Location: "Box1", ItemType: ItemShape, DiffType: Deleted, OldValue: "hi"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"location":"Box1","item_type":"shape","diff_type":"deleted","old_value":"hi"}`, string(data))
}

func TestDiffResultHelpers(t *testing.T) {
	r := DiffResult{Items: []DiffItem{
		{Location: "A1", ItemType: ItemCell, DiffType: Changed},
		{Location: "A2", ItemType: ItemCell, DiffType: Inserted},
		{Location: "B1", ItemType: ItemCell, DiffType: Changed},
		{Location: "Box1", ItemType: ItemShape, DiffType: Match},
	}}

	changed := r.Filter(ItemCell, Changed)
	require.Len(t, changed, 2)
	assert.Equal(t, "A1", changed[0].Location)
	assert.Equal(t, "B1", changed[1].Location)
	assert.Equal(t, 1, r.Count(ItemShape, Match))
	assert.Zero(t, r.Count(ItemShape, Moved))
	assert.True(t, r.HasDifferences())

	assert.Equal(t, Summary{
		ItemCell:  {Changed: 2, Inserted: 1},
		ItemShape: {Match: 1},
	}, r.Summary())

	onlyMatches := DiffResult{Items: r.Filter(ItemShape, Match)}
	assert.False(t, onlyMatches.HasDifferences())
	assert.False(t, DiffResult{}.HasDifferences())
}
