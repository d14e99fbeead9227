package apt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aptls/internal/model"
)

func TestBuildTableOrdinalsContiguous(t *testing.T) {
	fieldLists := [][]string{
		{"a", "stable", "1", "amd64", "[installed]"},
		{"b", "stable", "2", "amd64"},
		{"c", "stable", "3", "amd64", "[upgradable from: 2]"},
	}

	table := BuildTable(fieldLists)
	require.Len(t, table, 3)
	for i, rec := range table {
		assert.Equal(t, i+1, rec.Ordinal)
	}
}

func TestBuildTableSynthesizesNoneStatus(t *testing.T) {
	table := BuildTable([][]string{{"pkg-c", "stable", "1.0", "amd64"}})
	require.Len(t, table, 1)
	assert.Equal(t, []string{"pkg-c", "stable", "1.0", "amd64", "none"}, table[0].Fields)
}

func TestBuildTableKeepsFiveFieldsAsIs(t *testing.T) {
	fields := []string{"pkg-a", "stable", "1.0", "amd64", "[installed]"}
	table := BuildTable([][]string{fields})
	require.Len(t, table, 1)
	assert.Equal(t, fields, table[0].Fields)
}

func TestBuildTableMalformedShortRecordSurvives(t *testing.T) {
	// A line that tokenized to fewer than 4 fields is kept as a short
	// record; it never fails the rebuild.
	table := BuildTable([][]string{{"orphan", "stable"}})
	require.Len(t, table, 1)
	assert.Equal(t, []string{"orphan", "stable"}, table[0].Fields)
	assert.Equal(t, "", table[0].Status())
}

func TestBuildTableEmpty(t *testing.T) {
	assert.Empty(t, BuildTable(nil))
}

func TestParseEndToEnd(t *testing.T) {
	raw := "Listing... Done\n" +
		"pkg-a/stable 1.0 amd64 [installed,automatic]\n" +
		"pkg-b/stable 2.0 amd64 [upgradable from: 1.9]\n" +
		"N: 3 packages not shown\n"

	table := Parse(raw)
	require.Len(t, table, 2)
	assert.Equal(t, 1, table[0].Ordinal)
	assert.Equal(t, 2, table[1].Ordinal)
	assert.Len(t, table[0].Fields, model.FieldCount)
	assert.Len(t, table[1].Fields, model.FieldCount)
	assert.Equal(t, "pkg-a", table[0].Fields[model.FieldName])
	assert.Equal(t, "[upgradable from: 1.9]", table[1].Fields[model.FieldStatus])
}

func TestSortTableDoesNotMutateOriginal(t *testing.T) {
	table := Parse("b/s 1 a [installed]\na/s 2 a [installed]\n")
	col, ok := model.DefaultSchema().ColumnByKey("name")
	require.True(t, ok)

	sorted := SortTable(table, col, false)
	assert.Equal(t, "a", sorted[0].Fields[model.FieldName])
	assert.Equal(t, 2, sorted[0].Ordinal)
	// Input order and ordinals unchanged on the original.
	assert.Equal(t, "b", table[0].Fields[model.FieldName])
	assert.Equal(t, 1, table[0].Ordinal)
}

func TestSortTableDescendingAndStability(t *testing.T) {
	table := model.Table{
		{Ordinal: 1, Fields: []string{"x", "stable", "1", "amd64", "none"}},
		{Ordinal: 2, Fields: []string{"x", "stable", "2", "amd64", "none"}},
		{Ordinal: 3, Fields: []string{"a", "stable", "3", "amd64", "none"}},
	}
	col, _ := model.DefaultSchema().ColumnByKey("name")

	desc := SortTable(table, col, true)
	assert.Equal(t, []int{1, 2, 3}, []int{desc[0].Ordinal, desc[1].Ordinal, desc[2].Ordinal})

	asc := SortTable(table, col, false)
	// Stable: equal names keep input order.
	assert.Equal(t, []int{3, 1, 2}, []int{asc[0].Ordinal, asc[1].Ordinal, asc[2].Ordinal})
}
