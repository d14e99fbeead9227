package apt

import (
	"sort"

	"aptls/internal/model"
)

// BuildTable turns tokenized field-lists into records with contiguous
// 1-based ordinals in input order. A four-field list gets the literal status
// "none" appended; anything else is used as-is, so a malformed short line
// surfaces as a short record instead of failing the rebuild.
func BuildTable(fieldLists [][]string) model.Table {
	table := make(model.Table, 0, len(fieldLists))
	for i, fields := range fieldLists {
		if len(fields) == model.FieldCount-1 {
			fields = append(fields, model.StatusNone)
		}
		table = append(table, model.Record{Ordinal: i + 1, Fields: fields})
	}
	return table
}

// Parse runs sanitize -> tokenize -> build over raw list output.
func Parse(raw string) model.Table {
	lines := Sanitize(raw)
	fieldLists := make([][]string, 0, len(lines))
	for _, line := range lines {
		fieldLists = append(fieldLists, Tokenize(line))
	}
	return BuildTable(fieldLists)
}

// SortTable returns a copy of the table ordered by the given column, leaving
// the original (and its ordinals) untouched. The sort is stable, so equal
// keys keep input order. Short records sort on the empty string.
func SortTable(table model.Table, col model.Column, descending bool) model.Table {
	sorted := make(model.Table, len(table))
	copy(sorted, table)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := fieldAt(sorted[i], col.Index), fieldAt(sorted[j], col.Index)
		if descending {
			return a > b
		}
		return a < b
	})
	return sorted
}

func fieldAt(r model.Record, idx int) string {
	if idx < len(r.Fields) {
		return r.Fields[idx]
	}
	return ""
}
