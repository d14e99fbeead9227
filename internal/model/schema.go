package model

import "fmt"

// Column is one named, independently sortable display column.
type Column struct {
	Title string // display title, e.g. "Name"
	Key   string // lowercase identifier used by config and sort keys
	Width int    // display width in cells
	Index int    // index into Record.Fields
}

// SortKey names the column a table is ordered by.
type SortKey struct {
	Column     string // must match a Column.Key in the schema
	Descending bool
}

// Schema is the ordered column list handed to the display collaborator.
type Schema struct {
	Columns []Column
	Sort    SortKey
}

// DefaultSchema returns the five package-list columns with their default
// widths and a name-ascending sort.
func DefaultSchema() Schema {
	return Schema{
		Columns: []Column{
			{Title: "Name", Key: "name", Width: 30, Index: FieldName},
			{Title: "Source", Key: "source", Width: 18, Index: FieldSource},
			{Title: "Version", Key: "version", Width: 18, Index: FieldVersion},
			{Title: "Arch", Key: "arch", Width: 8, Index: FieldArch},
			{Title: "Status", Key: "status", Width: 26, Index: FieldStatus},
		},
		Sort: SortKey{Column: "name"},
	}
}

// ColumnByKey looks up a column by its key.
func (s Schema) ColumnByKey(key string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// Validate checks the configuration-time invariant that the sort key names a
// column present in the schema. Called at setup, never per row.
func (s Schema) Validate() error {
	if _, ok := s.ColumnByKey(s.Sort.Column); !ok {
		return fmt.Errorf("sort column %q is not in the schema", s.Sort.Column)
	}
	return nil
}
