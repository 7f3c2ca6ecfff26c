package schema

import "github.com/Rana718/crudgen/internal/classify"

// Row is one column descriptor as produced by a metadata source. Rows for the
// same table must be contiguous.
type Row struct {
	Table        string `json:"table" yaml:"table"`
	Column       string `json:"column" yaml:"column"`
	IsIdentity   bool   `json:"identity" yaml:"identity"`
	IsPrimaryKey bool   `json:"primary_key" yaml:"primary_key"`
	NativeType   string `json:"type" yaml:"type"`
}

// GroupRows partitions rows into one table per contiguous run of equal table
// name. Column order within a table follows row order. A table name that
// reappears after a different one starts a new table.
func GroupRows(rows []Row) []*Table {
	tables := make([]*Table, 0, 8)
	var current *Table

	for _, r := range rows {
		if current == nil || current.Name != r.Table {
			current = &Table{Name: r.Table, Columns: make([]Column, 0, 16)}
			tables = append(tables, current)
		}
		current.Columns = append(current.Columns, Column{
			Name:         r.Column,
			NativeType:   r.NativeType,
			IsIdentity:   r.IsIdentity,
			IsPrimaryKey: r.IsPrimaryKey,
		})
	}

	return tables
}

// Select returns the tables whose names are in names, keeping input order.
// An empty names list selects every table.
func Select(tables []*Table, names []string) []*Table {
	if len(names) == 0 {
		return tables
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	out := make([]*Table, 0, len(names))
	for _, t := range tables {
		if want[t.Name] {
			out = append(out, t)
		}
	}
	return out
}

// Apply sets the out-of-band settings every generator embeds.
func Apply(tables []*Table, author, softDeleteColumn string) {
	for _, t := range tables {
		t.Author = author
		t.SoftDeleteColumn = softDeleteColumn
	}
}

// UseSQLServerTypes rewrites native types that mean something else in T-SQL,
// so that timestamp columns fail classification as rowversion.
func UseSQLServerTypes(tables []*Table) {
	for _, t := range tables {
		for i := range t.Columns {
			t.Columns[i].NativeType = classify.SQLServerType(t.Columns[i].NativeType)
		}
	}
}
