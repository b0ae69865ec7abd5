package models

import "sort"

// RawRecord is one row of the flat extract, keyed by raw column name.
// A nil value means the cell was absent or empty in the source file; the
// transformer normalizes both to an explicit NULL downstream.
type RawRecord map[string]*string

// Value returns the raw cell for the given column, or nil when the column
// is missing from the record entirely.
func (r RawRecord) Value(column string) *string {
	return r[column]
}

// NormalizedRecord holds the six row projections produced by normalizing one
// raw record. Each slice is ordered by the schema partition for its table;
// elements are nil (NULL), string (passthrough), or int64 (coerced 0/1).
type NormalizedRecord struct {
	Property  []any
	Leads     []any
	Valuation []any
	Rehab     []any
	HOA       []any
	Taxes     []any
}

// Row returns the projection for the named target table, or nil for an
// unknown table.
func (r *NormalizedRecord) Row(table string) []any {
	switch table {
	case "property":
		return r.Property
	case "leads":
		return r.Leads
	case "valuation":
		return r.Valuation
	case "rehab":
		return r.Rehab
	case "hoa":
		return r.HOA
	case "taxes":
		return r.Taxes
	}
	return nil
}

// RawExtract is the parsed flat input file: the header in file order plus
// one RawRecord per data row. It is immutable once read.
type RawExtract struct {
	Columns []string
	Records []RawRecord
}

// HasColumn reports whether the extract's header names the given column.
func (e *RawExtract) HasColumn(column string) bool {
	for _, col := range e.Columns {
		if col == column {
			return true
		}
	}
	return false
}

// Snapshot is the flat tabular export of one target table, as written by the
// loader after a successful batch and read back by the validator and the
// analyzer. IDs carries the generated property id for each row so consumers
// can join on identity instead of trusting file row order.
type Snapshot struct {
	Table   string
	Columns []string
	IDs     []int64
	Rows    [][]string
}

// Column returns the values of the named column across all rows, in row
// order. The second return is false when the snapshot has no such column.
func (s *Snapshot) Column(name string) ([]string, bool) {
	idx := -1
	for i, col := range s.Columns {
		if col == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	values := make([]string, len(s.Rows))
	for i, row := range s.Rows {
		values[i] = row[idx]
	}
	return values, true
}

// Len returns the number of data rows in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.Rows)
}

// SortByID orders the snapshot rows by ascending property id. Identities are
// generated in insertion order, so a sorted snapshot lines up positionally
// with the raw extract regardless of how the file rows were stored.
func (s *Snapshot) SortByID() {
	sort.Sort(byID{s})
}

type byID struct{ s *Snapshot }

func (b byID) Len() int           { return len(b.s.IDs) }
func (b byID) Less(i, j int) bool { return b.s.IDs[i] < b.s.IDs[j] }
func (b byID) Swap(i, j int) {
	b.s.IDs[i], b.s.IDs[j] = b.s.IDs[j], b.s.IDs[i]
	b.s.Rows[i], b.s.Rows[j] = b.s.Rows[j], b.s.Rows[i]
}
