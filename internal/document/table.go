package document

import (
	"sort"
	"strings"
)

// Table is a set of records sharing one alphabetically sorted column set.
// Every record has every column; missing cells hold Unknown.
type Table struct {
	columns []string
	records []Record
}

// NewTable assembles records into a table whose columns are the canonical
// fields plus any extra field seen in the input. The records are copied and
// filled with Unknown where a column is missing.
func NewTable(records []Record) *Table {
	seen := make(map[string]bool, len(CanonicalFields))
	for _, f := range CanonicalFields {
		seen[f] = true
	}
	for _, r := range records {
		for k := range r.Fields {
			seen[k] = true
		}
	}

	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	filled := make([]Record, len(records))
	for i, r := range records {
		c := r.Clone()
		for _, col := range columns {
			if v, ok := c.Fields[col]; !ok || strings.TrimSpace(v) == "" {
				c.Fields[col] = Unknown
			}
		}
		filled[i] = c
	}

	return &Table{columns: columns, records: filled}
}

// Columns returns the sorted column names.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Record returns a copy of record i.
func (t *Table) Record(i int) Record {
	return t.records[i].Clone()
}

// Records returns copies of all records in order.
func (t *Table) Records() []Record {
	out := make([]Record, len(t.records))
	for i, r := range t.records {
		out[i] = r.Clone()
	}
	return out
}

// Value returns the cell at record i, column name.
func (t *Table) Value(i int, name string) string {
	return t.records[i].Get(name)
}

// Column returns every record's value for one column.
func (t *Table) Column(name string) []string {
	out := make([]string, len(t.records))
	for i, r := range t.records {
		out[i] = r.Get(name)
	}
	return out
}

// Row returns record i's values in column order.
func (t *Table) Row(i int) []string {
	row := make([]string, len(t.columns))
	for j, col := range t.columns {
		row[j] = t.records[i].Get(col)
	}
	return row
}

// Select returns a new table holding the records at the given indices, in
// that order.
func (t *Table) Select(indices []int) *Table {
	picked := make([]Record, 0, len(indices))
	for _, i := range indices {
		picked = append(picked, t.records[i])
	}
	return NewTable(picked)
}

// Concat returns a table holding the records of a followed by those of b.
func Concat(a, b *Table) *Table {
	all := make([]Record, 0, a.Len()+b.Len())
	all = append(all, a.records...)
	all = append(all, b.records...)
	return NewTable(all)
}
