package table

// Row maps a column name to a scalar cell value
type Row map[string]Value

// Clone returns a shallow copy of the row
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an in-memory tabular dataset: a fixed ordered schema plus an
// ordered sequence of rows. It is read-only for the reasoning and
// aggregation engines; they copy rows rather than mutate them.
type Table struct {
	schema Schema
	rows   []Row
}

// New creates a table from a schema and rows
func New(schema Schema, rows []Row) *Table {
	return &Table{schema: schema, rows: rows}
}

// Schema returns the table schema
func (t *Table) Schema() Schema {
	return t.schema
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Row returns the row at index i
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Rows returns the underlying row slice. Callers must not mutate it.
func (t *Table) Rows() []Row {
	if t == nil {
		return nil
	}
	return t.rows
}

// Value returns the cell at row i, column name. Missing columns yield a
// missing value rather than an error.
func (t *Table) Value(i int, name string) Value {
	v, ok := t.rows[i][name]
	if !ok {
		return NewMissingValue()
	}
	return v
}
