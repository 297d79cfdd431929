package table

import "strings"

// ColumnKind is the inferred kind of a column
type ColumnKind string

const (
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
	KindDate        ColumnKind = "date"
	KindBoolean     ColumnKind = "boolean"
	KindText        ColumnKind = "text"
)

// Column describes a single named column and its inferred kind
type Column struct {
	Name string     `json:"name"`
	Kind ColumnKind `json:"kind"`
}

// Schema is the ordered set of columns of a dataset
type Schema struct {
	Columns []Column `json:"columns"`
}

// dateNameHints are column names treated as date-like regardless of inferred kind
var dateNameHints = map[string]bool{
	"date": true, "time": true, "timestamp": true, "day": true, "month": true, "year": true,
}

// Names returns column names in schema order
func (s Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether a column with the given name exists
func (s Schema) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Kind returns the kind of a named column, or KindText if unknown
func (s Schema) Kind(name string) ColumnKind {
	for _, c := range s.Columns {
		if c.Name == name {
			return c.Kind
		}
	}
	return KindText
}

// NumericColumns returns the names of numeric columns in schema order
func (s Schema) NumericColumns() []string {
	var names []string
	for _, c := range s.Columns {
		if c.Kind == KindNumeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// DateColumns returns the names of date-like columns in schema order.
// A column qualifies by inferred kind or by a date-like name.
func (s Schema) DateColumns() []string {
	var names []string
	for _, c := range s.Columns {
		if c.Kind == KindDate || dateNameHints[strings.ToLower(c.Name)] {
			names = append(names, c.Name)
		}
	}
	return names
}

// CategoricalColumns returns the names of columns that are neither numeric nor
// date-like, in schema order
func (s Schema) CategoricalColumns() []string {
	dateSet := make(map[string]bool)
	for _, name := range s.DateColumns() {
		dateSet[name] = true
	}
	var names []string
	for _, c := range s.Columns {
		if c.Kind != KindNumeric && !dateSet[c.Name] {
			names = append(names, c.Name)
		}
	}
	return names
}
