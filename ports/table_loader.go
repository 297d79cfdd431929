package ports

import "datalens/domain/table"

// TableLoader loads a materialized table from a stored dataset file. The
// reasoning and aggregation engines only ever see the resulting table; file
// handling errors stop here.
type TableLoader interface {
	Load(path string, maxRows int) (*table.Table, error)
}
