package aggregate

import (
	"encoding/json"
	"math"
)

// rawTablePreviewCap limits raw_table to keep chart payloads small
const rawTablePreviewCap = 50

// Result is the chart-ready output of the aggregation engine. Labels and
// values are positionally paired and always the same length; ordering is
// significant (key-ascending for grouped series, chronological for time
// series). Single-stat specs populate Value instead.
type Result struct {
	Labels   []string                 `json:"labels"`
	Values   []float64                `json:"values"`
	RawTable []map[string]interface{} `json:"raw_table"`
	Value    *float64                 `json:"value,omitempty"`
}

// emptyResult is the neutral degradation for missing columns, empty datasets,
// and unrecognized spec types. Never an error.
func emptyResult() Result {
	return Result{
		Labels:   []string{},
		Values:   []float64{},
		RawTable: []map[string]interface{}{},
	}
}

// MarshalJSON emits values with NaN/Infinity converted to null so the payload
// stays JSON-serializable for the rendering layer.
func (r Result) MarshalJSON() ([]byte, error) {
	out := struct {
		Labels   []string                 `json:"labels"`
		Values   []interface{}            `json:"values"`
		RawTable []map[string]interface{} `json:"raw_table"`
		Value    interface{}              `json:"value,omitempty"`
	}{
		Labels:   r.Labels,
		Values:   sanitizeValues(r.Values),
		RawTable: r.RawTable,
	}
	if r.Value != nil {
		out.Value = finiteOrNil(*r.Value)
	}
	return json.Marshal(out)
}

func sanitizeValues(values []float64) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = finiteOrNil(v)
	}
	return out
}

func finiteOrNil(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
