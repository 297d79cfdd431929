package chart

// ChartType identifies the visualization shape a spec targets
type ChartType string

const (
	TypeBar        ChartType = "bar"
	TypeLine       ChartType = "line"
	TypePie        ChartType = "pie"
	TypeHistogram  ChartType = "histogram"
	TypeScatter    ChartType = "scatter"
	TypeSingleStat ChartType = "single_stat"
	TypeTable      ChartType = "table"
)

// Aggregation is the reduction applied per group when building a series
type Aggregation string

const (
	AggSum   Aggregation = "sum"
	AggMean  Aggregation = "mean"
	AggMax   Aggregation = "max"
	AggMin   Aggregation = "min"
	AggCount Aggregation = "count"
)

// DefaultBins is the histogram bin count when the spec does not override it
const DefaultBins = 10

// Options carries per-chart tuning knobs
type Options struct {
	Bins int `json:"bins,omitempty"`
}

// Spec is the selected visualization type plus the dataset columns and
// aggregation it should use. X and Y are column names; empty means unset.
// Immutable once produced by the selector.
type Spec struct {
	Type        ChartType   `json:"type"`
	X           string      `json:"x,omitempty"`
	Y           string      `json:"y,omitempty"`
	Aggregation Aggregation `json:"aggregation"`
	Title       string      `json:"title"`
	Options     Options     `json:"options,omitempty"`

	// Confidence is a diagnostic heuristic-certainty score in [0,1];
	// it never gates behavior.
	Confidence float64 `json:"confidence"`
}

// BinCount returns the configured histogram bin count or the default
func (s Spec) BinCount() int {
	if s.Options.Bins > 0 {
		return s.Options.Bins
	}
	return DefaultBins
}
