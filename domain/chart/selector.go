package chart

import (
	"fmt"
	"strings"

	"datalens/domain/table"
)

// aggregationKeywords maps query keywords to the reduction they request
var aggregationKeywords = []struct {
	agg      Aggregation
	keywords []string
}{
	{AggSum, []string{"total", "sum", "overall"}},
	{AggMean, []string{"average", "avg", "mean"}},
	{AggMax, []string{"max", "maximum", "highest"}},
	{AggMin, []string{"min", "minimum", "lowest"}},
}

// DetectAggregation scans the query for an explicit reduction keyword.
// Absence defaults to sum.
func DetectAggregation(query string) (Aggregation, bool) {
	q := strings.ToLower(query)
	for _, entry := range aggregationKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(q, kw) {
				return entry.agg, true
			}
		}
	}
	return AggSum, false
}

// selectorRule is one step of the chart selection heuristic. Rules are
// evaluated in priority order; the first rule that applies wins, and the
// final fallback rule always applies.
type selectorRule struct {
	name  string
	apply func(schema table.Schema, query string) (Spec, bool)
}

var selectorRules = []selectorRule{
	{name: "temporal_line", apply: temporalLineRule},
	{name: "comparison_scatter", apply: comparisonScatterRule},
	{name: "categorical_bar", apply: categoricalBarRule},
	{name: "single_stat", apply: singleStatRule},
	{name: "distribution_histogram", apply: distributionHistogramRule},
	{name: "numeric_scatter", apply: numericScatterRule},
	{name: "fallback_bar", apply: fallbackBarRule},
}

// SelectSpec chooses a chart type and target columns for a query against a
// dataset schema. Pure and deterministic; always returns a spec because the
// final rule is a guaranteed-matching fallback.
func SelectSpec(schema table.Schema, query string) Spec {
	q := strings.ToLower(query)
	for _, rule := range selectorRules {
		if spec, ok := rule.apply(schema, q); ok {
			return spec
		}
	}
	// Unreachable: fallbackBarRule always matches
	return Spec{Type: TypeBar, Aggregation: AggSum, Confidence: 0.5}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func containsAny(q string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// temporalLineRule: a time-intent query plus a date-like column becomes a
// time series over the first numeric column.
func temporalLineRule(schema table.Schema, q string) (Spec, bool) {
	if !containsAny(q, "trend", "over time", "time", "monthly", "daily") {
		return Spec{}, false
	}
	dateCols := schema.DateColumns()
	if len(dateCols) == 0 {
		return Spec{}, false
	}

	spec := Spec{
		Type:        TypeLine,
		X:           dateCols[0],
		Aggregation: AggSum,
		Confidence:  0.9,
	}
	if agg, ok := DetectAggregation(q); ok {
		spec.Aggregation = agg
	}
	if numCols := schema.NumericColumns(); len(numCols) > 0 {
		spec.Y = numCols[0]
	}
	spec.Title = fmt.Sprintf("%s over time", spec.Y)
	return spec, true
}

// comparisonScatterRule: an explicit comparison with two numeric columns
// becomes a scatter over the first two.
func comparisonScatterRule(schema table.Schema, q string) (Spec, bool) {
	if !containsAny(q, "compare", "vs", "versus") {
		return Spec{}, false
	}
	numCols := schema.NumericColumns()
	if len(numCols) < 2 {
		return Spec{}, false
	}
	return Spec{
		Type:       TypeScatter,
		X:          numCols[0],
		Y:          numCols[1],
		Title:      fmt.Sprintf("Compare %s vs %s", numCols[0], numCols[1]),
		Confidence: 0.85,
	}, true
}

// categoricalBarRule: a categorical plus a numeric column becomes a grouped
// bar chart, aggregating with sum unless the query names another reduction.
func categoricalBarRule(schema table.Schema, q string) (Spec, bool) {
	catCols := schema.CategoricalColumns()
	numCols := schema.NumericColumns()
	if len(catCols) == 0 || len(numCols) == 0 {
		return Spec{}, false
	}

	agg, _ := DetectAggregation(q)
	return Spec{
		Type:        TypeBar,
		X:           catCols[0],
		Y:           numCols[0],
		Aggregation: agg,
		Title:       fmt.Sprintf("%s of %s by %s", titleCase(string(agg)), numCols[0], catCols[0]),
		Confidence:  0.9,
	}, true
}

// singleStatRule: an explicit reduction keyword against a lone numeric column
// with no grouping dimension reduces to a single scalar.
func singleStatRule(schema table.Schema, q string) (Spec, bool) {
	numCols := schema.NumericColumns()
	if len(numCols) != 1 || len(schema.CategoricalColumns()) > 0 {
		return Spec{}, false
	}
	agg, explicit := DetectAggregation(q)
	if !explicit {
		return Spec{}, false
	}
	return Spec{
		Type:        TypeSingleStat,
		Y:           numCols[0],
		Aggregation: agg,
		Title:       fmt.Sprintf("%s of %s", titleCase(string(agg)), numCols[0]),
		Confidence:  0.8,
	}, true
}

// distributionHistogramRule: exactly one numeric column shows its distribution.
func distributionHistogramRule(schema table.Schema, q string) (Spec, bool) {
	numCols := schema.NumericColumns()
	if len(numCols) != 1 {
		return Spec{}, false
	}
	return Spec{
		Type:       TypeHistogram,
		X:          numCols[0],
		Title:      fmt.Sprintf("Distribution of %s", numCols[0]),
		Options:    Options{Bins: DefaultBins},
		Confidence: 0.8,
	}, true
}

// numericScatterRule: two or more numeric columns scatter the first two.
func numericScatterRule(schema table.Schema, q string) (Spec, bool) {
	numCols := schema.NumericColumns()
	if len(numCols) < 2 {
		return Spec{}, false
	}
	return Spec{
		Type:       TypeScatter,
		X:          numCols[0],
		Y:          numCols[1],
		Title:      fmt.Sprintf("%s vs %s", numCols[1], numCols[0]),
		Confidence: 0.7,
	}, true
}

// fallbackBarRule: guaranteed match over the first two schema columns, or the
// same column twice when only one exists.
func fallbackBarRule(schema table.Schema, q string) (Spec, bool) {
	names := schema.Names()
	spec := Spec{
		Type:        TypeBar,
		Aggregation: AggSum,
		Confidence:  0.5,
	}
	if len(names) > 0 {
		spec.X = names[0]
		spec.Y = names[0]
	}
	if len(names) > 1 {
		spec.Y = names[1]
	}
	spec.Title = fmt.Sprintf("%s by %s", spec.Y, spec.X)
	return spec, true
}
