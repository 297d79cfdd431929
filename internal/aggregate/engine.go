package aggregate

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"datalens/domain/chart"
	"datalens/domain/table"
	"datalens/internal"
)

var logger = internal.NewLogger("Aggregate")

// Run turns a dataset plus a chart specification into a labeled, chart-ready
// series. Every failure mode degrades to an empty result: missing columns,
// empty datasets, and unknown spec types never raise.
func Run(t *table.Table, spec chart.Spec) Result {
	if t.Len() == 0 {
		return emptyResult()
	}
	logger.Debug("running %s aggregation (x=%q y=%q agg=%q) over %d rows",
		spec.Type, spec.X, spec.Y, spec.Aggregation, t.Len())

	switch spec.Type {
	case chart.TypeBar, chart.TypePie:
		return groupSeries(t, spec)
	case chart.TypeLine:
		return lineSeries(t, spec)
	case chart.TypeHistogram:
		return histogramSeries(t, spec)
	case chart.TypeScatter:
		return scatterSeries(t, spec)
	case chart.TypeSingleStat:
		return singleStat(t, spec)
	}

	return emptyResult()
}

// groupSeries handles bar and pie specs: group rows by the x column, reduce
// the coerced y column per group, and emit groups in key-ascending order.
// Without a y column it falls back to frequency counts of x.
func groupSeries(t *table.Table, spec chart.Spec) Result {
	if spec.X == "" || !t.Schema().HasColumn(spec.X) {
		return emptyResult()
	}

	hasY := spec.Y != "" && spec.Y != spec.X && t.Schema().HasColumn(spec.Y)

	groups := make(map[string][]float64)
	raw := make([]map[string]interface{}, 0, rawTablePreviewCap)

	for i := 0; i < t.Len(); i++ {
		label := t.Value(i, spec.X).String()
		if label == "" {
			continue
		}

		var y float64
		if hasY {
			var ok bool
			y, ok = CoerceNumeric(t.Value(i, spec.Y))
			if !ok {
				continue
			}
		}
		groups[label] = append(groups[label], y)

		if len(raw) < rawTablePreviewCap {
			row := map[string]interface{}{spec.X: label}
			if hasY {
				row[spec.Y] = y
			}
			raw = append(raw, row)
		}
	}

	if len(groups) == 0 {
		return emptyResult()
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	agg := spec.Aggregation
	if !hasY {
		agg = chart.AggCount
	}

	result := Result{
		Labels:   make([]string, 0, len(keys)),
		Values:   make([]float64, 0, len(keys)),
		RawTable: raw,
	}
	for _, k := range keys {
		result.Labels = append(result.Labels, k)
		result.Values = append(result.Values, reduce(groups[k], agg))
	}
	return result
}

// lineSeries coerces x to timestamps and y to numbers, then resamples into
// daily buckets, or monthly buckets when the span exceeds 60 days. Buckets
// between the first and last observation are emitted even when empty so the
// series stays chronologically continuous.
func lineSeries(t *table.Table, spec chart.Spec) Result {
	if spec.X == "" || spec.Y == "" ||
		!t.Schema().HasColumn(spec.X) || !t.Schema().HasColumn(spec.Y) {
		return emptyResult()
	}

	type point struct {
		at  time.Time
		val float64
	}
	var points []point

	raw := make([]map[string]interface{}, 0, rawTablePreviewCap)
	for i := 0; i < t.Len(); i++ {
		at, ok := CoerceTime(t.Value(i, spec.X))
		if !ok {
			continue
		}
		val, ok := CoerceNumeric(t.Value(i, spec.Y))
		if !ok {
			continue
		}
		points = append(points, point{at: at, val: val})
		if len(raw) < rawTablePreviewCap {
			raw = append(raw, map[string]interface{}{
				spec.X: at.Format("2006-01-02"),
				spec.Y: val,
			})
		}
	}

	if len(points) == 0 {
		return emptyResult()
	}

	sort.Slice(points, func(i, j int) bool { return points[i].at.Before(points[j].at) })

	first, last := points[0].at, points[len(points)-1].at
	// Whole days only: a span of 60 days plus a few hours still resamples daily
	spanDays := int(last.Sub(first).Hours() / 24)
	monthly := spanDays > 60

	bucketKey := func(at time.Time) time.Time {
		if monthly {
			return time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)
		}
		return time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	}
	nextBucket := func(at time.Time) time.Time {
		if monthly {
			return at.AddDate(0, 1, 0)
		}
		return at.AddDate(0, 0, 1)
	}
	bucketLabel := func(at time.Time) string {
		if monthly {
			return at.Format("2006-01")
		}
		return at.Format("2006-01-02")
	}

	buckets := make(map[time.Time][]float64)
	for _, p := range points {
		key := bucketKey(p.at)
		buckets[key] = append(buckets[key], p.val)
	}

	result := Result{
		Labels:   []string{},
		Values:   []float64{},
		RawTable: raw,
	}
	for at := bucketKey(first); !at.After(bucketKey(last)); at = nextBucket(at) {
		result.Labels = append(result.Labels, bucketLabel(at))
		vals := buckets[at]
		if len(vals) == 0 {
			result.Values = append(result.Values, 0)
			continue
		}
		if spec.Aggregation == chart.AggMean {
			result.Values = append(result.Values, reduce(vals, chart.AggMean))
		} else {
			result.Values = append(result.Values, reduce(vals, chart.AggSum))
		}
	}
	return result
}

// histogramSeries computes an equal-width histogram over the coerced x
// column. The bin count is fixed by the spec (default 10) and each bin is
// labeled by its edges formatted to 3 significant figures. The final bin is
// closed on the right so the maximum value is counted.
func histogramSeries(t *table.Table, spec chart.Spec) Result {
	if spec.X == "" || !t.Schema().HasColumn(spec.X) {
		return emptyResult()
	}

	var xs []float64
	raw := make([]map[string]interface{}, 0, rawTablePreviewCap)
	for i := 0; i < t.Len(); i++ {
		x, ok := CoerceNumeric(t.Value(i, spec.X))
		if !ok {
			continue
		}
		xs = append(xs, x)
		if len(raw) < rawTablePreviewCap {
			raw = append(raw, map[string]interface{}{spec.X: x})
		}
	}
	if len(xs) == 0 {
		return emptyResult()
	}

	lo, _ := stats.Min(xs)
	hi, _ := stats.Max(xs)
	if lo == hi {
		// Degenerate range: center a unit-wide window on the value
		lo -= 0.5
		hi += 0.5
	}

	bins := spec.BinCount()
	edges := floats.Span(make([]float64, bins+1), lo, hi)

	counts := make([]float64, bins)
	width := (hi - lo) / float64(bins)
	for _, x := range xs {
		idx := int((x - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}

	result := Result{
		Labels:   make([]string, 0, bins),
		Values:   counts,
		RawTable: raw,
	}
	for i := 0; i < bins; i++ {
		result.Labels = append(result.Labels, fmt.Sprintf("%.3g - %.3g", edges[i], edges[i+1]))
	}
	return result
}

// scatterSeries emits raw coerced x/y pairs with no aggregation
func scatterSeries(t *table.Table, spec chart.Spec) Result {
	if spec.X == "" || spec.Y == "" ||
		!t.Schema().HasColumn(spec.X) || !t.Schema().HasColumn(spec.Y) {
		return emptyResult()
	}

	result := Result{
		Labels:   []string{},
		Values:   []float64{},
		RawTable: []map[string]interface{}{},
	}
	for i := 0; i < t.Len(); i++ {
		x, ok := CoerceNumeric(t.Value(i, spec.X))
		if !ok {
			continue
		}
		y, ok := CoerceNumeric(t.Value(i, spec.Y))
		if !ok {
			continue
		}
		result.Labels = append(result.Labels, strconv.FormatFloat(x, 'g', -1, 64))
		result.Values = append(result.Values, y)
		if len(result.RawTable) < rawTablePreviewCap {
			result.RawTable = append(result.RawTable, map[string]interface{}{
				spec.X: x,
				spec.Y: y,
			})
		}
	}
	return result
}

// singleStat reduces the whole y column to one scalar
func singleStat(t *table.Table, spec chart.Spec) Result {
	col := spec.Y
	if col == "" {
		col = spec.X
	}
	if col == "" || !t.Schema().HasColumn(col) {
		return emptyResult()
	}

	var vals []float64
	raw := make([]map[string]interface{}, 0, rawTablePreviewCap)
	for i := 0; i < t.Len(); i++ {
		v, ok := CoerceNumeric(t.Value(i, col))
		if !ok {
			continue
		}
		vals = append(vals, v)
		if len(raw) < rawTablePreviewCap {
			raw = append(raw, map[string]interface{}{col: v})
		}
	}
	if len(vals) == 0 {
		return emptyResult()
	}

	value := reduce(vals, spec.Aggregation)
	result := emptyResult()
	result.RawTable = raw
	result.Value = &value
	return result
}

// reduce applies the requested reduction to a non-empty value slice
func reduce(vals []float64, agg chart.Aggregation) float64 {
	switch agg {
	case chart.AggMean:
		v, _ := stats.Mean(vals)
		return v
	case chart.AggMin:
		v, _ := stats.Min(vals)
		return v
	case chart.AggMax:
		v, _ := stats.Max(vals)
		return v
	case chart.AggCount:
		return float64(len(vals))
	default:
		v, _ := stats.Sum(vals)
		return v
	}
}
