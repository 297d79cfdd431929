package aggregate

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"

	"datalens/domain/chart"
	"datalens/domain/table"
	"datalens/internal/testkit"
)

func makeTable(columns []table.Column, rows []table.Row) *table.Table {
	return table.New(table.Schema{Columns: columns}, rows)
}

func salesTable() *table.Table {
	return makeTable(
		[]table.Column{
			{Name: "region", Kind: table.KindCategorical},
			{Name: "revenue", Kind: table.KindNumeric},
		},
		[]table.Row{
			{"region": table.NewStringValue("A"), "revenue": table.NewStringValue("1,000")},
			{"region": table.NewStringValue("A"), "revenue": table.NewStringValue("500")},
			{"region": table.NewStringValue("B"), "revenue": table.NewStringValue("200")},
		},
	)
}

func TestRunBarGroupSum(t *testing.T) {
	result := Run(salesTable(), chart.Spec{
		Type: chart.TypeBar, X: "region", Y: "revenue", Aggregation: chart.AggSum,
	})

	if !reflect.DeepEqual(result.Labels, []string{"A", "B"}) {
		t.Errorf("Labels = %v, expected [A B]", result.Labels)
	}
	if !reflect.DeepEqual(result.Values, []float64{1500, 200}) {
		t.Errorf("Values = %v, expected [1500 200]", result.Values)
	}
	if len(result.RawTable) != 3 {
		t.Errorf("RawTable rows = %d, expected 3", len(result.RawTable))
	}
}

func TestRunBarGroupMean(t *testing.T) {
	result := Run(salesTable(), chart.Spec{
		Type: chart.TypePie, X: "region", Y: "revenue", Aggregation: chart.AggMean,
	})
	if !reflect.DeepEqual(result.Values, []float64{750, 200}) {
		t.Errorf("Values = %v, expected [750 200]", result.Values)
	}
}

func TestRunBarFrequencyCountsWithoutY(t *testing.T) {
	result := Run(salesTable(), chart.Spec{
		Type: chart.TypeBar, X: "region",
	})
	if !reflect.DeepEqual(result.Labels, []string{"A", "B"}) {
		t.Errorf("Labels = %v", result.Labels)
	}
	if !reflect.DeepEqual(result.Values, []float64{2, 1}) {
		t.Errorf("Values = %v, expected frequency counts [2 1]", result.Values)
	}
}

func TestRunBarSkipsUncoercibleRows(t *testing.T) {
	tbl := makeTable(
		[]table.Column{
			{Name: "region", Kind: table.KindCategorical},
			{Name: "revenue", Kind: table.KindCategorical},
		},
		[]table.Row{
			{"region": table.NewStringValue("A"), "revenue": table.NewStringValue("100")},
			{"region": table.NewStringValue("A"), "revenue": table.NewStringValue("garbage")},
		},
	)
	result := Run(tbl, chart.Spec{Type: chart.TypeBar, X: "region", Y: "revenue", Aggregation: chart.AggSum})
	if !reflect.DeepEqual(result.Values, []float64{100}) {
		t.Errorf("Values = %v, expected [100] with the dirty row dropped", result.Values)
	}
}

func TestRunLineDailyResampling(t *testing.T) {
	tbl := makeTable(
		[]table.Column{
			{Name: "date", Kind: table.KindDate},
			{Name: "sales", Kind: table.KindNumeric},
		},
		[]table.Row{
			{"date": table.NewStringValue("2024-01-01"), "sales": table.NewNumericValue(10)},
			{"date": table.NewStringValue("2024-01-03"), "sales": table.NewNumericValue(30)},
			{"date": table.NewStringValue("2024-01-03"), "sales": table.NewNumericValue(5)},
		},
	)
	result := Run(tbl, chart.Spec{Type: chart.TypeLine, X: "date", Y: "sales", Aggregation: chart.AggSum})

	// Span is 2 days, so daily buckets with the gap filled as zero
	if !reflect.DeepEqual(result.Labels, []string{"2024-01-01", "2024-01-02", "2024-01-03"}) {
		t.Fatalf("Labels = %v", result.Labels)
	}
	if !reflect.DeepEqual(result.Values, []float64{10, 0, 35}) {
		t.Errorf("Values = %v, expected [10 0 35]", result.Values)
	}
}

func TestRunLineMonthlyResampling(t *testing.T) {
	tbl := makeTable(
		[]table.Column{
			{Name: "date", Kind: table.KindDate},
			{Name: "sales", Kind: table.KindNumeric},
		},
		[]table.Row{
			{"date": table.NewStringValue("2024-01-15"), "sales": table.NewNumericValue(10)},
			{"date": table.NewStringValue("2024-04-20"), "sales": table.NewNumericValue(40)},
		},
	)
	result := Run(tbl, chart.Spec{Type: chart.TypeLine, X: "date", Y: "sales", Aggregation: chart.AggSum})

	// Span exceeds 60 days, so monthly buckets
	if !reflect.DeepEqual(result.Labels, []string{"2024-01", "2024-02", "2024-03", "2024-04"}) {
		t.Fatalf("Labels = %v", result.Labels)
	}
	if !reflect.DeepEqual(result.Values, []float64{10, 0, 0, 40}) {
		t.Errorf("Values = %v", result.Values)
	}
}

// A span of 60 whole days plus extra hours must still resample daily; only
// spans strictly beyond 60 whole days go monthly
func TestRunLineResampleCutoverWholeDays(t *testing.T) {
	tbl := makeTable(
		[]table.Column{
			{Name: "ts", Kind: table.KindDate},
			{Name: "sales", Kind: table.KindNumeric},
		},
		[]table.Row{
			{"ts": table.NewStringValue("2024-01-01 00:00:00"), "sales": table.NewNumericValue(1)},
			{"ts": table.NewStringValue("2024-03-01 06:00:00"), "sales": table.NewNumericValue(2)},
		},
	)
	result := Run(tbl, chart.Spec{Type: chart.TypeLine, X: "ts", Y: "sales", Aggregation: chart.AggSum})

	// 2024-01-01 to 2024-03-01 is exactly 60 days; the extra 6 hours do not count
	if len(result.Labels) != 61 {
		t.Fatalf("got %d buckets, expected 61 daily buckets", len(result.Labels))
	}
	if result.Labels[0] != "2024-01-01" || result.Labels[60] != "2024-03-01" {
		t.Errorf("bucket range = [%s .. %s]", result.Labels[0], result.Labels[len(result.Labels)-1])
	}
}

func TestRunHistogram(t *testing.T) {
	rows := make([]table.Row, 0, 100)
	for i := 0; i < 100; i++ {
		rows = append(rows, table.Row{"price": table.NewNumericValue(float64(i))})
	}
	tbl := makeTable([]table.Column{{Name: "price", Kind: table.KindNumeric}}, rows)

	result := Run(tbl, chart.Spec{Type: chart.TypeHistogram, X: "price"})

	if len(result.Values) != chart.DefaultBins {
		t.Fatalf("got %d bins, expected %d", len(result.Values), chart.DefaultBins)
	}
	if len(result.Labels) != len(result.Values) {
		t.Fatalf("labels/values length mismatch: %d vs %d", len(result.Labels), len(result.Values))
	}

	total := 0.0
	for _, v := range result.Values {
		total += v
	}
	if total != 100 {
		t.Errorf("bin counts sum to %v, expected 100 (max must land in the last bin)", total)
	}
	if !strings.Contains(result.Labels[0], " - ") {
		t.Errorf("bin label %q missing edge separator", result.Labels[0])
	}
}

func TestRunHistogramCustomBins(t *testing.T) {
	rows := []table.Row{
		{"price": table.NewNumericValue(1)},
		{"price": table.NewNumericValue(9)},
	}
	tbl := makeTable([]table.Column{{Name: "price", Kind: table.KindNumeric}}, rows)

	result := Run(tbl, chart.Spec{
		Type: chart.TypeHistogram, X: "price", Options: chart.Options{Bins: 4},
	})
	if len(result.Values) != 4 {
		t.Errorf("got %d bins, expected 4", len(result.Values))
	}
}

func TestRunHistogramDegenerateRange(t *testing.T) {
	rows := []table.Row{
		{"price": table.NewNumericValue(7)},
		{"price": table.NewNumericValue(7)},
	}
	tbl := makeTable([]table.Column{{Name: "price", Kind: table.KindNumeric}}, rows)

	result := Run(tbl, chart.Spec{Type: chart.TypeHistogram, X: "price"})
	total := 0.0
	for _, v := range result.Values {
		total += v
	}
	if total != 2 {
		t.Errorf("identical values should still be counted, got sum %v", total)
	}
}

func TestRunScatter(t *testing.T) {
	tbl := makeTable(
		[]table.Column{
			{Name: "x", Kind: table.KindNumeric},
			{Name: "y", Kind: table.KindNumeric},
		},
		[]table.Row{
			{"x": table.NewNumericValue(1), "y": table.NewNumericValue(10)},
			{"x": table.NewNumericValue(2), "y": table.NewNumericValue(20)},
		},
	)
	result := Run(tbl, chart.Spec{Type: chart.TypeScatter, X: "x", Y: "y"})

	if !reflect.DeepEqual(result.Labels, []string{"1", "2"}) {
		t.Errorf("Labels = %v", result.Labels)
	}
	if !reflect.DeepEqual(result.Values, []float64{10, 20}) {
		t.Errorf("Values = %v", result.Values)
	}
}

func TestRunSingleStat(t *testing.T) {
	tbl := makeTable(
		[]table.Column{{Name: "revenue", Kind: table.KindNumeric}},
		[]table.Row{
			{"revenue": table.NewNumericValue(10)},
			{"revenue": table.NewNumericValue(30)},
		},
	)
	result := Run(tbl, chart.Spec{Type: chart.TypeSingleStat, Y: "revenue", Aggregation: chart.AggMean})

	if result.Value == nil {
		t.Fatal("expected a scalar value")
	}
	if *result.Value != 20 {
		t.Errorf("Value = %v, expected 20", *result.Value)
	}
	if len(result.Labels) != 0 || len(result.Values) != 0 {
		t.Errorf("single stat should carry no series, got %v / %v", result.Labels, result.Values)
	}
}

func TestRunEmptyDegradation(t *testing.T) {
	empty := makeTable([]table.Column{{Name: "a", Kind: table.KindText}}, nil)
	tests := []struct {
		name string
		tbl  *table.Table
		spec chart.Spec
	}{
		{"empty table", empty, chart.Spec{Type: chart.TypeBar, X: "a"}},
		{"missing column", salesTable(), chart.Spec{Type: chart.TypeBar, X: "nope"}},
		{"unknown type", salesTable(), chart.Spec{Type: chart.ChartType("sparkline"), X: "region"}},
		{"no numeric rows", makeTable(
			[]table.Column{{Name: "price", Kind: table.KindText}},
			[]table.Row{{"price": table.NewStringValue("n/a")}},
		), chart.Spec{Type: chart.TypeHistogram, X: "price"}},
	}

	for _, test := range tests {
		result := Run(test.tbl, test.spec)
		if len(result.Labels) != 0 || len(result.Values) != 0 || result.Value != nil {
			t.Errorf("%s: expected empty result, got %+v", test.name, result)
		}
		if result.Labels == nil || result.Values == nil || result.RawTable == nil {
			t.Errorf("%s: empty result slices must be non-nil for JSON", test.name)
		}
	}
}

func TestRunIdempotent(t *testing.T) {
	spec := chart.Spec{Type: chart.TypeBar, X: "region", Y: "revenue", Aggregation: chart.AggSum}
	first := Run(salesTable(), spec)
	for i := 0; i < 20; i++ {
		if got := Run(salesTable(), spec); !reflect.DeepEqual(got, first) {
			t.Fatalf("aggregation is not deterministic: %+v then %+v", first, got)
		}
	}
}

func TestRunRawTableCap(t *testing.T) {
	rows := make([]table.Row, 120)
	for i := range rows {
		rows[i] = table.Row{
			"region":  table.NewStringValue("A"),
			"revenue": table.NewNumericValue(float64(i)),
		}
	}
	tbl := makeTable(
		[]table.Column{
			{Name: "region", Kind: table.KindCategorical},
			{Name: "revenue", Kind: table.KindNumeric},
		},
		rows,
	)
	result := Run(tbl, chart.Spec{Type: chart.TypeBar, X: "region", Y: "revenue", Aggregation: chart.AggSum})
	if len(result.RawTable) != 50 {
		t.Errorf("RawTable rows = %d, expected cap of 50", len(result.RawTable))
	}
}

// The generated sales table carries "$1234.56" revenue strings, so grouping
// it exercises the full inference-plus-coercion path end to end
func TestRunBarOnGeneratedSales(t *testing.T) {
	tbl := testkit.NewSalesDataGenerator(testkit.DefaultSalesConfig()).GenerateTable()

	result := Run(tbl, chart.Spec{
		Type: chart.TypeBar, X: "region", Y: "revenue", Aggregation: chart.AggSum,
	})

	if !reflect.DeepEqual(result.Labels, []string{"East", "North", "South", "West"}) {
		t.Fatalf("Labels = %v, expected the four regions key-ascending", result.Labels)
	}
	groupTotal := 0.0
	for _, v := range result.Values {
		if v <= 0 {
			t.Errorf("region total %v should be positive", v)
		}
		groupTotal += v
	}
	if len(result.RawTable) != 50 {
		t.Errorf("RawTable rows = %d, expected cap of 50", len(result.RawTable))
	}

	// Grouped totals must add up to the ungrouped total of the same column
	single := Run(tbl, chart.Spec{Type: chart.TypeSingleStat, Y: "revenue", Aggregation: chart.AggSum})
	if single.Value == nil {
		t.Fatal("expected a scalar total")
	}
	if math.Abs(groupTotal-*single.Value) > 1e-6 {
		t.Errorf("group totals sum to %v, single stat says %v", groupTotal, *single.Value)
	}
}

func TestRunLineOnGeneratedSales(t *testing.T) {
	tbl := testkit.NewSalesDataGenerator(testkit.DefaultSalesConfig()).GenerateTable()

	result := Run(tbl, chart.Spec{
		Type: chart.TypeLine, X: "date", Y: "revenue", Aggregation: chart.AggSum,
	})

	// January through June spans well past 60 days, so buckets are monthly
	if len(result.Labels) != 6 {
		t.Fatalf("got %d buckets, expected 6 monthly buckets: %v", len(result.Labels), result.Labels)
	}
	if result.Labels[0] != "2024-01" || result.Labels[5] != "2024-06" {
		t.Errorf("bucket range = [%s .. %s]", result.Labels[0], result.Labels[5])
	}
	if len(result.Labels) != len(result.Values) {
		t.Errorf("labels/values length mismatch: %d vs %d", len(result.Labels), len(result.Values))
	}
}

func TestResultMarshalJSONSanitizesNonFinite(t *testing.T) {
	nan := math.NaN()
	result := Result{
		Labels:   []string{"a", "b"},
		Values:   []float64{1, math.Inf(1)},
		RawTable: []map[string]interface{}{},
		Value:    &nan,
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	values := decoded["values"].([]interface{})
	if values[1] != nil {
		t.Errorf("expected Inf to serialize as null, got %v", values[1])
	}
}
