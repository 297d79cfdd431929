package profiling

import (
	"testing"

	"datalens/domain/table"
)

func TestTryParseNumeric(t *testing.T) {
	tests := []struct {
		raw      string
		expected float64
		ok       bool
	}{
		{"123", 123, true},
		{"1,234.56", 1234.56, true},
		{"$5,000", 5000, true},
		{"₹1,500", 1500, true},
		{"45%", 45, true},
		{"(250)", -250, true},
		{"1 234,56", 1234.56, true},
		{"", 0, false},
		{"abc", 0, false},
	}

	for _, test := range tests {
		got, ok := tryParseNumeric(test.raw)
		if ok != test.ok || (ok && got != test.expected) {
			t.Errorf("tryParseNumeric(%q) = (%v, %v), expected (%v, %v)",
				test.raw, got, ok, test.expected, test.ok)
		}
	}
}

func TestTryParseBoolean(t *testing.T) {
	trueVals := []string{"true", "TRUE", "yes", "Y", "on"}
	falseVals := []string{"false", "no", "n", "OFF"}

	for _, raw := range trueVals {
		if b, ok := tryParseBoolean(raw); !ok || !b {
			t.Errorf("tryParseBoolean(%q) = (%v, %v), expected (true, true)", raw, b, ok)
		}
	}
	for _, raw := range falseVals {
		if b, ok := tryParseBoolean(raw); !ok || b {
			t.Errorf("tryParseBoolean(%q) = (%v, %v), expected (false, true)", raw, b, ok)
		}
	}
	if _, ok := tryParseBoolean("maybe"); ok {
		t.Error("expected 'maybe' to fail boolean parsing")
	}
}

func TestInferColumnKind(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name     string
		values   []string
		expected table.ColumnKind
	}{
		{"numeric", []string{"1", "2.5", "$3,000", "4"}, table.KindNumeric},
		{"mostly numeric", []string{"1", "2", "3", "4", "n/a"}, table.KindNumeric},
		{"dates", []string{"2024-01-01", "2024-02-15", "2024-03-30"}, table.KindDate},
		{"booleans", []string{"yes", "no", "yes"}, table.KindBoolean},
		{"categorical", []string{"north", "south", "north", "east"}, table.KindCategorical},
		{"all empty", []string{"", "", ""}, table.KindText},
	}

	for _, test := range tests {
		got := inferColumnKind(test.values, cfg)
		if got != test.expected {
			t.Errorf("%s: inferColumnKind = %s, expected %s", test.name, got, test.expected)
		}
	}
}

func TestInferColumnKindHighCardinalityText(t *testing.T) {
	cfg := DefaultConfig()
	values := make([]string, 100)
	for i := range values {
		values[i] = "description of item number " + string(rune('a'+i%26)) + string(rune('a'+i/26))
	}
	if got := inferColumnKind(values, cfg); got != table.KindText {
		t.Errorf("expected text for high-cardinality strings, got %s", got)
	}
}

func TestBuildTable(t *testing.T) {
	headers := []string{"date", "region", "revenue"}
	records := [][]string{
		{"2024-01-01", "north", "$1,000"},
		{"2024-01-02", "south", "250"},
		{"2024-01-03", "north"}, // short row pads as missing
	}

	tbl := BuildTable(headers, records, DefaultConfig())

	if tbl.Len() != 3 {
		t.Fatalf("Len = %d, expected 3", tbl.Len())
	}
	schema := tbl.Schema()
	if schema.Kind("date") != table.KindDate {
		t.Errorf("date kind = %s", schema.Kind("date"))
	}
	if schema.Kind("region") != table.KindCategorical {
		t.Errorf("region kind = %s", schema.Kind("region"))
	}
	if schema.Kind("revenue") != table.KindNumeric {
		t.Errorf("revenue kind = %s", schema.Kind("revenue"))
	}

	if n, ok := tbl.Value(0, "revenue").Numeric(); !ok || n != 1000 {
		t.Errorf("revenue[0] = (%v, %v), expected 1000", n, ok)
	}
	if !tbl.Value(2, "revenue").IsMissing {
		t.Error("short row should pad revenue as missing")
	}
}
