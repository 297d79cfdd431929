package reasoning

import (
	"testing"

	"datalens/domain/table"
)

func score(t *testing.T, row table.Row) float64 {
	t.Helper()
	s, ok := row[ScoreField].Numeric()
	if !ok {
		t.Fatalf("row missing %s field: %+v", ScoreField, row)
	}
	return s
}

func TestScoreRowsSumsNumericFields(t *testing.T) {
	rows := []table.Row{
		{"a": table.NewNumericValue(1), "b": table.NewNumericValue(2), "name": table.NewStringValue("x")},
		{"a": table.NewNumericValue(7), "name": table.NewStringValue("y")},
	}

	scored := ScoreRows(rows, Constraints{})
	if len(scored) != 2 {
		t.Fatalf("expected 2 scored rows, got %d", len(scored))
	}
	if got := score(t, scored[0]); got != 7.0 {
		t.Errorf("top score = %v, expected 7.0", got)
	}
	if got := score(t, scored[1]); got != 3.0 {
		t.Errorf("second score = %v, expected 3.0", got)
	}
}

func TestScoreRowsDescendingOrder(t *testing.T) {
	rows := []table.Row{
		{"v": table.NewNumericValue(1)},
		{"v": table.NewNumericValue(5)},
		{"v": table.NewNumericValue(3)},
	}

	scored := ScoreRows(rows, Constraints{})
	expected := []float64{5, 3, 1}
	for i, want := range expected {
		if got := score(t, scored[i]); got != want {
			t.Errorf("scored[%d] = %v, expected %v", i, got, want)
		}
	}
}

func TestScoreRowsIgnoresNonNumericAndMissing(t *testing.T) {
	rows := []table.Row{
		{
			"price":   table.NewNumericValue(2.0),
			"area":    table.NewNumericValue(3.0),
			"city":    table.NewStringValue("pune"),
			"listed":  table.NewBooleanValue(true),
			"remarks": table.NewMissingValue(),
		},
	}

	scored := ScoreRows(rows, Constraints{})
	if got := score(t, scored[0]); got != 5.0 {
		t.Errorf("score = %v, expected 5.0 (strings, booleans and missing ignored)", got)
	}
}

func TestScoreRowsRoundsToTwoDecimals(t *testing.T) {
	rows := []table.Row{
		{"a": table.NewNumericValue(1.005), "b": table.NewNumericValue(2.001)},
	}
	scored := ScoreRows(rows, Constraints{})
	if got := score(t, scored[0]); got != 3.01 {
		t.Errorf("score = %v, expected 3.01", got)
	}
}

func TestScoreRowsStableForTies(t *testing.T) {
	rows := []table.Row{
		{"v": table.NewNumericValue(2), "tag": table.NewStringValue("first")},
		{"v": table.NewNumericValue(2), "tag": table.NewStringValue("second")},
	}

	scored := ScoreRows(rows, Constraints{})
	if got := *scored[0]["tag"].StringVal; got != "first" {
		t.Errorf("tie broke input order: got %q first", got)
	}
}

func TestScoreRowsDoesNotMutateInput(t *testing.T) {
	rows := []table.Row{
		{"v": table.NewNumericValue(1)},
	}
	ScoreRows(rows, Constraints{})
	if _, ok := rows[0][ScoreField]; ok {
		t.Error("input row was mutated with a score field")
	}
}

func TestScoreRowsEmpty(t *testing.T) {
	scored := ScoreRows(nil, Constraints{})
	if len(scored) != 0 {
		t.Errorf("expected empty result, got %d rows", len(scored))
	}
}
