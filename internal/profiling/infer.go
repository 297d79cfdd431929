package profiling

import (
	"math"
	"strconv"
	"strings"
	"time"

	"datalens/domain/table"
)

// Config defines the thresholds for column kind inference
type Config struct {
	NumericThreshold     float64 `json:"numeric_threshold"`   // fraction of values that must parse as numbers
	BooleanThreshold     float64 `json:"boolean_threshold"`   // fraction of values that must parse as booleans
	TimestampThreshold   float64 `json:"timestamp_threshold"` // fraction of values that must parse as timestamps
	CategoricalMaxUnique int     `json:"categorical_max_unique"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		NumericThreshold:     0.8,
		BooleanThreshold:     0.9,
		TimestampThreshold:   0.8,
		CategoricalMaxUnique: 50,
	}
}

// timestampFormats are tried in order during cell parsing
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
}

// tryParseNumeric attempts to parse a raw cell as a number. Handles currency
// symbols, percentage signs, parenthesized negatives, and both US and
// European grouping/decimal separators.
func tryParseNumeric(raw string) (float64, bool) {
	cleanVal := strings.TrimSpace(raw)
	if cleanVal == "" {
		return 0, false
	}

	// Parenthesized negatives: (123) -> -123
	isNegative := false
	if strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimSuffix(strings.TrimPrefix(cleanVal, "("), ")")
		isNegative = true
	}

	for _, symbol := range []string{"$", "€", "£", "¥", "₹", "%"} {
		cleanVal = strings.ReplaceAll(cleanVal, symbol, "")
	}
	cleanVal = strings.TrimSpace(cleanVal)

	hasComma := strings.Contains(cleanVal, ",")
	hasPeriod := strings.Contains(cleanVal, ".")
	hasSpace := strings.Contains(cleanVal, " ")

	if hasComma && (hasPeriod || hasSpace) {
		// European/French format when the comma looks like a decimal separator
		commaIdx := strings.LastIndex(cleanVal, ",")
		if len(cleanVal)-commaIdx-1 <= 3 {
			cleanVal = strings.ReplaceAll(cleanVal, ".", "")
			cleanVal = strings.ReplaceAll(cleanVal, " ", "")
			cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
		} else {
			cleanVal = strings.ReplaceAll(cleanVal, ",", "")
		}
	} else {
		cleanVal = strings.ReplaceAll(cleanVal, ",", "")
		cleanVal = strings.ReplaceAll(cleanVal, " ", "")
	}

	if isNegative {
		cleanVal = "-" + cleanVal
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// tryParseBoolean attempts to parse a raw cell as a boolean
func tryParseBoolean(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "y", "on":
		return true, true
	case "false", "no", "n", "off":
		return false, true
	}
	return false, false
}

// tryParseTimestamp attempts to parse a raw cell as a timestamp
func tryParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// inferColumnKind determines a column's kind from its raw values by counting
// how many parse as each type and applying thresholds, most restrictive
// first. Columns below every threshold split into categorical or text by
// unique-value count.
func inferColumnKind(values []string, cfg Config) table.ColumnKind {
	valid := 0
	numericCount, booleanCount, timestampCount := 0, 0, 0
	unique := make(map[string]bool)

	for _, raw := range values {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		valid++
		unique[trimmed] = true
		if _, ok := tryParseNumeric(trimmed); ok {
			numericCount++
		}
		if _, ok := tryParseBoolean(trimmed); ok {
			booleanCount++
		}
		if _, ok := tryParseTimestamp(trimmed); ok {
			timestampCount++
		}
	}

	if valid == 0 {
		return table.KindText
	}

	n := float64(valid)
	if float64(booleanCount)/n >= cfg.BooleanThreshold {
		return table.KindBoolean
	}
	if float64(timestampCount)/n >= cfg.TimestampThreshold {
		return table.KindDate
	}
	if float64(numericCount)/n >= cfg.NumericThreshold {
		return table.KindNumeric
	}
	if len(unique) <= cfg.CategoricalMaxUnique {
		return table.KindCategorical
	}
	return table.KindText
}

// coerceCell converts a raw string cell into a typed value according to the
// column's inferred kind. Values that do not fit the kind become missing.
func coerceCell(raw string, kind table.ColumnKind) table.Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return table.NewMissingValue()
	}

	switch kind {
	case table.KindNumeric:
		if n, ok := tryParseNumeric(trimmed); ok {
			return table.NewNumericValue(n)
		}
		return table.NewMissingValue()
	case table.KindBoolean:
		if b, ok := tryParseBoolean(trimmed); ok {
			return table.NewBooleanValue(b)
		}
		return table.NewMissingValue()
	case table.KindDate:
		if t, ok := tryParseTimestamp(trimmed); ok {
			return table.NewTimestampValue(t)
		}
		return table.NewStringValue(trimmed)
	default:
		return table.NewStringValue(trimmed)
	}
}

// BuildTable infers a schema from raw string records and coerces every cell
// into a typed table. Headers fix the column order; records shorter than the
// header row are padded with missing values.
func BuildTable(headers []string, records [][]string, cfg Config) *table.Table {
	columns := make([]table.Column, len(headers))
	for i, name := range headers {
		colValues := make([]string, 0, len(records))
		for _, rec := range records {
			if i < len(rec) {
				colValues = append(colValues, rec[i])
			}
		}
		columns[i] = table.Column{Name: name, Kind: inferColumnKind(colValues, cfg)}
	}

	rows := make([]table.Row, 0, len(records))
	for _, rec := range records {
		row := make(table.Row, len(headers))
		for i, col := range columns {
			if i < len(rec) {
				row[col.Name] = coerceCell(rec[i], col.Kind)
			} else {
				row[col.Name] = table.NewMissingValue()
			}
		}
		rows = append(rows, row)
	}

	return table.New(table.Schema{Columns: columns}, rows)
}
