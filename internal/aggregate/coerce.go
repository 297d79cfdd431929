package aggregate

import (
	"math"
	"regexp"
	"strconv"
	"time"

	"datalens/domain/table"
)

// numericNoise matches every character that is not a digit, decimal point,
// or minus sign. Stripping it first lets dirty values like "1,000" or
// "$ 2500" coerce cleanly.
var numericNoise = regexp.MustCompile(`[^0-9.\-]`)

// timeFormats are tried in order when coercing string cells to timestamps
var timeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
	"2006-01",
	"2006",
}

// CoerceNumeric converts a cell to a finite float. Numeric cells pass
// through; boolean cells map to 0/1; string cells are stripped of non-numeric
// noise and parsed. A value that becomes empty or unparsable is missing, and
// the caller drops the row rather than raising.
func CoerceNumeric(v table.Value) (float64, bool) {
	switch {
	case v.IsNumeric():
		n := *v.NumericVal
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case v.IsBoolean():
		if *v.BooleanVal {
			return 1, true
		}
		return 0, true
	case v.IsString():
		cleaned := numericNoise.ReplaceAllString(*v.StringVal, "")
		if cleaned == "" || cleaned == "-" || cleaned == "." {
			return 0, false
		}
		n, err := strconv.ParseFloat(cleaned, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// CoerceTime converts a cell to a timestamp. Timestamp cells pass through;
// string cells are parsed against the known format list. Anything else is
// missing.
func CoerceTime(v table.Value) (time.Time, bool) {
	switch {
	case v.IsTimestamp():
		return *v.TimestampVal, true
	case v.IsString():
		for _, format := range timeFormats {
			if t, err := time.Parse(format, *v.StringVal); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
