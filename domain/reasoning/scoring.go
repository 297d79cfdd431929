package reasoning

import (
	"math"
	"sort"

	"datalens/domain/table"
)

// ScoreField is the column added to each ranked row
const ScoreField = "_score"

// ScoreRows scores and ranks rows for ranking decisions. The score of a row
// is the sum of all its numeric-valued fields; non-numeric fields are
// ignored and missing values contribute zero. Rows are returned as copies
// with a ScoreField added, sorted descending by score with ties keeping
// their input order.
//
// The constraints argument is accepted but not yet used to weight or filter
// dimensions; scoring currently sums every numeric field uniformly.
func ScoreRows(rows []table.Row, constraints Constraints) []table.Row {
	_ = constraints

	if len(rows) == 0 {
		return []table.Row{}
	}

	scored := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		score := 0.0
		for _, v := range row {
			if n, ok := v.Numeric(); ok {
				score += n
			}
		}

		out := row.Clone()
		out[ScoreField] = table.NewNumericValue(roundTo2(score))
		scored = append(scored, out)
	}

	// Stable sort keeps input order for equal scores
	sort.SliceStable(scored, func(i, j int) bool {
		si, _ := scored[i][ScoreField].Numeric()
		sj, _ := scored[j][ScoreField].Numeric()
		return si > sj
	})

	return scored
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
