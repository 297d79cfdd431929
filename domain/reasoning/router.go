package reasoning

import "datalens/domain/table"

// rankingResultLimit caps how many scored rows a ranking decision returns
const rankingResultLimit = 5

// operationFor maps a decision type to the operation the caller should run
var operationFor = map[DecisionType]string{
	DecisionAggregation: "aggregate",
	DecisionFiltering:   "filter",
	DecisionRanking:     "rank",
	DecisionComparison:  "compare",
	DecisionPrediction:  "predict",
}

// Route is the central reasoning entry point: it classifies the query,
// extracts constraints, applies the clarification gate, and produces exactly
// one DecisionRecord. Ranking decisions are resolved immediately through the
// scoring engine; every other ready decision carries its constraints for the
// caller to execute.
func Route(query string, rows []table.Row) DecisionRecord {
	decisionType := Classify(query)
	constraints := ExtractConstraints(query)

	if question, ok := NeedsClarification(decisionType, constraints); ok {
		return DecisionRecord{
			Status:       StatusClarificationRequired,
			DecisionType: decisionType,
			Question:     question,
		}
	}

	if decisionType == DecisionRanking {
		scored := ScoreRows(rows, constraints)
		if len(scored) > rankingResultLimit {
			scored = scored[:rankingResultLimit]
		}
		return DecisionRecord{
			Status:       StatusReady,
			DecisionType: decisionType,
			Operation:    operationFor[decisionType],
			Results:      scored,
		}
	}

	if op, ok := operationFor[decisionType]; ok {
		return DecisionRecord{
			Status:       StatusReady,
			DecisionType: decisionType,
			Operation:    op,
			Constraints:  constraints,
		}
	}

	return DecisionRecord{
		Status:       StatusUnknown,
		DecisionType: decisionType,
		Message:      "Unable to reason about this query deterministically.",
	}
}
