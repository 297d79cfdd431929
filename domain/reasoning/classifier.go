package reasoning

import "strings"

// keywordRule binds a decision type to the keywords that signal it
type keywordRule struct {
	decision DecisionType
	keywords []string
}

// classificationRules is evaluated in order; the first rule with a matching
// keyword wins. The ordering is a deliberate tie-break: a query containing
// both "total" and "compare" classifies as aggregation.
var classificationRules = []keywordRule{
	{DecisionAggregation, []string{
		"total", "sum", "average", "avg", "mean", "count",
		"maximum", "minimum", "max", "min",
	}},
	{DecisionRanking, []string{
		"best", "top", "highest", "lowest", "most", "least",
	}},
	{DecisionFiltering, []string{
		"within", "under", "below", "above", "between", "less than", "greater than",
	}},
	{DecisionComparison, []string{
		"compare", "vs", "versus", "difference", "better than",
	}},
	{DecisionPrediction, []string{
		"future", "predict", "estimate", "will", "forecast",
	}},
}

// Classify assigns a decision type to a query by exact keyword containment.
// Deterministic and dataset-agnostic; empty queries classify as unknown.
func Classify(query string) DecisionType {
	if query == "" {
		return DecisionUnknown
	}

	q := strings.ToLower(query)

	for _, rule := range classificationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.decision
			}
		}
	}

	return DecisionUnknown
}
