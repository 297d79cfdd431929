package reasoning

// clarificationPrompts holds the fixed follow-up question per decision type.
// Aggregation and unknown never ask.
var clarificationPrompts = map[DecisionType]string{
	DecisionRanking: "What should I prioritize for ranking? " +
		"(e.g., lowest price, highest area, closest distance)",
	DecisionFiltering: "Please specify the condition clearly " +
		"(e.g., within 5 km, price under 50 lakhs).",
	DecisionComparison: "What items should be compared?",
	DecisionPrediction: "Please specify the time range for prediction " +
		"(e.g., next 6 months, next year).",
}

// NeedsClarification decides whether the system must ask a follow-up question
// before reasoning. Conservative heuristic: any non-empty constraint set
// suppresses clarification, even when the constraint is irrelevant to the
// decision type.
func NeedsClarification(decisionType DecisionType, constraints Constraints) (string, bool) {
	if !constraints.IsEmpty() {
		return "", false
	}
	prompt, ok := clarificationPrompts[decisionType]
	return prompt, ok
}
