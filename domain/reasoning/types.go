package reasoning

import "datalens/domain/table"

// DecisionType is the coarse intent category assigned to a query
type DecisionType string

const (
	DecisionAggregation DecisionType = "aggregation"
	DecisionRanking     DecisionType = "ranking"
	DecisionFiltering   DecisionType = "filtering"
	DecisionComparison  DecisionType = "comparison"
	DecisionPrediction  DecisionType = "prediction"
	DecisionUnknown     DecisionType = "unknown"
)

// ConstraintKind identifies the kind of a structured constraint
type ConstraintKind string

const (
	ConstraintDistance  ConstraintKind = "distance"
	ConstraintValue     ConstraintKind = "value_constraint"
	ConstraintRange     ConstraintKind = "range"
	ConstraintRecurring ConstraintKind = "recurring"
)

// Constraint is one structured numeric condition extracted from free text.
// The populated fields depend on the kind: operator/value(/unit) for distance
// and value bounds, min/max for ranges, amount/frequency for recurring values.
type Constraint struct {
	Operator  string  `json:"operator,omitempty"`
	Value     float64 `json:"value,omitempty"`
	Unit      string  `json:"unit,omitempty"`
	Min       float64 `json:"min,omitempty"`
	Max       float64 `json:"max,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	Frequency string  `json:"frequency,omitempty"`
}

// Constraints maps constraint kinds to their extracted values.
// Kinds are not mutually exclusive; each kind holds at most one value.
type Constraints map[ConstraintKind]Constraint

// IsEmpty reports whether no constraints were extracted
func (c Constraints) IsEmpty() bool {
	return len(c) == 0
}

// RecordStatus is the variant tag of a DecisionRecord
type RecordStatus string

const (
	StatusClarificationRequired RecordStatus = "clarification_required"
	StatusReady                 RecordStatus = "ready"
	StatusUnknown               RecordStatus = "unknown"
)

// DecisionRecord is the router's terminal output for one query. It is always
// exactly one of three variants: a clarification request carrying a non-empty
// question, a ready decision carrying an operation plus constraints or
// results, or an unknown decision carrying a message.
type DecisionRecord struct {
	Status       RecordStatus `json:"status"`
	DecisionType DecisionType `json:"decision_type"`
	Operation    string       `json:"operation,omitempty"`
	Question     string       `json:"question,omitempty"`
	Message      string       `json:"message,omitempty"`
	Constraints  Constraints  `json:"constraints,omitempty"`
	Results      []table.Row  `json:"results,omitempty"`
}
