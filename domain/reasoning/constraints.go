package reasoning

import (
	"regexp"
	"strconv"
	"strings"
)

// constraintRule is one named, independently testable extraction pattern.
// Rules are applied in order over the lower-cased query; each writes at most
// one constraint. Later rules overwrite earlier ones on the same kind, which
// preserves the greater-than-beats-less-than behavior on value_constraint.
type constraintRule struct {
	name    string
	kind    ConstraintKind
	pattern *regexp.Regexp
	build   func(match []string) Constraint
}

var constraintRules = []constraintRule{
	{
		name:    "distance",
		kind:    ConstraintDistance,
		pattern: regexp.MustCompile(`within\s+(\d+)\s*(km|kilometer|kilometers)`),
		build: func(m []string) Constraint {
			return Constraint{Operator: "<=", Value: parseNumber(m[1]), Unit: "km"}
		},
	},
	{
		name:    "less_than",
		kind:    ConstraintValue,
		pattern: regexp.MustCompile(`(below|under|less than)\s+([\d,]+)`),
		build: func(m []string) Constraint {
			return Constraint{Operator: "<=", Value: parseNumber(m[2])}
		},
	},
	{
		name:    "greater_than",
		kind:    ConstraintValue,
		pattern: regexp.MustCompile(`(above|greater than|more than)\s+([\d,]+)`),
		build: func(m []string) Constraint {
			return Constraint{Operator: ">=", Value: parseNumber(m[2])}
		},
	},
	{
		name:    "range",
		kind:    ConstraintRange,
		pattern: regexp.MustCompile(`between\s+([\d,]+)\s+and\s+([\d,]+)`),
		build: func(m []string) Constraint {
			return Constraint{Min: parseNumber(m[1]), Max: parseNumber(m[2])}
		},
	},
	{
		name:    "recurring",
		kind:    ConstraintRecurring,
		pattern: regexp.MustCompile(`(\d+)\s*(rupees|rs|₹|\$|€|£)?\s*(per|every)\s*(month|year)`),
		build: func(m []string) Constraint {
			return Constraint{Amount: parseNumber(m[1]), Frequency: m[4]}
		},
	},
}

// ExtractConstraints pulls structured numeric constraints out of a natural
// language query. Deterministic, dataset-agnostic, and safe to run before
// any model: unmatched text is never parsed, so malformed numbers outside a
// pattern cannot fail. Absence of every pattern yields an empty map.
func ExtractConstraints(query string) Constraints {
	constraints := make(Constraints)

	if query == "" {
		return constraints
	}

	q := strings.ToLower(query)

	for _, rule := range constraintRules {
		if m := rule.pattern.FindStringSubmatch(q); m != nil {
			constraints[rule.kind] = rule.build(m)
		}
	}

	return constraints
}

// parseNumber converts numeric strings like "1,00,000" to float by stripping
// comma grouping separators. The capture groups guarantee numeric shape, so
// parse failure is impossible for matched text. Period-as-thousands locales
// remain an open risk and are documented rather than handled here.
func parseNumber(s string) float64 {
	n, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return n
}
