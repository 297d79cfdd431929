package app

import (
	"context"

	"datalens/domain/chart"
	"datalens/domain/core"
	"datalens/domain/reasoning"
	"datalens/internal/aggregate"
	"datalens/internal/session"
)

// InsightService answers free-text analytics questions against stored
// datasets: the reasoning path produces decision records, the visualization
// path produces chart specs plus aggregated series. The two paths share no
// mutable state.
type InsightService struct {
	datasets *DatasetService
	memory   *session.Memory
}

// NewInsightService creates a new insight service
func NewInsightService(datasets *DatasetService, memory *session.Memory) *InsightService {
	return &InsightService{datasets: datasets, memory: memory}
}

// Answer routes a query through the reasoning engine and records the
// conversation turn. A clarification question is recorded as the bot reply so
// follow-ups can see it.
func (s *InsightService) Answer(ctx context.Context, userID string, datasetID core.ID, query string) (reasoning.DecisionRecord, error) {
	t, err := s.datasets.LoadTable(ctx, datasetID)
	if err != nil {
		return reasoning.DecisionRecord{}, err
	}

	s.memory.Add(userID, "user", query)
	record := reasoning.Route(query, t.Rows())

	switch record.Status {
	case reasoning.StatusClarificationRequired:
		s.memory.Add(userID, "bot", record.Question)
	case reasoning.StatusReady:
		s.memory.Add(userID, "bot", "operation: "+record.Operation)
	default:
		s.memory.Add(userID, "bot", record.Message)
	}
	return record, nil
}

// Chart selects a chart specification for the query and aggregates the
// dataset into a chart-ready series
func (s *InsightService) Chart(ctx context.Context, datasetID core.ID, query string, bins int) (chart.Spec, aggregate.Result, error) {
	t, err := s.datasets.LoadTable(ctx, datasetID)
	if err != nil {
		return chart.Spec{}, aggregate.Result{}, err
	}

	spec := chart.SelectSpec(t.Schema(), query)
	if bins > 0 {
		spec.Options.Bins = bins
	}
	return spec, aggregate.Run(t, spec), nil
}

// History returns the recent conversation for a user
func (s *InsightService) History(userID string) []session.Message {
	return s.memory.Messages(userID)
}
