package testkit

import (
	"fmt"
	"math/rand"
	"time"

	"datalens/domain/table"
	"datalens/internal/profiling"
)

// SalesGeneratorConfig configures the synthetic sales data generator
type SalesGeneratorConfig struct {
	RowCount  int       `json:"row_count"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Seed      int64     `json:"seed"`
}

// DefaultSalesConfig returns sensible defaults for sales data generation
func DefaultSalesConfig() SalesGeneratorConfig {
	return SalesGeneratorConfig{
		RowCount:  200,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Seed:      42,
	}
}

// SalesDataGenerator generates a deterministic synthetic sales dataset with
// a date column, categorical columns, and messy numeric text (currency
// prefixes, grouping commas) so coercion paths get exercised.
type SalesDataGenerator struct {
	config SalesGeneratorConfig
	rng    *rand.Rand
}

// NewSalesDataGenerator creates a new sales data generator
func NewSalesDataGenerator(config SalesGeneratorConfig) *SalesDataGenerator {
	return &SalesDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var (
	salesHeaders = []string{"date", "region", "product", "revenue", "units"}
	regions      = []string{"North", "South", "East", "West"}
	products     = []string{"Widget", "Gadget", "Gizmo"}
)

// GenerateRecords produces headers plus raw string records, the same shape a
// CSV loader would hand to the profiler
func (g *SalesDataGenerator) GenerateRecords() ([]string, [][]string) {
	span := g.config.EndDate.Sub(g.config.StartDate)
	records := make([][]string, 0, g.config.RowCount)

	for i := 0; i < g.config.RowCount; i++ {
		at := g.config.StartDate.Add(time.Duration(g.rng.Int63n(int64(span))))
		revenue := 100 + g.rng.Float64()*9900
		units := 1 + g.rng.Intn(50)

		records = append(records, []string{
			at.Format("2006-01-02"),
			regions[g.rng.Intn(len(regions))],
			products[g.rng.Intn(len(products))],
			fmt.Sprintf("$%.2f", revenue),
			fmt.Sprintf("%d", units),
		})
	}
	return salesHeaders, records
}

// GenerateTable produces a fully typed table via the standard inference path
func (g *SalesDataGenerator) GenerateTable() *table.Table {
	headers, records := g.GenerateRecords()
	return profiling.BuildTable(headers, records, profiling.DefaultConfig())
}
