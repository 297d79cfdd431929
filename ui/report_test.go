package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"datalens/domain/dataset"
)

func reportFixture() *dataset.Dataset {
	ds := dataset.NewDataset("sales.csv")
	ds.Status = dataset.StatusReady
	ds.RecordCount = 200
	ds.FieldCount = 3
	ds.MissingRate = 0.05
	ds.Metadata = dataset.DatasetMetadata{
		Fields: []dataset.FieldInfo{
			{Name: "region", Kind: "categorical", UniqueCount: 4},
			{Name: "revenue", Kind: "numeric", UniqueCount: 180, Statistics: map[string]float64{
				"mean": 1250.5, "std_dev": 300.2, "min": 10, "median": 1200, "max": 4000,
			}},
		},
	}
	return ds
}

func TestBuildReport(t *testing.T) {
	md := BuildReport(reportFixture())

	assert.Contains(t, md, "# Dataset Report: sales.csv")
	assert.Contains(t, md, "**Rows**: 200")
	assert.Contains(t, md, "| region | categorical | 4 | 0 |")
	assert.Contains(t, md, "### revenue")
	assert.Contains(t, md, "mean: 1250")
	assert.NotContains(t, md, "### region", "columns without stats get no detail section")
}

func TestRenderReportHTML(t *testing.T) {
	html := string(RenderReportHTML(reportFixture()))

	assert.True(t, strings.Contains(html, "<h1"), "expected an h1 heading")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "revenue")
}
