package ui

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"datalens/domain/dataset"
)

// BuildReport renders a markdown profile report for a dataset from its
// stored metadata
func BuildReport(ds *dataset.Dataset) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Dataset Report: %s\n\n", ds.OriginalFilename)
	fmt.Fprintf(&b, "- **Status**: %s\n", ds.Status)
	fmt.Fprintf(&b, "- **Rows**: %d\n", ds.RecordCount)
	fmt.Fprintf(&b, "- **Columns**: %d\n", ds.FieldCount)
	fmt.Fprintf(&b, "- **Missing rate**: %.1f%%\n\n", ds.MissingRate*100)

	if len(ds.Metadata.Fields) > 0 {
		b.WriteString("## Columns\n\n")
		b.WriteString("| Column | Kind | Unique | Missing |\n")
		b.WriteString("|--------|------|--------|--------|\n")
		for _, f := range ds.Metadata.Fields {
			fmt.Fprintf(&b, "| %s | %s | %d | %d |\n", f.Name, f.Kind, f.UniqueCount, f.MissingCount)
		}
		b.WriteString("\n")

		for _, f := range ds.Metadata.Fields {
			if len(f.Statistics) == 0 {
				continue
			}
			fmt.Fprintf(&b, "### %s\n\n", f.Name)
			fmt.Fprintf(&b, "- mean: %.4g\n", f.Statistics["mean"])
			fmt.Fprintf(&b, "- std dev: %.4g\n", f.Statistics["std_dev"])
			fmt.Fprintf(&b, "- min: %.4g\n", f.Statistics["min"])
			fmt.Fprintf(&b, "- median: %.4g\n", f.Statistics["median"])
			fmt.Fprintf(&b, "- max: %.4g\n\n", f.Statistics["max"])
		}
	}

	return b.String()
}

// RenderReportHTML converts the markdown report to HTML for the browser
func RenderReportHTML(ds *dataset.Dataset) []byte {
	md := []byte(BuildReport(ds))

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse(md)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}
