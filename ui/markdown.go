package ui

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"peoplelens/domain/employee"
	"peoplelens/domain/insight"
)

// InsightWriter composes the narrative panel from a computed snapshot. The
// text is authored as Markdown and rendered to HTML once per request; only
// figures that are actually defined make it into the text.
type InsightWriter struct{}

// NewInsightWriter creates an insight writer.
func NewInsightWriter() *InsightWriter {
	return &InsightWriter{}
}

// Compose builds the Markdown source for one snapshot.
func (w *InsightWriter) Compose(snapshot *insight.Snapshot, report insight.ModelReport) string {
	var b strings.Builder
	b.WriteString("### What stands out\n\n")

	if !snapshot.KPIs.HasData() {
		b.WriteString("No employees match the current selection. Pick at least one department to see insights.\n")
		return b.String()
	}

	if snapshot.KPIs.AttritionRate.Defined {
		fmt.Fprintf(&b, "- **%.1f%%** of the %d selected employees have left the company.\n",
			snapshot.KPIs.AttritionRate.Value, snapshot.KPIs.Headcount)
	}

	if line, ok := w.departmentLine(snapshot); ok {
		b.WriteString(line)
	}
	if line, ok := w.tenureLine(snapshot); ok {
		b.WriteString(line)
	}
	b.WriteString(w.ttestLine(snapshot.TTest))
	if line, ok := w.riskLine(snapshot.Risk); ok {
		b.WriteString(line)
	}

	if top := report.TopFeature(); top != "" {
		fmt.Fprintf(&b, "- The attrition model weighs **%s** heaviest among its %d inputs.\n",
			top, len(report.Features))
	}

	return b.String()
}

// Render composes the insight text and converts it to HTML.
func (w *InsightWriter) Render(snapshot *insight.Snapshot, report insight.ModelReport) template.HTML {
	source := w.Compose(snapshot, report)

	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(source))
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})

	return template.HTML(markdown.Render(doc, renderer))
}

func (w *InsightWriter) departmentLine(snapshot *insight.Snapshot) (string, bool) {
	set, ok := snapshot.GroupsFor(employee.DimDepartment.String())
	if !ok || len(set.Groups) < 2 {
		return "", false
	}

	top := set.Groups[0]
	for _, g := range set.Groups[1:] {
		if g.Rate > top.Rate {
			top = g
		}
	}
	return fmt.Sprintf("- Attrition is highest in **%s** at %.1f%% (%d of %d employees).\n",
		top.Key, top.Rate, top.Attrition, top.Count), true
}

func (w *InsightWriter) tenureLine(snapshot *insight.Snapshot) (string, bool) {
	set, ok := snapshot.GroupsFor(employee.DimTenureGroup.String())
	if !ok {
		return "", false
	}
	overall := snapshot.KPIs.AttritionRate
	if !overall.Defined {
		return "", false
	}

	for _, g := range set.Groups {
		if g.Key == "0-2" && g.Rate > overall.Value {
			return fmt.Sprintf("- Employees in their first two years leave at %.1f%%, %.1f points above the overall rate.\n",
				g.Rate, g.Rate-overall.Value), true
		}
	}
	return "", false
}

func (w *InsightWriter) ttestLine(result insight.TTestResult) string {
	if !result.Computed() {
		return "- Not enough data to compare job satisfaction between leavers and stayers.\n"
	}

	p := fmt.Sprintf("p = %.3f", result.PValue)
	if result.PValue < 0.001 {
		p = "p < 0.001"
	}

	if result.Significant && result.MeanGap() > 0 {
		return fmt.Sprintf("- Employees who left report lower job satisfaction than those who stayed (%.2f vs %.2f, %s).\n",
			result.MeanLeft, result.MeanStayed, p)
	}
	if result.Significant {
		return fmt.Sprintf("- Job satisfaction differs between leavers and stayers (%.2f vs %.2f, %s).\n",
			result.MeanLeft, result.MeanStayed, p)
	}
	return fmt.Sprintf("- The satisfaction gap between leavers and stayers is not statistically significant (%s).\n", p)
}

func (w *InsightWriter) riskLine(risk insight.RiskSummary) (string, bool) {
	if !risk.HasSegment() || !risk.Share.Defined {
		return "", false
	}
	if risk.Elevated() {
		return fmt.Sprintf("- %d employees (%.1f%%) match the early-risk profile; their attrition rate runs %.1f points above baseline.\n",
			risk.Count, risk.Share.Value, risk.Delta.Value), true
	}
	return fmt.Sprintf("- %d employees (%.1f%%) match the early-risk profile.\n",
		risk.Count, risk.Share.Value), true
}
