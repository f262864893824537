package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peoplelens/domain/insight"
	"peoplelens/internal/testkit"
)

func TestInsightComposeFullDataset(t *testing.T) {
	kit := testkit.NewTestKit()
	bundle, err := kit.Bundle()
	require.NoError(t, err)

	engine := kit.Engine()
	snapshot := engine.Snapshot(engine.Departments())
	text := NewInsightWriter().Compose(snapshot, bundle.Report)

	assert.Contains(t, text, "What stands out")
	assert.Contains(t, text, "selected employees have left the company")
	assert.Contains(t, text, "Attrition is highest in")
	assert.Contains(t, text, "MonthlyIncome")
}

func TestInsightComposeEmptySnapshot(t *testing.T) {
	text := NewInsightWriter().Compose(insight.NewSnapshot(nil), insight.ModelReport{})

	assert.Contains(t, text, "No employees match the current selection")
	assert.NotContains(t, text, "Attrition is highest")
}

func TestInsightRenderProducesHTML(t *testing.T) {
	kit := testkit.NewTestKit()
	bundle, err := kit.Bundle()
	require.NoError(t, err)

	engine := kit.Engine()
	html := string(NewInsightWriter().Render(engine.Snapshot(engine.Departments()), bundle.Report))

	assert.True(t, strings.Contains(html, "<h3"), "expected a heading element")
	assert.Contains(t, html, "<ul>")
	assert.Contains(t, html, "<strong>")
	assert.NotContains(t, html, "- **")
}

func TestTTestNarrativeStates(t *testing.T) {
	writer := NewInsightWriter()

	skipped := writer.ttestLine(insight.TTestResult{State: insight.TTestNotEnoughData})
	assert.Contains(t, skipped, "Not enough data")

	significant := writer.ttestLine(insight.TTestResult{
		State:       insight.TTestComputed,
		MeanStayed:  2.81,
		MeanLeft:    2.32,
		PValue:      0.003,
		Significant: true,
	})
	assert.Contains(t, significant, "lower job satisfaction")
	assert.Contains(t, significant, "p = 0.003")

	tiny := writer.ttestLine(insight.TTestResult{
		State:       insight.TTestComputed,
		MeanStayed:  2.81,
		MeanLeft:    2.12,
		PValue:      0.00004,
		Significant: true,
	})
	assert.Contains(t, tiny, "p < 0.001")

	flat := writer.ttestLine(insight.TTestResult{
		State:      insight.TTestComputed,
		MeanStayed: 2.61,
		MeanLeft:   2.58,
		PValue:     0.41,
	})
	assert.Contains(t, flat, "not statistically significant")
}

func TestRiskNarrative(t *testing.T) {
	writer := NewInsightWriter()

	line, ok := writer.riskLine(insight.RiskSummary{
		Count:        40,
		Share:        insight.DefinedMetric(8.0),
		SegmentRate:  insight.DefinedMetric(31.0),
		BaselineRate: insight.DefinedMetric(16.0),
		Delta:        insight.DefinedMetric(15.0),
	})
	require.True(t, ok)
	assert.Contains(t, line, "40 employees")
	assert.Contains(t, line, "above baseline")

	_, ok = writer.riskLine(insight.RiskSummary{})
	assert.False(t, ok)
}
