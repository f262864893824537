package app

import (
	"errors"

	"peoplelens/domain/core"
	"peoplelens/domain/employee"
	"peoplelens/domain/insight"
	"peoplelens/internal/analysis"
)

// Engine runs the analytics pass over the loaded dataset. It is stateless
// beyond the immutable dataset reference: every public method recomputes its
// result from the given view, so concurrent requests need no locking.
type Engine struct {
	dataset *employee.Dataset
}

// NewEngine creates an analytics engine over a loaded dataset.
func NewEngine(dataset *employee.Dataset) *Engine {
	return &Engine{dataset: dataset}
}

// Dataset exposes the engine's backing dataset for info endpoints.
func (e *Engine) Dataset() *employee.Dataset {
	return e.dataset
}

// Departments lists the selectable department values in first-seen order.
func (e *Engine) Departments() []string {
	return e.dataset.Departments()
}

// Filter derives the view for a department selection. An empty selection
// yields an empty view, which downstream metrics report as "no data".
func (e *Engine) Filter(departments []string) employee.View {
	return e.dataset.FilterByDepartments(departments)
}

// KPIs computes the four headline figures over a view.
func (e *Engine) KPIs(view employee.View) insight.KPISet {
	kpis := insight.KPISet{Headcount: view.Len()}
	if view.IsEmpty() {
		kpis.AttritionRate = insight.UndefinedMetric()
		kpis.AvgTenure = insight.UndefinedMetric()
		kpis.AvgSatisfaction = insight.UndefinedMetric()
		return kpis
	}

	kpis.AttritionRate = attritionRate(view)

	if mean, ok := analysis.Mean(view.Measure(func(r employee.Record) float64 {
		return float64(r.YearsAtCompany)
	})); ok {
		kpis.AvgTenure = insight.DefinedMetric(mean)
	}
	if mean, ok := analysis.Mean(view.Measure(func(r employee.Record) float64 {
		return float64(r.JobSatisfaction)
	})); ok {
		kpis.AvgSatisfaction = insight.DefinedMetric(mean)
	}
	return kpis
}

// GroupedRates computes the attrition rate per distinct value of a
// dimension. Groups appear in first-seen row order; job-role output is
// additionally sorted highest-rate first. Values absent from the view never
// produce groups.
func (e *Engine) GroupedRates(view employee.View, dim employee.Dimension) insight.GroupSet {
	keys, groups := view.GroupBy(dim)

	set := insight.GroupSet{Dimension: dim, Groups: make([]insight.GroupRate, 0, len(keys))}
	for _, key := range keys {
		g := groups[key]
		left := g.CountWhere(func(r employee.Record) bool { return r.Left() })
		set.Groups = append(set.Groups, insight.GroupRate{
			Key:       key,
			Count:     g.Len(),
			Attrition: left,
			Rate:      100 * float64(left) / float64(g.Len()),
		})
	}

	if dim.SortedByRate() {
		set.SortByRateDesc()
	}
	return set
}

// AllGroupedRates runs GroupedRates for every supported dimension.
func (e *Engine) AllGroupedRates(view employee.View) []insight.GroupSet {
	sets := make([]insight.GroupSet, 0, len(employee.Dimensions()))
	for _, dim := range employee.Dimensions() {
		sets = append(sets, e.GroupedRates(view, dim))
	}
	return sets
}

// SatisfactionTTest compares JobSatisfaction between employees who stayed
// and employees who left. When either side of the split is empty the test is
// skipped and the not-enough-data state is returned instead.
func (e *Engine) SatisfactionTTest(view employee.View) insight.TTestResult {
	stayed := view.Where(func(r employee.Record) bool { return !r.Left() }).
		Measure(func(r employee.Record) float64 { return float64(r.JobSatisfaction) })
	left := view.Where(func(r employee.Record) bool { return r.Left() }).
		Measure(func(r employee.Record) float64 { return float64(r.JobSatisfaction) })

	out, err := analysis.StudentTTest(stayed, left)
	if err != nil {
		if errors.Is(err, core.ErrNotEnoughData) {
			return insight.TTestResult{
				State:   insight.TTestNotEnoughData,
				NStayed: len(stayed),
				NLeft:   len(left),
			}
		}
		return insight.TTestResult{State: insight.TTestNotEnoughData}
	}

	return insight.TTestResult{
		State:       insight.TTestComputed,
		TStatistic:  out.T,
		PValue:      out.P,
		DF:          out.DF,
		MeanStayed:  out.Mean1,
		MeanLeft:    out.Mean2,
		NStayed:     out.N1,
		NLeft:       out.N2,
		Significant: out.P < 0.05,
	}
}

// RiskSummary sizes the high-risk segment of a view and compares its
// attrition against the view as a whole.
func (e *Engine) RiskSummary(view employee.View) insight.RiskSummary {
	segment := view.Where(func(r employee.Record) bool { return r.HighRisk() })

	summary := insight.RiskSummary{
		Count:        segment.Len(),
		Share:        insight.UndefinedMetric(),
		SegmentRate:  insight.UndefinedMetric(),
		BaselineRate: insight.UndefinedMetric(),
		Delta:        insight.UndefinedMetric(),
	}
	if view.IsEmpty() {
		return summary
	}

	summary.Share = insight.DefinedMetric(100 * float64(segment.Len()) / float64(view.Len()))
	baseline := attritionRate(view)
	summary.BaselineRate = baseline

	if segment.IsEmpty() {
		return summary
	}

	segmentRate := attritionRate(segment)
	summary.SegmentRate = segmentRate
	if baseline.Defined && segmentRate.Defined {
		summary.Delta = insight.DefinedMetric(segmentRate.Value - baseline.Value)
	}
	return summary
}

// Snapshot runs the full recomputation pass for one filter selection:
// filtering, KPIs, grouped rates for every dimension, the significance test,
// and the risk segment. This is the unit of work behind each dashboard
// interaction.
func (e *Engine) Snapshot(departments []string) *insight.Snapshot {
	snapshot := insight.NewSnapshot(departments)

	view := e.Filter(departments)
	snapshot.KPIs = e.KPIs(view)
	snapshot.Groups = e.AllGroupedRates(view)
	snapshot.TTest = e.SatisfactionTTest(view)
	snapshot.Risk = e.RiskSummary(view)
	return snapshot
}

// attritionRate computes 100 * leavers / headcount as an explicit metric.
func attritionRate(view employee.View) insight.Metric {
	if view.IsEmpty() {
		return insight.UndefinedMetric()
	}
	left := view.CountWhere(func(r employee.Record) bool { return r.Left() })
	return insight.DefinedMetric(100 * float64(left) / float64(view.Len()))
}
