package app

import (
	"peoplelens/domain/employee"
	"peoplelens/internal/analysis"
)

// KeyCount is a (category, row count) pair for composition charts.
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// KeyMean is a (category, mean, sample size) triple for comparison charts.
type KeyMean struct {
	Key  string  `json:"key"`
	Mean float64 `json:"mean"`
	N    int     `json:"n"`
}

// OverviewService computes the descriptive figures behind the dataset
// overview panel and its charts. Everything derives from the same filtered
// view the engine uses, so overview and KPIs always agree.
type OverviewService struct {
	engine *Engine
}

// NewOverviewService creates an overview service sharing the engine's dataset.
func NewOverviewService(engine *Engine) *OverviewService {
	return &OverviewService{engine: engine}
}

// DepartmentHeadcounts sizes each department in the view, first-seen order.
func (s *OverviewService) DepartmentHeadcounts(view employee.View) []KeyCount {
	keys, groups := view.GroupBy(employee.DimDepartment)
	out := make([]KeyCount, 0, len(keys))
	for _, key := range keys {
		out = append(out, KeyCount{Key: key, Count: groups[key].Len()})
	}
	return out
}

// AgeHistogram buckets the view's ages into equal-width bins.
func (s *OverviewService) AgeHistogram(view employee.View, bins int) []analysis.HistogramBin {
	ages := view.Measure(func(r employee.Record) float64 { return float64(r.Age) })
	return analysis.Histogram(ages, bins)
}

// SatisfactionByAttrition averages JobSatisfaction for stayers and leavers.
// Sides with no rows are omitted.
func (s *OverviewService) SatisfactionByAttrition(view employee.View) []KeyMean {
	var out []KeyMean

	stayed := view.Where(func(r employee.Record) bool { return !r.Left() })
	if mean, ok := analysis.Mean(stayed.Measure(func(r employee.Record) float64 {
		return float64(r.JobSatisfaction)
	})); ok {
		out = append(out, KeyMean{Key: "Stayed", Mean: mean, N: stayed.Len()})
	}

	left := view.Where(func(r employee.Record) bool { return r.Left() })
	if mean, ok := analysis.Mean(left.Measure(func(r employee.Record) float64 {
		return float64(r.JobSatisfaction)
	})); ok {
		out = append(out, KeyMean{Key: "Left", Mean: mean, N: left.Len()})
	}
	return out
}

// BalanceByTenure averages WorkLifeBalance per tenure group, first-seen order.
func (s *OverviewService) BalanceByTenure(view employee.View) []KeyMean {
	keys, groups := view.GroupBy(employee.DimTenureGroup)
	out := make([]KeyMean, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		if mean, ok := analysis.Mean(g.Measure(func(r employee.Record) float64 {
			return float64(r.WorkLifeBalance)
		})); ok {
			out = append(out, KeyMean{Key: key, Mean: mean, N: g.Len()})
		}
	}
	return out
}

// ColumnSummaries computes descriptive statistics for the numeric columns
// shown in the overview table.
func (s *OverviewService) ColumnSummaries(view employee.View) map[string]analysis.Summary {
	columns := map[string]func(employee.Record) float64{
		"Age":                 func(r employee.Record) float64 { return float64(r.Age) },
		"YearsAtCompany":      func(r employee.Record) float64 { return float64(r.YearsAtCompany) },
		"JobSatisfaction":     func(r employee.Record) float64 { return float64(r.JobSatisfaction) },
		"OverallSatisfaction": func(r employee.Record) float64 { return r.OverallSatisfaction },
		"WorkLifeBalance":     func(r employee.Record) float64 { return float64(r.WorkLifeBalance) },
		"MonthlyIncome":       func(r employee.Record) float64 { return r.MonthlyIncome },
		"NumCompaniesWorked":  func(r employee.Record) float64 { return float64(r.NumCompaniesWorked) },
		"DistanceFromHome":    func(r employee.Record) float64 { return r.DistanceFromHome },
	}

	out := make(map[string]analysis.Summary, len(columns))
	for name, measure := range columns {
		out[name] = analysis.Summarize(view.Measure(measure))
	}
	return out
}
