package app

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peoplelens/domain/core"
	"peoplelens/domain/employee"
	"peoplelens/domain/insight"
)

func scenarioDataset() *employee.Dataset {
	// Three departments: A has 4 rows with 1 leaver, B has 3 with none,
	// C has 3 with 2. Selecting {A, B} must yield 7 rows at ~14.3%.
	rows := []employee.Record{
		{Department: "A", Age: 29, Attrition: "No", YearsAtCompany: 3, JobSatisfaction: 3, OverallSatisfaction: 3.5, WorkLifeBalance: 3, TenureGroup: "3-5", JobRole: "Analyst"},
		{Department: "A", Age: 24, Attrition: "Yes", YearsAtCompany: 1, JobSatisfaction: 1, OverallSatisfaction: 1.5, WorkLifeBalance: 2, TenureGroup: "0-2", JobRole: "Analyst"},
		{Department: "B", Age: 41, Attrition: "No", YearsAtCompany: 8, JobSatisfaction: 4, OverallSatisfaction: 3.8, WorkLifeBalance: 3, TenureGroup: "6-10", JobRole: "Engineer"},
		{Department: "A", Age: 35, Attrition: "No", YearsAtCompany: 6, JobSatisfaction: 3, OverallSatisfaction: 3.2, WorkLifeBalance: 4, TenureGroup: "6-10", JobRole: "Manager"},
		{Department: "C", Age: 27, Attrition: "Yes", YearsAtCompany: 2, JobSatisfaction: 2, OverallSatisfaction: 2.0, WorkLifeBalance: 1, TenureGroup: "0-2", JobRole: "Engineer"},
		{Department: "B", Age: 33, Attrition: "No", YearsAtCompany: 4, JobSatisfaction: 3, OverallSatisfaction: 3.0, WorkLifeBalance: 3, TenureGroup: "3-5", JobRole: "Analyst"},
		{Department: "C", Age: 52, Attrition: "No", YearsAtCompany: 15, JobSatisfaction: 4, OverallSatisfaction: 3.9, WorkLifeBalance: 4, TenureGroup: "11+", JobRole: "Manager"},
		{Department: "A", Age: 31, Attrition: "No", YearsAtCompany: 4, JobSatisfaction: 2, OverallSatisfaction: 2.0, WorkLifeBalance: 2, TenureGroup: "3-5", JobRole: "Engineer"},
		{Department: "C", Age: 26, Attrition: "Yes", YearsAtCompany: 1, JobSatisfaction: 2, OverallSatisfaction: 2.2, WorkLifeBalance: 2, TenureGroup: "0-2", JobRole: "Analyst"},
		{Department: "B", Age: 45, Attrition: "No", YearsAtCompany: 10, JobSatisfaction: 3, OverallSatisfaction: 3.4, WorkLifeBalance: 3, TenureGroup: "6-10", JobRole: "Manager"},
	}
	return employee.NewDataset(rows, "testdata/scenario.csv", core.NewDatasetHash([]byte("scenario")))
}

func TestEngineScenarioSelection(t *testing.T) {
	engine := NewEngine(scenarioDataset())

	view := engine.Filter([]string{"A", "B"})
	require.Equal(t, 7, view.Len())

	kpis := engine.KPIs(view)
	assert.Equal(t, 7, kpis.Headcount)
	require.True(t, kpis.AttritionRate.Defined)
	assert.InDelta(t, 14.2857, kpis.AttritionRate.Value, 0.001)
	assert.GreaterOrEqual(t, kpis.AttritionRate.Value, 0.0)
	assert.LessOrEqual(t, kpis.AttritionRate.Value, 100.0)
}

func TestEngineFilterCountMatchesPerDepartmentSum(t *testing.T) {
	engine := NewEngine(scenarioDataset())

	perDept := map[string]int{}
	engine.Dataset().All().Each(func(r employee.Record) {
		perDept[r.Department]++
	})

	selections := [][]string{
		{"A"}, {"B"}, {"C"}, {"A", "B"}, {"A", "C"}, {"A", "B", "C"}, {},
	}
	for _, sel := range selections {
		want := 0
		for _, d := range sel {
			want += perDept[d]
		}
		assert.Equal(t, want, engine.Filter(sel).Len(), "selection %v", sel)
	}
}

func TestEngineEmptySelection(t *testing.T) {
	engine := NewEngine(scenarioDataset())

	view := engine.Filter(nil)
	require.True(t, view.IsEmpty())

	kpis := engine.KPIs(view)
	assert.Equal(t, 0, kpis.Headcount)
	assert.False(t, kpis.AttritionRate.Defined, "attrition rate must be undefined on an empty view")
	assert.False(t, kpis.AvgTenure.Defined)
	assert.False(t, kpis.AvgSatisfaction.Defined)

	ttest := engine.SatisfactionTTest(view)
	assert.Equal(t, insight.TTestNotEnoughData, ttest.State)

	risk := engine.RiskSummary(view)
	assert.Equal(t, 0, risk.Count)
	assert.False(t, risk.Share.Defined)
	assert.False(t, risk.Delta.Defined)

	groups := engine.AllGroupedRates(view)
	for _, set := range groups {
		assert.Empty(t, set.Groups, "dimension %s must produce no groups on an empty view", set.Dimension)
	}
}

func TestEngineGroupedRatesPartition(t *testing.T) {
	engine := NewEngine(scenarioDataset())
	view := engine.Filter([]string{"A", "B", "C"})

	for _, dim := range employee.Dimensions() {
		set := engine.GroupedRates(view, dim)
		assert.Equal(t, view.Len(), set.TotalCount(), "dimension %s group counts must partition the view", dim)
		for _, g := range set.Groups {
			assert.Greater(t, g.Count, 0, "zero-row groups must not appear")
			assert.GreaterOrEqual(t, g.Rate, 0.0)
			assert.LessOrEqual(t, g.Rate, 100.0)
		}
	}
}

func TestEngineJobRoleSortedByRate(t *testing.T) {
	engine := NewEngine(scenarioDataset())
	view := engine.Dataset().All()

	set := engine.GroupedRates(view, employee.DimJobRole)
	require.NotEmpty(t, set.Groups)
	for i := 1; i < len(set.Groups); i++ {
		assert.GreaterOrEqual(t, set.Groups[i-1].Rate, set.Groups[i].Rate,
			"job role groups must be sorted descending by rate")
	}
}

func TestEngineDepartmentGroupsKeepRowOrder(t *testing.T) {
	engine := NewEngine(scenarioDataset())
	set := engine.GroupedRates(engine.Dataset().All(), employee.DimDepartment)

	keys := make([]string, 0, len(set.Groups))
	for _, g := range set.Groups {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"A", "B", "C"}, keys)
}

func TestEngineSatisfactionTTest(t *testing.T) {
	engine := NewEngine(scenarioDataset())
	view := engine.Dataset().All()

	result := engine.SatisfactionTTest(view)
	require.Equal(t, insight.TTestComputed, result.State)
	assert.Equal(t, 7, result.NStayed)
	assert.Equal(t, 3, result.NLeft)
	assert.Greater(t, result.MeanStayed, result.MeanLeft,
		"stayers report higher satisfaction in this fixture")
	assert.False(t, math.IsNaN(result.PValue))
	assert.GreaterOrEqual(t, result.PValue, 0.0)
	assert.LessOrEqual(t, result.PValue, 1.0)
}

func TestEngineTTestSkippedWithoutLeavers(t *testing.T) {
	engine := NewEngine(scenarioDataset())

	// Department B has no attrition, so the "left" sample is empty.
	view := engine.Filter([]string{"B"})
	result := engine.SatisfactionTTest(view)
	assert.Equal(t, insight.TTestNotEnoughData, result.State)
	assert.Equal(t, 3, result.NStayed)
	assert.Equal(t, 0, result.NLeft)
	assert.False(t, result.Significant)
}

func TestEngineRiskSummary(t *testing.T) {
	engine := NewEngine(scenarioDataset())
	view := engine.Dataset().All()

	risk := engine.RiskSummary(view)

	// Fixture rows 2, 5, 8, 9 (1-based) match the predicate: three early
	// low-satisfaction leavers and one low overall satisfaction row.
	assert.Equal(t, 4, risk.Count)
	require.True(t, risk.Share.Defined)
	assert.InDelta(t, 40.0, risk.Share.Value, 0.001)

	require.True(t, risk.SegmentRate.Defined)
	require.True(t, risk.BaselineRate.Defined)
	require.True(t, risk.Delta.Defined)
	assert.InDelta(t, risk.SegmentRate.Value-risk.BaselineRate.Value, risk.Delta.Value, 1e-9)
	assert.True(t, risk.Elevated(), "risk segment attrits above baseline in this fixture")
}

func TestEngineSnapshot(t *testing.T) {
	engine := NewEngine(scenarioDataset())

	snapshot := engine.Snapshot([]string{"A", "B"})
	require.NotNil(t, snapshot)
	assert.False(t, snapshot.ID == "")
	assert.Equal(t, 7, snapshot.KPIs.Headcount)
	assert.Len(t, snapshot.Groups, 4)

	deptGroups, ok := snapshot.GroupsFor(employee.DimDepartment.String())
	require.True(t, ok)
	assert.Equal(t, 7, deptGroups.TotalCount())

	// Same selection in a different order maps to the same filter hash.
	other := engine.Snapshot([]string{"B", "A"})
	assert.Equal(t, snapshot.FilterHash, other.FilterHash)
	assert.NotEqual(t, snapshot.ID, other.ID)
}
