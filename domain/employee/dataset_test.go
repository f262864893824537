package employee

import (
	"testing"

	"peoplelens/domain/core"
)

func testDataset() *Dataset {
	// 10 rows across 3 departments: A has 4 rows with 1 leaver, B has 3 rows
	// with none, C has 3 rows with 2 leavers.
	rows := []Record{
		{Department: "A", Attrition: "No", JobRole: "Analyst", TenureGroup: "0-2", WorkLifeBalance: 3},
		{Department: "A", Attrition: "Yes", JobRole: "Analyst", TenureGroup: "0-2", WorkLifeBalance: 2},
		{Department: "B", Attrition: "No", JobRole: "Engineer", TenureGroup: "3-5", WorkLifeBalance: 3},
		{Department: "A", Attrition: "No", JobRole: "Manager", TenureGroup: "6-10", WorkLifeBalance: 4},
		{Department: "C", Attrition: "Yes", JobRole: "Engineer", TenureGroup: "0-2", WorkLifeBalance: 1},
		{Department: "B", Attrition: "No", JobRole: "Analyst", TenureGroup: "3-5", WorkLifeBalance: 3},
		{Department: "C", Attrition: "No", JobRole: "Manager", TenureGroup: "11+", WorkLifeBalance: 4},
		{Department: "A", Attrition: "No", JobRole: "Engineer", TenureGroup: "3-5", WorkLifeBalance: 2},
		{Department: "C", Attrition: "Yes", JobRole: "Analyst", TenureGroup: "0-2", WorkLifeBalance: 2},
		{Department: "B", Attrition: "No", JobRole: "Manager", TenureGroup: "6-10", WorkLifeBalance: 3},
	}
	return NewDataset(rows, "testdata/employees.csv", core.NewDatasetHash([]byte("test")))
}

// TestFilterByDepartments tests that filtering matches per-department counts
func TestFilterByDepartments(t *testing.T) {
	ds := testDataset()

	counts := map[string]int{}
	ds.All().Each(func(r Record) {
		counts[r.Department]++
	})

	tests := []struct {
		name      string
		selection []string
		wantRows  int
	}{
		{"single department", []string{"A"}, counts["A"]},
		{"two departments", []string{"A", "B"}, counts["A"] + counts["B"]},
		{"all departments", []string{"A", "B", "C"}, ds.Len()},
		{"empty selection", []string{}, 0},
		{"unknown department", []string{"Z"}, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			view := ds.FilterByDepartments(test.selection)
			if view.Len() != test.wantRows {
				t.Errorf("Expected %d rows for %v, got %d", test.wantRows, test.selection, view.Len())
			}
		})
	}
}

// TestFilterPreservesRowOrder tests that a filtered view keeps source order
func TestFilterPreservesRowOrder(t *testing.T) {
	ds := testDataset()
	view := ds.FilterByDepartments([]string{"A", "C"})

	var roles []string
	view.Each(func(r Record) {
		roles = append(roles, r.JobRole)
	})

	expected := []string{"Analyst", "Analyst", "Manager", "Engineer", "Manager", "Engineer", "Analyst"}
	if len(roles) != len(expected) {
		t.Fatalf("Expected %d rows, got %d", len(expected), len(roles))
	}
	for i, role := range expected {
		if roles[i] != role {
			t.Errorf("Row %d: expected role %s, got %s", i, role, roles[i])
		}
	}
}

// TestGroupByPartition tests that groups partition the view completely
func TestGroupByPartition(t *testing.T) {
	ds := testDataset()
	view := ds.All()

	for _, dim := range Dimensions() {
		keys, groups := view.GroupBy(dim)
		if len(keys) != len(groups) {
			t.Errorf("%s: key list and group map disagree (%d vs %d)", dim, len(keys), len(groups))
		}

		total := 0
		for _, key := range keys {
			g := groups[key]
			if g.IsEmpty() {
				t.Errorf("%s: group %q is empty; zero-row groups must not appear", dim, key)
			}
			total += g.Len()
		}
		if total != view.Len() {
			t.Errorf("%s: group sizes sum to %d, expected %d", dim, total, view.Len())
		}
	}
}

// TestGroupByFirstSeenOrder tests group key ordering
func TestGroupByFirstSeenOrder(t *testing.T) {
	ds := testDataset()
	keys, _ := ds.All().GroupBy(DimTenureGroup)

	expected := []string{"0-2", "3-5", "6-10", "11+"}
	if len(keys) != len(expected) {
		t.Fatalf("Expected %d tenure groups, got %d", len(expected), len(keys))
	}
	for i, key := range expected {
		if keys[i] != key {
			t.Errorf("Position %d: expected %s, got %s", i, key, keys[i])
		}
	}
}

// TestDepartmentsFirstSeen tests department enumeration order
func TestDepartmentsFirstSeen(t *testing.T) {
	ds := testDataset()
	deps := ds.Departments()

	expected := []string{"A", "B", "C"}
	if len(deps) != len(expected) {
		t.Fatalf("Expected %d departments, got %d", len(expected), len(deps))
	}
	for i, dep := range expected {
		if deps[i] != dep {
			t.Errorf("Position %d: expected %s, got %s", i, dep, deps[i])
		}
	}
}

// TestHighRiskPredicate tests the fixed retention-risk predicate
func TestHighRiskPredicate(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   bool
	}{
		{
			name:   "early tenure with low satisfaction",
			record: Record{YearsAtCompany: 1, JobSatisfaction: 1, OverallSatisfaction: 4},
			want:   true,
		},
		{
			name:   "low overall satisfaction alone",
			record: Record{YearsAtCompany: 10, JobSatisfaction: 4, OverallSatisfaction: 1},
			want:   true,
		},
		{
			name:   "settled and satisfied",
			record: Record{YearsAtCompany: 10, JobSatisfaction: 4, OverallSatisfaction: 4},
			want:   false,
		},
		{
			name:   "early tenure but satisfied",
			record: Record{YearsAtCompany: 1, JobSatisfaction: 4, OverallSatisfaction: 3},
			want:   false,
		},
		{
			name:   "boundary values on both clauses",
			record: Record{YearsAtCompany: 2, JobSatisfaction: 2, OverallSatisfaction: 2.5},
			want:   true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.record.HighRisk(); got != test.want {
				t.Errorf("HighRisk() = %v, want %v for %+v", got, test.want, test.record)
			}
		})
	}
}

// TestWhereAndMeasure tests sub-view derivation and column extraction
func TestWhereAndMeasure(t *testing.T) {
	ds := testDataset()
	leavers := ds.All().Where(func(r Record) bool { return r.Left() })
	if leavers.Len() != 3 {
		t.Errorf("Expected 3 leavers, got %d", leavers.Len())
	}

	wlb := leavers.Measure(func(r Record) float64 { return float64(r.WorkLifeBalance) })
	if len(wlb) != 3 {
		t.Fatalf("Expected 3 measures, got %d", len(wlb))
	}
	sum := 0.0
	for _, v := range wlb {
		sum += v
	}
	if sum != 5 {
		t.Errorf("Expected WLB sum 5 for leavers, got %v", sum)
	}
}

// TestParseDimension tests dimension name resolution
func TestParseDimension(t *testing.T) {
	for _, dim := range Dimensions() {
		parsed, err := ParseDimension(dim.String())
		if err != nil {
			t.Errorf("Unexpected error parsing %s: %v", dim, err)
		}
		if parsed != dim {
			t.Errorf("Expected %s, got %s", dim, parsed)
		}
	}

	if _, err := ParseDimension("salary_band"); err == nil {
		t.Error("Expected error for unknown dimension")
	}
	if _, err := ParseDimension("salary_band"); !core.IsNotFoundError(err) {
		t.Error("Expected dimension error to be a not-found error")
	}
}
