package testkit

import (
	"reflect"
	"testing"

	"peoplelens/domain/employee"
)

func TestWorkforceGeneratorBasic(t *testing.T) {
	config := WorkforceConfig{EmployeeCount: 50, AttritionRateBase: 0.16, Seed: 42}
	records := NewWorkforceGenerator(config).Generate()

	if len(records) != 50 {
		t.Fatalf("Expected 50 records, got %d", len(records))
	}

	departments := map[string]bool{
		"Research & Development": true,
		"Sales":                  true,
		"Human Resources":        true,
	}

	for i, r := range records {
		if !departments[r.Department] {
			t.Errorf("Record %d has unknown department %q", i, r.Department)
		}
		if r.JobRole == "" {
			t.Errorf("Record %d has empty job role", i)
		}
		if r.Age < 20 || r.Age > 60 {
			t.Errorf("Record %d has age %d outside 20-60", i, r.Age)
		}
		if r.YearsAtCompany < 0 || r.YearsAtCompany > r.Age-18 {
			t.Errorf("Record %d has %d years at company at age %d", i, r.YearsAtCompany, r.Age)
		}
		if r.Attrition != employee.AttritionYes && r.Attrition != employee.AttritionNo {
			t.Errorf("Record %d has attrition %q", i, r.Attrition)
		}
		if r.JobSatisfaction < 1 || r.JobSatisfaction > 4 {
			t.Errorf("Record %d has job satisfaction %d", i, r.JobSatisfaction)
		}
		if r.WorkLifeBalance < 1 || r.WorkLifeBalance > 4 {
			t.Errorf("Record %d has work-life balance %d", i, r.WorkLifeBalance)
		}
		if r.OverallSatisfaction < 1 || r.OverallSatisfaction > 5 {
			t.Errorf("Record %d has overall satisfaction %f", i, r.OverallSatisfaction)
		}
		if r.TenureGroup != tenureGroup(r.YearsAtCompany) {
			t.Errorf("Record %d has tenure group %q for %d years", i, r.TenureGroup, r.YearsAtCompany)
		}
		if r.MonthlyIncome < 1500 {
			t.Errorf("Record %d has monthly income %f", i, r.MonthlyIncome)
		}
		if r.DistanceFromHome < 1 || r.DistanceFromHome > 29 {
			t.Errorf("Record %d has distance %f", i, r.DistanceFromHome)
		}
	}
}

func TestWorkforceGeneratorDeterministic(t *testing.T) {
	config := WorkforceConfig{EmployeeCount: 25, AttritionRateBase: 0.16, Seed: 12345}

	first := NewWorkforceGenerator(config).Generate()
	second := NewWorkforceGenerator(config).Generate()

	if !reflect.DeepEqual(first, second) {
		t.Error("Same seed produced different records")
	}
}

func TestWorkforceGeneratorSeedVariation(t *testing.T) {
	base := WorkforceConfig{EmployeeCount: 25, AttritionRateBase: 0.16, Seed: 1}
	other := base
	other.Seed = 2

	first := NewWorkforceGenerator(base).Generate()
	second := NewWorkforceGenerator(other).Generate()

	if reflect.DeepEqual(first, second) {
		t.Error("Different seeds produced identical records")
	}
}

func TestWorkforceAttritionSkew(t *testing.T) {
	config := WorkforceConfig{EmployeeCount: 2000, AttritionRateBase: 0.16, Seed: 42}
	records := NewWorkforceGenerator(config).Generate()

	var shortLeft, shortTotal, longLeft, longTotal int
	for _, r := range records {
		if r.YearsAtCompany <= 2 {
			shortTotal++
			if r.Left() {
				shortLeft++
			}
		} else {
			longTotal++
			if r.Left() {
				longLeft++
			}
		}
	}

	if shortTotal == 0 || longTotal == 0 {
		t.Fatalf("Tenure split degenerate: %d short, %d long", shortTotal, longTotal)
	}

	shortRate := float64(shortLeft) / float64(shortTotal)
	longRate := float64(longLeft) / float64(longTotal)
	if shortRate <= longRate {
		t.Errorf("Short-tenure attrition %.3f not above long-tenure %.3f", shortRate, longRate)
	}
}

func TestTenureGroupBuckets(t *testing.T) {
	tests := []struct {
		years int
		want  string
	}{
		{0, "0-2"},
		{2, "0-2"},
		{3, "3-5"},
		{5, "3-5"},
		{6, "6-10"},
		{10, "6-10"},
		{11, "11+"},
		{30, "11+"},
	}

	for _, tt := range tests {
		if got := tenureGroup(tt.years); got != tt.want {
			t.Errorf("tenureGroup(%d) = %q, want %q", tt.years, got, tt.want)
		}
	}
}

func TestTestKitBundle(t *testing.T) {
	kit := NewTestKit()

	bundle, err := kit.Bundle()
	if err != nil {
		t.Fatalf("Bundle failed: %v", err)
	}

	if bundle.Dataset.Len() == 0 {
		t.Error("Expected a non-empty synthetic dataset")
	}
	if len(bundle.Report.Features) != 7 {
		t.Errorf("Expected 7 report features, got %d", len(bundle.Report.Features))
	}
	if err := kit.Artifact().Validate(); err != nil {
		t.Errorf("Synthetic artifact failed validation: %v", err)
	}

	snapshot := kit.Engine().Snapshot(bundle.Dataset.Departments())
	if !snapshot.KPIs.HasData() {
		t.Error("Expected KPIs over the full synthetic dataset")
	}
}

func TestSyntheticArtifactScoresDirection(t *testing.T) {
	artifact := SyntheticArtifact()

	// Feature order: WorkLifeBalance, NumCompaniesWorked, OverallSatisfaction,
	// DistanceFromHome, YearsAtCompany, Age, MonthlyIncome.
	risky := []float64{2, 5, 1.5, 25, 1, 24, 2000}
	safe := []float64{3, 2, 4.5, 5, 10, 45, 9000}

	riskyP, err := artifact.Probability(risky)
	if err != nil {
		t.Fatalf("Probability(risky) failed: %v", err)
	}
	safeP, err := artifact.Probability(safe)
	if err != nil {
		t.Fatalf("Probability(safe) failed: %v", err)
	}

	if riskyP <= safeP {
		t.Errorf("Risky probe scored %.3f, not above safe probe %.3f", riskyP, safeP)
	}
	if riskyP <= 0.5 {
		t.Errorf("Risky probe scored %.3f, expected above 0.5", riskyP)
	}
}
