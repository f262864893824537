package testkit

import (
	"math"
	"math/rand"

	"peoplelens/domain/employee"
)

// WorkforceConfig configures the synthetic workforce generator.
type WorkforceConfig struct {
	EmployeeCount     int     `json:"employee_count"`
	AttritionRateBase float64 `json:"attrition_rate_base"`
	Seed              int64   `json:"seed"`
}

// DefaultWorkforceConfig returns sensible defaults for workforce generation.
func DefaultWorkforceConfig() WorkforceConfig {
	return WorkforceConfig{
		EmployeeCount:     500,
		AttritionRateBase: 0.16,
		Seed:              42,
	}
}

// WorkforceGenerator produces synthetic employee rows with the same
// relationships the dashboard surfaces: attrition concentrates in short
// tenure, low satisfaction, and long commutes.
type WorkforceGenerator struct {
	config WorkforceConfig
	rng    *rand.Rand
}

// NewWorkforceGenerator creates a generator with a deterministic stream.
func NewWorkforceGenerator(config WorkforceConfig) *WorkforceGenerator {
	return &WorkforceGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate produces the configured number of employee records.
func (g *WorkforceGenerator) Generate() []employee.Record {
	records := make([]employee.Record, 0, g.config.EmployeeCount)
	for i := 0; i < g.config.EmployeeCount; i++ {
		records = append(records, g.generateRecord())
	}
	return records
}

func (g *WorkforceGenerator) generateRecord() employee.Record {
	department := g.randomDepartment()
	role := g.randomRole(department)

	age := g.normalInt(37, 9, 20, 60)
	years := g.tenureYears(age)
	jobSat := g.randomJobSatisfaction()
	balance := g.randomWorkLifeBalance()

	// Overall satisfaction tracks job satisfaction with noise, on a 1-5 scale.
	overall := clampFloat(float64(jobSat)+g.rng.NormFloat64()*0.8+0.5, 1, 5)
	overall = math.Round(overall*10) / 10

	income := g.monthlyIncome(role, years)
	companies := g.normalInt(3, 2, 0, 9)
	distance := clampFloat(1+g.rng.ExpFloat64()*7, 1, 29)
	distance = math.Round(distance*10) / 10

	return employee.Record{
		Department:          department,
		Age:                 age,
		Attrition:           g.attrition(years, jobSat, overall, distance, income),
		YearsAtCompany:      years,
		JobSatisfaction:     jobSat,
		OverallSatisfaction: overall,
		WorkLifeBalance:     balance,
		TenureGroup:         tenureGroup(years),
		JobRole:             role,
		MonthlyIncome:       income,
		NumCompaniesWorked:  companies,
		DistanceFromHome:    distance,
	}
}

// attrition rolls the leave/stay outcome. Effects stack on the base rate:
// short tenure and low satisfaction dominate, commute distance and low pay
// contribute smaller bumps.
func (g *WorkforceGenerator) attrition(years, jobSat int, overall, distance, income float64) string {
	p := g.config.AttritionRateBase
	if years <= 2 {
		p += 0.15
	}
	switch jobSat {
	case 1:
		p += 0.12
	case 2:
		p += 0.05
	}
	if overall <= 2 {
		p += 0.10
	}
	if distance > 20 {
		p += 0.05
	}
	if income < 3000 {
		p += 0.05
	}
	p = clampFloat(p, 0.02, 0.85)

	if g.rng.Float64() < p {
		return employee.AttritionYes
	}
	return employee.AttritionNo
}

// tenureYears draws years at company, capped so nobody joined before age 18.
func (g *WorkforceGenerator) tenureYears(age int) int {
	years := int(g.rng.ExpFloat64() * 5)
	if max := age - 18; years > max {
		years = max
	}
	if years > 36 {
		years = 36
	}
	if years < 0 {
		years = 0
	}
	return years
}

func (g *WorkforceGenerator) monthlyIncome(role string, years int) float64 {
	base := map[string]float64{
		"Manager":                   12000,
		"Research Director":         15000,
		"Manufacturing Director":    11000,
		"Healthcare Representative": 7000,
		"Sales Executive":           6500,
		"Research Scientist":        6000,
		"Human Resources":           4000,
		"Laboratory Technician":     3200,
		"Sales Representative":      2600,
	}
	income := base[role] + float64(years)*150 + g.rng.NormFloat64()*800
	if income < 1500 {
		income = 1500
	}
	return math.Round(income)
}

func tenureGroup(years int) string {
	switch {
	case years <= 2:
		return "0-2"
	case years <= 5:
		return "3-5"
	case years <= 10:
		return "6-10"
	default:
		return "11+"
	}
}

// Helper methods for random value generation

func (g *WorkforceGenerator) randomDepartment() string {
	departments := []string{"Research & Development", "Sales", "Human Resources"}
	weights := []float64{0.5, 0.35, 0.15}
	return g.weightedPick(departments, weights)
}

func (g *WorkforceGenerator) randomRole(department string) string {
	switch department {
	case "Sales":
		return g.weightedPick(
			[]string{"Sales Executive", "Sales Representative", "Manager"},
			[]float64{0.6, 0.25, 0.15})
	case "Human Resources":
		return g.weightedPick(
			[]string{"Human Resources", "Manager"},
			[]float64{0.8, 0.2})
	default:
		return g.weightedPick(
			[]string{"Research Scientist", "Laboratory Technician", "Manufacturing Director", "Healthcare Representative", "Research Director", "Manager"},
			[]float64{0.3, 0.3, 0.15, 0.12, 0.05, 0.08})
	}
}

func (g *WorkforceGenerator) randomJobSatisfaction() int {
	r := g.rng.Float64()
	switch {
	case r < 0.2:
		return 1
	case r < 0.4:
		return 2
	case r < 0.7:
		return 3
	default:
		return 4
	}
}

func (g *WorkforceGenerator) randomWorkLifeBalance() int {
	r := g.rng.Float64()
	switch {
	case r < 0.05:
		return 1
	case r < 0.30:
		return 2
	case r < 0.85:
		return 3
	default:
		return 4
	}
}

func (g *WorkforceGenerator) weightedPick(values []string, weights []float64) string {
	r := g.rng.Float64()
	cumulative := 0.0
	for i, weight := range weights {
		cumulative += weight
		if r <= cumulative {
			return values[i]
		}
	}
	return values[0]
}

func (g *WorkforceGenerator) normalInt(mean, stddev float64, min, max int) int {
	v := int(math.Round(mean + g.rng.NormFloat64()*stddev))
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return v
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
