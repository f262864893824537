package employee

import (
	"strconv"
)

// Attrition values as they appear in the source data
const (
	AttritionYes = "Yes"
	AttritionNo  = "No"
)

// Record represents a single employee row. Column names in the csv tags match
// the cleaned export produced upstream; the xlsx reader maps headers through
// the same names.
type Record struct {
	Department          string  `csv:"Department" json:"department"`
	Age                 int     `csv:"Age" json:"age"`
	Attrition           string  `csv:"Attrition" json:"attrition"`
	YearsAtCompany      int     `csv:"YearsAtCompany" json:"years_at_company"`
	JobSatisfaction     int     `csv:"JobSatisfaction" json:"job_satisfaction"`
	OverallSatisfaction float64 `csv:"OverallSatisfaction" json:"overall_satisfaction"`
	WorkLifeBalance     int     `csv:"WorkLifeBalance" json:"work_life_balance"`
	TenureGroup         string  `csv:"TenureGroup" json:"tenure_group"`
	JobRole             string  `csv:"JobRole" json:"job_role"`
	MonthlyIncome       float64 `csv:"MonthlyIncome" json:"monthly_income"`
	NumCompaniesWorked  int     `csv:"NumCompaniesWorked" json:"num_companies_worked"`
	DistanceFromHome    float64 `csv:"DistanceFromHome" json:"distance_from_home"`
}

// Left reports whether the employee has left the company.
func (r Record) Left() bool {
	return r.Attrition == AttritionYes
}

// HighRisk reports whether the row matches the fixed retention-risk predicate:
// early tenure combined with low job satisfaction, or low overall satisfaction
// on its own.
func (r Record) HighRisk() bool {
	if r.YearsAtCompany <= 2 && r.JobSatisfaction <= 2 {
		return true
	}
	return r.OverallSatisfaction <= 2
}

// Columns lists the expected column names in source order.
func Columns() []string {
	return []string{
		"Department",
		"Age",
		"Attrition",
		"YearsAtCompany",
		"JobSatisfaction",
		"OverallSatisfaction",
		"WorkLifeBalance",
		"TenureGroup",
		"JobRole",
		"MonthlyIncome",
		"NumCompaniesWorked",
		"DistanceFromHome",
	}
}

// Values renders the record in column order as strings, for writers that
// serialize row by row (csv, xlsx).
func (r Record) Values() []string {
	return []string{
		r.Department,
		strconv.Itoa(r.Age),
		r.Attrition,
		strconv.Itoa(r.YearsAtCompany),
		strconv.Itoa(r.JobSatisfaction),
		strconv.FormatFloat(r.OverallSatisfaction, 'f', -1, 64),
		strconv.Itoa(r.WorkLifeBalance),
		r.TenureGroup,
		r.JobRole,
		strconv.FormatFloat(r.MonthlyIncome, 'f', -1, 64),
		strconv.Itoa(r.NumCompaniesWorked),
		strconv.FormatFloat(r.DistanceFromHome, 'f', -1, 64),
	}
}
