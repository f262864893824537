package employee

import (
	"strconv"

	"peoplelens/domain/core"
)

// Dimension is a categorical field records can be grouped by.
type Dimension string

const (
	DimDepartment      Dimension = "department"
	DimJobRole         Dimension = "job_role"
	DimTenureGroup     Dimension = "tenure_group"
	DimWorkLifeBalance Dimension = "work_life_balance"
)

// Dimensions lists the supported grouping dimensions in display order.
func Dimensions() []Dimension {
	return []Dimension{DimDepartment, DimJobRole, DimTenureGroup, DimWorkLifeBalance}
}

// ParseDimension resolves a request parameter into a Dimension.
func ParseDimension(s string) (Dimension, error) {
	switch Dimension(s) {
	case DimDepartment, DimJobRole, DimTenureGroup, DimWorkLifeBalance:
		return Dimension(s), nil
	}
	return "", core.NewDimensionError(s)
}

// String returns the wire name of the dimension.
func (d Dimension) String() string {
	return string(d)
}

// Label returns the human-readable name used in headings and chart titles.
func (d Dimension) Label() string {
	switch d {
	case DimDepartment:
		return "Department"
	case DimJobRole:
		return "Job Role"
	case DimTenureGroup:
		return "Tenure Group"
	case DimWorkLifeBalance:
		return "Work-Life Balance"
	}
	return string(d)
}

// SortedByRate reports whether grouped output for this dimension is
// presented highest-rate first instead of in row order.
func (d Dimension) SortedByRate() bool {
	return d == DimJobRole
}

// ValueOf extracts the record's value for the dimension as a group key.
func (d Dimension) ValueOf(r Record) string {
	switch d {
	case DimDepartment:
		return r.Department
	case DimJobRole:
		return r.JobRole
	case DimTenureGroup:
		return r.TenureGroup
	case DimWorkLifeBalance:
		return strconv.Itoa(r.WorkLifeBalance)
	}
	return ""
}
