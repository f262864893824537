package tabular

import (
	"strconv"
	"strings"

	"peoplelens/domain/core"
	"peoplelens/domain/employee"
)

// rowValues indexes one raw row's cells by column name. Short rows read as
// empty cells, matching how spreadsheet libraries trim trailing blanks.
type rowValues struct {
	header []string
	cells  []string
}

func (rv rowValues) get(column string) string {
	for i, h := range rv.header {
		if h == column && i < len(rv.cells) {
			return strings.TrimSpace(rv.cells[i])
		}
	}
	return ""
}

func (rv rowValues) getInt(column string, line int) (int, error) {
	raw := rv.get(column)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, core.NewRowError(line, column+" is not an integer: "+raw)
	}
	return v, nil
}

func (rv rowValues) getFloat(column string, line int) (float64, error) {
	raw := rv.get(column)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, core.NewRowError(line, column+" is not numeric: "+raw)
	}
	return v, nil
}

// parseRow maps one worksheet row onto a record. line is 1-based and counts
// the header, so it matches what a spreadsheet shows.
func parseRow(header, cells []string, line int) (employee.Record, error) {
	rv := rowValues{header: header, cells: cells}
	record := employee.Record{
		Department:  rv.get("Department"),
		Attrition:   rv.get("Attrition"),
		TenureGroup: rv.get("TenureGroup"),
		JobRole:     rv.get("JobRole"),
	}

	var err error
	if record.Age, err = rv.getInt("Age", line); err != nil {
		return employee.Record{}, err
	}
	if record.YearsAtCompany, err = rv.getInt("YearsAtCompany", line); err != nil {
		return employee.Record{}, err
	}
	if record.JobSatisfaction, err = rv.getInt("JobSatisfaction", line); err != nil {
		return employee.Record{}, err
	}
	if record.OverallSatisfaction, err = rv.getFloat("OverallSatisfaction", line); err != nil {
		return employee.Record{}, err
	}
	if record.WorkLifeBalance, err = rv.getInt("WorkLifeBalance", line); err != nil {
		return employee.Record{}, err
	}
	if record.MonthlyIncome, err = rv.getFloat("MonthlyIncome", line); err != nil {
		return employee.Record{}, err
	}
	if record.NumCompaniesWorked, err = rv.getInt("NumCompaniesWorked", line); err != nil {
		return employee.Record{}, err
	}
	if record.DistanceFromHome, err = rv.getFloat("DistanceFromHome", line); err != nil {
		return employee.Record{}, err
	}
	return record, nil
}
