package testkit

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"peoplelens/adapters/model"
	"peoplelens/domain/employee"
)

// WriteCSV writes employee records to a CSV file. Column names come from
// the csv tags on employee.Record, so the output loads back through the
// tabular reader unchanged.
func WriteCSV(path string, records []employee.Record) error {
	data, err := gocsv.MarshalBytes(&records)
	if err != nil {
		return fmt.Errorf("marshal employee rows: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteXLSX writes employee records to a single-sheet workbook.
func WriteXLSX(path, sheet string, records []employee.Record) error {
	if sheet == "" {
		sheet = "Sheet1"
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return err
		}
	}

	// Header row
	for i, name := range employee.Columns() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}

	// Data rows
	for r, record := range records {
		rowIdx := r + 2
		for c, v := range record.Values() {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

// WriteModelJSON writes a model artifact in the format the model source
// loads: algorithm name, ordered feature list, and tree ensemble.
func WriteModelJSON(path string, artifact *model.Artifact) error {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model artifact: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
