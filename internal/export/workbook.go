package export

import (
	"context"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"peoplelens/domain/insight"
	"peoplelens/internal"
	apperrors "peoplelens/internal/errors"
	"peoplelens/ports"
)

// Exporter writes an analytics snapshot to an XLSX workbook, one sheet per
// dashboard panel. Exporter satisfies ports.ReportExporter.
type Exporter struct {
	logger *internal.Logger
}

var _ ports.ReportExporter = (*Exporter)(nil)

// NewExporter creates a workbook exporter.
func NewExporter() *Exporter {
	return &Exporter{logger: internal.NewComponentLogger("Exporter")}
}

// Export writes the snapshot and model report to outPath. The file is
// created fresh; an existing file at the path is overwritten.
func (e *Exporter) Export(ctx context.Context, snapshot *insight.Snapshot, report insight.ModelReport, outPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	f := excelize.NewFile()
	defer f.Close()

	overview := "Overview"
	if err := f.SetSheetName(f.GetSheetName(0), overview); err != nil {
		return apperrors.ExportError(outPath, err)
	}

	if err := e.writeOverview(f, overview, snapshot); err != nil {
		return apperrors.ExportError(outPath, err)
	}
	if err := e.writeGroups(f, snapshot); err != nil {
		return apperrors.ExportError(outPath, err)
	}
	if err := e.writeTTest(f, snapshot.TTest); err != nil {
		return apperrors.ExportError(outPath, err)
	}
	if err := e.writeRisk(f, snapshot.Risk); err != nil {
		return apperrors.ExportError(outPath, err)
	}
	if err := e.writeModel(f, report); err != nil {
		return apperrors.ExportError(outPath, err)
	}

	if err := f.SaveAs(outPath); err != nil {
		return apperrors.ExportError(outPath, err)
	}

	e.logger.Info("Report exported in %.2fms: %s",
		float64(time.Since(start).Nanoseconds())/1e6, outPath)
	return nil
}

func (e *Exporter) writeOverview(f *excelize.File, sheet string, snapshot *insight.Snapshot) error {
	selection := strings.Join(snapshot.Departments, ", ")
	if selection == "" {
		selection = "(none)"
	}

	rows := [][]interface{}{
		{"Attrition Analytics Snapshot"},
		{},
		{"Snapshot ID", snapshot.ID.String()},
		{"Computed At", snapshot.ComputedAt.String()},
		{"Departments", selection},
		{},
		{"KPI", "Value"},
		{"Headcount", snapshot.KPIs.Headcount},
		{"Attrition Rate (%)", snapshot.KPIs.AttritionRate.Format(1)},
		{"Avg Tenure (years)", snapshot.KPIs.AvgTenure.Format(1)},
		{"Avg Job Satisfaction", snapshot.KPIs.AvgSatisfaction.Format(2)},
	}
	return writeRows(f, sheet, rows)
}

func (e *Exporter) writeGroups(f *excelize.File, snapshot *insight.Snapshot) error {
	sheet := "Group Rates"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Dimension", "Group", "Headcount", "Leavers", "Attrition Rate (%)"},
	}
	for _, set := range snapshot.Groups {
		for _, g := range set.Groups {
			rows = append(rows, []interface{}{set.Dimension.Label(), g.Key, g.Count, g.Attrition, g.Rate})
		}
	}
	return writeRows(f, sheet, rows)
}

func (e *Exporter) writeTTest(f *excelize.File, result insight.TTestResult) error {
	sheet := "Satisfaction Test"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Job Satisfaction: Stayed vs. Left"},
		{},
		{"State", string(result.State)},
		{"N Stayed", result.NStayed},
		{"N Left", result.NLeft},
	}
	if result.Computed() {
		rows = append(rows,
			[]interface{}{"Mean Stayed", result.MeanStayed},
			[]interface{}{"Mean Left", result.MeanLeft},
			[]interface{}{"t Statistic", result.TStatistic},
			[]interface{}{"p Value", result.PValue},
			[]interface{}{"Degrees of Freedom", result.DF},
			[]interface{}{"Significant at 0.05", result.Significant},
		)
	}
	return writeRows(f, sheet, rows)
}

func (e *Exporter) writeRisk(f *excelize.File, risk insight.RiskSummary) error {
	sheet := "Risk Segment"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"High-Risk Segment"},
		{},
		{"Employees Flagged", risk.Count},
		{"Share of Selection (%)", risk.Share.Format(1)},
		{"Segment Attrition Rate (%)", risk.SegmentRate.Format(1)},
		{"Baseline Attrition Rate (%)", risk.BaselineRate.Format(1)},
		{"Delta (pp)", risk.Delta.Format(1)},
	}
	return writeRows(f, sheet, rows)
}

func (e *Exporter) writeModel(f *excelize.File, report insight.ModelReport) error {
	sheet := "Model Report"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Attrition Model"},
		{},
		{"Algorithm", report.Algorithm},
		{"Trees", report.NumTrees},
		{"Input Features", report.NumInputs},
		{"Artifact Hash", report.ModelHash},
		{},
		{"Accuracy (%)", report.AccuracyPercent()},
		{"ROC-AUC", report.ROCAUC},
		{"Recall (%)", report.RecallPercent()},
		{},
		{"Feature", "Importance"},
	}
	for _, fi := range report.Features {
		rows = append(rows, []interface{}{fi.Feature, fi.Score})
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
