package tabular

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"peoplelens/domain/core"
	"peoplelens/domain/employee"
	"peoplelens/internal"
	apperrors "peoplelens/internal/errors"
	"peoplelens/ports"
)

// Reader loads the employee table from a CSV or XLSX file. The format is
// chosen by extension at construction time. Reader satisfies
// ports.DatasetSource.
type Reader struct {
	path      string
	fileType  string // "csv" or "xlsx"
	sheetName string
	logger    *internal.Logger
}

var _ ports.DatasetSource = (*Reader)(nil)

// NewReader creates a dataset reader for the configured path.
func NewReader(cfg Config) *Reader {
	ext := strings.ToLower(filepath.Ext(cfg.Path))
	fileType := "csv"
	if ext == ".xlsx" {
		fileType = "xlsx"
	}
	return &Reader{
		path:      cfg.Path,
		fileType:  fileType,
		sheetName: cfg.SheetName,
		logger:    internal.NewComponentLogger("DatasetReader"),
	}
}

// Path returns the configured source location.
func (r *Reader) Path() string {
	return r.path
}

// Load reads and parses the whole dataset in one pass. Failures are returned
// for the caller to treat as fatal; nothing is cached on error.
func (r *Reader) Load(ctx context.Context) (*employee.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	r.logger.Info("Reading %s dataset: %s", r.fileType, r.path)

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, apperrors.DatasetLoadError(r.path, err)
	}

	var records []employee.Record
	switch r.fileType {
	case "csv":
		records, err = r.parseCSV(data)
	case "xlsx":
		records, err = r.parseXLSX(data)
	default:
		err = fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, apperrors.DatasetLoadError(r.path, err)
	}

	if len(records) == 0 {
		return nil, apperrors.DatasetLoadError(r.path, core.ErrDatasetEmpty)
	}

	dataset := employee.NewDataset(records, r.path, core.NewDatasetHash(data))
	r.logger.Info("Dataset parsed in %.2fms (%d rows, %d departments)",
		float64(time.Since(start).Nanoseconds())/1e6, dataset.Len(), len(dataset.Departments()))
	return dataset, nil
}

// parseCSV decodes the file straight into records via the csv struct tags.
// The header is validated first so a missing column fails loudly instead of
// zero-filling a field.
func (r *Reader) parseCSV(data []byte) ([]employee.Record, error) {
	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var records []employee.Record
	if err := gocsv.UnmarshalBytes(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode CSV rows: %w", err)
	}
	return records, nil
}

// parseXLSX reads the worksheet through excelize and maps rows by header
// position.
func (r *Reader) parseXLSX(data []byte) ([]employee.Record, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := r.sheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, core.ErrDatasetEmpty
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	records := make([]employee.Record, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		record, err := parseRow(header, rows[i], i+1)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// validateHeader checks every expected column is present, case-sensitively.
func validateHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}
	for _, col := range employee.Columns() {
		if !present[col] {
			return core.NewColumnError(col)
		}
	}
	return nil
}
