package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"peoplelens/domain/employee"
	"peoplelens/internal/testkit"
)

func main() {
	out := flag.String("out", "data/employees.csv", "output file path")
	rows := flag.Int("rows", 500, "number of employees")
	format := flag.String("format", "", "output format: csv or xlsx (default inferred from -out)")
	seed := flag.Int64("seed", 42, "RNG seed (deterministic)")
	rate := flag.Float64("rate", 0.16, "base attrition rate before tenure and satisfaction effects")
	sheet := flag.String("sheet", "Employees", "sheet name for xlsx output")
	modelOut := flag.String("model", "", "also write the demo model artifact to this path")
	flag.Parse()

	if *rows <= 0 {
		fmt.Fprintln(os.Stderr, "rows must be > 0")
		os.Exit(2)
	}
	if *rate < 0 || *rate > 1 {
		fmt.Fprintln(os.Stderr, "rate must be between 0 and 1")
		os.Exit(2)
	}

	fmtName := strings.ToLower(strings.TrimSpace(*format))
	if fmtName == "" {
		ext := strings.ToLower(filepath.Ext(*out))
		switch ext {
		case ".xlsx":
			fmtName = "xlsx"
		case ".csv":
			fmtName = "csv"
		default:
			fmtName = "csv"
		}
	}

	cfg := testkit.DefaultWorkforceConfig()
	cfg.EmployeeCount = *rows
	cfg.AttritionRateBase = *rate
	cfg.Seed = *seed

	records := testkit.NewWorkforceGenerator(cfg).Generate()

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintln(os.Stderr, "error creating output directory:", err)
			os.Exit(1)
		}
	}

	switch fmtName {
	case "csv":
		if err := testkit.WriteCSV(*out, records); err != nil {
			fmt.Fprintln(os.Stderr, "error writing csv:", err)
			os.Exit(1)
		}
	case "xlsx":
		if err := testkit.WriteXLSX(*out, *sheet, records); err != nil {
			fmt.Fprintln(os.Stderr, "error writing xlsx:", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "unsupported format:", fmtName)
		os.Exit(2)
	}

	left := 0
	for _, r := range records {
		if r.Left() {
			left++
		}
	}

	fmt.Printf("Synthetic workforce written: %s\n", *out)
	fmt.Printf("Total Columns: %d | Total Rows: %d | Leavers: %d (%.1f%%)\n",
		len(employee.Columns()), len(records), left, float64(left)/float64(len(records))*100)

	if *modelOut != "" {
		if dir := filepath.Dir(*modelOut); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				fmt.Fprintln(os.Stderr, "error creating model directory:", err)
				os.Exit(1)
			}
		}
		if err := testkit.WriteModelJSON(*modelOut, testkit.SyntheticArtifact()); err != nil {
			fmt.Fprintln(os.Stderr, "error writing model:", err)
			os.Exit(1)
		}
		fmt.Printf("Model artifact written: %s\n", *modelOut)
	}
}
