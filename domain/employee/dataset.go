package employee

import (
	"time"

	"peoplelens/domain/core"
)

// Dataset is the ordered employee table loaded once at process start.
// It is immutable after construction; every derived view indexes into it
// rather than copying rows.
type Dataset struct {
	ID         core.DatasetID
	SourcePath string
	Hash       core.DatasetHash
	LoadedAt   core.LoadedAt

	records []Record
}

// NewDataset wraps loaded records with identity and provenance.
func NewDataset(records []Record, sourcePath string, hash core.DatasetHash) *Dataset {
	return &Dataset{
		ID:         core.DatasetID(core.NewID()),
		SourcePath: sourcePath,
		Hash:       hash,
		LoadedAt:   core.NewLoadedAt(time.Now()),
		records:    records,
	}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Record returns the row at index i.
func (d *Dataset) Record(i int) Record {
	return d.records[i]
}

// Departments returns the distinct department names in first-seen row order.
func (d *Dataset) Departments() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range d.records {
		if !seen[r.Department] {
			seen[r.Department] = true
			out = append(out, r.Department)
		}
	}
	return out
}

// All returns a view spanning every row.
func (d *Dataset) All() View {
	indices := make([]int, len(d.records))
	for i := range indices {
		indices[i] = i
	}
	return View{dataset: d, indices: indices}
}

// FilterByDepartments returns the view of rows whose Department is in the
// selection. An empty selection yields an empty view, not an error; callers
// surface that as a "no data" state.
func (d *Dataset) FilterByDepartments(departments []string) View {
	selected := make(map[string]bool, len(departments))
	for _, dep := range departments {
		selected[dep] = true
	}

	var indices []int
	for i, r := range d.records {
		if selected[r.Department] {
			indices = append(indices, i)
		}
	}
	return View{dataset: d, indices: indices}
}
