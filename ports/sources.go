package ports

import (
	"context"

	"peoplelens/domain/employee"
	"peoplelens/domain/insight"
)

// DatasetSource loads the employee table from its startup location.
// Implementations read the whole file in one pass; there is no incremental
// or streaming contract because the dataset is cached for the process
// lifetime.
type DatasetSource interface {
	// Load reads and parses the dataset. Any read or parse failure is
	// returned as-is; callers treat it as fatal at startup.
	Load(ctx context.Context) (*employee.Dataset, error)

	// Path returns the configured source location, for logging and the
	// dataset info endpoint.
	Path() string
}

// ModelArtifact is the loaded attrition model plus its provenance. The
// dashboard never invokes predictions; the artifact is consumed for identity
// and metadata only.
type ModelArtifact interface {
	// Algorithm names the training algorithm recorded in the artifact.
	Algorithm() string
	// NumTrees returns the ensemble size.
	NumTrees() int
	// NumInputs returns the number of model input features.
	NumInputs() int
	// HashShort returns a display-length content fingerprint.
	HashShort() string
}

// ModelSource loads the serialized model artifact from its startup location.
type ModelSource interface {
	Load(ctx context.Context) (ModelArtifact, error)
	Path() string
}

// ReportExporter writes a full analytics snapshot to a workbook or similar
// external format. Export happens only on explicit operator request, never
// as part of the dashboard flow.
type ReportExporter interface {
	Export(ctx context.Context, snapshot *insight.Snapshot, report insight.ModelReport, outPath string) error
}
