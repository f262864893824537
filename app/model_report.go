package app

import (
	_ "embed"
	"sort"

	"gopkg.in/yaml.v3"

	"peoplelens/domain/insight"
	"peoplelens/internal/errors"
	"peoplelens/ports"
)

// The report table ships inside the binary so the published figures cannot
// drift from the build that displays them.
//
//go:embed model_report.yaml
var modelReportYAML []byte

// ModelReportBase parses the embedded evaluation figures. Features are
// sorted ascending by score, the order the importance chart expects.
func ModelReportBase() (insight.ModelReport, error) {
	var report insight.ModelReport
	if err := yaml.Unmarshal(modelReportYAML, &report); err != nil {
		return insight.ModelReport{}, errors.Wrap(err, "failed to parse embedded model report")
	}
	if len(report.Features) == 0 {
		return insight.ModelReport{}, errors.InternalError("embedded model report has no feature table")
	}

	sort.SliceStable(report.Features, func(i, j int) bool {
		return report.Features[i].Score < report.Features[j].Score
	})
	return report, nil
}

// BuildModelReport joins the static figures with identity metadata from the
// loaded artifact. Only metadata crosses over; predictions are never invoked.
func BuildModelReport(artifact ports.ModelArtifact) (insight.ModelReport, error) {
	report, err := ModelReportBase()
	if err != nil {
		return insight.ModelReport{}, err
	}

	report.Algorithm = artifact.Algorithm()
	report.NumTrees = artifact.NumTrees()
	report.NumInputs = artifact.NumInputs()
	report.ModelHash = artifact.HashShort()
	return report, nil
}
