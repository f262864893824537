package testkit

import (
	"encoding/json"
	"time"

	"peoplelens/adapters/model"
	"peoplelens/app"
	"peoplelens/domain/core"
	"peoplelens/domain/employee"
)

// TestKit wires a synthetic dataset and model artifact so tests and local
// runs can exercise the full dashboard pipeline without fixture files.
type TestKit struct {
	dataset  *employee.Dataset
	artifact *model.Artifact
}

// NewTestKit creates a test kit with the default workforce configuration.
func NewTestKit() *TestKit {
	return NewTestKitWithConfig(DefaultWorkforceConfig())
}

// NewTestKitWithConfig creates a test kit from a specific generator
// configuration. The same configuration always yields the same dataset.
func NewTestKitWithConfig(cfg WorkforceConfig) *TestKit {
	records := NewWorkforceGenerator(cfg).Generate()
	fingerprint, _ := json.Marshal(cfg)
	dataset := employee.NewDataset(records, "synthetic://workforce", core.NewDatasetHash(fingerprint))

	return &TestKit{
		dataset:  dataset,
		artifact: SyntheticArtifact(),
	}
}

// Dataset returns the synthetic employee dataset.
func (k *TestKit) Dataset() *employee.Dataset {
	return k.dataset
}

// Artifact returns the synthetic model artifact.
func (k *TestKit) Artifact() *model.Artifact {
	return k.artifact
}

// Engine returns an analytics engine over the synthetic dataset.
func (k *TestKit) Engine() *app.Engine {
	return app.NewEngine(k.dataset)
}

// Bundle assembles the full startup resource set, report included.
func (k *TestKit) Bundle() (*app.Bundle, error) {
	report, err := app.BuildModelReport(k.artifact)
	if err != nil {
		return nil, err
	}
	return &app.Bundle{
		Dataset: k.dataset,
		Model:   k.artifact,
		Report:  report,
	}, nil
}

// SyntheticArtifact builds a small deterministic tree ensemble over the
// model's input features. The stumps point the same direction as the
// generator's attrition effects, so probe scores stay plausible.
func SyntheticArtifact() *model.Artifact {
	artifact := &model.Artifact{
		Name: "gradient_boosting",
		Features: []string{
			"WorkLifeBalance",
			"NumCompaniesWorked",
			"OverallSatisfaction",
			"DistanceFromHome",
			"YearsAtCompany",
			"Age",
			"MonthlyIncome",
		},
		Trees: []model.Tree{
			stump(4, 3, 0.9, -0.3),    // short tenure raises the margin
			stump(2, 2.5, 0.7, -0.2),  // low overall satisfaction
			stump(6, 3000, 0.4, -0.1), // low pay
		},
	}

	data, _ := json.Marshal(artifact)
	artifact.ID = core.ModelID(core.NewID())
	artifact.Hash = core.NewModelHash(data)
	artifact.LoadedAt = core.NewLoadedAt(time.Now())
	return artifact
}

func stump(featureIndex int, threshold, leftOut, rightOut float64) model.Tree {
	return model.Tree{
		Nodes: []model.Node{{
			FeatureIndex: featureIndex,
			Threshold:    threshold,
			LeftChild:    0,
			LeftIsLeaf:   true,
			RightChild:   1,
			RightIsLeaf:  true,
		}},
		Outputs:     []float64{leftOut, rightOut},
		FeatureSize: 7,
		Depth:       1,
	}
}
