package insight

// FeatureImportance is one (feature, score) row of the importance table.
type FeatureImportance struct {
	Feature string  `json:"feature" yaml:"feature"`
	Score   float64 `json:"score" yaml:"score"`
}

// ModelReport carries the published evaluation figures for the attrition
// model. These are presentation constants frozen at evaluation time, never
// recomputed from the loaded artifact.
type ModelReport struct {
	Accuracy float64 `json:"accuracy" yaml:"accuracy"` // fraction, 0-1
	ROCAUC   float64 `json:"roc_auc" yaml:"roc_auc"`
	Recall   float64 `json:"recall" yaml:"recall"` // fraction, 0-1

	// Features is sorted ascending by score for chart display.
	Features []FeatureImportance `json:"features" yaml:"features"`

	// Artifact identity, filled from the loaded model at startup.
	Algorithm string `json:"algorithm,omitempty" yaml:"-"`
	NumTrees  int    `json:"num_trees,omitempty" yaml:"-"`
	NumInputs int    `json:"num_inputs,omitempty" yaml:"-"`
	ModelHash string `json:"model_hash,omitempty" yaml:"-"`
}

// AccuracyPercent returns accuracy on the 0-100 scale used for display.
func (m ModelReport) AccuracyPercent() float64 {
	return m.Accuracy * 100
}

// RecallPercent returns recall on the 0-100 scale used for display.
func (m ModelReport) RecallPercent() float64 {
	return m.Recall * 100
}

// TopFeature returns the highest-scoring feature name, or "" when the table
// is empty. Features are stored ascending, so the top one is last.
func (m ModelReport) TopFeature() string {
	if len(m.Features) == 0 {
		return ""
	}
	return m.Features[len(m.Features)-1].Feature
}
