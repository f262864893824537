package insight

// TTestState distinguishes a computed test from the explicit skip states.
type TTestState string

const (
	TTestComputed      TTestState = "computed"
	TTestNotEnoughData TTestState = "not_enough_data"
)

// TTestResult is the outcome of the two-sample comparison of JobSatisfaction
// between employees who stayed and employees who left. When State is
// not_enough_data the statistic fields are zero and must not be shown.
type TTestResult struct {
	State       TTestState `json:"state"`
	TStatistic  float64    `json:"t_statistic,omitempty"`
	PValue      float64    `json:"p_value,omitempty"`
	DF          float64    `json:"df,omitempty"`
	MeanStayed  float64    `json:"mean_stayed,omitempty"`
	MeanLeft    float64    `json:"mean_left,omitempty"`
	NStayed     int        `json:"n_stayed"`
	NLeft       int        `json:"n_left"`
	Significant bool       `json:"significant"`
}

// Computed reports whether the test actually ran.
func (t TTestResult) Computed() bool {
	return t.State == TTestComputed
}

// MeanGap returns the stayed-minus-left difference in means.
func (t TTestResult) MeanGap() float64 {
	return t.MeanStayed - t.MeanLeft
}
