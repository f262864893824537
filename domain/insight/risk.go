package insight

// RiskSummary describes the high-risk segment of a filtered view. Share is
// the segment's percentage of the view. SegmentRate and Delta are defined
// only when the segment is non-empty; Delta is the signed difference between
// the segment's attrition rate and the whole view's rate, in percentage
// points.
type RiskSummary struct {
	Count        int    `json:"count"`
	Share        Metric `json:"share"`
	SegmentRate  Metric `json:"segment_rate"`
	BaselineRate Metric `json:"baseline_rate"`
	Delta        Metric `json:"delta"`
}

// HasSegment reports whether any rows matched the risk predicate.
func (r RiskSummary) HasSegment() bool {
	return r.Count > 0
}

// Elevated reports whether the segment attrits above the baseline.
func (r RiskSummary) Elevated() bool {
	return r.Delta.Defined && r.Delta.Value > 0
}
