package insight

import (
	"time"

	"peoplelens/domain/core"
)

// Snapshot bundles every figure computed for one filter selection. It is an
// ephemeral value: recomputed in full on each filter change, identified so
// API clients can correlate responses, never stored.
type Snapshot struct {
	ID          core.SnapshotID `json:"id"`
	FilterHash  core.FilterHash `json:"filter_hash"`
	Departments []string        `json:"departments"`
	ComputedAt  core.ComputedAt `json:"computed_at"`

	KPIs   KPISet      `json:"kpis"`
	Groups []GroupSet  `json:"groups"`
	TTest  TTestResult `json:"ttest"`
	Risk   RiskSummary `json:"risk"`
}

// NewSnapshot stamps identity onto a computed result set.
func NewSnapshot(departments []string) *Snapshot {
	return &Snapshot{
		ID:          core.SnapshotID(core.NewID()),
		FilterHash:  core.ComputeFilterHash(departments),
		Departments: departments,
		ComputedAt:  core.NewComputedAt(time.Now()),
	}
}

// GroupsFor returns the group set for one dimension, if present.
func (s *Snapshot) GroupsFor(dim string) (GroupSet, bool) {
	for _, g := range s.Groups {
		if g.Dimension.String() == dim {
			return g, true
		}
	}
	return GroupSet{}, false
}
