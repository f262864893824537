package insight

import (
	"sort"

	"peoplelens/domain/employee"
)

// GroupRate is the attrition rate for one value of a grouping dimension.
// Rate is always defined: groups are derived from present values only, so
// Count is never zero.
type GroupRate struct {
	Key       string  `json:"key"`
	Count     int     `json:"count"`
	Attrition int     `json:"attrition"`
	Rate      float64 `json:"rate"` // percent, 0-100
}

// GroupSet is the ordered grouped-rate result for one dimension.
type GroupSet struct {
	Dimension employee.Dimension `json:"dimension"`
	Groups    []GroupRate        `json:"groups"`
}

// TotalCount sums row counts across groups. Over a full partition this
// equals the view's headcount.
func (g GroupSet) TotalCount() int {
	total := 0
	for _, gr := range g.Groups {
		total += gr.Count
	}
	return total
}

// MaxRate returns the highest group rate, for chart axis scaling.
func (g GroupSet) MaxRate() float64 {
	max := 0.0
	for _, gr := range g.Groups {
		if gr.Rate > max {
			max = gr.Rate
		}
	}
	return max
}

// SortByRateDesc orders groups highest-rate first. The sort is stable so
// equal rates keep their first-seen order.
func (g *GroupSet) SortByRateDesc() {
	sort.SliceStable(g.Groups, func(i, j int) bool {
		return g.Groups[i].Rate > g.Groups[j].Rate
	})
}
