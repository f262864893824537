package insight

import (
	"math"
	"strconv"
)

// Metric is a scalar that may be undefined when the underlying view has no
// rows. Keeping definedness explicit stops NaN from leaking into JSON or
// templates when a filter selects nothing.
type Metric struct {
	Value   float64 `json:"value"`
	Defined bool    `json:"defined"`
}

// DefinedMetric wraps a computed value.
func DefinedMetric(v float64) Metric {
	return Metric{Value: v, Defined: true}
}

// UndefinedMetric is the explicit "no data" state.
func UndefinedMetric() Metric {
	return Metric{}
}

// Format renders the metric with the given precision, or a placeholder when
// undefined.
func (m Metric) Format(decimals int) string {
	if !m.Defined || math.IsNaN(m.Value) {
		return "n/a"
	}
	return strconv.FormatFloat(m.Value, 'f', decimals, 64)
}

// KPISet holds the four headline figures computed over a filtered view.
type KPISet struct {
	Headcount       int    `json:"headcount"`
	AttritionRate   Metric `json:"attrition_rate"`   // percent, 0-100
	AvgTenure       Metric `json:"avg_tenure"`       // years
	AvgSatisfaction Metric `json:"avg_satisfaction"` // 1-4 scale
}

// HasData reports whether the view behind the KPIs contained any rows.
func (k KPISet) HasData() bool {
	return k.Headcount > 0
}
