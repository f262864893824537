package employee

// View is an ordered subset of a Dataset, held as row indices so derived
// views never copy records. Views are throwaway values recomputed per
// filter change and are never persisted.
type View struct {
	dataset *Dataset
	indices []int
}

// Len returns the number of rows in the view.
func (v View) Len() int {
	return len(v.indices)
}

// IsEmpty reports whether the view contains no rows.
func (v View) IsEmpty() bool {
	return len(v.indices) == 0
}

// Record returns the i-th row of the view in view order.
func (v View) Record(i int) Record {
	return v.dataset.Record(v.indices[i])
}

// Each applies fn to every row in view order.
func (v View) Each(fn func(Record)) {
	for _, idx := range v.indices {
		fn(v.dataset.Record(idx))
	}
}

// Where returns the sub-view of rows matching pred, preserving order.
func (v View) Where(pred func(Record) bool) View {
	var indices []int
	for _, idx := range v.indices {
		if pred(v.dataset.Record(idx)) {
			indices = append(indices, idx)
		}
	}
	return View{dataset: v.dataset, indices: indices}
}

// CountWhere returns how many rows match pred.
func (v View) CountWhere(pred func(Record) bool) int {
	n := 0
	for _, idx := range v.indices {
		if pred(v.dataset.Record(idx)) {
			n++
		}
	}
	return n
}

// Measure extracts a numeric column from every row in view order.
func (v View) Measure(fn func(Record) float64) []float64 {
	out := make([]float64, 0, len(v.indices))
	for _, idx := range v.indices {
		out = append(out, fn(v.dataset.Record(idx)))
	}
	return out
}

// GroupBy partitions the view by a dimension. Keys appear in first-seen row
// order; each sub-view preserves row order. Only values present in the view
// produce groups, so an absent category never yields an empty group.
func (v View) GroupBy(dim Dimension) ([]string, map[string]View) {
	var keys []string
	groups := make(map[string][]int)
	for _, idx := range v.indices {
		key := dim.ValueOf(v.dataset.Record(idx))
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], idx)
	}

	views := make(map[string]View, len(groups))
	for key, indices := range groups {
		views[key] = View{dataset: v.dataset, indices: indices}
	}
	return keys, views
}
