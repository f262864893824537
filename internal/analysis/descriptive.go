package analysis

import (
	"math"
	"strconv"

	"github.com/montanaflynn/stats"
)

// Summary holds the descriptive statistics shown in the dataset overview.
type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// Mean averages a column. The second return is false for an empty column so
// callers can surface an explicit undefined state.
func Mean(data []float64) (float64, bool) {
	if len(data) == 0 {
		return 0, false
	}
	m, err := stats.Mean(data)
	if err != nil {
		return 0, false
	}
	return m, true
}

// Summarize computes descriptive statistics over a column. An empty column
// yields a zero Summary with N == 0; callers treat that as "no data".
func Summarize(data []float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}

	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	stdDev, _ := stats.StandardDeviation(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	q25, _ := stats.Percentile(data, 25)
	q75, _ := stats.Percentile(data, 75)

	return Summary{
		N:      len(data),
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Q25:    q25,
		Q75:    q75,
	}
}

// HistogramBin is one bar of a histogram over a numeric column.
type HistogramBin struct {
	Label string  `json:"label"`
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Histogram buckets data into equal-width bins across its observed range.
// The final bin is closed on both ends so the maximum lands in it. Returns
// nil for empty data or non-positive bin counts.
func Histogram(data []float64, bins int) []HistogramBin {
	if len(data) == 0 || bins <= 0 {
		return nil
	}

	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	if min == max {
		// Degenerate range collapses to a single bin.
		return []HistogramBin{{
			Label: formatBinLabel(min, max),
			Low:   min,
			High:  max,
			Count: len(data),
		}}
	}

	width := (max - min) / float64(bins)
	out := make([]HistogramBin, bins)
	for i := range out {
		low := min + float64(i)*width
		high := low + width
		out[i] = HistogramBin{Label: formatBinLabel(low, high), Low: low, High: high}
	}

	for _, v := range data {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

func formatBinLabel(low, high float64) string {
	return strconv.FormatFloat(roundTo(low, 1), 'f', -1, 64) + "-" +
		strconv.FormatFloat(roundTo(high, 1), 'f', -1, 64)
}

func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
