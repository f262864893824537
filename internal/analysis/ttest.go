package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"peoplelens/domain/core"
)

// TTestOutcome holds the raw numbers of an independent two-sample t-test.
type TTestOutcome struct {
	T     float64
	P     float64
	DF    float64
	Mean1 float64
	Mean2 float64
	N1    int
	N2    int
}

// StudentTTest runs the independent two-sample t-test with pooled variance,
// the equal-variance default of the reference statistics stack. The p-value
// is two-sided, computed exactly from the Student's t-distribution.
//
// Returns core.ErrNotEnoughData when either sample is empty or the pooled
// degrees of freedom are not positive.
func StudentTTest(sample1, sample2 []float64) (TTestOutcome, error) {
	n1 := len(sample1)
	n2 := len(sample2)
	if n1 == 0 || n2 == 0 {
		return TTestOutcome{N1: n1, N2: n2}, core.ErrNotEnoughData
	}

	df := float64(n1 + n2 - 2)
	if df <= 0 {
		return TTestOutcome{N1: n1, N2: n2}, core.ErrNotEnoughData
	}

	mean1, _ := stats.Mean(sample1)
	mean2, _ := stats.Mean(sample2)
	var1 := sampleVariance(sample1)
	var2 := sampleVariance(sample2)

	// Pooled variance weights each sample's variance by its df.
	pooled := (float64(n1-1)*var1 + float64(n2-1)*var2) / df
	se := math.Sqrt(pooled * (1/float64(n1) + 1/float64(n2)))

	out := TTestOutcome{
		DF:    df,
		Mean1: mean1,
		Mean2: mean2,
		N1:    n1,
		N2:    n2,
	}

	diff := mean1 - mean2
	if se == 0 {
		// Both samples constant. Identical means carry no signal; distinct
		// means separate perfectly.
		if diff == 0 {
			out.T = 0
			out.P = 1
			return out, nil
		}
		out.T = math.Inf(1)
		if diff < 0 {
			out.T = math.Inf(-1)
		}
		out.P = 0
		return out, nil
	}

	out.T = diff / se
	out.P = tTestPValue(out.T, df)
	return out, nil
}

// tTestPValue computes the exact two-tailed p-value from Student's t
func tTestPValue(tStatistic, df float64) float64 {
	if df <= 0 {
		return 1.0
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - tDist.CDF(math.Abs(tStatistic)))
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// sampleVariance is the n-1 denominator variance; zero for samples of one.
func sampleVariance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	v, _ := stats.SampleVariance(data)
	return v
}
