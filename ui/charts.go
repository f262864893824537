package ui

import (
	"bytes"
	"context"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"peoplelens/app"
	"peoplelens/domain/core"
	"peoplelens/domain/employee"
	"peoplelens/domain/insight"
	"peoplelens/internal/config"
	apperrors "peoplelens/internal/errors"
)

var (
	accentBlue = drawing.Color{R: 59, G: 130, B: 246, A: 255}
	accentFill = drawing.Color{R: 59, G: 130, B: 246, A: 115}
)

// ChartRenderer produces the dashboard's PNG charts. Rendering is CPU-bound,
// so concurrent renders are capped by a semaphore and admission is paced by a
// token bucket; both bounds come from configuration.
type ChartRenderer struct {
	overview *app.OverviewService
	sem      *semaphore.Weighted
	limiter  *rate.Limiter
}

// NewChartRenderer creates a renderer with the configured bounds.
func NewChartRenderer(overview *app.OverviewService, cfg config.ChartConfig) *ChartRenderer {
	return &ChartRenderer{
		overview: overview,
		sem:      semaphore.NewWeighted(int64(cfg.RenderLimit)),
		limiter:  rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.Burst),
	}
}

// Allow reports whether the rate budget admits another render right now.
func (r *ChartRenderer) Allow() bool {
	return r.limiter.Allow()
}

// Acquire blocks until a render slot is free or the context is done. Callers
// must Release after rendering.
func (r *ChartRenderer) Acquire(ctx context.Context) error {
	return r.sem.Acquire(ctx, 1)
}

// Release frees a render slot.
func (r *ChartRenderer) Release() {
	r.sem.Release(1)
}

// DepartmentPie renders the headcount composition of the view.
func (r *ChartRenderer) DepartmentPie(view employee.View) ([]byte, error) {
	counts := r.overview.DepartmentHeadcounts(view)
	if len(counts) == 0 {
		return nil, core.ErrNoData
	}

	values := make([]chart.Value, 0, len(counts))
	for _, c := range counts {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%d)", c.Key, c.Count),
			Value: float64(c.Count),
		})
	}

	pie := chart.PieChart{
		Title:  "Headcount by Department",
		Width:  420,
		Height: 360,
		Values: values,
	}
	return render("departments", pie.Render)
}

// AgeHistogram renders the age distribution of the view.
func (r *ChartRenderer) AgeHistogram(view employee.View, bins int) ([]byte, error) {
	hist := r.overview.AgeHistogram(view, bins)
	if len(hist) == 0 {
		return nil, core.ErrNoData
	}

	maxCount := 0
	bars := make([]chart.Value, 0, len(hist))
	for _, bin := range hist {
		if bin.Count > maxCount {
			maxCount = bin.Count
		}
		bars = append(bars, chart.Value{Label: bin.Label, Value: float64(bin.Count)})
	}

	bc := chart.BarChart{
		Title:      "Age Distribution",
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      640,
		Height:     360,
		BarWidth:   24,
		BarSpacing: 6,
		Bars:       bars,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount) + 1},
		},
	}
	return render("age", bc.Render)
}

// SatisfactionBars renders mean job satisfaction for stayers next to leavers.
func (r *ChartRenderer) SatisfactionBars(view employee.View) ([]byte, error) {
	means := r.overview.SatisfactionByAttrition(view)
	if len(means) == 0 {
		return nil, core.ErrNoData
	}

	bars := make([]chart.Value, 0, len(means))
	for _, m := range means {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s (%d)", m.Key, m.N),
			Value: m.Mean,
		})
	}

	bc := chart.BarChart{
		Title:      "Job Satisfaction by Attrition Status",
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      420,
		Height:     360,
		BarWidth:   72,
		Bars:       bars,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 4.2},
		},
	}
	return render("satisfaction", bc.Render)
}

// GroupRateBars renders attrition rates for one dimension's groups, in the
// set's display order.
func (r *ChartRenderer) GroupRateBars(set insight.GroupSet) ([]byte, error) {
	if len(set.Groups) == 0 {
		return nil, core.ErrNoData
	}

	bars := make([]chart.Value, 0, len(set.Groups))
	for _, g := range set.Groups {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s (%d)", g.Key, g.Count),
			Value: g.Rate,
		})
	}

	yMax := set.MaxRate()
	if yMax < 5 {
		yMax = 5
	}

	bc := chart.BarChart{
		Title:      fmt.Sprintf("Attrition Rate by %s", set.Dimension.Label()),
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      640,
		Height:     360,
		BarWidth:   42,
		Bars:       bars,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: yMax * 1.15},
		},
	}
	return render("groups:"+set.Dimension.String(), bc.Render)
}

// ImportanceBars renders the model's feature importance table, lowest score
// first so the top driver lands on the right.
func (r *ChartRenderer) ImportanceBars(report insight.ModelReport) ([]byte, error) {
	if len(report.Features) == 0 {
		return nil, core.ErrNoData
	}

	maxScore := 0.0
	bars := make([]chart.Value, 0, len(report.Features))
	for _, f := range report.Features {
		if f.Score > maxScore {
			maxScore = f.Score
		}
		bars = append(bars, chart.Value{Label: f.Feature, Value: f.Score})
	}

	bc := chart.BarChart{
		Title:      "Feature Importance",
		Background: chart.Style{Padding: chart.Box{Top: 40, Bottom: 30}},
		Width:      720,
		Height:     360,
		BarWidth:   56,
		Bars:       bars,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxScore * 1.2},
		},
	}
	return render("importance", bc.Render)
}

// BalanceLine renders mean work-life balance across tenure groups.
func (r *ChartRenderer) BalanceLine(view employee.View) ([]byte, error) {
	means := r.overview.BalanceByTenure(view)
	if len(means) == 0 {
		return nil, core.ErrNoData
	}

	xs := make([]float64, 0, len(means))
	ys := make([]float64, 0, len(means))
	ticks := make([]chart.Tick, 0, len(means))
	for i, m := range means {
		xs = append(xs, float64(i))
		ys = append(ys, m.Mean)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: m.Key})
	}
	if len(xs) == 1 {
		// A single point has no x-range; pad with a flat segment.
		xs = append(xs, 1)
		ys = append(ys, ys[0])
	}

	ch := chart.Chart{
		Title:      "Work-Life Balance by Tenure",
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 24}},
		Width:      640,
		Height:     320,
		XAxis:      chart.XAxis{Ticks: ticks},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 1, Max: 4},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Mean balance",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: accentBlue,
					StrokeWidth: 2,
					FillColor:   accentFill,
				},
			},
		},
	}
	return render("balance", ch.Render)
}

func render(name string, fn func(chart.RendererProvider, io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := fn(chart.PNG, &buf); err != nil {
		return nil, apperrors.ChartRenderError(name, err)
	}
	return buf.Bytes(), nil
}
