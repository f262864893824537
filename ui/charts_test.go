package ui

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peoplelens/app"
	"peoplelens/domain/core"
	"peoplelens/domain/employee"
	"peoplelens/domain/insight"
	"peoplelens/internal/config"
	"peoplelens/internal/testkit"
)

func newTestRenderer(t *testing.T) (*ChartRenderer, *app.Engine) {
	t.Helper()

	kit := testkit.NewTestKit()
	engine := kit.Engine()
	renderer := NewChartRenderer(app.NewOverviewService(engine), config.ChartConfig{
		RenderLimit: 2,
		RatePerSec:  1000,
		Burst:       1000,
	})
	return renderer, engine
}

func assertPNG(t *testing.T, data []byte) {
	t.Helper()
	require.GreaterOrEqual(t, len(data), len(pngMagic))
	assert.True(t, bytes.HasPrefix(data, pngMagic), "expected PNG header")
}

func TestDepartmentPieRendersPNG(t *testing.T) {
	renderer, engine := newTestRenderer(t)

	png, err := renderer.DepartmentPie(engine.Dataset().All())
	require.NoError(t, err)
	assertPNG(t, png)
}

func TestAgeHistogramRendersPNG(t *testing.T) {
	renderer, engine := newTestRenderer(t)

	png, err := renderer.AgeHistogram(engine.Dataset().All(), ageHistogramBins)
	require.NoError(t, err)
	assertPNG(t, png)
}

func TestSatisfactionBarsRendersPNG(t *testing.T) {
	renderer, engine := newTestRenderer(t)

	png, err := renderer.SatisfactionBars(engine.Dataset().All())
	require.NoError(t, err)
	assertPNG(t, png)
}

func TestGroupRateBarsRendersPNG(t *testing.T) {
	renderer, engine := newTestRenderer(t)

	set := engine.GroupedRates(engine.Dataset().All(), employee.DimDepartment)
	png, err := renderer.GroupRateBars(set)
	require.NoError(t, err)
	assertPNG(t, png)
}

func TestBalanceLineRendersPNG(t *testing.T) {
	renderer, engine := newTestRenderer(t)

	png, err := renderer.BalanceLine(engine.Dataset().All())
	require.NoError(t, err)
	assertPNG(t, png)
}

func TestImportanceBarsRendersPNG(t *testing.T) {
	renderer, _ := newTestRenderer(t)

	report, err := app.BuildModelReport(testkit.SyntheticArtifact())
	require.NoError(t, err)

	png, err := renderer.ImportanceBars(report)
	require.NoError(t, err)
	assertPNG(t, png)
}

func TestEmptyViewReturnsNoData(t *testing.T) {
	renderer, engine := newTestRenderer(t)
	empty := engine.Filter(nil)

	_, err := renderer.DepartmentPie(empty)
	assert.ErrorIs(t, err, core.ErrNoData)

	_, err = renderer.AgeHistogram(empty, ageHistogramBins)
	assert.ErrorIs(t, err, core.ErrNoData)

	_, err = renderer.SatisfactionBars(empty)
	assert.ErrorIs(t, err, core.ErrNoData)

	_, err = renderer.BalanceLine(empty)
	assert.ErrorIs(t, err, core.ErrNoData)

	_, err = renderer.GroupRateBars(engine.GroupedRates(empty, employee.DimDepartment))
	assert.ErrorIs(t, err, core.ErrNoData)

	_, err = renderer.ImportanceBars(insight.ModelReport{})
	assert.ErrorIs(t, err, core.ErrNoData)
}

func TestRenderSlotExhaustion(t *testing.T) {
	kit := testkit.NewTestKit()
	renderer := NewChartRenderer(app.NewOverviewService(kit.Engine()), config.ChartConfig{
		RenderLimit: 1,
		RatePerSec:  1000,
		Burst:       1000,
	})

	require.NoError(t, renderer.Acquire(context.Background()))
	defer renderer.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, renderer.Acquire(ctx))
}

func TestRateBudget(t *testing.T) {
	kit := testkit.NewTestKit()
	renderer := NewChartRenderer(app.NewOverviewService(kit.Engine()), config.ChartConfig{
		RenderLimit: 1,
		RatePerSec:  0.001,
		Burst:       1,
	})

	assert.True(t, renderer.Allow())
	assert.False(t, renderer.Allow())
}
