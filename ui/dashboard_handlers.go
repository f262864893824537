package ui

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"peoplelens/domain/core"
	"peoplelens/domain/employee"
	"peoplelens/domain/insight"
)

// ageHistogramBins is the fixed bin count for the age distribution chart.
const ageHistogramBins = 20

// dashboardView is the template payload for the dashboard page and its
// HTMX fragment.
type dashboardView struct {
	Snapshot    *insight.Snapshot
	Report      insight.ModelReport
	Dataset     datasetInfo
	Departments []departmentOption
	Query       template.URL
	HasData     bool
	Insights    template.HTML
}

// datasetInfo summarizes the loaded dataset for the page header.
type datasetInfo struct {
	Source   string
	Rows     int
	Hash     string
	LoadedAt string
}

// departmentOption is one filter checkbox.
type departmentOption struct {
	Name     string
	Selected bool
}

// parseDepartments resolves the department selection for a request. Without
// the filter marker the full dataset is shown; with it, the checked boxes
// are the selection, and unchecking every box is a real empty selection.
func (s *Server) parseDepartments(c *gin.Context) []string {
	if _, explicit := c.GetQuery("filter"); explicit {
		return c.QueryArray("departments")
	}
	return s.engine.Departments()
}

// buildDashboardView recomputes the snapshot for a selection and assembles
// everything the templates need around it.
func (s *Server) buildDashboardView(departments []string) dashboardView {
	snapshot := s.engine.Snapshot(departments)

	selected := make(map[string]bool, len(departments))
	for _, d := range departments {
		selected[d] = true
	}
	options := make([]departmentOption, 0, len(s.engine.Departments()))
	for _, name := range s.engine.Departments() {
		options = append(options, departmentOption{Name: name, Selected: selected[name]})
	}

	// Chart URLs carry the same selection so images and figures agree.
	query := url.Values{"filter": {"1"}}
	for _, d := range departments {
		query.Add("departments", d)
	}

	ds := s.engine.Dataset()
	return dashboardView{
		Snapshot: snapshot,
		Report:   s.bundle.Report,
		Dataset: datasetInfo{
			Source:   ds.SourcePath,
			Rows:     ds.Len(),
			Hash:     ds.Hash.Short(),
			LoadedAt: ds.LoadedAt.Time().Format("2006-01-02 15:04"),
		},
		Departments: options,
		Query:       template.URL(query.Encode()),
		HasData:     snapshot.KPIs.HasData(),
		Insights:    s.insights.Render(snapshot, s.bundle.Report),
	}
}

// handleIndex renders the full dashboard page.
func (s *Server) handleIndex(c *gin.Context) {
	view := s.buildDashboardView(s.parseDepartments(c))
	s.renderTemplate(c, "index.html", view)
}

// handleDashboardFragment re-renders the dashboard body for HTMX filter
// changes.
func (s *Server) handleDashboardFragment(c *gin.Context) {
	view := s.buildDashboardView(s.parseDepartments(c))
	s.renderPartial(c, "dashboard", view)
}

// serveChart runs one chart render inside the rate and concurrency bounds.
// Empty views produce 204 so the page shows its own placeholder instead of a
// broken image.
func (s *Server) serveChart(c *gin.Context, render func() ([]byte, error)) {
	if !s.charts.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "chart rate limit exceeded"})
		return
	}
	if err := s.charts.Acquire(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "render slot unavailable"})
		return
	}
	defer s.charts.Release()

	png, err := render()
	if errors.Is(err, core.ErrNoData) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		s.logger.Error("Chart render failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "chart render failed"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (s *Server) handleDepartmentChart(c *gin.Context) {
	view := s.engine.Filter(s.parseDepartments(c))
	s.serveChart(c, func() ([]byte, error) { return s.charts.DepartmentPie(view) })
}

func (s *Server) handleAgeChart(c *gin.Context) {
	view := s.engine.Filter(s.parseDepartments(c))
	s.serveChart(c, func() ([]byte, error) { return s.charts.AgeHistogram(view, ageHistogramBins) })
}

func (s *Server) handleSatisfactionChart(c *gin.Context) {
	view := s.engine.Filter(s.parseDepartments(c))
	s.serveChart(c, func() ([]byte, error) { return s.charts.SatisfactionBars(view) })
}

func (s *Server) handleBalanceChart(c *gin.Context) {
	view := s.engine.Filter(s.parseDepartments(c))
	s.serveChart(c, func() ([]byte, error) { return s.charts.BalanceLine(view) })
}

func (s *Server) handleImportanceChart(c *gin.Context) {
	s.serveChart(c, func() ([]byte, error) { return s.charts.ImportanceBars(s.bundle.Report) })
}

func (s *Server) handleGroupChart(c *gin.Context) {
	dim, err := employee.ParseDimension(c.Param("dimension"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	view := s.engine.Filter(s.parseDepartments(c))
	s.serveChart(c, func() ([]byte, error) {
		return s.charts.GroupRateBars(s.engine.GroupedRates(view, dim))
	})
}
