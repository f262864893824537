package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"peoplelens/app"
	"peoplelens/domain/employee"
	"peoplelens/internal"
)

// APIServer exposes the analytics pass as a JSON API for programmatic
// consumers. It shares the engine semantics with the dashboard, so both
// surfaces always report the same figures for the same selection.
type APIServer struct {
	router   *chi.Mux
	engine   *app.Engine
	overview *app.OverviewService
	bundle   *app.Bundle
	logger   *internal.Logger
}

// NewAPIServer wires the JSON API against a loaded bundle.
func NewAPIServer(bundle *app.Bundle) *APIServer {
	engine := app.NewEngineFromBundle(bundle)

	s := &APIServer{
		router:   chi.NewRouter(),
		engine:   engine,
		overview: app.NewOverviewService(engine),
		bundle:   bundle,
		logger:   internal.NewComponentLogger("API"),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures HTTP middleware
func (s *APIServer) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures the API routes
func (s *APIServer) setupRoutes() {
	s.router.Get("/api/health", s.handleAPIHealth)
	s.router.Get("/api/dataset/info", s.handleAPIDatasetInfo)
	s.router.Get("/api/departments", s.handleAPIDepartments)
	s.router.Get("/api/kpis", s.handleAPIKPIs)
	s.router.Get("/api/groups/{dimension}", s.handleAPIGroups)
	s.router.Get("/api/ttest", s.handleAPITTest)
	s.router.Get("/api/risk", s.handleAPIRisk)
	s.router.Get("/api/overview", s.handleAPIOverview)
	s.router.Get("/api/snapshot", s.handleAPISnapshot)
	s.router.Get("/api/model/report", s.handleAPIModelReport)
}

// Start runs the API server on addr until the process exits.
func (s *APIServer) Start(addr string) error {
	s.logger.Info("Starting JSON API on http://%s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Router exposes the handler tree, mainly for tests.
func (s *APIServer) Router() http.Handler {
	return s.router
}

// selection resolves the department filter from the query string, with the
// same present-vs-absent semantics as the dashboard.
func (s *APIServer) selection(r *http.Request) []string {
	q := r.URL.Query()
	if _, explicit := q["filter"]; explicit {
		return q["departments"]
	}
	return s.engine.Departments()
}

func (s *APIServer) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("JSON encode failed: %v", err)
	}
}

func (s *APIServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *APIServer) handleAPIHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"rows":   s.engine.Dataset().Len(),
		"model":  s.bundle.Model.Algorithm(),
	})
}

func (s *APIServer) handleAPIDatasetInfo(w http.ResponseWriter, r *http.Request) {
	ds := s.engine.Dataset()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"source":      ds.SourcePath,
		"rows":        ds.Len(),
		"hash":        ds.Hash.Short(),
		"loaded_at":   ds.LoadedAt.String(),
		"departments": ds.Departments(),
	})
}

func (s *APIServer) handleAPIDepartments(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"departments": s.engine.Departments(),
	})
}

func (s *APIServer) handleAPIKPIs(w http.ResponseWriter, r *http.Request) {
	view := s.engine.Filter(s.selection(r))
	s.writeJSON(w, http.StatusOK, s.engine.KPIs(view))
}

func (s *APIServer) handleAPIGroups(w http.ResponseWriter, r *http.Request) {
	dim, err := employee.ParseDimension(chi.URLParam(r, "dimension"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	view := s.engine.Filter(s.selection(r))
	s.writeJSON(w, http.StatusOK, s.engine.GroupedRates(view, dim))
}

func (s *APIServer) handleAPITTest(w http.ResponseWriter, r *http.Request) {
	view := s.engine.Filter(s.selection(r))
	s.writeJSON(w, http.StatusOK, s.engine.SatisfactionTTest(view))
}

func (s *APIServer) handleAPIRisk(w http.ResponseWriter, r *http.Request) {
	view := s.engine.Filter(s.selection(r))
	s.writeJSON(w, http.StatusOK, s.engine.RiskSummary(view))
}

func (s *APIServer) handleAPIOverview(w http.ResponseWriter, r *http.Request) {
	view := s.engine.Filter(s.selection(r))
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"departments":               s.overview.DepartmentHeadcounts(view),
		"age_histogram":             s.overview.AgeHistogram(view, ageHistogramBins),
		"satisfaction_by_attrition": s.overview.SatisfactionByAttrition(view),
		"balance_by_tenure":         s.overview.BalanceByTenure(view),
		"columns":                   s.overview.ColumnSummaries(view),
	})
}

func (s *APIServer) handleAPISnapshot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.engine.Snapshot(s.selection(r)))
}

func (s *APIServer) handleAPIModelReport(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.bundle.Report)
}
