package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"peoplelens/app"
	"peoplelens/internal"
	"peoplelens/internal/config"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// Server is the HTMX dashboard. One engine and one bundle serve every
// request; per-request state is limited to the department selection parsed
// from the query string.
type Server struct {
	router    *gin.Engine
	engine    *app.Engine
	overview  *app.OverviewService
	bundle    *app.Bundle
	charts    *ChartRenderer
	insights  *InsightWriter
	templates *template.Template
	logger    *internal.Logger
}

// NewServer wires the dashboard against a loaded bundle.
func NewServer(cfg *config.Config, bundle *app.Bundle) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	engine := app.NewEngineFromBundle(bundle)
	overview := app.NewOverviewService(engine)

	s := &Server{
		router:   gin.Default(),
		engine:   engine,
		overview: overview,
		bundle:   bundle,
		charts:   NewChartRenderer(overview, cfg.Charts),
		insights: NewInsightWriter(),
		logger:   internal.NewComponentLogger("Dashboard"),
	}

	if err := s.parseTemplates(); err != nil {
		return nil, err
	}
	s.setupStatic()
	s.setupRoutes()

	return s, nil
}

// parseTemplates loads the embedded page and fragment templates.
func (s *Server) parseTemplates() error {
	funcMap := template.FuncMap{
		"mul": func(a, b float64) float64 { return a * b },
		"add": func(a, b int) int { return a + b },
		"max": func(a, b float64) float64 {
			if a > b {
				return a
			}
			return b
		},
		"pct": func(v float64) string { return fmt.Sprintf("%.1f", v) },
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles,
		"templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	s.templates = templates
	return nil
}

// setupStatic serves the embedded static assets under /static.
func (s *Server) setupStatic() {
	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		s.logger.Error("Static filesystem unavailable: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the dashboard routes.
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/fragments/dashboard", s.handleDashboardFragment)

	s.router.GET("/charts/departments", s.handleDepartmentChart)
	s.router.GET("/charts/age", s.handleAgeChart)
	s.router.GET("/charts/satisfaction", s.handleSatisfactionChart)
	s.router.GET("/charts/balance", s.handleBalanceChart)
	s.router.GET("/charts/importance", s.handleImportanceChart)
	s.router.GET("/charts/groups/:dimension", s.handleGroupChart)

	s.router.GET("/healthz", s.handleHealth)
}

// Start runs the dashboard on addr until the process exits.
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting dashboard on http://%s", addr)
	return s.router.Run(addr)
}

// Router exposes the handler tree, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"rows":   s.engine.Dataset().Len(),
		"model":  s.bundle.Model.Algorithm(),
	})
}

// Template helpers
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(c.Writer, templateName, data); err != nil {
		s.logger.Error("Template %s failed: %v", templateName, err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

func (s *Server) renderPartial(c *gin.Context, templateName string, data interface{}) {
	s.renderTemplate(c, templateName, data)
}
