package ui

import (
	"context"

	"labelops/internal"
	"labelops/internal/analytics"
	"labelops/ports"

	"github.com/gin-gonic/gin"
)

// DashboardSource computes dashboard metrics on demand
type DashboardSource interface {
	Dashboard(ctx context.Context, edgeCaseLimit int) (*analytics.Dashboard, error)
}

// Server serves the labeling operations dashboard API
type Server struct {
	router *gin.Engine
	source DashboardSource
	runs   ports.RunRepository
	logger *internal.Logger
}

// NewServer creates a server and registers its routes. runs may be nil,
// in which case /api/runs is not registered.
func NewServer(source DashboardSource, runs ports.RunRepository, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	s := &Server{
		router: gin.New(),
		source: source,
		runs:   runs,
		logger: logger.With("ui"),
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/report", s.handleReport)

	api := s.router.Group("/api")
	{
		api.GET("/overview", s.handleOverview)
		api.GET("/labelers", s.handleLabelers)
		api.GET("/accuracy", s.handleAccuracy)
		api.GET("/edge-cases", s.handleEdgeCases)
		api.GET("/calibration", s.handleCalibration)
		api.GET("/export.xlsx", s.handleExportXLSX)
		api.GET("/export.csv", s.handleExportCSV)
		if s.runs != nil {
			api.GET("/runs", s.handleRuns)
		}
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() *gin.Engine {
	return s.router
}

// Start serves on addr until the listener fails
func (s *Server) Start(addr string) error {
	s.logger.Info("starting dashboard on http://%s", addr)
	return s.router.Run(addr)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.logger.Debug("%s %s -> %d", c.Request.Method, c.Request.URL.Path, c.Writer.Status())
	}
}
