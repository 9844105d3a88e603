package ui

import (
	"net/http"
	"strconv"

	"labelops/internal/analytics"
	"labelops/internal/export"

	"github.com/gin-gonic/gin"
)

const (
	maxEdgeCaseLimit = 500
	defaultRunLimit  = 10
	maxRunLimit      = 100
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// dashboard loads metrics or writes a 500 and returns nil
func (s *Server) dashboard(c *gin.Context, edgeCaseLimit int) *analytics.Dashboard {
	d, err := s.source.Dashboard(c.Request.Context(), edgeCaseLimit)
	if err != nil {
		s.logger.Error("failed to load dashboard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil
	}
	return d
}

func (s *Server) handleOverview(c *gin.Context) {
	d := s.dashboard(c, analytics.DefaultEdgeCaseLimit)
	if d == nil {
		return
	}
	c.JSON(http.StatusOK, d.Overview)
}

func (s *Server) handleLabelers(c *gin.Context) {
	d := s.dashboard(c, analytics.DefaultEdgeCaseLimit)
	if d == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"labelers":          d.Labelers,
		"weighted_accuracy": d.WeightedAccuracy,
	})
}

func (s *Server) handleAccuracy(c *gin.Context) {
	d := s.dashboard(c, analytics.DefaultEdgeCaseLimit)
	if d == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"tiers": d.Tiers})
}

func (s *Server) handleEdgeCases(c *gin.Context) {
	limit, ok := queryLimit(c, analytics.DefaultEdgeCaseLimit, maxEdgeCaseLimit)
	if !ok {
		return
	}
	d := s.dashboard(c, limit)
	if d == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"edge_cases": d.EdgeCases,
		"count":      len(d.EdgeCases),
	})
}

func (s *Server) handleCalibration(c *gin.Context) {
	d := s.dashboard(c, analytics.DefaultEdgeCaseLimit)
	if d == nil {
		return
	}
	c.JSON(http.StatusOK, d.Calibration)
}

func (s *Server) handleExportXLSX(c *gin.Context) {
	d := s.dashboard(c, analytics.DefaultEdgeCaseLimit)
	if d == nil {
		return
	}
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="labeling-dashboard.xlsx"`)
	if err := export.WriteXLSX(c.Writer, d); err != nil {
		s.logger.Error("xlsx export failed: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

func (s *Server) handleExportCSV(c *gin.Context) {
	d := s.dashboard(c, analytics.DefaultEdgeCaseLimit)
	if d == nil {
		return
	}
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="labeler-performance.csv"`)
	if err := export.WriteCSV(c.Writer, d.Labelers); err != nil {
		s.logger.Error("csv export failed: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

func (s *Server) handleReport(c *gin.Context) {
	d := s.dashboard(c, analytics.DefaultEdgeCaseLimit)
	if d == nil {
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", RenderReportHTML(d))
}

func (s *Server) handleRuns(c *gin.Context) {
	limit, ok := queryLimit(c, defaultRunLimit, maxRunLimit)
	if !ok {
		return
	}
	runs, err := s.runs.Latest(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list simulation runs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}

// queryLimit parses ?limit=N in [1, max]. On a bad value it writes a 400
// and reports false.
func queryLimit(c *gin.Context, def, upper int) (int, bool) {
	raw, present := c.GetQuery("limit")
	if !present {
		return def, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > upper {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "limit must be an integer between 1 and " + strconv.Itoa(upper),
		})
		return 0, false
	}
	return limit, true
}
