package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthStatus represents process liveness
type HealthStatus struct {
	Status    string   `json:"status"`
	Timestamp string   `json:"timestamp"`
	Uptime    string   `json:"uptime"`
	Sources   []string `json:"sources,omitempty"`
}

// ReadinessStatus represents readiness to serve digests
type ReadinessStatus struct {
	Ready     bool              `json:"ready"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// handleHealth handles liveness probe - /health
// Returns 200 while the process is alive, even if providers are down
func (s *Server) handleHealth(c *gin.Context) {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
	}

	if c.Query("verbose") == "true" {
		status.Sources = s.sources
	}

	c.JSON(http.StatusOK, status)
}

// handleReadiness handles readiness probe - /ready
// Ready once startup finished and at least one source is registered
func (s *Server) handleReadiness(c *gin.Context) {
	checks := map[string]string{"startup": "complete", "sources": "registered"}

	ready := s.isReady()
	if !ready {
		checks["startup"] = "pending"
	}
	if len(s.sources) == 0 {
		checks["sources"] = "none registered"
		ready = false
	}

	code := http.StatusOK
	if !ready {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, ReadinessStatus{
		Ready:     ready,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}
