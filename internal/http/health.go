package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/careerpath/internal/database"
)

type HealthResponse struct {
	Status      string            `json:"status"`
	Time        string            `json:"time"`
	Version     string            `json:"version,omitempty"`
	Checks      map[string]string `json:"checks"`
	NextCleanup *time.Time        `json:"next_cleanup,omitempty"`
}

// Pinger is an optional dependency whose reachability is reported by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CleanupStatus is implemented by scheduler.AuditCleanupScheduler.
type CleanupStatus interface {
	IsRunning() bool
	NextRunTime() *time.Time
}

type HealthController struct {
	db         *database.Database
	tokenStore Pinger
	cleanup    CleanupStatus
	version    string
}

func NewHealthController(db *database.Database, tokenStore Pinger, version string) *HealthController {
	return &HealthController{
		db:         db,
		tokenStore: tokenStore,
		version:    version,
	}
}

// WithCleanup adds the audit cleanup schedule to the report.
func (h *HealthController) WithCleanup(cleanup CleanupStatus) *HealthController {
	h.cleanup = cleanup
	return h
}

// Status reports database and token store connectivity and the cleanup schedule.
// GET /health
func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	if h.tokenStore != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.tokenStore.Ping(ctx); err != nil {
			checks["token_store"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["token_store"] = "ok"
		}
	} else {
		checks["token_store"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	// A stopped cleanup job never makes the service unhealthy
	if h.cleanup != nil {
		if h.cleanup.IsRunning() {
			checks["audit_cleanup"] = "scheduled"
			health.NextCleanup = h.cleanup.NextRunTime()
		} else {
			checks["audit_cleanup"] = "disabled"
		}
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
