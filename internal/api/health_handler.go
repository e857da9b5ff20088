package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bvester/matching-api/internal/database"
)

// HealthHandler reports service and database health
type HealthHandler struct {
	db *database.DB
}

func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// GetHealth returns overall system health including database connectivity
func (h *HealthHandler) GetHealth(c *gin.Context) {
	dbStatus := "healthy"
	httpStatus := http.StatusOK
	if err := h.db.HealthCheck(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
		httpStatus = http.StatusServiceUnavailable
	}

	stats := h.db.GetStats()
	c.JSON(httpStatus, gin.H{
		"status": dbStatus,
		"database": gin.H{
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
		},
		"timestamp": time.Now(),
	})
}
