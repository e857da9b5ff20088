package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bvester/matching-api/internal/services"
	"github.com/bvester/matching-api/pkg/config"
)

// PipelineHandler handles match refresh pipeline operations
type PipelineHandler struct {
	pipeline *services.MatchPipeline
	cfg      *config.Config
}

// NewPipelineHandler creates a new pipeline handler
func NewPipelineHandler(pipeline *services.MatchPipeline, cfg *config.Config) *PipelineHandler {
	return &PipelineHandler{pipeline: pipeline, cfg: cfg}
}

// GetPipelineStatus returns the refresh pipeline state and coverage counts
func (h *PipelineHandler) GetPipelineStatus(c *gin.Context) {
	status, err := h.pipeline.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get pipeline status: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"timestamp": time.Now(),
	})
}

// GetPipelineConfig returns the active pipeline configuration
func (h *PipelineHandler) GetPipelineConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"config":    services.PipelineConfigFrom(h.cfg),
		"timestamp": time.Now(),
	})
}

// StartPipeline starts the automated refresh pipeline
func (h *PipelineHandler) StartPipeline(c *gin.Context) {
	if err := h.pipeline.Start(services.PipelineConfigFrom(h.cfg)); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Match pipeline started",
		"timestamp": time.Now(),
	})
}

// StopPipeline stops the automated refresh pipeline
func (h *PipelineHandler) StopPipeline(c *gin.Context) {
	if err := h.pipeline.Stop(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Match pipeline stopped",
		"timestamp": time.Now(),
	})
}

// RunPipelineOnce executes a single refresh cycle synchronously
func (h *PipelineHandler) RunPipelineOnce(c *gin.Context) {
	stats, err := h.pipeline.RunOnce(services.PipelineConfigFrom(h.cfg))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Refresh cycle failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Refresh cycle completed",
		"stats":     stats,
		"timestamp": time.Now(),
	})
}
