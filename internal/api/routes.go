package api

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/bvester/matching-api/internal/database"
	"github.com/bvester/matching-api/internal/services"
	"github.com/bvester/matching-api/pkg/config"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, db *sql.DB, cfg *config.Config) error {
	// Wrap sql.DB in our database wrapper
	dbWrapper := &database.DB{DB: db}

	// Create centralized services
	svcs := services.NewServices(db, cfg)
	pipeline := services.NewMatchPipeline(db, cfg)

	// Create handlers with proper service injection
	matchingHandler := NewMatchingHandler(svcs.Matching)
	profilesHandler := NewProfilesHandler(svcs.Profile)
	pipelineHandler := NewPipelineHandler(pipeline, cfg)
	healthHandler := NewHealthHandler(dbWrapper)

	api := r.Group("/api/v1")
	{
		// Health monitoring
		api.GET("/health", healthHandler.GetHealth)

		// Investor profile endpoints
		api.POST("/investors", profilesHandler.CreateInvestor)
		api.GET("/investors/:id", profilesHandler.GetInvestor)
		api.PUT("/investors/:id", profilesHandler.UpdateInvestor)
		api.DELETE("/investors/:id", profilesHandler.DeleteInvestor)

		// Business profile endpoints
		api.POST("/businesses", profilesHandler.CreateBusiness)
		api.GET("/businesses/:id", profilesHandler.GetBusiness)
		api.PUT("/businesses/:id", profilesHandler.UpdateBusiness)
		api.DELETE("/businesses/:id", profilesHandler.DeleteBusiness)

		// Matching endpoints
		api.GET("/matching/investors/:id/matches", matchingHandler.FindMatchesForInvestor)
		api.GET("/matching/businesses/:id/matches", matchingHandler.FindMatchesForBusiness)
		api.GET("/matching/pairs/:investor_id/:business_id", matchingHandler.ScorePair)
		api.GET("/matching/stats", matchingHandler.GetActivityStats)

		// Automated refresh pipeline endpoints
		api.GET("/pipeline/status", pipelineHandler.GetPipelineStatus)
		api.GET("/pipeline/config", pipelineHandler.GetPipelineConfig)
		api.POST("/pipeline/start", pipelineHandler.StartPipeline)
		api.POST("/pipeline/stop", pipelineHandler.StopPipeline)
		api.POST("/pipeline/run-once", pipelineHandler.RunPipelineOnce)
	}

	return nil
}
