package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bvester/matching-api/internal/errors"
	"github.com/bvester/matching-api/internal/models"
	"github.com/bvester/matching-api/internal/services"
)

// MatchingHandler handles match ranking operations
type MatchingHandler struct {
	matchingService services.MatchingService
}

// NewMatchingHandler creates a new matching handler with service injection
func NewMatchingHandler(matchingService services.MatchingService) *MatchingHandler {
	return &MatchingHandler{matchingService: matchingService}
}

// FindMatchesForInvestor returns ranked business matches for an investor
func (h *MatchingHandler) FindMatchesForInvestor(c *gin.Context) {
	investorID := c.Param("id")
	opts := parseMatchOptions(c)

	response, err := h.matchingService.FindMatchesForInvestor(investorID, opts)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"investor_id": investorID,
		"result":      response,
		"timestamp":   time.Now(),
	})
}

// FindMatchesForBusiness returns ranked investor matches for a business
func (h *MatchingHandler) FindMatchesForBusiness(c *gin.Context) {
	businessID := c.Param("id")
	opts := parseMatchOptions(c)

	response, err := h.matchingService.FindMatchesForBusiness(businessID, opts)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business_id": businessID,
		"result":      response,
		"timestamp":   time.Now(),
	})
}

// ScorePair returns the direct compatibility score for one investor/business pair
func (h *MatchingHandler) ScorePair(c *gin.Context) {
	investorID := c.Param("investor_id")
	businessID := c.Param("business_id")

	result, err := h.matchingService.ScorePair(investorID, businessID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":    result,
		"timestamp": time.Now(),
	})
}

// GetActivityStats returns aggregate match analytics
func (h *MatchingHandler) GetActivityStats(c *gin.Context) {
	stats, err := h.matchingService.GetActivityStats()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":     stats,
		"timestamp": time.Now(),
	})
}

// parseMatchOptions reads ranking knobs from query parameters
func parseMatchOptions(c *gin.Context) services.MatchOptions {
	opts := services.MatchOptions{}

	if raw := c.Query("min_score"); raw != "" {
		if minScore, err := strconv.Atoi(raw); err == nil {
			opts.MinScore = &minScore
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			opts.Limit = limit
		}
	}
	if raw := c.Query("sectors"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			opts.Sectors = append(opts.Sectors, models.Sector(strings.TrimSpace(s)))
		}
	}
	if raw := c.Query("countries"); raw != "" {
		for _, country := range strings.Split(raw, ",") {
			opts.Countries = append(opts.Countries, strings.TrimSpace(country))
		}
	}
	if raw := c.Query("min_funding"); raw != "" {
		if amount, err := strconv.ParseFloat(raw, 64); err == nil {
			opts.MinFunding = &amount
		}
	}
	if raw := c.Query("max_funding"); raw != "" {
		if amount, err := strconv.ParseFloat(raw, 64); err == nil {
			opts.MaxFunding = &amount
		}
	}

	return opts
}

// respondWithError maps application error codes to HTTP statuses
func respondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.CodeOf(err) {
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeValidationError:
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
