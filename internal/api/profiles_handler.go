package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bvester/matching-api/internal/models"
	"github.com/bvester/matching-api/internal/services"
)

// ProfilesHandler handles investor and business profile management
type ProfilesHandler struct {
	profileService services.ProfileService
}

// NewProfilesHandler creates a new profiles handler with service injection
func NewProfilesHandler(profileService services.ProfileService) *ProfilesHandler {
	return &ProfilesHandler{profileService: profileService}
}

// InvestorForm is the request body for creating/updating an investor
type InvestorForm struct {
	Name            string                     `json:"name" binding:"required"`
	Preferences     models.InvestorPreferences `json:"preferences" binding:"required"`
	Location        models.GeoLocation         `json:"location"`
	CommittedAmount float64                    `json:"committed_amount"`
	IsActive        *bool                      `json:"is_active"`
}

// BusinessForm is the request body for creating/updating a business
type BusinessForm struct {
	Name            string             `json:"name" binding:"required"`
	Sector          models.Sector      `json:"sector" binding:"required"`
	GrowthStage     models.GrowthStage `json:"growth_stage" binding:"required"`
	RiskScore       float64            `json:"risk_score"`
	FundingGoal     float64            `json:"funding_goal" binding:"required"`
	MinInvestment   float64            `json:"min_investment"`
	ESGScores       models.ESGScores   `json:"esg_scores"`
	ProjectedReturn float64            `json:"projected_return"`
	Location        models.GeoLocation `json:"location"`
	IsActive        *bool              `json:"is_active"`
}

// CreateInvestor creates a new investor profile
func (h *ProfilesHandler) CreateInvestor(c *gin.Context) {
	var form InvestorForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid investor format: " + err.Error()})
		return
	}

	investor := form.toModel(uuid.Nil)
	if err := h.profileService.CreateInvestor(investor); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Investor created successfully",
		"investor":  investor,
		"timestamp": time.Now(),
	})
}

// GetInvestor returns an investor profile
func (h *ProfilesHandler) GetInvestor(c *gin.Context) {
	investor, err := h.profileService.GetInvestor(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"investor":  investor,
		"timestamp": time.Now(),
	})
}

// UpdateInvestor updates an existing investor profile
func (h *ProfilesHandler) UpdateInvestor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid investor ID"})
		return
	}

	var form InvestorForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid investor format: " + err.Error()})
		return
	}

	investor := form.toModel(id)
	if err := h.profileService.UpdateInvestor(investor); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Investor updated successfully",
		"investor":  investor,
		"timestamp": time.Now(),
	})
}

// DeleteInvestor removes an investor profile
func (h *ProfilesHandler) DeleteInvestor(c *gin.Context) {
	if err := h.profileService.DeleteInvestor(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Investor deleted successfully",
		"timestamp": time.Now(),
	})
}

// CreateBusiness creates a new business profile
func (h *ProfilesHandler) CreateBusiness(c *gin.Context) {
	var form BusinessForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business format: " + err.Error()})
		return
	}

	business := form.toModel(uuid.Nil)
	if err := h.profileService.CreateBusiness(business); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Business created successfully",
		"business":  business,
		"timestamp": time.Now(),
	})
}

// GetBusiness returns a business profile
func (h *ProfilesHandler) GetBusiness(c *gin.Context) {
	business, err := h.profileService.GetBusiness(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business":  business,
		"timestamp": time.Now(),
	})
}

// UpdateBusiness updates an existing business profile
func (h *ProfilesHandler) UpdateBusiness(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		return
	}

	var form BusinessForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business format: " + err.Error()})
		return
	}

	business := form.toModel(id)
	if err := h.profileService.UpdateBusiness(business); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Business updated successfully",
		"business":  business,
		"timestamp": time.Now(),
	})
}

// DeleteBusiness removes a business profile
func (h *ProfilesHandler) DeleteBusiness(c *gin.Context) {
	if err := h.profileService.DeleteBusiness(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Business deleted successfully",
		"timestamp": time.Now(),
	})
}

func (f *InvestorForm) toModel(id uuid.UUID) *models.InvestorProfile {
	active := true
	if f.IsActive != nil {
		active = *f.IsActive
	}
	return &models.InvestorProfile{
		ID:              id,
		Name:            f.Name,
		Preferences:     f.Preferences,
		Location:        f.Location,
		CommittedAmount: f.CommittedAmount,
		IsActive:        active,
	}
}

func (f *BusinessForm) toModel(id uuid.UUID) *models.BusinessProfile {
	active := true
	if f.IsActive != nil {
		active = *f.IsActive
	}
	return &models.BusinessProfile{
		ID:              id,
		Name:            f.Name,
		Sector:          f.Sector,
		GrowthStage:     f.GrowthStage,
		RiskScore:       f.RiskScore,
		FundingGoal:     f.FundingGoal,
		MinInvestment:   f.MinInvestment,
		ESGScores:       f.ESGScores,
		ProjectedReturn: f.ProjectedReturn,
		Location:        f.Location,
		IsActive:        active,
	}
}
