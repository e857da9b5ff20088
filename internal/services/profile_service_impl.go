package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bvester/matching-api/internal/errors"
	"github.com/bvester/matching-api/internal/models"
	"github.com/bvester/matching-api/internal/repository"
)

// profileServiceImpl implements ProfileService
type profileServiceImpl struct {
	repos *repository.Repositories
}

// newProfileService creates a new profile service implementation
func newProfileService(repos *repository.Repositories) ProfileService {
	return &profileServiceImpl{repos: repos}
}

// CreateInvestor validates and stores a new investor profile
func (s *profileServiceImpl) CreateInvestor(investor *models.InvestorProfile) error {
	if err := validateInvestor(investor); err != nil {
		return errors.ValidationError("invalid investor profile", err)
	}
	if err := s.repos.Investor.Create(investor); err != nil {
		return errors.DatabaseError("failed to create investor", err).WithOperation("CreateInvestor")
	}
	return nil
}

// GetInvestor retrieves an investor profile by ID
func (s *profileServiceImpl) GetInvestor(id string) (*models.InvestorProfile, error) {
	investorID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.InvalidInput("invalid investor ID", err)
	}

	investor, err := s.repos.Investor.GetByID(investorID)
	if err != nil {
		return nil, errors.NotFound("investor not found", err).WithOperation("GetInvestor")
	}
	return investor, nil
}

// UpdateInvestor validates and updates an existing investor profile
func (s *profileServiceImpl) UpdateInvestor(investor *models.InvestorProfile) error {
	if err := validateInvestor(investor); err != nil {
		return errors.ValidationError("invalid investor profile", err)
	}
	if err := s.repos.Investor.Update(investor); err != nil {
		return errors.DatabaseError("failed to update investor", err).WithOperation("UpdateInvestor")
	}
	return nil
}

// DeleteInvestor removes an investor profile
func (s *profileServiceImpl) DeleteInvestor(id string) error {
	investorID, err := uuid.Parse(id)
	if err != nil {
		return errors.InvalidInput("invalid investor ID", err)
	}
	if err := s.repos.Investor.Delete(investorID); err != nil {
		return errors.DatabaseError("failed to delete investor", err).WithOperation("DeleteInvestor")
	}
	return nil
}

// CreateBusiness validates and stores a new business profile
func (s *profileServiceImpl) CreateBusiness(business *models.BusinessProfile) error {
	if err := validateBusiness(business); err != nil {
		return errors.ValidationError("invalid business profile", err)
	}
	if err := s.repos.Business.Create(business); err != nil {
		return errors.DatabaseError("failed to create business", err).WithOperation("CreateBusiness")
	}
	return nil
}

// GetBusiness retrieves a business profile by ID
func (s *profileServiceImpl) GetBusiness(id string) (*models.BusinessProfile, error) {
	businessID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.InvalidInput("invalid business ID", err)
	}

	business, err := s.repos.Business.GetByID(businessID)
	if err != nil {
		return nil, errors.NotFound("business not found", err).WithOperation("GetBusiness")
	}
	return business, nil
}

// UpdateBusiness validates and updates an existing business profile
func (s *profileServiceImpl) UpdateBusiness(business *models.BusinessProfile) error {
	if err := validateBusiness(business); err != nil {
		return errors.ValidationError("invalid business profile", err)
	}
	if err := s.repos.Business.Update(business); err != nil {
		return errors.DatabaseError("failed to update business", err).WithOperation("UpdateBusiness")
	}
	return nil
}

// DeleteBusiness removes a business profile
func (s *profileServiceImpl) DeleteBusiness(id string) error {
	businessID, err := uuid.Parse(id)
	if err != nil {
		return errors.InvalidInput("invalid business ID", err)
	}
	if err := s.repos.Business.Delete(businessID); err != nil {
		return errors.DatabaseError("failed to delete business", err).WithOperation("DeleteBusiness")
	}
	return nil
}

func validateInvestor(investor *models.InvestorProfile) error {
	if investor.Name == "" {
		return fmt.Errorf("name is required")
	}

	prefs := investor.Preferences
	if prefs.RiskTolerance < 0 || prefs.RiskTolerance > 100 {
		return fmt.Errorf("risk tolerance must be between 0 and 100")
	}
	if prefs.MinInvestmentAmount > prefs.MaxInvestmentAmount {
		return fmt.Errorf("minimum investment amount exceeds maximum")
	}
	for _, sector := range prefs.PreferredSectors {
		if !sector.IsValid() {
			return fmt.Errorf("unknown sector %q", sector)
		}
	}
	for _, stage := range prefs.PreferredStages {
		if !stage.IsValid() {
			return fmt.Errorf("unknown growth stage %q", stage)
		}
	}

	return nil
}

func validateBusiness(business *models.BusinessProfile) error {
	if business.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !business.Sector.IsValid() {
		return fmt.Errorf("unknown sector %q", business.Sector)
	}
	if !business.GrowthStage.IsValid() {
		return fmt.Errorf("unknown growth stage %q", business.GrowthStage)
	}
	if business.RiskScore < 0 || business.RiskScore > 100 {
		return fmt.Errorf("risk score must be between 0 and 100")
	}
	if business.FundingGoal <= 0 {
		return fmt.Errorf("funding goal must be positive")
	}
	if business.MinInvestment < 0 || business.MinInvestment > business.FundingGoal {
		return fmt.Errorf("minimum investment must be between 0 and the funding goal")
	}

	return nil
}
