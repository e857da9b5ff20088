package services

import (
	"database/sql"

	"github.com/bvester/matching-api/internal/matching"
	"github.com/bvester/matching-api/internal/models"
	"github.com/bvester/matching-api/internal/repository"
	"github.com/bvester/matching-api/pkg/config"
)

// Services contains all application services
type Services struct {
	Matching MatchingService
	Profile  ProfileService
}

// MatchingService defines the interface for match ranking business logic
type MatchingService interface {
	FindMatchesForInvestor(investorID string, opts MatchOptions) (*InvestorMatchResponse, error)
	FindMatchesForBusiness(businessID string, opts MatchOptions) (*BusinessMatchResponse, error)
	ScorePair(investorID, businessID string) (*PairScore, error)
	GetActivityStats() (*repository.MatchActivityStats, error)
}

// ProfileService defines the interface for investor/business profile management
type ProfileService interface {
	CreateInvestor(investor *models.InvestorProfile) error
	GetInvestor(id string) (*models.InvestorProfile, error)
	UpdateInvestor(investor *models.InvestorProfile) error
	DeleteInvestor(id string) error

	CreateBusiness(business *models.BusinessProfile) error
	GetBusiness(id string) (*models.BusinessProfile, error)
	UpdateBusiness(business *models.BusinessProfile) error
	DeleteBusiness(id string) error
}

// NewServices creates a new Services instance with all dependencies
func NewServices(db *sql.DB, cfg *config.Config) *Services {
	repos := repository.NewRepositories(db)
	scorer := matching.NewScorer(matching.DefaultConfig())

	return &Services{
		Matching: newMatchingService(repos, scorer, cfg),
		Profile:  newProfileService(repos),
	}
}

// NewMatchingService creates a standalone matching service
func NewMatchingService(repos *repository.Repositories, scorer *matching.Scorer, cfg *config.Config) MatchingService {
	return newMatchingService(repos, scorer, cfg)
}
