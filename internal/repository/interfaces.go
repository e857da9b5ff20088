package repository

import (
	"github.com/google/uuid"

	"github.com/bvester/matching-api/internal/models"
)

// InvestorRepository defines the interface for investor profile data access
type InvestorRepository interface {
	GetByID(id uuid.UUID) (*models.InvestorProfile, error)
	Create(investor *models.InvestorProfile) error
	Update(investor *models.InvestorProfile) error
	Delete(id uuid.UUID) error

	// Candidate pool retrieval for business→investor matching
	GetCandidates(filters InvestorFilters) ([]models.InvestorProfile, error)

	// GetStaleIDs returns active investors whose matches have not been
	// refreshed recently, oldest first
	GetStaleIDs(staleDays, limit int) ([]uuid.UUID, error)
}

// BusinessRepository defines the interface for business profile data access
type BusinessRepository interface {
	GetByID(id uuid.UUID) (*models.BusinessProfile, error)
	Create(business *models.BusinessProfile) error
	Update(business *models.BusinessProfile) error
	Delete(id uuid.UUID) error

	// Candidate pool retrieval for investor→business matching
	GetCandidates(filters BusinessFilters) ([]models.BusinessProfile, error)
}

// SignalRepository defines the interface for adjustment-pass signal sources.
// Each lookup may return partial or empty data without that being an error.
type SignalRepository interface {
	GetInvestorBehavior(investorID uuid.UUID) (*models.InvestorBehavior, error)
	GetMarketTrends() (*models.MarketTrends, error)
	GetSimilarInvestors(investor *models.InvestorProfile) ([]models.PeerInvestor, error)
}

// ActivityRepository defines the interface for match analytics records
type ActivityRepository interface {
	Record(activity *MatchActivity) error
	GetStats() (*MatchActivityStats, error)
}

// TransactionManager defines the interface for database transaction management
type TransactionManager interface {
	WithTransaction(fn func(repos *Repositories) error) error
}

// Repositories groups all repository interfaces
type Repositories struct {
	Investor InvestorRepository
	Business BusinessRepository
	Signal   SignalRepository
	Activity ActivityRepository
	Tx       TransactionManager
}

// BusinessFilters narrows the business candidate pool
type BusinessFilters struct {
	Sectors    []models.Sector
	Countries  []string
	MinFunding *float64
	MaxFunding *float64
	Limit      int
}

// InvestorFilters narrows the investor candidate pool
type InvestorFilters struct {
	Sectors   []models.Sector
	Countries []string
	MinBudget *float64
	Limit     int
}
