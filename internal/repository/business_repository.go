package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/bvester/matching-api/internal/models"
)

// businessRepository implements BusinessRepository
type businessRepository struct {
	db dbExecutor
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db dbExecutor) BusinessRepository {
	return &businessRepository{db: db}
}

const businessColumns = `id, name, sector, growth_stage, risk_score, funding_goal,
	min_investment, esg_scores, projected_return, location, is_active, created_at, updated_at`

func scanBusiness(scanner interface{ Scan(...interface{}) error }, business *models.BusinessProfile) error {
	return scanner.Scan(
		&business.ID, &business.Name, &business.Sector, &business.GrowthStage,
		&business.RiskScore, &business.FundingGoal, &business.MinInvestment,
		&business.ESGScores, &business.ProjectedReturn, &business.Location,
		&business.IsActive, &business.CreatedAt, &business.UpdatedAt,
	)
}

// GetByID retrieves a business profile by ID
func (r *businessRepository) GetByID(id uuid.UUID) (*models.BusinessProfile, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1`

	business := &models.BusinessProfile{}
	if err := scanBusiness(r.db.QueryRow(query, id), business); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("business not found")
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}

	return business, nil
}

// Create creates a new business profile
func (r *businessRepository) Create(business *models.BusinessProfile) error {
	if business.ID == uuid.Nil {
		business.ID = uuid.New()
	}

	now := time.Now()
	business.CreatedAt = now
	business.UpdatedAt = now

	query := `
		INSERT INTO businesses (id, name, sector, growth_stage, risk_score, funding_goal,
			min_investment, esg_scores, projected_return, location, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(query,
		business.ID, business.Name, business.Sector, business.GrowthStage,
		business.RiskScore, business.FundingGoal, business.MinInvestment,
		business.ESGScores, business.ProjectedReturn, business.Location,
		business.IsActive, business.CreatedAt, business.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}

	return nil
}

// Update updates an existing business profile
func (r *businessRepository) Update(business *models.BusinessProfile) error {
	business.UpdatedAt = time.Now()

	query := `
		UPDATE businesses
		SET name = $2, sector = $3, growth_stage = $4, risk_score = $5,
			funding_goal = $6, min_investment = $7, esg_scores = $8,
			projected_return = $9, location = $10, is_active = $11, updated_at = $12
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		business.ID, business.Name, business.Sector, business.GrowthStage,
		business.RiskScore, business.FundingGoal, business.MinInvestment,
		business.ESGScores, business.ProjectedReturn, business.Location,
		business.IsActive, business.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("business not found")
	}

	return nil
}

// Delete removes a business profile
func (r *businessRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM businesses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete business: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("business not found")
	}

	return nil
}

// GetCandidates retrieves the active-business candidate pool for an
// investor→business ranking call
func (r *businessRepository) GetCandidates(filters BusinessFilters) ([]models.BusinessProfile, error) {
	var conditions []string
	var args []interface{}
	argIdx := 1

	conditions = append(conditions, "is_active = true")

	if len(filters.Sectors) > 0 {
		sectors := make([]string, len(filters.Sectors))
		for i, s := range filters.Sectors {
			sectors[i] = string(s)
		}
		conditions = append(conditions, fmt.Sprintf("sector = ANY($%d)", argIdx))
		args = append(args, pq.Array(sectors))
		argIdx++
	}

	if len(filters.Countries) > 0 {
		conditions = append(conditions, fmt.Sprintf("location->>'country' = ANY($%d)", argIdx))
		args = append(args, pq.Array(filters.Countries))
		argIdx++
	}

	if filters.MinFunding != nil {
		conditions = append(conditions, fmt.Sprintf("funding_goal >= $%d", argIdx))
		args = append(args, *filters.MinFunding)
		argIdx++
	}

	if filters.MaxFunding != nil {
		conditions = append(conditions, fmt.Sprintf("funding_goal <= $%d", argIdx))
		args = append(args, *filters.MaxFunding)
		argIdx++
	}

	query := `SELECT ` + businessColumns + ` FROM businesses WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY created_at DESC`

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filters.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query businesses: %w", err)
	}
	defer rows.Close()

	var businesses []models.BusinessProfile
	for rows.Next() {
		var business models.BusinessProfile
		if err := scanBusiness(rows, &business); err != nil {
			return nil, fmt.Errorf("failed to scan business: %w", err)
		}
		businesses = append(businesses, business)
	}

	return businesses, rows.Err()
}
