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

// investorRepository implements InvestorRepository
type investorRepository struct {
	db dbExecutor
}

// NewInvestorRepository creates a new investor repository
func NewInvestorRepository(db dbExecutor) InvestorRepository {
	return &investorRepository{db: db}
}

const investorColumns = `id, name, preferences, location, committed_amount, is_active, created_at, updated_at`

// GetByID retrieves an investor profile by ID
func (r *investorRepository) GetByID(id uuid.UUID) (*models.InvestorProfile, error) {
	query := `SELECT ` + investorColumns + ` FROM investors WHERE id = $1`

	investor := &models.InvestorProfile{}
	err := r.db.QueryRow(query, id).Scan(
		&investor.ID, &investor.Name, &investor.Preferences, &investor.Location,
		&investor.CommittedAmount, &investor.IsActive,
		&investor.CreatedAt, &investor.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("investor not found")
		}
		return nil, fmt.Errorf("failed to get investor: %w", err)
	}

	return investor, nil
}

// Create creates a new investor profile
func (r *investorRepository) Create(investor *models.InvestorProfile) error {
	if investor.ID == uuid.Nil {
		investor.ID = uuid.New()
	}

	now := time.Now()
	investor.CreatedAt = now
	investor.UpdatedAt = now

	query := `
		INSERT INTO investors (id, name, preferences, location, committed_amount, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(query,
		investor.ID, investor.Name, investor.Preferences, investor.Location,
		investor.CommittedAmount, investor.IsActive,
		investor.CreatedAt, investor.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create investor: %w", err)
	}

	return nil
}

// Update updates an existing investor profile
func (r *investorRepository) Update(investor *models.InvestorProfile) error {
	investor.UpdatedAt = time.Now()

	query := `
		UPDATE investors
		SET name = $2, preferences = $3, location = $4, committed_amount = $5,
			is_active = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		investor.ID, investor.Name, investor.Preferences, investor.Location,
		investor.CommittedAmount, investor.IsActive, investor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update investor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("investor not found")
	}

	return nil
}

// Delete removes an investor profile
func (r *investorRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM investors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete investor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("investor not found")
	}

	return nil
}

// GetCandidates retrieves the active-investor candidate pool for a
// business→investor ranking call
func (r *investorRepository) GetCandidates(filters InvestorFilters) ([]models.InvestorProfile, error) {
	var conditions []string
	var args []interface{}
	argIdx := 1

	conditions = append(conditions, "is_active = true")

	if len(filters.Sectors) > 0 {
		sectors := make([]string, len(filters.Sectors))
		for i, s := range filters.Sectors {
			sectors[i] = string(s)
		}
		conditions = append(conditions, fmt.Sprintf(
			"preferences->'preferred_sectors' ?| $%d", argIdx))
		args = append(args, pq.Array(sectors))
		argIdx++
	}

	if len(filters.Countries) > 0 {
		conditions = append(conditions, fmt.Sprintf(
			"preferences->'preferred_regions' ?| $%d", argIdx))
		args = append(args, pq.Array(filters.Countries))
		argIdx++
	}

	if filters.MinBudget != nil {
		conditions = append(conditions, fmt.Sprintf(
			"(preferences->>'max_investment_amount')::numeric >= $%d", argIdx))
		args = append(args, *filters.MinBudget)
		argIdx++
	}

	query := `SELECT ` + investorColumns + ` FROM investors WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY created_at DESC`

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filters.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query investors: %w", err)
	}
	defer rows.Close()

	var investors []models.InvestorProfile
	for rows.Next() {
		var investor models.InvestorProfile
		err := rows.Scan(
			&investor.ID, &investor.Name, &investor.Preferences, &investor.Location,
			&investor.CommittedAmount, &investor.IsActive,
			&investor.CreatedAt, &investor.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investor: %w", err)
		}
		investors = append(investors, investor)
	}

	return investors, rows.Err()
}

// GetStaleIDs returns active investors with no match activity recorded in
// the last staleDays days, never-matched investors first
func (r *investorRepository) GetStaleIDs(staleDays, limit int) ([]uuid.UUID, error) {
	refreshDate := time.Now().AddDate(0, 0, -staleDays)

	query := `
		WITH latest_activity AS (
			SELECT anchor_id, MAX(created_at) as last_matched
			FROM match_activity
			WHERE direction = $1
			GROUP BY anchor_id
		)
		SELECT i.id
		FROM investors i
		LEFT JOIN latest_activity la ON i.id = la.anchor_id
		WHERE i.is_active = true
		  AND (la.anchor_id IS NULL OR la.last_matched < $2)
		ORDER BY
			CASE WHEN la.anchor_id IS NULL THEN 0 ELSE 1 END,
			COALESCE(la.last_matched, i.created_at) ASC
		LIMIT $3
	`

	rows, err := r.db.Query(query, DirectionInvestorToBusiness, refreshDate, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale investors: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan investor id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
