package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/bvester/matching-api/internal/models"
)

// signalRepository implements SignalRepository
type signalRepository struct {
	db dbExecutor
}

// NewSignalRepository creates a new signal repository
func NewSignalRepository(db dbExecutor) SignalRepository {
	return &signalRepository{db: db}
}

// GetInvestorBehavior retrieves historical performance data for an investor.
// Returns nil without error when no behavior has been recorded yet.
func (r *signalRepository) GetInvestorBehavior(investorID uuid.UUID) (*models.InvestorBehavior, error) {
	query := `
		SELECT investor_id, success_rate, sector_performance, updated_at
		FROM investor_behavior WHERE investor_id = $1
	`

	behavior := &models.InvestorBehavior{}
	err := r.db.QueryRow(query, investorID).Scan(
		&behavior.InvestorID, &behavior.SuccessRate,
		&behavior.SectorPerformance, &behavior.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get investor behavior: %w", err)
	}

	return behavior, nil
}

// GetMarketTrends retrieves the latest market trend snapshot.
// Returns nil without error when no snapshot exists.
func (r *signalRepository) GetMarketTrends() (*models.MarketTrends, error) {
	query := `
		SELECT trending_sectors, growing_regions, updated_at
		FROM market_trends ORDER BY updated_at DESC LIMIT 1
	`

	trends := &models.MarketTrends{}
	err := r.db.QueryRow(query).Scan(
		&trends.TrendingSectors, &trends.GrowingRegions, &trends.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get market trends: %w", err)
	}

	return trends, nil
}

// GetSimilarInvestors finds active investors with overlapping sector
// preferences or a close risk tolerance, along with the sectors they
// currently hold investments in
func (r *signalRepository) GetSimilarInvestors(investor *models.InvestorProfile) ([]models.PeerInvestor, error) {
	sectors := make([]string, len(investor.Preferences.PreferredSectors))
	for i, s := range investor.Preferences.PreferredSectors {
		sectors[i] = string(s)
	}

	query := `
		SELECT i.id,
			COALESCE(array_agg(DISTINCT inv.sector) FILTER (WHERE inv.sector IS NOT NULL), '{}')
		FROM investors i
		LEFT JOIN investments inv ON inv.investor_id = i.id
		WHERE i.id != $1
		  AND i.is_active = true
		  AND (
			i.preferences->'preferred_sectors' ?| $2
			OR abs((i.preferences->>'risk_tolerance')::numeric - $3) <= 15
		  )
		GROUP BY i.id
		LIMIT 25
	`

	rows, err := r.db.Query(query,
		investor.ID, pq.Array(sectors), investor.Preferences.RiskTolerance)
	if err != nil {
		return nil, fmt.Errorf("failed to query similar investors: %w", err)
	}
	defer rows.Close()

	var peers []models.PeerInvestor
	for rows.Next() {
		var peer models.PeerInvestor
		var held []string
		if err := rows.Scan(&peer.InvestorID, pq.Array(&held)); err != nil {
			return nil, fmt.Errorf("failed to scan similar investor: %w", err)
		}
		for _, s := range held {
			peer.InvestedSectors = append(peer.InvestedSectors, models.Sector(s))
		}
		peers = append(peers, peer)
	}

	return peers, rows.Err()
}
