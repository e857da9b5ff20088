package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// activityRepository implements ActivityRepository
type activityRepository struct {
	db dbExecutor
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db dbExecutor) ActivityRepository {
	return &activityRepository{db: db}
}

// Record stores one match-activity summary row
func (r *activityRepository) Record(activity *MatchActivity) error {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO match_activity (id, direction, anchor_id, candidates_considered,
			qualified_matches, returned_matches, average_score, degraded, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(query,
		activity.ID, activity.Direction, activity.AnchorID,
		activity.CandidatesConsidered, activity.QualifiedMatches,
		activity.ReturnedMatches, activity.AverageScore,
		activity.Degraded, activity.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to record match activity: %w", err)
	}

	return nil
}

// GetStats aggregates all recorded match activity
func (r *activityRepository) GetStats() (*MatchActivityStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE direction = $1),
			COUNT(*) FILTER (WHERE direction = $2),
			COUNT(*) FILTER (WHERE degraded),
			COALESCE(AVG(average_score), 0),
			COALESCE(AVG(qualified_matches), 0),
			COALESCE(SUM(candidates_considered), 0)
		FROM match_activity
	`

	stats := &MatchActivityStats{}
	err := r.db.QueryRow(query, DirectionInvestorToBusiness, DirectionBusinessToInvestor).Scan(
		&stats.TotalRankings, &stats.InvestorRankings, &stats.BusinessRankings,
		&stats.DegradedRankings, &stats.AverageScore, &stats.AverageQualified,
		&stats.CandidatesConsidered,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to get activity stats: %w", err)
	}

	return stats, nil
}
