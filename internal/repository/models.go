package repository

import (
	"time"

	"github.com/google/uuid"
)

// Match directions recorded in analytics
const (
	DirectionInvestorToBusiness = "investor_to_business"
	DirectionBusinessToInvestor = "business_to_investor"
)

// MatchActivity is the summary analytics record written after each ranking call
type MatchActivity struct {
	ID                   uuid.UUID `json:"id"`
	Direction            string    `json:"direction"`
	AnchorID             uuid.UUID `json:"anchor_id"`
	CandidatesConsidered int       `json:"candidates_considered"`
	QualifiedMatches     int       `json:"qualified_matches"`
	ReturnedMatches      int       `json:"returned_matches"`
	AverageScore         float64   `json:"average_score"`
	Degraded             bool      `json:"degraded"`
	CreatedAt            time.Time `json:"created_at"`
}

// MatchActivityStats aggregates recorded match activity for analytics
type MatchActivityStats struct {
	TotalRankings        int     `json:"total_rankings"`
	InvestorRankings     int     `json:"investor_rankings"`
	BusinessRankings     int     `json:"business_rankings"`
	DegradedRankings     int     `json:"degraded_rankings"`
	AverageScore         float64 `json:"average_score"`
	AverageQualified     float64 `json:"average_qualified"`
	CandidatesConsidered int     `json:"candidates_considered"`
}
