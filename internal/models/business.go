package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BusinessProfile represents a business seeking investment
type BusinessProfile struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	Name            string      `json:"name" db:"name"`
	Sector          Sector      `json:"sector" db:"sector"`
	GrowthStage     GrowthStage `json:"growth_stage" db:"growth_stage"`
	RiskScore       float64     `json:"risk_score" db:"risk_score"`
	FundingGoal     float64     `json:"funding_goal" db:"funding_goal"`
	MinInvestment   float64     `json:"min_investment" db:"min_investment"`
	ESGScores       ESGScores   `json:"esg_scores" db:"esg_scores"`
	ProjectedReturn float64     `json:"projected_return" db:"projected_return"`
	Location        GeoLocation `json:"location" db:"location"`
	IsActive        bool        `json:"is_active" db:"is_active"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`
}

// ESGScores holds per-dimension 0-100 scores as JSON.
// A nil dimension means the business reported no data for it.
type ESGScores struct {
	Environmental *float64 `json:"environmental,omitempty"`
	Social        *float64 `json:"social,omitempty"`
	Governance    *float64 `json:"governance,omitempty"`
}

// Value implements driver.Valuer for ESGScores
func (e ESGScores) Value() (driver.Value, error) {
	return json.Marshal(e)
}

// Scan implements sql.Scanner for ESGScores
func (e *ESGScores) Scan(value interface{}) error {
	if value == nil {
		*e = ESGScores{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into ESGScores", value)
	}

	return json.Unmarshal(bytes, e)
}

// MarketTrends captures aggregate market signals used by the adjustment pass
type MarketTrends struct {
	TrendingSectors SectorList `json:"trending_sectors" db:"trending_sectors"`
	GrowingRegions  StringList `json:"growing_regions" db:"growing_regions"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// HasTrendingSector reports whether the sector is currently trending
func (m MarketTrends) HasTrendingSector(sector Sector) bool {
	for _, s := range m.TrendingSectors {
		if s == sector {
			return true
		}
	}
	return false
}

// HasGrowingRegion reports whether the country is a growing region
func (m MarketTrends) HasGrowingRegion(country string) bool {
	for _, r := range m.GrowingRegions {
		if r == country {
			return true
		}
	}
	return false
}

// SectorList is a JSON-backed list of sector tags
type SectorList []Sector

// Value implements driver.Valuer for SectorList
func (s SectorList) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for SectorList
func (s *SectorList) Scan(value interface{}) error {
	if value == nil {
		*s = SectorList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into SectorList", value)
	}

	return json.Unmarshal(bytes, s)
}

// StringList is a JSON-backed list of strings
type StringList []string

// Value implements driver.Valuer for StringList
func (s StringList) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for StringList
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = StringList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	return json.Unmarshal(bytes, s)
}

// Investment represents a committed investment from an investor into a business
type Investment struct {
	ID         uuid.UUID `json:"id" db:"id"`
	InvestorID uuid.UUID `json:"investor_id" db:"investor_id"`
	BusinessID uuid.UUID `json:"business_id" db:"business_id"`
	Sector     Sector    `json:"sector" db:"sector"`
	Amount     float64   `json:"amount" db:"amount"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
