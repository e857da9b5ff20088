package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InvestorProfile represents an investor record
type InvestorProfile struct {
	ID              uuid.UUID           `json:"id" db:"id"`
	Name            string              `json:"name" db:"name"`
	Preferences     InvestorPreferences `json:"preferences" db:"preferences"`
	Location        GeoLocation         `json:"location" db:"location"`
	CommittedAmount float64             `json:"committed_amount" db:"committed_amount"`
	IsActive        bool                `json:"is_active" db:"is_active"`
	CreatedAt       time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" db:"updated_at"`
}

// InvestorPreferences holds the structured matching preferences as JSON
type InvestorPreferences struct {
	RiskTolerance       float64       `json:"risk_tolerance"`
	PreferredSectors    []Sector      `json:"preferred_sectors"`
	MinInvestmentAmount float64       `json:"min_investment_amount"`
	MaxInvestmentAmount float64       `json:"max_investment_amount"`
	PreferredRegions    []string      `json:"preferred_regions"`
	ESGPreferences      ESGWeights    `json:"esg_preferences"`
	PreferredStages     []GrowthStage `json:"preferred_stages"`
	ExpectedReturn      float64       `json:"expected_return"`
	SeekDiversification bool          `json:"seek_diversification"`
}

// ESGWeights holds per-dimension importance weights (0 = no preference)
type ESGWeights struct {
	Environmental float64 `json:"environmental"`
	Social        float64 `json:"social"`
	Governance    float64 `json:"governance"`
}

// IsEmpty reports whether the investor expressed no ESG preference at all
func (w ESGWeights) IsEmpty() bool {
	return w.Environmental == 0 && w.Social == 0 && w.Governance == 0
}

// GeoLocation represents a profile location as JSON
type GeoLocation struct {
	Country   string   `json:"country"`
	Region    string   `json:"region,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are populated
func (l GeoLocation) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// Value implements driver.Valuer for InvestorPreferences
func (p InvestorPreferences) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for InvestorPreferences
func (p *InvestorPreferences) Scan(value interface{}) error {
	if value == nil {
		*p = InvestorPreferences{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into InvestorPreferences", value)
	}

	return json.Unmarshal(bytes, p)
}

// Value implements driver.Valuer for GeoLocation
func (l GeoLocation) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner for GeoLocation
func (l *GeoLocation) Scan(value interface{}) error {
	if value == nil {
		*l = GeoLocation{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into GeoLocation", value)
	}

	return json.Unmarshal(bytes, l)
}

// AvailableCapital returns the investor's uncommitted capital ceiling
func (i *InvestorProfile) AvailableCapital() float64 {
	available := i.Preferences.MaxInvestmentAmount - i.CommittedAmount
	if available < 0 {
		return 0
	}
	return available
}

// InvestorBehavior captures historical investment performance signals
type InvestorBehavior struct {
	InvestorID        uuid.UUID         `json:"investor_id" db:"investor_id"`
	SuccessRate       float64           `json:"success_rate" db:"success_rate"`
	SectorPerformance SectorPerformance `json:"sector_performance" db:"sector_performance"`
	UpdatedAt         time.Time         `json:"updated_at" db:"updated_at"`
}

// SectorPerformance maps sector tags to historical performance rates as JSON
type SectorPerformance map[Sector]float64

// Value implements driver.Valuer for SectorPerformance
func (s SectorPerformance) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for SectorPerformance
func (s *SectorPerformance) Scan(value interface{}) error {
	if value == nil {
		*s = SectorPerformance{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into SectorPerformance", value)
	}

	return json.Unmarshal(bytes, s)
}

// PeerInvestor pairs a similar investor with the sectors they hold
type PeerInvestor struct {
	InvestorID      uuid.UUID `json:"investor_id"`
	InvestedSectors []Sector  `json:"invested_sectors"`
}

// HoldsSector reports whether the peer holds any investment in the sector
func (p PeerInvestor) HoldsSector(sector Sector) bool {
	for _, s := range p.InvestedSectors {
		if s == sector {
			return true
		}
	}
	return false
}
