package matching

import "github.com/bvester/matching-api/internal/models"

// Factor names used across components, strengths and concerns
const (
	FactorRiskAlignment     = "riskAlignment"
	FactorSectorPreference  = "sectorPreference"
	FactorInvestmentSize    = "investmentSize"
	FactorGeographic        = "geographic"
	FactorESGAlignment      = "esgAlignment"
	FactorGrowthStage       = "growthStage"
	FactorReturnExpectation = "returnExpectation"
)

// Weights holds the per-factor weights of the composite score.
// They must sum to 1.0.
type Weights struct {
	RiskAlignment     float64 `json:"risk_alignment"`
	SectorPreference  float64 `json:"sector_preference"`
	InvestmentSize    float64 `json:"investment_size"`
	Geographic        float64 `json:"geographic"`
	ESGAlignment      float64 `json:"esg_alignment"`
	GrowthStage       float64 `json:"growth_stage"`
	ReturnExpectation float64 `json:"return_expectation"`
}

// Sum returns the total of all factor weights
func (w Weights) Sum() float64 {
	return w.RiskAlignment + w.SectorPreference + w.InvestmentSize +
		w.Geographic + w.ESGAlignment + w.GrowthStage + w.ReturnExpectation
}

// Config holds all scoring weights, thresholds and taxonomy tables.
// It is constructed once at startup and injected into the scorer so
// deployments can tune it without touching scoring code.
type Config struct {
	Weights Weights `json:"weights"`

	// Strengths are components at or above this score
	StrengthThreshold float64 `json:"strength_threshold"`
	// Concerns are components below this score
	ConcernThreshold float64 `json:"concern_threshold"`
	// Concerns below this score are tagged high severity
	HighSeverityThreshold float64 `json:"high_severity_threshold"`

	// Risk gap at which alignment bottoms out, and the near-match bonus band
	MaxRiskGap   float64 `json:"max_risk_gap"`
	RiskBonusGap float64 `json:"risk_bonus_gap"`
	RiskBonus    float64 `json:"risk_bonus"`

	// Optimal check size as a fraction of the funding goal
	OptimalBandLow  float64 `json:"optimal_band_low"`
	OptimalBandHigh float64 `json:"optimal_band_high"`
	OptimalBonus    float64 `json:"optimal_bonus"`

	// Bound on the adjustment-pass delta, applied after summing signals
	MaxAdjustment float64 `json:"max_adjustment"`

	// Minimum composite score for a candidate to qualify
	DefaultMinScore float64 `json:"default_min_score"`

	// Historical average annual returns per sector, used as a proxy for
	// risk/return similarity between sectors
	SectorAverageReturns map[models.Sector]float64 `json:"sector_average_returns"`
}

// DefaultConfig returns the production scoring configuration
func DefaultConfig() *Config {
	return &Config{
		Weights: Weights{
			RiskAlignment:     0.25,
			SectorPreference:  0.20,
			InvestmentSize:    0.18,
			Geographic:        0.12,
			ESGAlignment:      0.10,
			GrowthStage:       0.08,
			ReturnExpectation: 0.07,
		},
		StrengthThreshold:     75,
		ConcernThreshold:      50,
		HighSeverityThreshold: 30,
		MaxRiskGap:            50,
		RiskBonusGap:          10,
		RiskBonus:             10,
		OptimalBandLow:        0.10,
		OptimalBandHigh:       0.30,
		OptimalBonus:          15,
		MaxAdjustment:         15,
		DefaultMinScore:       50,
		SectorAverageReturns: map[models.Sector]float64{
			models.SectorAgriculture:   0.12,
			models.SectorTechnology:    0.22,
			models.SectorHealthcare:    0.16,
			models.SectorManufacturing: 0.13,
			models.SectorRetail:        0.11,
			models.SectorServices:      0.14,
			models.SectorEnergy:        0.18,
			models.SectorFinance:       0.21,
			models.SectorEducation:     0.10,
			models.SectorLogistics:     0.15,
		},
	}
}

// clamp bounds a value to [min, max]. All score clamping in this package
// goes through here so no formula path can escape the bounds.
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
