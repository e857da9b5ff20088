package matching

import (
	"fmt"
	"math"
	"sort"

	"github.com/bvester/matching-api/internal/models"
)

// Scorer computes investor/business compatibility scores.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	cfg *Config
}

// NewScorer creates a scorer with the given configuration
func NewScorer(cfg *Config) *Scorer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Scorer{cfg: cfg}
}

// MatchScore is the result of scoring one investor against one business
type MatchScore struct {
	Score        int            `json:"score"`
	Components   map[string]int `json:"components"`
	Strengths    []string       `json:"strengths"`
	Concerns     []Concern      `json:"concerns"`
	MLAdjustment int            `json:"ml_adjustment"`

	// raw keeps unrounded component scores for confidence and ordering
	raw map[string]float64
}

// Concern flags a component score low enough to question the match
type Concern struct {
	Factor   string `json:"factor"`
	Score    int    `json:"score"`
	Severity string `json:"severity"`
}

// factorOrder fixes iteration order so output is deterministic
var factorOrder = []string{
	FactorRiskAlignment,
	FactorSectorPreference,
	FactorInvestmentSize,
	FactorGeographic,
	FactorESGAlignment,
	FactorGrowthStage,
	FactorReturnExpectation,
}

// ComputeScore computes the weighted compatibility score between an investor
// and a business. Pure function of its inputs and the scorer configuration.
func (s *Scorer) ComputeScore(investor *models.InvestorProfile, business *models.BusinessProfile) (*MatchScore, error) {
	if investor == nil {
		return nil, fmt.Errorf("investor profile is nil")
	}
	if business == nil {
		return nil, fmt.Errorf("business profile is nil")
	}

	raw := map[string]float64{
		FactorRiskAlignment:     s.riskAlignmentScore(investor, business),
		FactorSectorPreference:  s.sectorPreferenceScore(investor, business),
		FactorInvestmentSize:    s.investmentSizeScore(investor, business),
		FactorGeographic:        s.geographicScore(investor, business),
		FactorESGAlignment:      s.esgAlignmentScore(investor, business),
		FactorGrowthStage:       s.growthStageScore(investor, business),
		FactorReturnExpectation: s.returnExpectationScore(investor, business),
	}

	weights := map[string]float64{
		FactorRiskAlignment:     s.cfg.Weights.RiskAlignment,
		FactorSectorPreference:  s.cfg.Weights.SectorPreference,
		FactorInvestmentSize:    s.cfg.Weights.InvestmentSize,
		FactorGeographic:        s.cfg.Weights.Geographic,
		FactorESGAlignment:      s.cfg.Weights.ESGAlignment,
		FactorGrowthStage:       s.cfg.Weights.GrowthStage,
		FactorReturnExpectation: s.cfg.Weights.ReturnExpectation,
	}

	result := &MatchScore{
		Components: make(map[string]int, len(factorOrder)),
		Strengths:  []string{},
		Concerns:   []Concern{},
		raw:        raw,
	}

	var weighted float64
	for _, factor := range factorOrder {
		score := clamp(raw[factor], 0, 100)
		raw[factor] = score
		weighted += score * weights[factor]
		result.Components[factor] = int(math.Round(score))
	}
	result.Score = int(math.Round(clamp(weighted, 0, 100)))

	for _, factor := range factorOrder {
		score := raw[factor]
		if score >= s.cfg.StrengthThreshold {
			result.Strengths = append(result.Strengths, factor)
		} else if score < s.cfg.ConcernThreshold {
			severity := "medium"
			if score < s.cfg.HighSeverityThreshold {
				severity = "high"
			}
			result.Concerns = append(result.Concerns, Concern{
				Factor:   factor,
				Score:    int(math.Round(score)),
				Severity: severity,
			})
		}
	}

	sort.SliceStable(result.Strengths, func(i, j int) bool {
		return raw[result.Strengths[i]] > raw[result.Strengths[j]]
	})
	sort.SliceStable(result.Concerns, func(i, j int) bool {
		return raw[result.Concerns[i].Factor] < raw[result.Concerns[j].Factor]
	})

	return result, nil
}

// riskAlignmentScore scores the gap between investor risk tolerance and the
// business risk level. 100 at a perfect match, 0 at a gap of MaxRiskGap or
// more, with a bonus for near-exact matches.
func (s *Scorer) riskAlignmentScore(investor *models.InvestorProfile, business *models.BusinessProfile) float64 {
	gap := math.Abs(investor.Preferences.RiskTolerance - business.RiskScore)
	score := clamp(100-(gap/s.cfg.MaxRiskGap)*100, 0, 100)
	if gap <= s.cfg.RiskBonusGap {
		score = clamp(score+s.cfg.RiskBonus, 0, 100)
	}
	return score
}

// sectorPreferenceScore scores how well the business sector fits the
// investor's stated sector preferences. Mismatch never scores zero: sector
// alone should not disqualify a candidate.
func (s *Scorer) sectorPreferenceScore(investor *models.InvestorProfile, business *models.BusinessProfile) float64 {
	preferred := investor.Preferences.PreferredSectors
	for _, sector := range preferred {
		if sector == business.Sector {
			return 100
		}
	}

	if len(preferred) == 0 {
		return 60
	}

	// A sector with a near-identical historical return profile is treated
	// as a close substitute for a preferred one.
	if bizReturn, ok := s.cfg.SectorAverageReturns[business.Sector]; ok {
		for _, sector := range preferred {
			if prefReturn, ok := s.cfg.SectorAverageReturns[sector]; ok {
				if math.Abs(bizReturn-prefReturn) <= 0.05 {
					return 75
				}
			}
		}
	}

	if investor.Preferences.SeekDiversification {
		return 65
	}

	return 30
}

// investmentSizeScore scores the overlap between the investor's check-size
// range and the business's [min investment, funding goal] range, as a
// fraction of the investor's own range.
func (s *Scorer) investmentSizeScore(investor *models.InvestorProfile, business *models.BusinessProfile) float64 {
	invMin := investor.Preferences.MinInvestmentAmount
	invMax := investor.Preferences.MaxInvestmentAmount

	overlapLow := math.Max(invMin, business.MinInvestment)
	overlapHigh := math.Min(invMax, business.FundingGoal)
	if overlapHigh < overlapLow {
		return 0
	}

	var score float64
	if invMax > invMin {
		score = (overlapHigh - overlapLow) / (invMax - invMin) * 100
	} else {
		// Point-sized investor range that falls inside the business range
		score = 100
	}

	// Neither too small nor too large a check is ideal for either party;
	// reward investors whose range brackets the optimal band.
	bandLow := business.FundingGoal * s.cfg.OptimalBandLow
	bandHigh := business.FundingGoal * s.cfg.OptimalBandHigh
	if invMin <= bandLow && invMax >= bandHigh {
		score += s.cfg.OptimalBonus
	}

	return clamp(score, 0, 100)
}

// geographicScore scores location fit against the investor's preferred
// regions, falling back to sub-continental groupings and then raw distance.
func (s *Scorer) geographicScore(investor *models.InvestorProfile, business *models.BusinessProfile) float64 {
	preferred := investor.Preferences.PreferredRegions
	country := business.Location.Country
	region := business.Location.Region

	for _, p := range preferred {
		if p == country || (region != "" && p == region) {
			return 100
		}
	}

	if len(preferred) == 0 {
		return 70
	}

	if bizGroup, ok := models.RegionGroupFor(country); ok {
		for _, p := range preferred {
			if prefGroup, ok := models.RegionGroupFor(p); ok && prefGroup == bizGroup {
				return 85
			}
		}
	}

	if investor.Location.HasCoordinates() && business.Location.HasCoordinates() {
		km := haversineKm(
			*investor.Location.Latitude, *investor.Location.Longitude,
			*business.Location.Latitude, *business.Location.Longitude,
		)
		return clamp(100-km/100, 20, 100)
	}

	return 40
}

// esgAlignmentScore blends per-dimension ESG alignment, weighting
// environmental 40%, social 35% and governance 25%. Dimensions without
// business data are excluded from the blend rather than counted as zero.
func (s *Scorer) esgAlignmentScore(investor *models.InvestorProfile, business *models.BusinessProfile) float64 {
	prefs := investor.Preferences.ESGPreferences
	if prefs.IsEmpty() {
		return 70
	}

	type dimension struct {
		weight     float64
		importance float64
		score      *float64
	}
	dimensions := []dimension{
		{0.40, prefs.Environmental, business.ESGScores.Environmental},
		{0.35, prefs.Social, business.ESGScores.Social},
		{0.25, prefs.Governance, business.ESGScores.Governance},
	}

	var blended, totalWeight float64
	for _, d := range dimensions {
		if d.score == nil {
			continue
		}
		aligned := clamp(*d.score*(1+d.importance*0.2), 0, 100)
		blended += aligned * d.weight
		totalWeight += d.weight
	}

	if totalWeight == 0 {
		return 70
	}
	return clamp(blended/totalWeight, 0, 100)
}

// growthStageScore scores the business stage against the investor's
// preferred stages, crediting one-step adjacency in the fixed stage order.
func (s *Scorer) growthStageScore(investor *models.InvestorProfile, business *models.BusinessProfile) float64 {
	preferred := investor.Preferences.PreferredStages
	for _, stage := range preferred {
		if stage == business.GrowthStage {
			return 100
		}
	}

	bizIdx := business.GrowthStage.Index()
	if bizIdx >= 0 {
		for _, stage := range preferred {
			if idx := stage.Index(); idx >= 0 && abs(idx-bizIdx) == 1 {
				return 75
			}
		}
	}

	if len(preferred) == 0 {
		return 60
	}

	return 25
}

// returnExpectationScore rewards projected returns that meet or exceed the
// investor's expectation and penalizes shortfalls three times as steeply.
func (s *Scorer) returnExpectationScore(investor *models.InvestorProfile, business *models.BusinessProfile) float64 {
	diff := business.ProjectedReturn - investor.Preferences.ExpectedReturn
	if diff >= 0 {
		return clamp(80+200*diff, 0, 100)
	}
	return clamp(80+300*diff, 0, 100)
}

// haversineKm returns the great-circle distance between two points in km
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371.0

	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
