package matching

import (
	"fmt"

	"github.com/bvester/matching-api/internal/models"
)

// strengthPhrases maps factor names to the human-readable clause used when
// that factor is a top strength of the match
var strengthPhrases = map[string]string{
	FactorRiskAlignment:     "matches your risk tolerance perfectly",
	FactorSectorPreference:  "operates in a sector you prefer",
	FactorInvestmentSize:    "fits your investment range well",
	FactorGeographic:        "is located in one of your preferred regions",
	FactorESGAlignment:      "aligns strongly with your ESG priorities",
	FactorGrowthStage:       "is at your preferred growth stage",
	FactorReturnExpectation: "projects returns above your expectations",
}

// RecommendationReason builds a short natural-language summary from the top
// one or two strengths of a match
func RecommendationReason(score *MatchScore) string {
	if len(score.Strengths) == 0 {
		return "This opportunity aligns with your general preferences"
	}

	first := strengthPhrases[score.Strengths[0]]
	if len(score.Strengths) == 1 {
		return fmt.Sprintf("This opportunity %s", first)
	}

	second := strengthPhrases[score.Strengths[1]]
	return fmt.Sprintf("This opportunity %s and %s", first, second)
}

// Confidence estimates how much to trust a match score. High scores built
// from complete profiles and consistent components are trusted most; the
// result never reports certainty or negligibility.
func Confidence(score *MatchScore, investor *models.InvestorProfile, business *models.BusinessProfile) float64 {
	confidence := float64(score.Score) / 100

	completeness := (investorCompleteness(investor) + businessCompleteness(business)) / 2
	confidence *= completeness

	variance := componentVariance(score)
	consistency := 1 - variance/1000
	if consistency < 0.7 {
		consistency = 0.7
	}
	confidence *= consistency

	return clamp(confidence, 0.3, 0.95)
}

// investorCompleteness returns the fraction of expected investor profile
// fields that are populated
func investorCompleteness(investor *models.InvestorProfile) float64 {
	prefs := investor.Preferences
	checks := []bool{
		prefs.RiskTolerance > 0,
		len(prefs.PreferredSectors) > 0,
		prefs.MaxInvestmentAmount > 0,
		len(prefs.PreferredRegions) > 0,
		!prefs.ESGPreferences.IsEmpty(),
		len(prefs.PreferredStages) > 0,
		prefs.ExpectedReturn > 0,
		investor.Location.Country != "",
	}
	return populatedFraction(checks)
}

// businessCompleteness returns the fraction of expected business profile
// fields that are populated
func businessCompleteness(business *models.BusinessProfile) float64 {
	esg := business.ESGScores
	checks := []bool{
		business.Sector.IsValid(),
		business.GrowthStage.IsValid(),
		business.RiskScore > 0,
		business.FundingGoal > 0,
		business.MinInvestment > 0,
		esg.Environmental != nil || esg.Social != nil || esg.Governance != nil,
		business.ProjectedReturn > 0,
		business.Location.Country != "",
	}
	return populatedFraction(checks)
}

func populatedFraction(checks []bool) float64 {
	populated := 0
	for _, ok := range checks {
		if ok {
			populated++
		}
	}
	return float64(populated) / float64(len(checks))
}

// componentVariance computes the population variance of the seven raw
// component scores
func componentVariance(score *MatchScore) float64 {
	if len(score.raw) == 0 {
		return 0
	}

	var sum float64
	for _, factor := range factorOrder {
		sum += score.raw[factor]
	}
	mean := sum / float64(len(factorOrder))

	var variance float64
	for _, factor := range factorOrder {
		diff := score.raw[factor] - mean
		variance += diff * diff
	}
	return variance / float64(len(factorOrder))
}
