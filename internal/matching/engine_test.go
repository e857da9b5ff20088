package matching

import (
	"math"
	"reflect"
	"testing"

	"github.com/bvester/matching-api/internal/models"
)

func f64(v float64) *float64 {
	return &v
}

// alignedInvestor returns an investor profile that lines up with
// alignedBusiness on every factor
func alignedInvestor() *models.InvestorProfile {
	return &models.InvestorProfile{
		Name: "Test Investor",
		Preferences: models.InvestorPreferences{
			RiskTolerance:       60,
			PreferredSectors:    []models.Sector{models.SectorTechnology},
			MinInvestmentAmount: 10000,
			MaxInvestmentAmount: 100000,
			PreferredRegions:    []string{"kenya"},
			ESGPreferences:      models.ESGWeights{Environmental: 0.8, Social: 0.6, Governance: 0.4},
			PreferredStages:     []models.GrowthStage{models.StageGrowth},
			ExpectedReturn:      0.15,
		},
		Location: models.GeoLocation{Country: "kenya"},
		IsActive: true,
	}
}

func alignedBusiness() *models.BusinessProfile {
	return &models.BusinessProfile{
		Name:            "Test Business",
		Sector:          models.SectorTechnology,
		GrowthStage:     models.StageGrowth,
		RiskScore:       55,
		FundingGoal:     200000,
		MinInvestment:   20000,
		ESGScores:       models.ESGScores{Environmental: f64(80), Social: f64(70), Governance: f64(60)},
		ProjectedReturn: 0.20,
		Location:        models.GeoLocation{Country: "kenya"},
		IsActive:        true,
	}
}

func TestDefaultConfigWeightsSumToOne(t *testing.T) {
	cfg := DefaultConfig()
	if sum := cfg.Weights.Sum(); math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("Expected weights to sum to 1.0, got %f", sum)
	}
}

func TestComputeScore_NilProfiles(t *testing.T) {
	scorer := NewScorer(nil)

	if _, err := scorer.ComputeScore(nil, alignedBusiness()); err == nil {
		t.Error("Expected error for nil investor")
	}
	if _, err := scorer.ComputeScore(alignedInvestor(), nil); err == nil {
		t.Error("Expected error for nil business")
	}
}

func TestComputeScore_AlignedPair(t *testing.T) {
	scorer := NewScorer(nil)

	result, err := scorer.ComputeScore(alignedInvestor(), alignedBusiness())
	if err != nil {
		t.Fatalf("ComputeScore failed: %v", err)
	}

	if result.Score != 97 {
		t.Errorf("Expected score 97 for aligned pair, got %d", result.Score)
	}

	expected := map[string]int{
		FactorRiskAlignment:     100,
		FactorSectorPreference:  100,
		FactorInvestmentSize:    100,
		FactorGeographic:        100,
		FactorGrowthStage:       100,
		FactorReturnExpectation: 90,
		FactorESGAlignment:      81,
	}
	for factor, want := range expected {
		if got := result.Components[factor]; got != want {
			t.Errorf("Expected %s component %d, got %d", factor, want, got)
		}
	}

	if len(result.Strengths) != 7 {
		t.Errorf("Expected all 7 factors as strengths, got %d", len(result.Strengths))
	}
	if len(result.Concerns) != 0 {
		t.Errorf("Expected no concerns, got %v", result.Concerns)
	}
	if result.MLAdjustment != 0 {
		t.Errorf("Expected zero adjustment before the signal pass, got %d", result.MLAdjustment)
	}
}

func TestComputeScore_Deterministic(t *testing.T) {
	scorer := NewScorer(nil)
	investor := alignedInvestor()
	business := alignedBusiness()

	first, err := scorer.ComputeScore(investor, business)
	if err != nil {
		t.Fatalf("ComputeScore failed: %v", err)
	}
	second, err := scorer.ComputeScore(investor, business)
	if err != nil {
		t.Fatalf("ComputeScore failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical results for identical inputs")
	}
}

func TestComputeScore_ComponentsWithinBounds(t *testing.T) {
	scorer := NewScorer(nil)

	// A deliberately hostile pairing: every factor misaligned
	investor := &models.InvestorProfile{
		Preferences: models.InvestorPreferences{
			RiskTolerance:       10,
			PreferredSectors:    []models.Sector{models.SectorEducation},
			MinInvestmentAmount: 1000,
			MaxInvestmentAmount: 5000,
			PreferredRegions:    []string{"egypt"},
			PreferredStages:     []models.GrowthStage{models.StageStartup},
			ExpectedReturn:      0.40,
		},
	}
	business := &models.BusinessProfile{
		Sector:          models.SectorTechnology,
		GrowthStage:     models.StageMature,
		RiskScore:       95,
		FundingGoal:     1000000,
		MinInvestment:   100000,
		ProjectedReturn: 0.05,
		Location:        models.GeoLocation{Country: "kenya"},
	}

	result, err := scorer.ComputeScore(investor, business)
	if err != nil {
		t.Fatalf("ComputeScore failed: %v", err)
	}

	if result.Score < 0 || result.Score > 100 {
		t.Errorf("Composite score %d out of bounds", result.Score)
	}
	for factor, score := range result.Components {
		if score < 0 || score > 100 {
			t.Errorf("Component %s score %d out of bounds", factor, score)
		}
	}
	if len(result.Concerns) == 0 {
		t.Error("Expected concerns for a hostile pairing")
	}
	for i := 1; i < len(result.Concerns); i++ {
		if result.Concerns[i-1].Score > result.Concerns[i].Score {
			t.Error("Expected concerns ordered worst first")
		}
	}
}

func TestRiskAlignmentScore(t *testing.T) {
	scorer := NewScorer(nil)

	tests := []struct {
		name      string
		tolerance float64
		risk      float64
		expected  float64
	}{
		{"exact match gets bonus capped at 100", 60, 60, 100},
		{"gap of 10 keeps bonus", 60, 50, 90},
		{"gap of 20", 70, 50, 60},
		{"gap of 50 bottoms out", 90, 40, 0},
		{"gap beyond 50 stays at zero", 100, 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			investor := alignedInvestor()
			investor.Preferences.RiskTolerance = tt.tolerance
			business := alignedBusiness()
			business.RiskScore = tt.risk

			if got := scorer.riskAlignmentScore(investor, business); got != tt.expected {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestRiskAlignmentScore_Symmetric(t *testing.T) {
	scorer := NewScorer(nil)

	investor := alignedInvestor()
	business := alignedBusiness()

	investor.Preferences.RiskTolerance = 70
	business.RiskScore = 50
	above := scorer.riskAlignmentScore(investor, business)

	investor.Preferences.RiskTolerance = 50
	business.RiskScore = 70
	below := scorer.riskAlignmentScore(investor, business)

	if above != below {
		t.Errorf("Expected symmetric risk scores, got %f and %f", above, below)
	}
}

func TestSectorPreferenceScore(t *testing.T) {
	scorer := NewScorer(nil)

	tests := []struct {
		name            string
		preferred       []models.Sector
		diversification bool
		sector          models.Sector
		expected        float64
	}{
		{"direct match", []models.Sector{models.SectorTechnology}, false, models.SectorTechnology, 100},
		{"no preferences", nil, false, models.SectorRetail, 60},
		{"similar return profile", []models.Sector{models.SectorAgriculture}, false, models.SectorManufacturing, 75},
		{"mismatch with diversification", []models.Sector{models.SectorEducation}, true, models.SectorTechnology, 65},
		{"plain mismatch", []models.Sector{models.SectorEducation}, false, models.SectorTechnology, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			investor := alignedInvestor()
			investor.Preferences.PreferredSectors = tt.preferred
			investor.Preferences.SeekDiversification = tt.diversification
			business := alignedBusiness()
			business.Sector = tt.sector

			if got := scorer.sectorPreferenceScore(investor, business); got != tt.expected {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestInvestmentSizeScore(t *testing.T) {
	scorer := NewScorer(nil)

	t.Run("disjoint ranges score zero", func(t *testing.T) {
		investor := alignedInvestor()
		investor.Preferences.MinInvestmentAmount = 1000
		investor.Preferences.MaxInvestmentAmount = 5000
		business := alignedBusiness()
		business.MinInvestment = 20000
		business.FundingGoal = 100000

		if got := scorer.investmentSizeScore(investor, business); got != 0 {
			t.Errorf("Expected 0 for disjoint ranges, got %f", got)
		}
	})

	t.Run("full overlap with optimal band bonus caps at 100", func(t *testing.T) {
		investor := alignedInvestor()
		business := alignedBusiness()

		if got := scorer.investmentSizeScore(investor, business); got != 100 {
			t.Errorf("Expected 100, got %f", got)
		}
	})

	t.Run("partial overlap without bonus", func(t *testing.T) {
		investor := alignedInvestor()
		investor.Preferences.MinInvestmentAmount = 50000
		investor.Preferences.MaxInvestmentAmount = 150000
		business := alignedBusiness()
		business.MinInvestment = 100000
		business.FundingGoal = 400000

		// Overlap [100000,150000] over a range of 100000, band not bracketed
		if got := scorer.investmentSizeScore(investor, business); got != 50 {
			t.Errorf("Expected 50, got %f", got)
		}
	})
}

func TestGeographicScore(t *testing.T) {
	scorer := NewScorer(nil)

	t.Run("preferred country", func(t *testing.T) {
		investor := alignedInvestor()
		business := alignedBusiness()
		if got := scorer.geographicScore(investor, business); got != 100 {
			t.Errorf("Expected 100, got %f", got)
		}
	})

	t.Run("no preferences", func(t *testing.T) {
		investor := alignedInvestor()
		investor.Preferences.PreferredRegions = nil
		business := alignedBusiness()
		if got := scorer.geographicScore(investor, business); got != 70 {
			t.Errorf("Expected 70, got %f", got)
		}
	})

	t.Run("same sub-continental group", func(t *testing.T) {
		investor := alignedInvestor()
		investor.Preferences.PreferredRegions = []string{"nigeria"}
		business := alignedBusiness()
		business.Location = models.GeoLocation{Country: "ghana"}
		if got := scorer.geographicScore(investor, business); got != 85 {
			t.Errorf("Expected 85, got %f", got)
		}
	})

	t.Run("distance fallback with coordinates", func(t *testing.T) {
		investor := alignedInvestor()
		investor.Preferences.PreferredRegions = []string{"egypt"}
		investor.Location = models.GeoLocation{Country: "kenya", Latitude: f64(0), Longitude: f64(0)}
		business := alignedBusiness()
		business.Location = models.GeoLocation{Country: "ghana", Latitude: f64(0), Longitude: f64(0)}

		if got := scorer.geographicScore(investor, business); got != 100 {
			t.Errorf("Expected 100 at zero distance, got %f", got)
		}

		// Roughly a quarter of the globe away: the floor applies
		business.Location.Longitude = f64(90)
		if got := scorer.geographicScore(investor, business); got != 20 {
			t.Errorf("Expected distance floor of 20, got %f", got)
		}
	})

	t.Run("no group or coordinates", func(t *testing.T) {
		investor := alignedInvestor()
		investor.Preferences.PreferredRegions = []string{"kenya"}
		business := alignedBusiness()
		business.Location = models.GeoLocation{Country: "ghana"}
		if got := scorer.geographicScore(investor, business); got != 40 {
			t.Errorf("Expected 40, got %f", got)
		}
	})
}

func TestESGAlignmentScore(t *testing.T) {
	scorer := NewScorer(nil)

	t.Run("no investor preference is neutral", func(t *testing.T) {
		investor := alignedInvestor()
		investor.Preferences.ESGPreferences = models.ESGWeights{}
		business := alignedBusiness()
		if got := scorer.esgAlignmentScore(investor, business); got != 70 {
			t.Errorf("Expected neutral 70, got %f", got)
		}
	})

	t.Run("no business scores is neutral", func(t *testing.T) {
		investor := alignedInvestor()
		business := alignedBusiness()
		business.ESGScores = models.ESGScores{}
		if got := scorer.esgAlignmentScore(investor, business); got != 70 {
			t.Errorf("Expected neutral 70, got %f", got)
		}
	})

	t.Run("missing dimensions are excluded not zeroed", func(t *testing.T) {
		investor := alignedInvestor()
		investor.Preferences.ESGPreferences = models.ESGWeights{Environmental: 1, Social: 1, Governance: 1}
		business := alignedBusiness()
		business.ESGScores = models.ESGScores{Environmental: f64(50)}

		// 50 * 1.2 = 60, renormalized over the single dimension
		if got := scorer.esgAlignmentScore(investor, business); got != 60 {
			t.Errorf("Expected 60, got %f", got)
		}
	})

	t.Run("importance amplification caps at 100", func(t *testing.T) {
		investor := alignedInvestor()
		investor.Preferences.ESGPreferences = models.ESGWeights{Environmental: 1}
		business := alignedBusiness()
		business.ESGScores = models.ESGScores{Environmental: f64(95)}

		if got := scorer.esgAlignmentScore(investor, business); got != 100 {
			t.Errorf("Expected 100, got %f", got)
		}
	})
}

func TestGrowthStageScore(t *testing.T) {
	scorer := NewScorer(nil)

	tests := []struct {
		name      string
		preferred []models.GrowthStage
		stage     models.GrowthStage
		expected  float64
	}{
		{"direct match", []models.GrowthStage{models.StageGrowth}, models.StageGrowth, 100},
		{"adjacent stage", []models.GrowthStage{models.StageStartup}, models.StageGrowth, 75},
		{"no preferences", nil, models.StageMature, 60},
		{"two stages apart", []models.GrowthStage{models.StageStartup}, models.StageExpansion, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			investor := alignedInvestor()
			investor.Preferences.PreferredStages = tt.preferred
			business := alignedBusiness()
			business.GrowthStage = tt.stage

			if got := scorer.growthStageScore(investor, business); got != tt.expected {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestReturnExpectationScore(t *testing.T) {
	scorer := NewScorer(nil)

	tests := []struct {
		name      string
		expected  float64
		projected float64
		want      float64
	}{
		{"meets expectation exactly", 0.15, 0.15, 80},
		{"exceeds by five points", 0.15, 0.20, 90},
		{"large excess caps at 100", 0.15, 0.30, 100},
		{"shortfall penalized steeper", 0.15, 0.10, 65},
		{"large shortfall floors at 0", 0.15, -0.15, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			investor := alignedInvestor()
			investor.Preferences.ExpectedReturn = tt.expected
			business := alignedBusiness()
			business.ProjectedReturn = tt.projected

			if got := scorer.returnExpectationScore(investor, business); got != tt.want {
				t.Errorf("Expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestHaversineKm(t *testing.T) {
	// Nairobi to Mombasa is roughly 440km
	km := haversineKm(-1.286, 36.817, -4.043, 39.668)
	if km < 400 || km > 500 {
		t.Errorf("Expected roughly 440km, got %f", km)
	}

	if km := haversineKm(10, 20, 10, 20); km != 0 {
		t.Errorf("Expected zero distance for identical points, got %f", km)
	}
}

func BenchmarkComputeScore(b *testing.B) {
	scorer := NewScorer(nil)
	investor := alignedInvestor()
	business := alignedBusiness()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := scorer.ComputeScore(investor, business); err != nil {
			b.Fatal(err)
		}
	}
}
