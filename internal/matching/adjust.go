package matching

import (
	"math"

	"github.com/bvester/matching-api/internal/models"
)

// Signals carries the aggregate market data consumed by the adjustment pass.
// Any field may be nil or empty; a missing signal contributes zero.
type Signals struct {
	Behavior *models.InvestorBehavior
	Trends   *models.MarketTrends
	Peers    []models.PeerInvestor
}

// AdjustmentDelta computes the bounded score nudge for one candidate from
// historical performance, market trends and peer-investor overlap. The
// result is clamped after summing the signals, not per signal.
func (s *Scorer) AdjustmentDelta(signals Signals, sector models.Sector, country string) int {
	var delta float64

	if signals.Behavior != nil {
		delta += (signals.Behavior.SuccessRate - 0.5) * 10
		if perf, ok := signals.Behavior.SectorPerformance[sector]; ok {
			delta += (perf - 0.5) * 20
		}
	}

	if signals.Trends != nil {
		if signals.Trends.HasTrendingSector(sector) {
			delta += 5
		}
		if signals.Trends.HasGrowingRegion(country) {
			delta += 3
		}
	}

	if len(signals.Peers) > 0 {
		holding := 0
		for _, peer := range signals.Peers {
			if peer.HoldsSector(sector) {
				holding++
			}
		}
		delta += 8 * float64(holding) / float64(len(signals.Peers))
	}

	delta = clamp(delta, -s.cfg.MaxAdjustment, s.cfg.MaxAdjustment)
	return int(math.Round(delta))
}

// ApplyAdjustment applies the signal delta to an already-computed match
// score, keeping the total inside [0,100]
func (s *Scorer) ApplyAdjustment(score *MatchScore, signals Signals, sector models.Sector, country string) {
	delta := s.AdjustmentDelta(signals, sector, country)
	score.MLAdjustment = delta
	score.Score = int(clamp(float64(score.Score+delta), 0, 100))
}
