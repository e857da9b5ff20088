package services

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/bvester/matching-api/internal/errors"
	"github.com/bvester/matching-api/internal/logger"
	"github.com/bvester/matching-api/internal/matching"
	"github.com/bvester/matching-api/internal/models"
	"github.com/bvester/matching-api/internal/repository"
	"github.com/bvester/matching-api/pkg/config"
)

// matchingServiceImpl implements MatchingService
type matchingServiceImpl struct {
	repos  *repository.Repositories
	scorer *matching.Scorer
	cfg    *config.Config
	logger logger.Logger
}

// newMatchingService creates a new matching service implementation
func newMatchingService(repos *repository.Repositories, scorer *matching.Scorer, cfg *config.Config) MatchingService {
	return &matchingServiceImpl{
		repos:  repos,
		scorer: scorer,
		cfg:    cfg,
		logger: logger.NewSimpleLogger(),
	}
}

// MatchOptions are the caller-supplied knobs for a ranking call
type MatchOptions struct {
	MinScore   *int            `json:"min_score,omitempty"`
	Limit      int             `json:"limit,omitempty"`
	Sectors    []models.Sector `json:"sectors,omitempty"`
	Countries  []string        `json:"countries,omitempty"`
	MinFunding *float64        `json:"min_funding,omitempty"`
	MaxFunding *float64        `json:"max_funding,omitempty"`
}

// MatchResult is one ranked candidate with its score and explanation
type MatchResult struct {
	CandidateID          uuid.UUID               `json:"candidate_id"`
	Investor             *models.InvestorProfile `json:"investor,omitempty"`
	Business             *models.BusinessProfile `json:"business,omitempty"`
	MatchScore           *matching.MatchScore    `json:"match_score"`
	RecommendationReason string                  `json:"recommendation_reason"`
	Confidence           float64                 `json:"confidence"`

	// Populated only for the business→investor direction
	InvestmentCapacity float64 `json:"investment_capacity,omitempty"`
	InterestLevel      string  `json:"interest_level,omitempty"`
}

// MatchingCriteria echoes the effective criteria applied to a ranking call
type MatchingCriteria struct {
	MinScore  int             `json:"min_score"`
	Limit     int             `json:"limit"`
	Sectors   []models.Sector `json:"sectors,omitempty"`
	Countries []string        `json:"countries,omitempty"`
}

// InvestorMatchResponse is the result of ranking businesses for an investor
type InvestorMatchResponse struct {
	Matches          []MatchResult    `json:"matches"`
	TotalAvailable   int              `json:"total_available"`
	MatchingCriteria MatchingCriteria `json:"matching_criteria"`
	Recommendations  []string         `json:"recommendations"`
	Degraded         bool             `json:"degraded"`
}

// OutreachStrategy is the templated guidance for a business seeking investors
type OutreachStrategy struct {
	Priority string `json:"priority"`
	Approach string `json:"approach"`
	Timing   string `json:"timing"`
}

// BusinessMatchResponse is the result of ranking investors for a business
type BusinessMatchResponse struct {
	Matches          []MatchResult    `json:"matches"`
	TotalAvailable   int              `json:"total_available"`
	FundingPotential float64          `json:"funding_potential"`
	OutreachStrategy OutreachStrategy `json:"outreach_strategy"`
	Degraded         bool             `json:"degraded"`
}

// PairScore is a direct investor/business compatibility result
type PairScore struct {
	InvestorID           uuid.UUID            `json:"investor_id"`
	BusinessID           uuid.UUID            `json:"business_id"`
	MatchScore           *matching.MatchScore `json:"match_score"`
	RecommendationReason string               `json:"recommendation_reason"`
	Confidence           float64              `json:"confidence"`
}

// FindMatchesForInvestor ranks candidate businesses for one investor.
// Individual candidate failures and a failed adjustment pass degrade the
// result instead of failing it; only an unresolvable anchor or candidate
// pool is an error.
func (s *matchingServiceImpl) FindMatchesForInvestor(investorID string, opts MatchOptions) (*InvestorMatchResponse, error) {
	id, err := uuid.Parse(investorID)
	if err != nil {
		return nil, errors.InvalidInput("invalid investor ID", err)
	}

	investor, err := s.repos.Investor.GetByID(id)
	if err != nil {
		return nil, errors.NotFound("investor profile not found", err).WithOperation("FindMatchesForInvestor")
	}

	candidates, err := s.repos.Business.GetCandidates(repository.BusinessFilters{
		Sectors:    opts.Sectors,
		Countries:  opts.Countries,
		MinFunding: opts.MinFunding,
		MaxFunding: opts.MaxFunding,
	})
	if err != nil {
		return nil, errors.RetrievalFailed("failed to retrieve candidate businesses", err).WithOperation("FindMatchesForInvestor")
	}

	minScore := s.minScore(opts)
	limit := opts.Limit
	if limit <= 0 {
		limit = s.cfg.InvestorMatchLimit
	}

	type scored struct {
		business *models.BusinessProfile
		score    *matching.MatchScore
	}

	degraded := false
	var qualified []scored
	for i := range candidates {
		business := &candidates[i]
		score, err := s.scorer.ComputeScore(investor, business)
		if err != nil {
			s.logger.Warn("skipping candidate after scoring failure",
				"business_id", business.ID, "error", err)
			degraded = true
			continue
		}
		if score.Score >= minScore {
			qualified = append(qualified, scored{business: business, score: score})
		}
	}

	// Adjustment pass: any signal-source failure keeps the base scores
	signals, err := s.fetchSignals(investor)
	if err != nil {
		s.logger.Warn("adjustment pass skipped", "investor_id", investor.ID, "error", err)
		degraded = true
	} else {
		for _, q := range qualified {
			s.scorer.ApplyAdjustment(q.score, signals, q.business.Sector, q.business.Location.Country)
		}
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].score.Score > qualified[j].score.Score
	})

	qualifiedCount := len(qualified)
	if len(qualified) > limit {
		qualified = qualified[:limit]
	}

	matches := make([]MatchResult, 0, len(qualified))
	var scoreSum float64
	for _, q := range qualified {
		matches = append(matches, MatchResult{
			CandidateID:          q.business.ID,
			Business:             q.business,
			MatchScore:           q.score,
			RecommendationReason: matching.RecommendationReason(q.score),
			Confidence:           matching.Confidence(q.score, investor, q.business),
		})
		scoreSum += float64(q.score.Score)
	}

	avgScore := average(scoreSum, len(matches))

	response := &InvestorMatchResponse{
		Matches:        matches,
		TotalAvailable: len(candidates),
		MatchingCriteria: MatchingCriteria{
			MinScore:  minScore,
			Limit:     limit,
			Sectors:   opts.Sectors,
			Countries: opts.Countries,
		},
		Recommendations: investorRecommendations(avgScore, len(matches)),
		Degraded:        degraded,
	}

	s.recordActivity(&repository.MatchActivity{
		Direction:            repository.DirectionInvestorToBusiness,
		AnchorID:             investor.ID,
		CandidatesConsidered: len(candidates),
		QualifiedMatches:     qualifiedCount,
		ReturnedMatches:      len(matches),
		AverageScore:         avgScore,
		Degraded:             degraded,
	})

	return response, nil
}

// FindMatchesForBusiness ranks candidate investors for one business.
// Candidates are ordered by 0.7×score + 0.3×investmentCapacity so that
// between equally-scored investors the one with more uncommitted capital
// ranks first.
func (s *matchingServiceImpl) FindMatchesForBusiness(businessID string, opts MatchOptions) (*BusinessMatchResponse, error) {
	id, err := uuid.Parse(businessID)
	if err != nil {
		return nil, errors.InvalidInput("invalid business ID", err)
	}

	business, err := s.repos.Business.GetByID(id)
	if err != nil {
		return nil, errors.NotFound("business profile not found", err).WithOperation("FindMatchesForBusiness")
	}

	candidates, err := s.repos.Investor.GetCandidates(repository.InvestorFilters{
		Sectors:   opts.Sectors,
		Countries: opts.Countries,
		MinBudget: opts.MinFunding,
	})
	if err != nil {
		return nil, errors.RetrievalFailed("failed to retrieve candidate investors", err).WithOperation("FindMatchesForBusiness")
	}

	minScore := s.minScore(opts)
	limit := opts.Limit
	if limit <= 0 {
		limit = s.cfg.BusinessMatchLimit
	}

	type scored struct {
		investor *models.InvestorProfile
		score    *matching.MatchScore
		capacity float64
	}

	degraded := false
	var qualified []scored
	for i := range candidates {
		investor := &candidates[i]
		score, err := s.scorer.ComputeScore(investor, business)
		if err != nil {
			s.logger.Warn("skipping candidate after scoring failure",
				"investor_id", investor.ID, "error", err)
			degraded = true
			continue
		}
		if score.Score >= minScore {
			qualified = append(qualified, scored{
				investor: investor,
				score:    score,
				capacity: investmentCapacity(investor, business),
			})
		}
	}

	// Adjustment pass for this direction uses the global trend signal plus
	// each candidate investor's own behavior; peer overlap needs an
	// investor anchor and contributes nothing here.
	trends, err := s.repos.Signal.GetMarketTrends()
	if err != nil {
		s.logger.Warn("adjustment pass skipped", "business_id", business.ID, "error", err)
		degraded = true
	} else {
		for _, q := range qualified {
			behavior, err := s.repos.Signal.GetInvestorBehavior(q.investor.ID)
			if err != nil {
				behavior = nil
			}
			signals := matching.Signals{Behavior: behavior, Trends: trends}
			s.scorer.ApplyAdjustment(q.score, signals, business.Sector, business.Location.Country)
		}
	}

	rankKey := func(sc scored) float64 {
		return 0.7*float64(sc.score.Score) + 0.3*sc.capacity
	}
	sort.SliceStable(qualified, func(i, j int) bool {
		return rankKey(qualified[i]) > rankKey(qualified[j])
	})

	qualifiedCount := len(qualified)
	if len(qualified) > limit {
		qualified = qualified[:limit]
	}

	matches := make([]MatchResult, 0, len(qualified))
	var scoreSum, availableSum float64
	for _, q := range qualified {
		matches = append(matches, MatchResult{
			CandidateID:          q.investor.ID,
			Investor:             q.investor,
			MatchScore:           q.score,
			RecommendationReason: matching.RecommendationReason(q.score),
			Confidence:           matching.Confidence(q.score, q.investor, business),
			InvestmentCapacity:   q.capacity,
			InterestLevel:        interestLevel(q.score.Score),
		})
		scoreSum += float64(q.score.Score)
		availableSum += q.investor.AvailableCapital()
	}

	avgScore := average(scoreSum, len(matches))
	potential := fundingPotential(availableSum, business.FundingGoal)

	response := &BusinessMatchResponse{
		Matches:          matches,
		TotalAvailable:   len(candidates),
		FundingPotential: potential,
		OutreachStrategy: outreachStrategy(potential, avgScore),
		Degraded:         degraded,
	}

	s.recordActivity(&repository.MatchActivity{
		Direction:            repository.DirectionBusinessToInvestor,
		AnchorID:             business.ID,
		CandidatesConsidered: len(candidates),
		QualifiedMatches:     qualifiedCount,
		ReturnedMatches:      len(matches),
		AverageScore:         avgScore,
		Degraded:             degraded,
	})

	return response, nil
}

// ScorePair computes the direct compatibility between one investor and one
// business without ranking or adjustment
func (s *matchingServiceImpl) ScorePair(investorID, businessID string) (*PairScore, error) {
	invID, err := uuid.Parse(investorID)
	if err != nil {
		return nil, errors.InvalidInput("invalid investor ID", err)
	}
	bizID, err := uuid.Parse(businessID)
	if err != nil {
		return nil, errors.InvalidInput("invalid business ID", err)
	}

	investor, err := s.repos.Investor.GetByID(invID)
	if err != nil {
		return nil, errors.NotFound("investor profile not found", err).WithOperation("ScorePair")
	}
	business, err := s.repos.Business.GetByID(bizID)
	if err != nil {
		return nil, errors.NotFound("business profile not found", err).WithOperation("ScorePair")
	}

	score, err := s.scorer.ComputeScore(investor, business)
	if err != nil {
		return nil, errors.ScoringFailed("failed to score pair", err).WithOperation("ScorePair")
	}

	return &PairScore{
		InvestorID:           investor.ID,
		BusinessID:           business.ID,
		MatchScore:           score,
		RecommendationReason: matching.RecommendationReason(score),
		Confidence:           matching.Confidence(score, investor, business),
	}, nil
}

// GetActivityStats returns aggregate match analytics
func (s *matchingServiceImpl) GetActivityStats() (*repository.MatchActivityStats, error) {
	stats, err := s.repos.Activity.GetStats()
	if err != nil {
		return nil, errors.DatabaseError("failed to get activity stats", err).WithOperation("GetActivityStats")
	}
	return stats, nil
}

// fetchSignals gathers the three adjustment signals concurrently. The
// lookups are independent and read-only; the first error wins.
func (s *matchingServiceImpl) fetchSignals(investor *models.InvestorProfile) (matching.Signals, error) {
	var (
		signals  matching.Signals
		firstErr error
		mu       sync.Mutex
		wg       sync.WaitGroup
	)

	setErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		behavior, err := s.repos.Signal.GetInvestorBehavior(investor.ID)
		if err != nil {
			setErr(err)
			return
		}
		signals.Behavior = behavior
	}()
	go func() {
		defer wg.Done()
		trends, err := s.repos.Signal.GetMarketTrends()
		if err != nil {
			setErr(err)
			return
		}
		signals.Trends = trends
	}()
	go func() {
		defer wg.Done()
		peers, err := s.repos.Signal.GetSimilarInvestors(investor)
		if err != nil {
			setErr(err)
			return
		}
		signals.Peers = peers
	}()
	wg.Wait()

	if firstErr != nil {
		return matching.Signals{}, firstErr
	}
	return signals, nil
}

// recordActivity writes the analytics summary without blocking or failing
// the ranking call
func (s *matchingServiceImpl) recordActivity(activity *repository.MatchActivity) {
	go func() {
		if err := s.repos.Activity.Record(activity); err != nil {
			s.logger.Warn("failed to record match activity", "anchor_id", activity.AnchorID, "error", err)
		}
	}()
}

func (s *matchingServiceImpl) minScore(opts MatchOptions) int {
	if opts.MinScore != nil {
		return *opts.MinScore
	}
	return s.cfg.DefaultMinScore
}

// investmentCapacity estimates, on a 0-100 scale, how much of the
// investor's uncommitted capital ceiling covers the business's funding need
func investmentCapacity(investor *models.InvestorProfile, business *models.BusinessProfile) float64 {
	if business.FundingGoal <= 0 {
		return 0
	}
	capacity := investor.AvailableCapital() / business.FundingGoal * 100
	if capacity > 100 {
		return 100
	}
	if capacity < 0 {
		return 0
	}
	return capacity
}

// fundingPotential estimates aggregate matched-investor capacity against
// the funding goal on a 0-100 scale
func fundingPotential(availableSum, fundingGoal float64) float64 {
	if fundingGoal <= 0 {
		return 0
	}
	potential := availableSum / fundingGoal * 100
	if potential > 100 {
		return 100
	}
	return potential
}

func interestLevel(score int) string {
	switch {
	case score >= 80:
		return "high"
	case score >= 65:
		return "moderate"
	default:
		return "exploratory"
	}
}

func investorRecommendations(avgScore float64, matchCount int) []string {
	if matchCount == 0 {
		return []string{"No qualifying matches found - consider broadening your sector or region preferences"}
	}
	switch {
	case avgScore > 80:
		return []string{
			"Excellent matches found - these opportunities align closely with your preferences",
			"Consider reaching out to your top matches soon",
		}
	case avgScore > 60:
		return []string{
			"Good matches available - review the top candidates in detail",
		}
	default:
		return []string{
			"Match quality is moderate - adjusting your preferences may surface stronger candidates",
		}
	}
}

func outreachStrategy(potential, avgScore float64) OutreachStrategy {
	switch {
	case potential >= 80 && avgScore >= 70:
		return OutreachStrategy{
			Priority: "high",
			Approach: "targeted outreach to top-ranked investors",
			Timing:   "immediate",
		}
	case potential >= 50:
		return OutreachStrategy{
			Priority: "medium",
			Approach: "staged outreach starting with highest-capacity investors",
			Timing:   "within two weeks",
		}
	default:
		return OutreachStrategy{
			Priority: "low",
			Approach: "improve profile completeness before broad outreach",
			Timing:   "after profile improvements",
		}
	}
}

func average(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
