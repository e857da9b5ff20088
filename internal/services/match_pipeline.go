package services

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bvester/matching-api/internal/matching"
	"github.com/bvester/matching-api/internal/repository"
	"github.com/bvester/matching-api/pkg/config"
)

// MatchPipeline periodically refreshes match rankings for investors whose
// results have gone stale
type MatchPipeline struct {
	db              *sql.DB
	repos           *repository.Repositories
	matchingService MatchingService
	isRunning       bool
	stopChan        chan struct{}
	wg              sync.WaitGroup
	mu              sync.RWMutex
}

// GetDB returns the database connection for health checks
func (p *MatchPipeline) GetDB() *sql.DB {
	return p.db
}

// NewMatchPipeline creates a new match refresh pipeline
func NewMatchPipeline(db *sql.DB, cfg *config.Config) *MatchPipeline {
	repos := repository.NewRepositories(db)
	scorer := matching.NewScorer(matching.DefaultConfig())
	return &MatchPipeline{
		db:              db,
		repos:           repos,
		matchingService: newMatchingService(repos, scorer, cfg),
		stopChan:        make(chan struct{}),
	}
}

// PipelineConfig contains configuration for the refresh pipeline
type PipelineConfig struct {
	BatchSize       int  `json:"batch_size"`       // Investors to refresh per cycle
	IntervalMinutes int  `json:"interval_minutes"` // How often to run (minutes)
	MaxConcurrent   int  `json:"max_concurrent"`   // Max concurrent refreshes
	StaleDays       int  `json:"stale_days"`       // Refresh investors idle longer than this
}

// PipelineConfigFrom builds pipeline settings from application config
func PipelineConfigFrom(cfg *config.Config) PipelineConfig {
	return PipelineConfig{
		BatchSize:       cfg.RefreshBatchSize,
		IntervalMinutes: cfg.RefreshIntervalMin,
		MaxConcurrent:   cfg.RefreshMaxConcurrent,
		StaleDays:       cfg.RefreshStaleDays,
	}
}

// DefaultPipelineConfig returns sensible defaults
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		BatchSize:       50,
		IntervalMinutes: 60,
		MaxConcurrent:   10,
		StaleDays:       7,
	}
}

// Start begins the automated refresh pipeline
func (p *MatchPipeline) Start(cfg PipelineConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isRunning {
		return fmt.Errorf("pipeline is already running")
	}

	p.isRunning = true

	p.wg.Add(1)
	go p.runPipeline(cfg)

	log.Printf("match pipeline started: batch_size=%d, interval=%dm, max_concurrent=%d",
		cfg.BatchSize, cfg.IntervalMinutes, cfg.MaxConcurrent)

	return nil
}

// Stop gracefully stops the refresh pipeline
func (p *MatchPipeline) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isRunning {
		return fmt.Errorf("pipeline is not running")
	}

	close(p.stopChan)
	p.wg.Wait()
	p.isRunning = false

	log.Println("match pipeline stopped")
	return nil
}

// IsRunning returns whether the pipeline is currently running
func (p *MatchPipeline) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isRunning
}

// RunOnce executes a single refresh cycle manually
func (p *MatchPipeline) RunOnce(cfg PipelineConfig) (*PipelineStats, error) {
	return p.executeRefreshCycle(cfg)
}

// runPipeline is the main pipeline loop
func (p *MatchPipeline) runPipeline(cfg PipelineConfig) {
	defer p.wg.Done()

	ticker := time.NewTicker(time.Duration(cfg.IntervalMinutes) * time.Minute)
	defer ticker.Stop()

	// Run immediately on start
	if stats, err := p.executeRefreshCycle(cfg); err != nil {
		log.Printf("initial refresh cycle failed: %v", err)
	} else {
		log.Printf("initial refresh cycle completed: %s", stats.Summary())
	}

	for {
		select {
		case <-p.stopChan:
			return
		case <-ticker.C:
			if stats, err := p.executeRefreshCycle(cfg); err != nil {
				log.Printf("refresh cycle failed: %v", err)
			} else {
				log.Printf("refresh cycle completed: %s", stats.Summary())
			}
		}
	}
}

// executeRefreshCycle performs one complete refresh cycle
func (p *MatchPipeline) executeRefreshCycle(cfg PipelineConfig) (*PipelineStats, error) {
	stats := &PipelineStats{
		StartTime: time.Now(),
		BatchSize: cfg.BatchSize,
	}

	ids, err := p.repos.Investor.GetStaleIDs(cfg.StaleDays, cfg.BatchSize*10)
	if err != nil {
		return stats, fmt.Errorf("failed to get stale investors: %w", err)
	}

	if len(ids) == 0 {
		stats.EndTime = time.Now()
		log.Println("no investors need a match refresh")
		return stats, nil
	}

	stats.InvestorsFound = len(ids)

	semaphore := make(chan struct{}, cfg.MaxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for i := 0; i < len(ids); i += cfg.BatchSize {
		end := i + cfg.BatchSize
		if end > len(ids) {
			end = len(ids)
		}

		batch := ids[i:end]

		wg.Add(1)
		go func(batch []uuid.UUID) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			processed, succeeded, failed := p.processBatch(batch)

			mu.Lock()
			stats.InvestorsProcessed += processed
			stats.InvestorsSucceeded += succeeded
			stats.InvestorsFailed += failed
			mu.Unlock()
		}(batch)
	}

	wg.Wait()
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	return stats, nil
}

// processBatch refreshes matches for a batch of investors
func (p *MatchPipeline) processBatch(ids []uuid.UUID) (processed, succeeded, failed int) {
	for _, id := range ids {
		processed++

		if _, err := p.matchingService.FindMatchesForInvestor(id.String(), MatchOptions{}); err != nil {
			log.Printf("failed to refresh matches for investor %s: %v", id, err)
			failed++
		} else {
			succeeded++
		}
	}
	return processed, succeeded, failed
}

// GetStats returns current pipeline statistics
func (p *MatchPipeline) GetStats() (PipelineStatus, error) {
	status := PipelineStatus{
		IsRunning: p.IsRunning(),
		Timestamp: time.Now(),
	}

	var totalInvestors, matchedInvestors int

	if err := p.db.QueryRow("SELECT COUNT(*) FROM investors WHERE is_active = true").Scan(&totalInvestors); err != nil {
		return status, err
	}

	query := `
		SELECT COUNT(DISTINCT anchor_id) FROM match_activity WHERE direction = $1
	`
	if err := p.db.QueryRow(query, repository.DirectionInvestorToBusiness).Scan(&matchedInvestors); err != nil {
		return status, err
	}

	status.TotalInvestors = totalInvestors
	status.MatchedInvestors = matchedInvestors
	status.PendingInvestors = totalInvestors - matchedInvestors
	if status.PendingInvestors < 0 {
		status.PendingInvestors = 0
	}

	return status, nil
}

// Data structures

// PipelineStats summarizes one refresh cycle
type PipelineStats struct {
	StartTime          time.Time     `json:"start_time"`
	EndTime            time.Time     `json:"end_time"`
	Duration           time.Duration `json:"duration"`
	BatchSize          int           `json:"batch_size"`
	InvestorsFound     int           `json:"investors_found"`
	InvestorsProcessed int           `json:"investors_processed"`
	InvestorsSucceeded int           `json:"investors_succeeded"`
	InvestorsFailed    int           `json:"investors_failed"`
}

// Summary returns a one-line description of the cycle
func (s *PipelineStats) Summary() string {
	return fmt.Sprintf("processed=%d, succeeded=%d, failed=%d, duration=%v",
		s.InvestorsProcessed, s.InvestorsSucceeded, s.InvestorsFailed, s.Duration.Round(time.Second))
}

// PipelineStatus is the current state of the refresh pipeline
type PipelineStatus struct {
	IsRunning        bool      `json:"is_running"`
	TotalInvestors   int       `json:"total_investors"`
	MatchedInvestors int       `json:"matched_investors"`
	PendingInvestors int       `json:"pending_investors"`
	Timestamp        time.Time `json:"timestamp"`
}
