package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestAvailableCapital(t *testing.T) {
	investor := &InvestorProfile{
		Preferences:     InvestorPreferences{MaxInvestmentAmount: 100000},
		CommittedAmount: 30000,
	}

	if got := investor.AvailableCapital(); got != 70000 {
		t.Errorf("Expected 70000, got %f", got)
	}

	investor.CommittedAmount = 150000
	if got := investor.AvailableCapital(); got != 0 {
		t.Errorf("Expected over-committed investor to report 0, got %f", got)
	}
}

func TestPeerHoldsSector(t *testing.T) {
	peer := PeerInvestor{
		InvestorID:      uuid.New(),
		InvestedSectors: []Sector{SectorTechnology, SectorRetail},
	}

	if !peer.HoldsSector(SectorTechnology) {
		t.Error("Expected peer to hold technology")
	}
	if peer.HoldsSector(SectorEnergy) {
		t.Error("Expected peer not to hold energy")
	}
}

func TestMarketTrendsLookups(t *testing.T) {
	trends := MarketTrends{
		TrendingSectors: SectorList{SectorTechnology},
		GrowingRegions:  StringList{"kenya"},
	}

	if !trends.HasTrendingSector(SectorTechnology) {
		t.Error("Expected technology to be trending")
	}
	if trends.HasTrendingSector(SectorRetail) {
		t.Error("Expected retail not to be trending")
	}
	if !trends.HasGrowingRegion("kenya") {
		t.Error("Expected kenya to be growing")
	}
	if trends.HasGrowingRegion("ghana") {
		t.Error("Expected ghana not to be growing")
	}
}

func TestInvestorPreferencesScan(t *testing.T) {
	raw := []byte(`{"risk_tolerance": 60, "preferred_sectors": ["technology"], "seek_diversification": true}`)

	var prefs InvestorPreferences
	if err := prefs.Scan(raw); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if prefs.RiskTolerance != 60 {
		t.Errorf("Expected risk tolerance 60, got %f", prefs.RiskTolerance)
	}
	if len(prefs.PreferredSectors) != 1 || prefs.PreferredSectors[0] != SectorTechnology {
		t.Errorf("Expected preferred sectors parsed, got %v", prefs.PreferredSectors)
	}
	if !prefs.SeekDiversification {
		t.Error("Expected seek_diversification true")
	}

	if err := prefs.Scan(42); err == nil {
		t.Error("Expected error scanning a non-byte value")
	}

	if err := prefs.Scan(nil); err != nil {
		t.Errorf("Expected nil to scan as zero value, got %v", err)
	}
}

func TestESGScoresScan(t *testing.T) {
	raw := []byte(`{"environmental": 80, "social": 70}`)

	var scores ESGScores
	if err := scores.Scan(raw); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if scores.Environmental == nil || *scores.Environmental != 80 {
		t.Errorf("Expected environmental 80, got %v", scores.Environmental)
	}
	if scores.Governance != nil {
		t.Error("Expected absent governance to stay nil")
	}
}
