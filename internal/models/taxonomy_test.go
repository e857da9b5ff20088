package models

import "testing"

func TestSectorIsValid(t *testing.T) {
	for _, sector := range AllSectors {
		if !sector.IsValid() {
			t.Errorf("Expected %s to be valid", sector)
		}
	}
	if Sector("cryptocurrency").IsValid() {
		t.Error("Expected unknown sector to be invalid")
	}
}

func TestGrowthStageIndex(t *testing.T) {
	tests := []struct {
		stage    GrowthStage
		expected int
	}{
		{StageStartup, 0},
		{StageGrowth, 1},
		{StageExpansion, 2},
		{StageMature, 3},
		{GrowthStage("seed"), -1},
	}

	for _, tt := range tests {
		if got := tt.stage.Index(); got != tt.expected {
			t.Errorf("Expected index %d for %q, got %d", tt.expected, tt.stage, got)
		}
	}
}

func TestRegionGroupFor(t *testing.T) {
	tests := []struct {
		country string
		group   RegionGroup
		found   bool
	}{
		{"nigeria", RegionWestAfrica, true},
		{"kenya", RegionEastAfrica, true},
		{"south africa", RegionSouthernAfrica, true},
		{"egypt", RegionNorthAfrica, true},
		{"cameroon", RegionCentralAfrica, true},
		{"france", "", false},
	}

	for _, tt := range tests {
		group, found := RegionGroupFor(tt.country)
		if found != tt.found || group != tt.group {
			t.Errorf("RegionGroupFor(%q) = %q, %v; want %q, %v", tt.country, group, found, tt.group, tt.found)
		}
	}
}
