package models

// Sector represents a business industry classification
type Sector string

// Supported sectors across the marketplace
const (
	SectorAgriculture   Sector = "agriculture"
	SectorTechnology    Sector = "technology"
	SectorHealthcare    Sector = "healthcare"
	SectorManufacturing Sector = "manufacturing"
	SectorRetail        Sector = "retail"
	SectorServices      Sector = "services"
	SectorEnergy        Sector = "energy"
	SectorFinance       Sector = "finance"
	SectorEducation     Sector = "education"
	SectorLogistics     Sector = "logistics"
)

// AllSectors lists every recognized sector tag
var AllSectors = []Sector{
	SectorAgriculture, SectorTechnology, SectorHealthcare, SectorManufacturing,
	SectorRetail, SectorServices, SectorEnergy, SectorFinance,
	SectorEducation, SectorLogistics,
}

// IsValid returns true if the sector is a recognized tag
func (s Sector) IsValid() bool {
	for _, known := range AllSectors {
		if s == known {
			return true
		}
	}
	return false
}

// GrowthStage represents a business maturity stage.
// The declaration order is the adjacency order used by stage scoring.
type GrowthStage string

const (
	StageStartup   GrowthStage = "startup"
	StageGrowth    GrowthStage = "growth"
	StageExpansion GrowthStage = "expansion"
	StageMature    GrowthStage = "mature"
)

// GrowthStageOrder fixes the startup→growth→expansion→mature ordering
var GrowthStageOrder = []GrowthStage{StageStartup, StageGrowth, StageExpansion, StageMature}

// Index returns the position of the stage in the fixed ordering, or -1
func (g GrowthStage) Index() int {
	for i, stage := range GrowthStageOrder {
		if g == stage {
			return i
		}
	}
	return -1
}

// IsValid returns true if the stage is one of the ordered set
func (g GrowthStage) IsValid() bool {
	return g.Index() >= 0
}

// RegionGroup represents a sub-continental grouping of countries
type RegionGroup string

const (
	RegionWestAfrica     RegionGroup = "west_africa"
	RegionEastAfrica     RegionGroup = "east_africa"
	RegionSouthernAfrica RegionGroup = "southern_africa"
	RegionNorthAfrica    RegionGroup = "north_africa"
	RegionCentralAfrica  RegionGroup = "central_africa"
)

// RegionGroups maps each sub-continental grouping to its member countries.
// Country tags are ISO-style lowercase names as stored on profiles.
var RegionGroups = map[RegionGroup][]string{
	RegionWestAfrica: {
		"nigeria", "ghana", "senegal", "cote d'ivoire", "mali",
		"burkina faso", "benin", "togo", "sierra leone", "liberia",
		"guinea", "gambia", "niger",
	},
	RegionEastAfrica: {
		"kenya", "tanzania", "uganda", "rwanda", "ethiopia",
		"burundi", "south sudan", "somalia", "djibouti",
	},
	RegionSouthernAfrica: {
		"south africa", "botswana", "namibia", "zimbabwe", "zambia",
		"mozambique", "malawi", "lesotho", "eswatini", "angola",
	},
	RegionNorthAfrica: {
		"egypt", "morocco", "tunisia", "algeria", "libya", "sudan",
	},
	RegionCentralAfrica: {
		"cameroon", "democratic republic of congo", "congo", "gabon",
		"chad", "central african republic", "equatorial guinea",
	},
}

// RegionGroupFor returns the sub-continental grouping for a country, if any
func RegionGroupFor(country string) (RegionGroup, bool) {
	for group, countries := range RegionGroups {
		for _, c := range countries {
			if c == country {
				return group, true
			}
		}
	}
	return "", false
}
