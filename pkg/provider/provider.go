package provider

import (
	"github.com/ChicagoDave/housingdash/pkg/geo"
)

// StructureTypeAll is the sentinel used by filters to mean "any structure type".
const StructureTypeAll = "All"

// Provider is one social-housing management organization.
// Provider values are immutable once loaded into a Store.
type Provider struct {
	Name                  string  `yaml:"name" json:"name"`
	Type                  string  `yaml:"type" json:"type"`
	Status                string  `yaml:"status" json:"status"`
	Founded               int     `yaml:"founded" json:"founded"`
	TotalStock            int     `yaml:"total_stock" json:"total_stock"`
	ManagedUnits          int     `yaml:"managed_units" json:"managed_units"`
	AnnualConstruction    int     `yaml:"annual_construction" json:"annual_construction"`
	RevenueM              float64 `yaml:"revenue_m" json:"revenue_m"`
	Headcount             int     `yaml:"headcount" json:"headcount"`
	TurnoverRate          float64 `yaml:"turnover_rate" json:"turnover_rate"`
	ArrearsRate           float64 `yaml:"arrears_rate" json:"arrears_rate"`
	DebtPerUnit           float64 `yaml:"debt_per_unit" json:"debt_per_unit"`
	InvestmentM           float64 `yaml:"investment_m" json:"investment_m"`
	Tier                  Tier    `yaml:"performance" json:"performance"`
	PriorityNeighborhoods int     `yaml:"priority_neighborhoods" json:"priority_neighborhoods"`
	EnergyRenovationRate  float64 `yaml:"energy_renovation_rate" json:"energy_renovation_rate"`
	Lat                   float64 `yaml:"lat" json:"lat"`
	Lon                   float64 `yaml:"lon" json:"lon"`
	Headquarters          string  `yaml:"headquarters" json:"headquarters"`
	Description           string  `yaml:"description,omitempty" json:"description,omitempty"`
}

// Location returns the headquarters coordinate.
func (p Provider) Location() geo.Coord {
	return geo.Coord{Lat: p.Lat, Lon: p.Lon}
}

// Names returns the provider names in the given order.
func Names(providers []Provider) []string {
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name
	}
	return names
}
