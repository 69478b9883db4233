package dataset

import (
	"github.com/ChicagoDave/housingdash/pkg/geo"
	"github.com/ChicagoDave/housingdash/pkg/provider"
)

// Dataset is the authoritative provider list plus the fixed catalogues the
// generator draws from.
type Dataset struct {
	DatasetVersion  string              `yaml:"dataset_version" json:"dataset_version"`
	Territory       string              `yaml:"territory" json:"territory"`
	Providers       []provider.Provider `yaml:"providers" json:"providers"`
	HousingTypes    []HousingType       `yaml:"housing_types" json:"housing_types"`
	Regions         []Region            `yaml:"regions" json:"regions"`
	Municipalities  []string            `yaml:"municipalities" json:"municipalities"`
	Funders         []string            `yaml:"funders" json:"funders"`
	AidTypes        []string            `yaml:"aid_types" json:"aid_types"`
	ProjectTypes    []string            `yaml:"project_types" json:"project_types"`
	ProjectStatuses []string            `yaml:"project_statuses" json:"project_statuses"`
	Indicators      []Indicator         `yaml:"indicators" json:"indicators"`
}

// HousingType is one rental or ownership product a provider's stock is split into.
type HousingType struct {
	Code  string `yaml:"code" json:"code"`
	Label string `yaml:"label" json:"label"`
}

// Region is one cell of the territory's four-way partition.
type Region struct {
	Name     string    `yaml:"name" json:"name"`
	Centroid geo.Coord `yaml:"centroid" json:"centroid"`
}

// HousingTypeCodes returns the housing-type codes in catalogue order.
func (d *Dataset) HousingTypeCodes() []string {
	codes := make([]string, len(d.HousingTypes))
	for i, h := range d.HousingTypes {
		codes[i] = h.Code
	}
	return codes
}

// RegionByName returns the region with the given name, or nil if not found.
func (d *Dataset) RegionByName(name string) *Region {
	for i := range d.Regions {
		if d.Regions[i].Name == name {
			return &d.Regions[i]
		}
	}
	return nil
}

// RegionOf returns the region whose centroid is nearest to c.
func (d *Dataset) RegionOf(c geo.Coord) string {
	centroids := make([]geo.Coord, len(d.Regions))
	for i, r := range d.Regions {
		centroids[i] = r.Centroid
	}
	i := geo.Nearest(c, centroids)
	if i < 0 {
		return ""
	}
	return d.Regions[i].Name
}

// Trend is the recent direction of a strategic indicator.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Indicator is a strategic performance indicator tracked against a target.
type Indicator struct {
	Name   string  `yaml:"name" json:"name"`
	Value  float64 `yaml:"value" json:"value"`
	Target float64 `yaml:"target" json:"target"`
	Unit   string  `yaml:"unit" json:"unit"`
	Trend  Trend   `yaml:"trend" json:"trend"`
}
