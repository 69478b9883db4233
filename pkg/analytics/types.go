package analytics

import "github.com/ChicagoDave/housingdash/pkg/provider"

// KeyMetrics holds the headline portfolio indicators.
type KeyMetrics struct {
	Providers             int     `json:"providers"`
	TotalStock            int     `json:"total_stock"`
	AnnualConstruction    int     `json:"annual_construction"`
	MeanArrearsRate       float64 `json:"mean_arrears_rate_pct"`
	TotalInvestmentM      float64 `json:"total_investment_m"`
	MeanEnergyRenovation  float64 `json:"mean_energy_renovation_pct"`
	PriorityNeighborhoods int     `json:"priority_neighborhoods"`
	TotalDemand           int     `json:"total_demand"`
	UrgentDemand          int     `json:"urgent_demand"`
	CoverageRatio         float64 `json:"coverage_ratio_pct"`
	ActiveProjects        int     `json:"active_projects"`
	PlannedUnits          int     `json:"planned_units"`
	ProjectInvestmentM    float64 `json:"project_investment_m"`
	AnnualFundingM        float64 `json:"annual_funding_m"`
}

// Rollups holds the grouped views over derived collections.
type Rollups struct {
	StockByType        []Group `json:"stock_by_type"`
	RentByType         []Group `json:"rent_by_type"`
	VacancyByProvider  []Group `json:"vacancy_by_provider"`
	ProgressByProvider []Group `json:"progress_by_provider"`
	ProjectsByType     []Group `json:"projects_by_type"`
	ProjectsByRegion   []Group `json:"projects_by_region"`
	FundingByFunder    []Group `json:"funding_by_funder"`
	FundingByAidType   []Group `json:"funding_by_aid_type"`
	PortfolioByYear    []Group `json:"portfolio_by_year"`
}

// Rankings holds the top providers by the headline dimensions.
type Rankings struct {
	ByStock      []provider.Provider `json:"by_stock"`
	ByInvestment []provider.Provider `json:"by_investment"`
}

// Summary is the complete aggregation output.
type Summary struct {
	Metrics           KeyMetrics        `json:"metrics"`
	Rollups           Rollups           `json:"rollups"`
	Rankings          Rankings          `json:"rankings"`
	InvestmentPerUnit []UnitRatio       `json:"investment_per_unit"`
	Indicators        []IndicatorStatus `json:"indicators"`
}
