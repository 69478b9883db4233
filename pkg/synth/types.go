package synth

import (
	"fmt"
	"time"

	"github.com/ChicagoDave/housingdash/pkg/geo"
)

// Segment is one provider's stock for one housing type.
// Proportions are independent per-type estimates; a provider's segment
// proportions do not sum to 100.
type Segment struct {
	Provider    string  `json:"provider"`
	HousingType string  `json:"housing_type"`
	Units       int     `json:"units"`
	Proportion  float64 `json:"proportion_pct"`
	AvgRent     float64 `json:"avg_rent"`
	VacancyRate float64 `json:"vacancy_rate_pct"`
}

// Snapshot is a provider's extrapolated indicators for one calendar year.
type Snapshot struct {
	Date         time.Time `json:"date"`
	Year         int       `json:"year"`
	Provider     string    `json:"provider"`
	Stock        float64   `json:"stock"`
	Construction float64   `json:"construction"`
	ArrearsRate  float64   `json:"arrears_rate_pct"`
	InvestmentM  float64   `json:"investment_m"`
}

// Project is an active construction or renovation operation.
type Project struct {
	Name              string    `json:"name"`
	Provider          string    `json:"provider"`
	Region            string    `json:"region"`
	Type              string    `json:"type"`
	PlannedUnits      int       `json:"planned_units"`
	InvestmentM       float64   `json:"investment_m"`
	Start             time.Time `json:"start"`
	PlannedCompletion time.Time `json:"planned_completion"`
	Progress          float64   `json:"progress_pct"`
	Status            string    `json:"status"`
	Location          geo.Coord `json:"location"`
}

// Validate checks the project's date ordering and progress range.
func (p Project) Validate() error {
	if !p.Start.Before(p.PlannedCompletion) {
		return fmt.Errorf("%w: project %q starts %s, not before planned completion %s",
			ErrInvalidInput, p.Name, p.Start.Format(time.DateOnly), p.PlannedCompletion.Format(time.DateOnly))
	}
	if p.Progress < 0 || p.Progress > 100 {
		return fmt.Errorf("%w: project %q progress %.1f outside 0-100", ErrInvalidInput, p.Name, p.Progress)
	}
	return nil
}

// DemandRecord is the social-housing demand registered in one municipality.
type DemandRecord struct {
	Municipality     string  `json:"municipality"`
	TotalDemand      int     `json:"total_demand"`
	AvgWaitMonths    float64 `json:"avg_wait_months"`
	SatisfactionRate float64 `json:"satisfaction_rate_pct"`
	UrgentDemand     int     `json:"urgent_demand"`
	AvgIncome        float64 `json:"avg_applicant_income"`
}

// FundingSource is one funder's annual contribution.
type FundingSource struct {
	Funder            string  `json:"funder"`
	AnnualAmountM     float64 `json:"annual_amount_m"`
	AidType           string  `json:"aid_type"`
	InterventionRate  float64 `json:"intervention_rate_pct"`
	SupportedProjects int     `json:"supported_projects"`
}

// Derived bundles every collection generated from one provider set.
type Derived struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Segments    []Segment       `json:"segments"`
	History     []Snapshot      `json:"history"`
	Projects    []Project       `json:"projects"`
	Demand      []DemandRecord  `json:"demand"`
	Funding     []FundingSource `json:"funding"`
}
