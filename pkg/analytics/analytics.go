package analytics

import (
	"fmt"

	"github.com/ChicagoDave/housingdash/pkg/dataset"
	"github.com/ChicagoDave/housingdash/pkg/provider"
	"github.com/ChicagoDave/housingdash/pkg/synth"
	"github.com/ChicagoDave/housingdash/pkg/validation"
)

// RankingSize is the length of the ranking lists in a Summary.
const RankingSize = 10

// Resolve aggregates providers and their derived collections into a
// Summary. It returns the summary and an analytical validation report.
// A provider without stock has no investment-per-unit ratio and an
// indicator with a zero target has no progress; both are left out of the
// summary and reported as warnings. Headline ratios with a zero
// denominator are returned as errors.
func Resolve(providers []provider.Provider, d *synth.Derived, indicators []dataset.Indicator) (*Summary, *validation.Report, error) {
	report := validation.NewReport()

	metrics, err := resolveMetrics(providers, d)
	if err != nil {
		return nil, report, err
	}

	s := &Summary{
		Metrics: *metrics,
		Rollups: Rollups{
			StockByType:        StockByType(d.Segments),
			RentByType:         RentByType(d.Segments),
			VacancyByProvider:  VacancyByProvider(d.Segments),
			ProgressByProvider: ProgressByProvider(d.Projects),
			ProjectsByType:     ProjectsByType(d.Projects),
			ProjectsByRegion:   ProjectsByRegion(d.Projects),
			FundingByFunder:    FundingByFunder(d.Funding),
			FundingByAidType:   FundingByAidType(d.Funding),
			PortfolioByYear:    PortfolioByYear(d.History),
		},
		Rankings: Rankings{
			ByStock:      TopN(providers, provider.FieldTotalStock, RankingSize),
			ByInvestment: TopN(providers, provider.FieldInvestment, RankingSize),
		},
		InvestmentPerUnit: resolvePerUnit(providers, report),
		Indicators:        resolveIndicators(indicators, report),
	}

	validateAnalytical(providers, d, s, report)
	return s, report, nil
}

func resolvePerUnit(providers []provider.Provider, report *validation.Report) []UnitRatio {
	ratios := make([]UnitRatio, 0, len(providers))
	for i, p := range providers {
		r, err := PerUnitInvestment([]provider.Provider{p})
		if err != nil {
			report.AddWarning(validation.Result{
				Level:       validation.LevelAnalytical,
				Message:     fmt.Sprintf("investment per unit omitted: %v", err),
				Path:        fmt.Sprintf("providers[%d].total_stock", i),
				ActualValue: p.TotalStock,
				Expected:    "> 0",
			})
			continue
		}
		ratios = append(ratios, r...)
	}
	return ratios
}

func resolveIndicators(indicators []dataset.Indicator, report *validation.Report) []IndicatorStatus {
	out := make([]IndicatorStatus, 0, len(indicators))
	for i, ind := range indicators {
		pct, err := Progress(ind.Value, ind.Target)
		if err != nil {
			report.AddWarning(validation.Result{
				Level:       validation.LevelAnalytical,
				Message:     fmt.Sprintf("%s: progress omitted: %v", ind.Name, err),
				Path:        fmt.Sprintf("indicators[%d].target", i),
				ActualValue: ind.Target,
				Expected:    "non-zero",
			})
			continue
		}
		out = append(out, IndicatorStatus{Indicator: ind, ProgressPct: pct})
	}
	return out
}

func resolveMetrics(providers []provider.Provider, d *synth.Derived) (*KeyMetrics, error) {
	meanArrears, err := Mean(providers, provider.FieldArrearsRate)
	if err != nil {
		return nil, err
	}
	meanRenovation, err := Mean(providers, provider.FieldEnergyRenovationRate)
	if err != nil {
		return nil, err
	}

	m := &KeyMetrics{
		Providers:             len(providers),
		TotalStock:            int(Total(providers, provider.FieldTotalStock)),
		AnnualConstruction:    int(Total(providers, provider.FieldAnnualConstruction)),
		MeanArrearsRate:       meanArrears,
		TotalInvestmentM:      Total(providers, provider.FieldInvestment),
		MeanEnergyRenovation:  meanRenovation,
		PriorityNeighborhoods: int(Total(providers, provider.FieldPriorityNeighborhoods)),
		ActiveProjects:        len(d.Projects),
	}

	for _, r := range d.Demand {
		m.TotalDemand += r.TotalDemand
		m.UrgentDemand += r.UrgentDemand
	}
	for _, p := range d.Projects {
		m.PlannedUnits += p.PlannedUnits
		m.ProjectInvestmentM += p.InvestmentM
	}
	for _, f := range d.Funding {
		m.AnnualFundingM += f.AnnualAmountM
	}

	coverage, err := CoverageRatio(float64(m.TotalStock), float64(m.TotalDemand))
	if err != nil {
		return nil, err
	}
	m.CoverageRatio = coverage
	return m, nil
}
