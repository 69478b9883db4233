package analytics

import (
	"strconv"

	"github.com/ChicagoDave/housingdash/pkg/synth"
)

// Output column names used by the prebuilt views.
const (
	ColUnits      = "units"
	ColRent       = "avg_rent"
	ColVacancy    = "vacancy_rate"
	ColProgress   = "progress"
	ColMinProg    = "min_progress"
	ColMaxProg    = "max_progress"
	ColInvestment = "investment_m"
	ColProjects   = "projects"
	ColAmount     = "amount_m"
	ColFunders    = "funders"
	ColStock      = "stock"
	ColArrears    = "arrears_rate"
)

// mustGroup runs GroupBy over aggregations known to be well formed.
func mustGroup[T any](rows []T, key func(T) string, aggs ...Agg[T]) []Group {
	groups, err := GroupBy(rows, key, aggs...)
	if err != nil {
		panic(err)
	}
	return groups
}

// StockByType sums segment units per housing type.
func StockByType(segments []synth.Segment) []Group {
	return mustGroup(segments,
		func(s synth.Segment) string { return s.HousingType },
		Agg[synth.Segment]{Name: ColUnits, Func: Sum, Value: func(s synth.Segment) float64 { return float64(s.Units) }},
	)
}

// RentByType averages segment rent per housing type.
func RentByType(segments []synth.Segment) []Group {
	return mustGroup(segments,
		func(s synth.Segment) string { return s.HousingType },
		Agg[synth.Segment]{Name: ColRent, Func: Avg, Value: func(s synth.Segment) float64 { return s.AvgRent }},
	)
}

// VacancyByProvider averages segment vacancy per provider.
func VacancyByProvider(segments []synth.Segment) []Group {
	return mustGroup(segments,
		func(s synth.Segment) string { return s.Provider },
		Agg[synth.Segment]{Name: ColVacancy, Func: Avg, Value: func(s synth.Segment) float64 { return s.VacancyRate }},
	)
}

// ProgressByProvider summarises project completion per provider.
func ProgressByProvider(projects []synth.Project) []Group {
	progress := func(p synth.Project) float64 { return p.Progress }
	return mustGroup(projects,
		func(p synth.Project) string { return p.Provider },
		Agg[synth.Project]{Name: ColProgress, Func: Avg, Value: progress},
		Agg[synth.Project]{Name: ColMinProg, Func: Min, Value: progress},
		Agg[synth.Project]{Name: ColMaxProg, Func: Max, Value: progress},
		Agg[synth.Project]{Name: ColProjects, Func: Count},
	)
}

// ProjectsByType sums planned units and investment per project type.
func ProjectsByType(projects []synth.Project) []Group {
	return mustGroup(projects,
		func(p synth.Project) string { return p.Type },
		Agg[synth.Project]{Name: ColUnits, Func: Sum, Value: func(p synth.Project) float64 { return float64(p.PlannedUnits) }},
		Agg[synth.Project]{Name: ColInvestment, Func: Sum, Value: func(p synth.Project) float64 { return p.InvestmentM }},
	)
}

// ProjectsByRegion counts projects and planned units per region.
func ProjectsByRegion(projects []synth.Project) []Group {
	return mustGroup(projects,
		func(p synth.Project) string { return p.Region },
		Agg[synth.Project]{Name: ColProjects, Func: Count},
		Agg[synth.Project]{Name: ColUnits, Func: Sum, Value: func(p synth.Project) float64 { return float64(p.PlannedUnits) }},
	)
}

// FundingByFunder sums annual amounts per funder.
func FundingByFunder(funding []synth.FundingSource) []Group {
	return mustGroup(funding,
		func(f synth.FundingSource) string { return f.Funder },
		Agg[synth.FundingSource]{Name: ColAmount, Func: Sum, Value: func(f synth.FundingSource) float64 { return f.AnnualAmountM }},
	)
}

// FundingByAidType sums annual amounts and counts funders per aid type.
func FundingByAidType(funding []synth.FundingSource) []Group {
	return mustGroup(funding,
		func(f synth.FundingSource) string { return f.AidType },
		Agg[synth.FundingSource]{Name: ColAmount, Func: Sum, Value: func(f synth.FundingSource) float64 { return f.AnnualAmountM }},
		Agg[synth.FundingSource]{Name: ColFunders, Func: Count},
	)
}

// PortfolioByYear sums extrapolated stock and investment and averages
// arrears across providers for each year of history.
func PortfolioByYear(history []synth.Snapshot) []Group {
	return mustGroup(history,
		func(s synth.Snapshot) string { return strconv.Itoa(s.Year) },
		Agg[synth.Snapshot]{Name: ColStock, Func: Sum, Value: func(s synth.Snapshot) float64 { return s.Stock }},
		Agg[synth.Snapshot]{Name: ColInvestment, Func: Sum, Value: func(s synth.Snapshot) float64 { return s.InvestmentM }},
		Agg[synth.Snapshot]{Name: ColArrears, Func: Avg, Value: func(s synth.Snapshot) float64 { return s.ArrearsRate }},
	)
}
