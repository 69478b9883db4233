package analytics

import (
	"fmt"

	"github.com/ChicagoDave/housingdash/pkg/provider"
	"github.com/ChicagoDave/housingdash/pkg/synth"
	"github.com/ChicagoDave/housingdash/pkg/validation"
)

// Thresholds for analytical warnings.
const (
	arrearsAlertPct     = 3.0
	renovationTargetPct = 30.0
	vacancyAlertPct     = 6.0
)

// validateAnalytical runs analytical checks over the resolved summary.
func validateAnalytical(providers []provider.Provider, d *synth.Derived, s *Summary, report *validation.Report) {
	validateCoverage(s, report)
	validateArrears(providers, report)
	validateRenovation(providers, report)
	validateVacancy(s, report)
	validateProjects(d, report)
}

func validateCoverage(s *Summary, report *validation.Report) {
	if s.Metrics.CoverageRatio < 100 {
		report.AddWarning(validation.Result{
			Level:       validation.LevelAnalytical,
			Message:     fmt.Sprintf("social stock covers %.1f%% of registered demand", s.Metrics.CoverageRatio),
			Path:        "metrics.coverage_ratio_pct",
			ActualValue: s.Metrics.CoverageRatio,
			Expected:    ">= 100",
		})
		return
	}
	report.AddInfo(validation.Result{
		Level:   validation.LevelAnalytical,
		Message: fmt.Sprintf("social stock covers %.1f%% of registered demand", s.Metrics.CoverageRatio),
		Path:    "metrics.coverage_ratio_pct",
	})
}

func validateArrears(providers []provider.Provider, report *validation.Report) {
	for i, p := range providers {
		if p.ArrearsRate > arrearsAlertPct {
			report.AddWarning(validation.Result{
				Level:       validation.LevelAnalytical,
				Message:     fmt.Sprintf("%s: arrears rate %.1f%% exceeds %.1f%%", p.Name, p.ArrearsRate, arrearsAlertPct),
				Path:        fmt.Sprintf("providers[%d].arrears_rate", i),
				ActualValue: p.ArrearsRate,
				Expected:    fmt.Sprintf("<= %.1f", arrearsAlertPct),
				Suggestions: []string{"Review tenant support and collection procedures"},
			})
		}
	}
}

func validateRenovation(providers []provider.Provider, report *validation.Report) {
	for i, p := range providers {
		if p.EnergyRenovationRate < renovationTargetPct {
			report.AddWarning(validation.Result{
				Level:       validation.LevelAnalytical,
				Message:     fmt.Sprintf("%s: energy renovation rate %.0f%% is below the %.0f%% target", p.Name, p.EnergyRenovationRate, renovationTargetPct),
				Path:        fmt.Sprintf("providers[%d].energy_renovation_rate", i),
				ActualValue: p.EnergyRenovationRate,
				Expected:    fmt.Sprintf(">= %.0f", renovationTargetPct),
			})
		}
	}
}

func validateVacancy(s *Summary, report *validation.Report) {
	for _, g := range s.Rollups.VacancyByProvider {
		if v := g.Value(ColVacancy); v > vacancyAlertPct {
			report.AddWarning(validation.Result{
				Level:       validation.LevelDerived,
				Message:     fmt.Sprintf("%s: mean vacancy %.1f%% exceeds %.1f%%", g.Key, v, vacancyAlertPct),
				Path:        "rollups.vacancy_by_provider",
				ActualValue: v,
				Expected:    fmt.Sprintf("<= %.1f", vacancyAlertPct),
			})
		}
	}
}

func validateProjects(d *synth.Derived, report *validation.Report) {
	for i, p := range d.Projects {
		if err := p.Validate(); err != nil {
			report.AddError(validation.Result{
				Level:       validation.LevelDerived,
				Message:     err.Error(),
				Path:        fmt.Sprintf("projects[%d]", i),
				ActualValue: p.Name,
			})
		}
	}
}
