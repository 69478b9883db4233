package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ChicagoDave/housingdash/pkg/analytics"
	"github.com/ChicagoDave/housingdash/pkg/provider"
	"github.com/ChicagoDave/housingdash/pkg/report"
	"github.com/ChicagoDave/housingdash/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(e)
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			printResult(w)
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(res validation.Result) {
	fmt.Printf("  [%s] %s\n", res.Level, res.Message)
	if res.Path != "" && res.ActualValue != nil {
		fmt.Printf("    -> %s\n", res.Where())
	}
	if res.Expected != "" {
		fmt.Printf("    expected: %s\n", res.Expected)
	}
	for _, s := range res.Suggestions {
		fmt.Printf("    * %s\n", s)
	}
}

func printReport(r *report.Report) {
	m := r.Summary.Metrics

	title := fmt.Sprintf("Social Housing Portfolio - %s", r.Territory)
	fmt.Println(title)
	fmt.Println(strings.Repeat("=", len([]rune(title))))
	fmt.Printf("Generated %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04"))

	fmt.Println("Key Metrics")
	fmt.Println("-----------")
	fmt.Printf("  Providers:               %d\n", m.Providers)
	fmt.Printf("  Total stock:             %s units\n", formatCount(m.TotalStock))
	fmt.Printf("  Annual construction:     %s units\n", formatCount(m.AnnualConstruction))
	fmt.Printf("  Annual investment:       EUR %s\n", formatMoney(m.TotalInvestmentM*1e6))
	fmt.Printf("  Mean arrears rate:       %.1f%%\n", m.MeanArrearsRate)
	fmt.Printf("  Mean energy renovation:  %.0f%%\n", m.MeanEnergyRenovation)
	fmt.Printf("  Priority neighborhoods:  %d\n", m.PriorityNeighborhoods)
	fmt.Printf("  Registered demand:       %s (%s urgent)\n", formatCount(m.TotalDemand), formatCount(m.UrgentDemand))
	fmt.Printf("  Coverage ratio:          %.1f%%\n", m.CoverageRatio)
	fmt.Printf("  Active projects:         %d (%s planned units, EUR %s)\n",
		m.ActiveProjects, formatCount(m.PlannedUnits), formatMoney(m.ProjectInvestmentM*1e6))
	fmt.Printf("  Annual funding:          EUR %s\n", formatMoney(m.AnnualFundingM*1e6))

	fmt.Println()
	fmt.Println("Providers by Stock")
	fmt.Println("------------------")
	printProviderTable(r.Summary.Rankings.ByStock)

	fmt.Println()
	fmt.Println("Stock by Housing Type")
	fmt.Println("---------------------")
	printGroups(r.Summary.Rollups.StockByType, analytics.ColUnits, "%12.0f")

	fmt.Println()
	fmt.Println("Funding by Aid Type (EUR M)")
	fmt.Println("---------------------------")
	printGroups(r.Summary.Rollups.FundingByAidType, analytics.ColAmount, "%12.1f")

	if len(r.Summary.Indicators) > 0 {
		fmt.Println()
		fmt.Println("Strategic Indicators")
		fmt.Println("--------------------")
		for _, ind := range r.Summary.Indicators {
			fmt.Println("  " + formatIndicator(ind))
		}
	}
}

func formatIndicator(ind analytics.IndicatorStatus) string {
	return fmt.Sprintf("%-24s %10s / %-10s %5.0f%%  %s",
		ind.Name,
		formatMeasure(ind.Value, ind.Unit),
		formatMeasure(ind.Target, ind.Unit),
		ind.ProgressPct, ind.Trend)
}

func formatMeasure(v float64, unit string) string {
	if unit == "%" {
		return humanize.FtoaWithDigits(v, 1) + "%"
	}
	return humanize.FtoaWithDigits(v, 1) + " " + unit
}

func printGroups(groups []analytics.Group, col, format string) {
	for _, g := range groups {
		fmt.Printf("  %-24s "+format+"\n", g.Key, g.Value(col))
	}
}

func printProviderTable(providers []provider.Provider) {
	fmt.Printf("%-44s %-12s %-10s %10s %12s %9s\n",
		"Provider", "Type", "Tier", "Stock", "Investment", "Arrears")
	fmt.Printf("%-44s %-12s %-10s %10s %12s %9s\n",
		strings.Repeat("-", 44), strings.Repeat("-", 12), strings.Repeat("-", 10),
		strings.Repeat("-", 10), strings.Repeat("-", 12), strings.Repeat("-", 9))

	for _, p := range providers {
		fmt.Printf("%-44s %-12s %-10s %10s %12s %8.1f%%\n",
			truncate(p.Name, 44), p.Type, p.Tier, formatCount(p.TotalStock),
			formatMoney(p.InvestmentM*1e6), p.ArrearsRate)
	}
}

func printSheet(s *report.Sheet) {
	p := s.Provider
	fmt.Println(p.Name)
	fmt.Println(strings.Repeat("=", len([]rune(p.Name))))
	if p.Description != "" {
		fmt.Println(p.Description)
	}
	fmt.Println()
	fmt.Printf("  Type:                 %s (%s)\n", p.Type, p.Status)
	fmt.Printf("  Founded:              %d\n", p.Founded)
	fmt.Printf("  Headquarters:         %s (%s region)\n", p.Headquarters, s.Region)
	fmt.Printf("  Performance:          %s\n", p.Tier)
	fmt.Printf("  Stock:                %s units (rank %d)\n", formatCount(p.TotalStock), s.StockRank)
	fmt.Printf("  Revenue:              EUR %s\n", formatMoney(p.RevenueM*1e6))
	fmt.Printf("  Investment:           EUR %s (EUR %s per unit)\n",
		formatMoney(p.InvestmentM*1e6), formatMoney(s.InvestmentPerUnit))
	fmt.Printf("  Arrears rate:         %.1f%%\n", p.ArrearsRate)
	fmt.Printf("  Energy renovation:    %.0f%%\n", p.EnergyRenovationRate)

	fmt.Println()
	fmt.Printf("%-16s %10s %8s %10s %9s\n", "Housing type", "Units", "Share", "Rent", "Vacancy")
	for _, seg := range s.Segments {
		fmt.Printf("%-16s %10s %7.1f%% %10.0f %8.1f%%\n",
			seg.HousingType, formatCount(seg.Units), seg.Proportion, seg.AvgRent, seg.VacancyRate)
	}

	fmt.Println()
	fmt.Printf("%-6s %10s %12s %12s %9s\n", "Year", "Stock", "Construction", "Investment", "Arrears")
	for _, h := range s.History {
		fmt.Printf("%-6d %10.0f %12.0f %12s %8.2f%%\n",
			h.Year, h.Stock, h.Construction, formatMoney(h.InvestmentM*1e6), h.ArrearsRate)
	}

	if len(s.Projects) > 0 {
		fmt.Println()
		fmt.Printf("Projects (%d):\n", len(s.Projects))
		for _, pr := range s.Projects {
			fmt.Printf("  %-28s %-18s %4d units %5.0f%% %s\n",
				pr.Name, pr.Type, pr.PlannedUnits, pr.Progress, pr.Status)
		}
	}
}

func formatMoney(v float64) string {
	if v >= 1_000_000_000 {
		return fmt.Sprintf("%.2fB", v/1_000_000_000)
	}
	if v >= 1_000_000 {
		return fmt.Sprintf("%.2fM", v/1_000_000)
	}
	if v >= 1_000 {
		return fmt.Sprintf("%.0fK", v/1_000)
	}
	return fmt.Sprintf("%.0f", v)
}

func formatCount(n int) string {
	return humanize.Comma(int64(n))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}
