package analytics

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/ChicagoDave/housingdash/pkg/dataset"
	"github.com/ChicagoDave/housingdash/pkg/provider"
	"github.com/ChicagoDave/housingdash/pkg/synth"
	"github.com/ChicagoDave/housingdash/pkg/validation"
)

func derivedFor(t *testing.T, providers []provider.Provider) *synth.Derived {
	t.Helper()
	cfg := synth.ConfigFromDataset(dataset.Default())
	cfg.ToYear = 2025
	cfg.Now = func() time.Time { return time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC) }
	d, err := synth.New(cfg).Generate(providers, rand.New(rand.NewPCG(7, 11)))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return d
}

func TestResolveReference(t *testing.T) {
	providers := dataset.Default().Providers
	d := derivedFor(t, providers)

	s, report, err := Resolve(providers, d, dataset.Default().Indicators)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	m := s.Metrics
	if m.Providers != 7 {
		t.Errorf("providers = %d, want 7", m.Providers)
	}
	if m.TotalStock != 42550 {
		t.Errorf("total stock = %d, want 42550", m.TotalStock)
	}
	if m.AnnualConstruction != 1630 {
		t.Errorf("annual construction = %d, want 1630", m.AnnualConstruction)
	}
	if m.ActiveProjects != synth.DefaultProjectCount {
		t.Errorf("active projects = %d, want %d", m.ActiveProjects, synth.DefaultProjectCount)
	}

	var demand int
	for _, r := range d.Demand {
		demand += r.TotalDemand
	}
	if m.TotalDemand != demand {
		t.Errorf("total demand = %d, want %d", m.TotalDemand, demand)
	}
	want, _ := CoverageRatio(42550, float64(demand))
	if m.CoverageRatio != want {
		t.Errorf("coverage = %v, want %v", m.CoverageRatio, want)
	}

	if len(s.Rankings.ByStock) != 7 || s.Rankings.ByStock[0].TotalStock != 24850 {
		t.Errorf("stock ranking head = %+v", s.Rankings.ByStock[0])
	}
	if len(s.Rollups.StockByType) != len(dataset.Default().HousingTypes) {
		t.Errorf("stock by type = %d groups, want %d", len(s.Rollups.StockByType), len(dataset.Default().HousingTypes))
	}
	if len(s.Rollups.PortfolioByYear) != 11 {
		t.Errorf("portfolio years = %d, want 11 (2015-2025)", len(s.Rollups.PortfolioByYear))
	}
	if len(s.InvestmentPerUnit) != 7 {
		t.Errorf("per unit ratios = %d, want 7", len(s.InvestmentPerUnit))
	}

	if len(s.Indicators) != 6 {
		t.Errorf("indicators = %d, want 6", len(s.Indicators))
	}
	if !report.Valid {
		t.Errorf("generated data should validate: %v", report.Errors)
	}
	if !hasWarning(report, "Foyer Réunionnais: arrears rate") {
		t.Error("expected arrears warning for Foyer Réunionnais")
	}
	if !hasWarning(report, "SEMADER: energy renovation rate") {
		t.Error("expected renovation warning for SEMADER")
	}
}

func TestResolveZeroDemand(t *testing.T) {
	providers := dataset.Default().Providers
	d := derivedFor(t, providers)
	for i := range d.Demand {
		d.Demand[i].TotalDemand = 0
	}

	_, _, err := Resolve(providers, d, nil)
	if !errors.Is(err, ErrDivisionUndefined) {
		t.Errorf("error = %v, want ErrDivisionUndefined", err)
	}
}

func TestResolveFlagsBadProject(t *testing.T) {
	providers := dataset.Default().Providers
	d := derivedFor(t, providers)
	d.Projects[0].PlannedCompletion = d.Projects[0].Start

	_, report, err := Resolve(providers, d, nil)
	if err != nil {
		t.Fatal(err)
	}
	if report.Valid {
		t.Fatal("report should be invalid")
	}
	if got := report.Errors[0]; got.Level != validation.LevelDerived || got.Path != "projects[0]" {
		t.Errorf("error = %+v", got)
	}
}

func TestResolveZeroStockProvider(t *testing.T) {
	providers := dataset.Default().Providers
	providers[5].TotalStock = 0
	providers[5].ManagedUnits = 0
	d := derivedFor(t, providers)

	s, report, err := Resolve(providers, d, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(s.InvestmentPerUnit) != 6 {
		t.Fatalf("per unit ratios = %d, want 6", len(s.InvestmentPerUnit))
	}
	for _, r := range s.InvestmentPerUnit {
		if r.Provider == "Foyer Réunionnais" {
			t.Error("zero-stock provider kept a per unit ratio")
		}
	}
	if s.Metrics.TotalStock != 42550-850 {
		t.Errorf("total stock = %d, want %d", s.Metrics.TotalStock, 42550-850)
	}
	if !hasWarning(report, "investment per unit omitted: division undefined") {
		t.Errorf("expected per unit warning, got %v", report.Warnings)
	}
	if !report.Valid {
		t.Errorf("zero stock should warn, not fail: %v", report.Errors)
	}
}

func TestResolveZeroTargetIndicator(t *testing.T) {
	providers := dataset.Default().Providers
	d := derivedFor(t, providers)
	indicators := []dataset.Indicator{
		{Name: "Vacancy rate", Value: 4.2, Target: 3.0, Unit: "%", Trend: dataset.TrendDown},
		{Name: "Unset", Value: 5, Target: 0},
	}

	s, report, err := Resolve(providers, d, indicators)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(s.Indicators) != 1 || s.Indicators[0].Name != "Vacancy rate" {
		t.Fatalf("indicators = %+v", s.Indicators)
	}
	if !hasWarning(report, "Unset: progress omitted") {
		t.Errorf("expected zero-target warning, got %v", report.Warnings)
	}
}

func hasWarning(r *validation.Report, prefix string) bool {
	for _, w := range r.Warnings {
		if strings.HasPrefix(w.Message, prefix) {
			return true
		}
	}
	return false
}
