package validation

import (
	"fmt"
	"time"

	"github.com/ChicagoDave/housingdash/pkg/provider"
)

// ValidateProviders performs schema validation on loaded provider records.
// It checks structural correctness before any derivation runs.
func ValidateProviders(providers []provider.Provider) *Report {
	r := NewReport()

	if len(providers) == 0 {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  "dataset must contain at least one provider",
			Path:     "providers",
			Expected: "at least 1 provider",
		})
		return r
	}

	seen := make(map[string]int, len(providers))
	for i, p := range providers {
		path := fmt.Sprintf("providers[%d]", i)
		validateIdentity(p, path, i, seen, r)
		validateTier(p, path, r)
		validateStock(p, path, r)
		validateAmounts(p, path, r)
		validateRates(p, path, r)
		validateLocation(p, path, r)
	}
	return r
}

func validateIdentity(p provider.Provider, path string, i int, seen map[string]int, r *Report) {
	if p.Name == "" {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  fmt.Sprintf("%s: name must not be empty", path),
			Path:     path + ".name",
			Expected: "non-empty name",
		})
		return
	}
	if first, dup := seen[p.Name]; dup {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("duplicate provider name %q (first at providers[%d])", p.Name, first),
			Path:        path + ".name",
			ActualValue: p.Name,
			Expected:    "unique name",
		})
		return
	}
	seen[p.Name] = i

	if p.Founded > time.Now().Year() {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s: founded %d is in the future", p.Name, p.Founded),
			Path:        path + ".founded",
			ActualValue: p.Founded,
			Expected:    fmt.Sprintf("<= %d", time.Now().Year()),
		})
	}
}

func validateTier(p provider.Provider, path string, r *Report) {
	if !p.Tier.Valid() {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s: performance tier is missing or unknown", p.Name),
			Path:        path + ".performance",
			ActualValue: int(p.Tier),
			Expected:    "Low, Medium, High or Excellent",
		})
	}
}

func validateStock(p provider.Provider, path string, r *Report) {
	if p.TotalStock < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s: total_stock must be >= 0", p.Name),
			Path:        path + ".total_stock",
			ActualValue: p.TotalStock,
			Expected:    ">= 0",
		})
	}
	if p.TotalStock != p.ManagedUnits {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s: total_stock (%d) must equal managed_units (%d)", p.Name, p.TotalStock, p.ManagedUnits),
			Path:        path + ".managed_units",
			ActualValue: p.ManagedUnits,
			Expected:    fmt.Sprintf("%d", p.TotalStock),
			Suggestions: []string{"Record managed-but-not-owned stock separately; the two counts are expected to match"},
		})
	}
	if p.TotalStock == 0 {
		r.AddWarning(Result{
			Level:    LevelSchema,
			Message:  fmt.Sprintf("%s: total_stock is 0; per-unit ratios are undefined", p.Name),
			Path:     path + ".total_stock",
			Expected: "> 0",
		})
	}
}

func validateAmounts(p provider.Provider, path string, r *Report) {
	amounts := []struct {
		field string
		value float64
	}{
		{"annual_construction", float64(p.AnnualConstruction)},
		{"revenue_m", p.RevenueM},
		{"headcount", float64(p.Headcount)},
		{"debt_per_unit", p.DebtPerUnit},
		{"investment_m", p.InvestmentM},
		{"priority_neighborhoods", float64(p.PriorityNeighborhoods)},
	}
	for _, a := range amounts {
		if a.value < 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s: %s must be non-negative", p.Name, a.field),
				Path:        path + "." + a.field,
				ActualValue: a.value,
				Expected:    ">= 0",
			})
		}
	}
}

func validateRates(p provider.Provider, path string, r *Report) {
	rates := []struct {
		field string
		value float64
	}{
		{"turnover_rate", p.TurnoverRate},
		{"arrears_rate", p.ArrearsRate},
		{"energy_renovation_rate", p.EnergyRenovationRate},
	}
	for _, rate := range rates {
		if rate.value < 0 || rate.value > 100 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s: %s %.1f is outside 0-100%%", p.Name, rate.field, rate.value),
				Path:        path + "." + rate.field,
				ActualValue: rate.value,
				Expected:    "0-100",
			})
		}
	}
}

func validateLocation(p provider.Provider, path string, r *Report) {
	if !p.Location().Valid() {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s: coordinate (%.4f, %.4f) is out of range", p.Name, p.Lat, p.Lon),
			Path:        path + ".lat",
			ActualValue: fmt.Sprintf("%.4f,%.4f", p.Lat, p.Lon),
			Expected:    "lat in [-90,90], lon in [-180,180]",
		})
	}
}
