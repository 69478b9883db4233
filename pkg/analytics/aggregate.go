package analytics

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ChicagoDave/housingdash/pkg/provider"
)

// ErrDivisionUndefined is returned when a ratio's denominator is zero.
var ErrDivisionUndefined = errors.New("division undefined: zero denominator")

// UnitRatio is a per-provider ratio.
type UnitRatio struct {
	Provider string  `json:"provider"`
	Value    float64 `json:"value"`
}

// Total sums field across providers.
func Total(providers []provider.Provider, field provider.Field) float64 {
	return floats.Sum(fieldValues(providers, field))
}

// Mean averages field across providers. An empty set has no mean.
func Mean(providers []provider.Provider, field provider.Field) (float64, error) {
	if len(providers) == 0 {
		return 0, fmt.Errorf("%w: mean of %s over no providers", ErrDivisionUndefined, field)
	}
	return stat.Mean(fieldValues(providers, field), nil), nil
}

// CoverageRatio returns total supply as a percentage of total demand.
func CoverageRatio(totalStock, totalDemand float64) (float64, error) {
	if totalDemand == 0 {
		return 0, fmt.Errorf("%w: coverage ratio with zero demand", ErrDivisionUndefined)
	}
	return 100 * totalStock / totalDemand, nil
}

// TopN returns the n providers with the largest field values, largest first.
// Equal values keep their input order.
func TopN(providers []provider.Provider, field provider.Field, n int) []provider.Provider {
	if n <= 0 {
		return []provider.Provider{}
	}
	sorted := slices.Clone(providers)
	slices.SortStableFunc(sorted, func(a, b provider.Provider) int {
		return compareDesc(field.Value(a), field.Value(b))
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// PerUnitInvestment returns each provider's annual investment per housing
// unit in euros (investment is held in millions).
func PerUnitInvestment(providers []provider.Provider) ([]UnitRatio, error) {
	ratios := make([]UnitRatio, 0, len(providers))
	for _, p := range providers {
		if p.TotalStock == 0 {
			return nil, fmt.Errorf("%w: provider %q has no stock", ErrDivisionUndefined, p.Name)
		}
		ratios = append(ratios, UnitRatio{
			Provider: p.Name,
			Value:    p.InvestmentM * 1_000_000 / float64(p.TotalStock),
		})
	}
	return ratios, nil
}

func fieldValues(providers []provider.Provider, field provider.Field) []float64 {
	values := make([]float64, len(providers))
	for i, p := range providers {
		values[i] = field.Value(p)
	}
	return values
}

func compareDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}
