package analytics

import (
	"fmt"

	"github.com/ChicagoDave/housingdash/pkg/dataset"
)

// IndicatorStatus is a strategic indicator with its progress toward target.
type IndicatorStatus struct {
	dataset.Indicator
	ProgressPct float64 `json:"progress_pct"`
}

// Progress returns value as a percentage of target, clamped to [0, 100].
func Progress(value, target float64) (float64, error) {
	if target == 0 {
		return 0, fmt.Errorf("%w: progress toward a zero target", ErrDivisionUndefined)
	}
	pct := 100 * value / target
	return min(max(pct, 0), 100), nil
}

// Indicators computes progress for every indicator in order. An indicator
// with a zero target fails the whole call.
func Indicators(indicators []dataset.Indicator) ([]IndicatorStatus, error) {
	out := make([]IndicatorStatus, 0, len(indicators))
	for _, ind := range indicators {
		pct, err := Progress(ind.Value, ind.Target)
		if err != nil {
			return nil, fmt.Errorf("indicator %q: %w", ind.Name, err)
		}
		out = append(out, IndicatorStatus{Indicator: ind, ProgressPct: pct})
	}
	return out, nil
}
