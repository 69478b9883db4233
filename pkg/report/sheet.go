package report

import (
	"fmt"

	"github.com/ChicagoDave/housingdash/pkg/pipeline"
	"github.com/ChicagoDave/housingdash/pkg/provider"
	"github.com/ChicagoDave/housingdash/pkg/synth"
)

// Sheet is the detail view of a single provider.
type Sheet struct {
	Provider          provider.Provider `json:"provider"`
	Region            string            `json:"region"`
	InvestmentPerUnit float64           `json:"investment_per_unit"`
	StockRank         int               `json:"stock_rank"`
	Segments          []synth.Segment   `json:"segments"`
	History           []synth.Snapshot  `json:"history"`
	Projects          []synth.Project   `json:"projects"`
}

// ProviderSheet collects everything the report holds about one provider.
func (r *Report) ProviderSheet(name string) (*Sheet, error) {
	p, err := r.Provider(name)
	if err != nil {
		return nil, err
	}

	var perUnit float64
	for _, u := range r.Summary.InvestmentPerUnit {
		if u.Provider == name {
			perUnit = u.Value
			break
		}
	}

	ranked := pipeline.Apply(r.Providers, nil, pipeline.ByField(provider.FieldTotalStock))
	rank := 0
	for i, q := range ranked {
		if q.Name == name {
			rank = i + 1
			break
		}
	}
	if rank == 0 {
		return nil, fmt.Errorf("%w: %q missing from ranking", provider.ErrNotFound, name)
	}

	return &Sheet{
		Provider:          p,
		Region:            r.regions[name],
		InvestmentPerUnit: perUnit,
		StockRank:         rank,
		Segments: pipeline.Apply(r.Derived.Segments,
			pipeline.Filter[synth.Segment]{pipeline.ProvidersOf(segmentOwner, name)}, nil),
		History: pipeline.Apply(r.Derived.History,
			pipeline.Filter[synth.Snapshot]{pipeline.ProvidersOf(snapshotOwner, name)}, nil),
		Projects: pipeline.Apply(r.Derived.Projects,
			pipeline.Filter[synth.Project]{pipeline.ProvidersOf(projectOwner, name)}, nil),
	}, nil
}

func segmentOwner(s synth.Segment) string { return s.Provider }
func snapshotOwner(s synth.Snapshot) string { return s.Provider }
func projectOwner(p synth.Project) string { return p.Provider }
