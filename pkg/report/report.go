// Package report assembles a provider dataset, its generated collections and
// their aggregates into one immutable snapshot.
package report

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/ChicagoDave/housingdash/pkg/analytics"
	"github.com/ChicagoDave/housingdash/pkg/dataset"
	"github.com/ChicagoDave/housingdash/pkg/provider"
	"github.com/ChicagoDave/housingdash/pkg/synth"
	"github.com/ChicagoDave/housingdash/pkg/validation"
)

// Report is one generation of the dashboard data. It is never modified
// after Build returns and may be shared between goroutines.
type Report struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Territory   string              `json:"territory"`
	Providers   []provider.Provider `json:"providers"`
	Derived     *synth.Derived      `json:"derived"`
	Summary     *analytics.Summary  `json:"summary"`
	Validation  *validation.Report  `json:"validation"`

	regions map[string]string
}

// Builder produces Reports from a fixed dataset.
type Builder struct {
	ds     *dataset.Dataset
	store  *provider.Store
	gen    *synth.Generator
	logger *slog.Logger
}

// NewBuilder validates the dataset's providers and prepares a builder.
// A schema error in the providers is returned as an error. A nil logger
// discards output.
func NewBuilder(ds *dataset.Dataset, cfg synth.Config, logger *slog.Logger) (*Builder, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if schema := validation.ValidateProviders(ds.Providers); !schema.Valid {
		return nil, fmt.Errorf("%w: %w", provider.ErrInvalidInput, schema.Err())
	}
	store, err := provider.NewStore(ds.Providers)
	if err != nil {
		return nil, err
	}
	return &Builder{
		ds:     ds,
		store:  store,
		gen:    synth.New(cfg),
		logger: logger,
	}, nil
}

// Store returns the builder's entity store.
func (b *Builder) Store() *provider.Store {
	return b.store
}

// Dataset returns the dataset the builder reads from.
func (b *Builder) Dataset() *dataset.Dataset {
	return b.ds
}

// Build generates derived collections with rng and aggregates them. A nil
// rng draws from a freshly seeded source.
func (b *Builder) Build(rng *rand.Rand) (*Report, error) {
	if rng == nil {
		rng = synth.NewRand()
	}
	start := time.Now()
	providers := b.store.Load()

	derived, err := b.gen.Generate(providers, rng)
	if err != nil {
		return nil, err
	}

	check := validation.ValidateProviders(providers)
	summary, analyticsReport, err := analytics.Resolve(providers, derived, b.ds.Indicators)
	if err != nil {
		return nil, fmt.Errorf("aggregating: %w", err)
	}
	check.Merge(analyticsReport)

	regions := make(map[string]string, len(providers))
	for _, p := range providers {
		regions[p.Name] = b.ds.RegionOf(p.Location())
	}

	b.logger.Debug("report built",
		"providers", len(providers),
		"projects", len(derived.Projects),
		"warnings", len(check.Warnings),
		"elapsed", time.Since(start))

	return &Report{
		GeneratedAt: derived.GeneratedAt,
		Territory:   b.ds.Territory,
		Providers:   providers,
		Derived:     derived,
		Summary:     summary,
		Validation:  check,
		regions:     regions,
	}, nil
}

// Provider returns the named provider.
func (r *Report) Provider(name string) (provider.Provider, error) {
	i := slices.IndexFunc(r.Providers, func(p provider.Provider) bool { return p.Name == name })
	if i < 0 {
		return provider.Provider{}, fmt.Errorf("%w: %q", provider.ErrNotFound, name)
	}
	return r.Providers[i], nil
}
