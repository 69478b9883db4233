package synth

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ChicagoDave/housingdash/pkg/dataset"
	"github.com/ChicagoDave/housingdash/pkg/provider"
)

// ErrInvalidInput indicates an empty or malformed source collection.
var ErrInvalidInput = errors.New("invalid generator input")

var errNilRand = fmt.Errorf("%w: nil random source", ErrInvalidInput)

// Sampling ranges. Upper bounds are exclusive unless noted.
const (
	BaseYear = 2015

	segmentProportionMin = 5.0
	segmentProportionMax = 30.0
	segmentRentMin       = 150.0
	segmentRentMax       = 450.0
	segmentVacancyMin    = 1.0
	segmentVacancyMax    = 8.0

	stockBaseline        = 0.8
	constructionBaseline = 0.9
	investmentBaseline   = 0.8
	annualGrowth         = 0.03
	arrearsNoiseSigma    = 0.1

	projectUnitsMin      = 20
	projectUnitsMax      = 200 // inclusive
	projectInvestMin     = 5.0
	projectInvestMax     = 50.0
	projectStartDays     = 365
	projectEndDaysMin    = 180
	projectEndDaysMax    = 720
	projectProgressMin   = 10.0
	projectProgressMax   = 95.0
	projectLocationDelta = 0.05

	demandTotalMin   = 800
	demandTotalMax   = 3500
	demandWaitMin    = 18.0
	demandWaitMax    = 48.0
	demandSatisfyMin = 15.0
	demandSatisfyMax = 40.0
	demandUrgentMin  = 50
	demandUrgentMax  = 300
	demandIncomeMin  = 1200.0
	demandIncomeMax  = 2200.0

	fundingAmountMin       = 10.0
	fundingAmountMax       = 100.0
	fundingInterventionMin = 10.0
	fundingInterventionMax = 40.0
	fundingProjectsMin     = 5
	fundingProjectsMax     = 30

	DefaultProjectCount = 50
)

// Config fixes the catalogues and bounds a Generator draws from.
type Config struct {
	FromYear        int
	ToYear          int
	ProjectCount    int
	HousingTypes    []string
	Regions         []dataset.Region
	ProjectTypes    []string
	ProjectStatuses []string
	Municipalities  []string
	Funders         []string
	AidTypes        []string

	// Now is the reference instant for project dates. Defaults to time.Now.
	Now func() time.Time
}

// ConfigFromDataset builds a Config from a dataset's catalogues with the
// default year range and project count.
func ConfigFromDataset(ds *dataset.Dataset) Config {
	return Config{
		FromYear:        BaseYear,
		ToYear:          time.Now().Year(),
		ProjectCount:    DefaultProjectCount,
		HousingTypes:    ds.HousingTypeCodes(),
		Regions:         ds.Regions,
		ProjectTypes:    ds.ProjectTypes,
		ProjectStatuses: ds.ProjectStatuses,
		Municipalities:  ds.Municipalities,
		Funders:         ds.Funders,
		AidTypes:        ds.AidTypes,
	}
}

// Generator derives segments, history, projects, demand and funding records.
// It holds no random state: segments are seeded per provider identity and
// every other collection draws from the source passed by the caller.
type Generator struct {
	cfg Config
}

// New returns a Generator for cfg.
func New(cfg Config) *Generator {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Generator{cfg: cfg}
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// NewRand returns a random source seeded independently of any other.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Segments splits each provider's stock by housing type. The result depends
// only on the provider records: each provider's draws come from a source
// seeded with Seed(name), so output is identical across runs and unaffected
// by provider order or by which other providers are present.
func (g *Generator) Segments(providers []provider.Provider) ([]Segment, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("%w: no providers", ErrInvalidInput)
	}
	if len(g.cfg.HousingTypes) == 0 {
		return nil, fmt.Errorf("%w: no housing types", ErrInvalidInput)
	}

	segments := make([]Segment, 0, len(providers)*len(g.cfg.HousingTypes))
	for _, p := range providers {
		rng := SeededRand(p.Name)
		for _, ht := range g.cfg.HousingTypes {
			proportion := uniform(rng, segmentProportionMin, segmentProportionMax)
			rent := uniform(rng, segmentRentMin, segmentRentMax)
			vacancy := uniform(rng, segmentVacancyMin, segmentVacancyMax)

			segments = append(segments, Segment{
				Provider:    p.Name,
				HousingType: ht,
				Units:       int(math.Floor(proportion / 100 * float64(p.TotalStock))),
				Proportion:  proportion,
				AvgRent:     rent,
				VacancyRate: vacancy,
			})
		}
	}
	return segments, nil
}

// History extrapolates one year-end snapshot per provider per year in
// [FromYear, ToYear]. Stock, construction and investment are deterministic;
// the arrears rate carries multiplicative N(0, 0.1) noise drawn from rng.
func (g *Generator) History(providers []provider.Provider, rng *rand.Rand) ([]Snapshot, error) {
	if rng == nil {
		return nil, errNilRand
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("%w: no providers", ErrInvalidInput)
	}
	if g.cfg.FromYear > g.cfg.ToYear {
		return nil, fmt.Errorf("%w: from year %d after to year %d", ErrInvalidInput, g.cfg.FromYear, g.cfg.ToYear)
	}

	noise := distuv.Normal{Mu: 0, Sigma: arrearsNoiseSigma, Src: rng}
	years := g.cfg.ToYear - g.cfg.FromYear + 1
	history := make([]Snapshot, 0, years*len(providers))

	for year := g.cfg.FromYear; year <= g.cfg.ToYear; year++ {
		trend := TrendFactor(year)
		date := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		for _, p := range providers {
			history = append(history, Snapshot{
				Date:         date,
				Year:         year,
				Provider:     p.Name,
				Stock:        float64(p.TotalStock) * stockBaseline * trend,
				Construction: float64(p.AnnualConstruction) * constructionBaseline * trend,
				ArrearsRate:  p.ArrearsRate * (1 + noise.Rand()),
				InvestmentM:  p.InvestmentM * investmentBaseline * trend,
			})
		}
	}
	return history, nil
}

// TrendFactor is the linear growth multiplier applied to historical series.
func TrendFactor(year int) float64 {
	return 1 + float64(year-BaseYear)*annualGrowth
}

// Projects samples ProjectCount active projects. Every project starts up to
// a year before Now and is planned to complete 6 to 24 months after it.
func (g *Generator) Projects(providers []provider.Provider, rng *rand.Rand) ([]Project, error) {
	if rng == nil {
		return nil, errNilRand
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("%w: no providers", ErrInvalidInput)
	}
	if g.cfg.ProjectCount < 0 {
		return nil, fmt.Errorf("%w: negative project count %d", ErrInvalidInput, g.cfg.ProjectCount)
	}
	if len(g.cfg.Regions) == 0 || len(g.cfg.ProjectTypes) == 0 || len(g.cfg.ProjectStatuses) == 0 {
		return nil, fmt.Errorf("%w: project catalogues are empty", ErrInvalidInput)
	}

	now := g.cfg.Now()
	projects := make([]Project, 0, g.cfg.ProjectCount)
	for i := range g.cfg.ProjectCount {
		owner := providers[rng.IntN(len(providers))]
		region := g.cfg.Regions[rng.IntN(len(g.cfg.Regions))]
		kind := pick(rng, g.cfg.ProjectTypes)

		projects = append(projects, Project{
			Name:              fmt.Sprintf("Project %d - %s", i+1, region.Name),
			Provider:          owner.Name,
			Region:            region.Name,
			Type:              kind,
			PlannedUnits:      intRange(rng, projectUnitsMin, projectUnitsMax+1),
			InvestmentM:       uniform(rng, projectInvestMin, projectInvestMax),
			Start:             now.AddDate(0, 0, -rng.IntN(projectStartDays)),
			PlannedCompletion: now.AddDate(0, 0, intRange(rng, projectEndDaysMin, projectEndDaysMax)),
			Progress:          uniform(rng, projectProgressMin, projectProgressMax),
			Status:            pick(rng, g.cfg.ProjectStatuses),
			Location:          region.Centroid.Jitter(rng, projectLocationDelta),
		})
	}
	return projects, nil
}

// Demand samples one demand record per municipality.
func (g *Generator) Demand(municipalities []string, rng *rand.Rand) ([]DemandRecord, error) {
	if rng == nil {
		return nil, errNilRand
	}
	if len(municipalities) == 0 {
		return nil, fmt.Errorf("%w: no municipalities", ErrInvalidInput)
	}
	records := make([]DemandRecord, 0, len(municipalities))
	for _, m := range municipalities {
		records = append(records, DemandRecord{
			Municipality:     m,
			TotalDemand:      intRange(rng, demandTotalMin, demandTotalMax),
			AvgWaitMonths:    uniform(rng, demandWaitMin, demandWaitMax),
			SatisfactionRate: uniform(rng, demandSatisfyMin, demandSatisfyMax),
			UrgentDemand:     intRange(rng, demandUrgentMin, demandUrgentMax),
			AvgIncome:        uniform(rng, demandIncomeMin, demandIncomeMax),
		})
	}
	return records, nil
}

// Funding samples one funding record per funder.
func (g *Generator) Funding(funders []string, rng *rand.Rand) ([]FundingSource, error) {
	if rng == nil {
		return nil, errNilRand
	}
	if len(funders) == 0 {
		return nil, fmt.Errorf("%w: no funders", ErrInvalidInput)
	}
	if len(g.cfg.AidTypes) == 0 {
		return nil, fmt.Errorf("%w: no aid types", ErrInvalidInput)
	}
	sources := make([]FundingSource, 0, len(funders))
	for _, f := range funders {
		sources = append(sources, FundingSource{
			Funder:            f,
			AnnualAmountM:     uniform(rng, fundingAmountMin, fundingAmountMax),
			AidType:           pick(rng, g.cfg.AidTypes),
			InterventionRate:  uniform(rng, fundingInterventionMin, fundingInterventionMax),
			SupportedProjects: intRange(rng, fundingProjectsMin, fundingProjectsMax),
		})
	}
	return sources, nil
}

// Generate runs every generator over providers. Segments are reproducible;
// the other collections draw from rng, which must not be nil.
func (g *Generator) Generate(providers []provider.Provider, rng *rand.Rand) (*Derived, error) {
	segments, err := g.Segments(providers)
	if err != nil {
		return nil, fmt.Errorf("generating segments: %w", err)
	}
	history, err := g.History(providers, rng)
	if err != nil {
		return nil, fmt.Errorf("generating history: %w", err)
	}
	projects, err := g.Projects(providers, rng)
	if err != nil {
		return nil, fmt.Errorf("generating projects: %w", err)
	}
	demand, err := g.Demand(g.cfg.Municipalities, rng)
	if err != nil {
		return nil, fmt.Errorf("generating demand: %w", err)
	}
	funding, err := g.Funding(g.cfg.Funders, rng)
	if err != nil {
		return nil, fmt.Errorf("generating funding: %w", err)
	}

	return &Derived{
		GeneratedAt: g.cfg.Now(),
		Segments:    segments,
		History:     history,
		Projects:    projects,
		Demand:      demand,
		Funding:     funding,
	}, nil
}

// uniform draws from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// intRange draws an integer from [lo, hi).
func intRange(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo)
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.IntN(len(options))]
}
