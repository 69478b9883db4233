package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ChicagoDave/housingdash/pkg/dataset"
	"github.com/ChicagoDave/housingdash/pkg/provider"
	"github.com/ChicagoDave/housingdash/pkg/synth"
)

func names(ps []provider.Provider) []string {
	return provider.Names(ps)
}

func TestFilterStructureTypeAllTiers(t *testing.T) {
	providers := dataset.Default().Providers

	filter, err := ProviderFilter("SEM", All)
	require.NoError(t, err)

	got := Apply(providers, filter, nil)
	require.Equal(t, []string{
		"SIDR - Société Immobilière Départementale",
		"SEMADER",
		"SEMAFOR",
	}, names(got))
}

func TestFilterAllReturnsInputUnchanged(t *testing.T) {
	providers := dataset.Default().Providers

	filter, err := ProviderFilter(All, All)
	require.NoError(t, err)
	require.False(t, filter.Active())
	require.Equal(t, providers, Apply(providers, filter, nil))

	require.Equal(t, providers, Apply(providers, nil, nil))
}

func TestFilterTier(t *testing.T) {
	providers := dataset.Default().Providers

	filter, err := ProviderFilter("", "High")
	require.NoError(t, err)
	got := Apply(providers, filter, nil)
	require.Len(t, got, 3)
	for _, p := range got {
		require.Equal(t, provider.TierHigh, p.Tier)
	}

	_, err = ProviderFilter("", "Outstanding")
	require.ErrorIs(t, err, provider.ErrUnknownTier)
}

func TestFilterCombinesWithAnd(t *testing.T) {
	providers := dataset.Default().Providers

	filter, err := ProviderFilter("SEM", "Medium")
	require.NoError(t, err)
	require.Equal(t, []string{"SEMADER", "SEMAFOR"}, names(Apply(providers, filter, nil)))

	filter = append(filter, Named("SEMAFOR", "GRH"))
	require.Equal(t, []string{"SEMAFOR"}, names(Apply(providers, filter, nil)))
}

func TestSortByTierIsStable(t *testing.T) {
	in := []provider.Provider{
		{Name: "idx0", Tier: provider.TierHigh},
		{Name: "idx1", Tier: provider.TierExcellent},
		{Name: "idx2", Tier: provider.TierExcellent},
		{Name: "idx3", Tier: provider.TierLow},
	}
	got := Apply(in, nil, ByTier())
	require.Equal(t, []string{"idx1", "idx2", "idx0", "idx3"}, names(got))

	// Input order is untouched.
	require.Equal(t, []string{"idx0", "idx1", "idx2", "idx3"}, names(in))
}

func TestSortByTierNotLexical(t *testing.T) {
	in := []provider.Provider{
		{Name: "low", Tier: provider.TierLow},
		{Name: "medium", Tier: provider.TierMedium},
		{Name: "excellent", Tier: provider.TierExcellent},
		{Name: "high", Tier: provider.TierHigh},
	}
	got := Apply(in, nil, ByTier())
	require.Equal(t, []string{"excellent", "high", "medium", "low"}, names(got))

	asc := Apply(in, nil, ByTier().Reverse())
	require.Equal(t, []string{"low", "medium", "high", "excellent"}, names(asc))
}

func TestParseProviderOrder(t *testing.T) {
	providers := dataset.Default().Providers

	order, err := ParseProviderOrder("stock")
	require.NoError(t, err)
	got := Apply(providers, nil, order)
	require.Equal(t, 24850, got[0].TotalStock)
	require.Equal(t, 4850, got[1].TotalStock)
	require.Equal(t, 4200, got[2].TotalStock)
	require.Equal(t, 850, got[6].TotalStock)

	order, err = ParseProviderOrder("performance")
	require.NoError(t, err)
	got = Apply(providers, nil, order)
	require.Equal(t, provider.TierExcellent, got[0].Tier)
	require.Equal(t, provider.TierLow, got[6].Tier)

	order, err = ParseProviderOrder("")
	require.NoError(t, err)
	require.Nil(t, order)

	_, err = ParseProviderOrder("colour")
	require.ErrorIs(t, err, provider.ErrInvalidInput)
}

func TestOrderThen(t *testing.T) {
	in := []provider.Provider{
		{Name: "a", Tier: provider.TierHigh, InvestmentM: 1},
		{Name: "b", Tier: provider.TierHigh, InvestmentM: 5},
		{Name: "c", Tier: provider.TierExcellent, InvestmentM: 2},
	}
	got := Apply(in, nil, ByTier().Then(ByField(provider.FieldInvestment)))
	require.Equal(t, []string{"c", "b", "a"}, names(got))
}

func TestSegmentPredicates(t *testing.T) {
	segments := []synth.Segment{
		{Provider: "A", HousingType: "PLAI", Units: 10},
		{Provider: "B", HousingType: "PLUS", Units: 30},
		{Provider: "A", HousingType: "PLS", Units: 20},
		{Provider: "B", HousingType: "PLAI", Units: 40},
	}

	byOwner := ProvidersOf(func(s synth.Segment) string { return s.Provider }, "A")
	filter := Filter[synth.Segment]{byOwner, HousingTypes("PLAI", "PLS")}
	order := Descending(func(s synth.Segment) float64 { return float64(s.Units) })

	got := Apply(segments, filter, order)
	require.Len(t, got, 2)
	require.Equal(t, "PLS", got[0].HousingType)
	require.Equal(t, "PLAI", got[1].HousingType)

	require.Nil(t, HousingTypes(All))
	require.Nil(t, HousingTypes())
}

func TestOneOf(t *testing.T) {
	funding := []synth.FundingSource{
		{Funder: "State", AidType: "Grant"},
		{Funder: "CDC", AidType: "Loan"},
		{Funder: "EU", AidType: "Guarantee"},
	}
	aid := func(f synth.FundingSource) string { return f.AidType }

	values := []string{"Loan", All, "", "Grant"}
	got := Apply(funding, Filter[synth.FundingSource]{OneOf(aid, values...)}, nil)
	require.Len(t, got, 2)
	require.Equal(t, "State", got[0].Funder)
	require.Equal(t, "CDC", got[1].Funder)
	require.Equal(t, []string{"Loan", All, "", "Grant"}, values)

	require.Nil(t, OneOf(aid))
	require.Nil(t, OneOf(aid, All, ""))
	require.False(t, OneOf(aid, "Subsidy")(funding[0]))
}

func TestProjectPredicates(t *testing.T) {
	projects := []synth.Project{
		{Name: "p1", Region: "North", Status: "in-construction"},
		{Name: "p2", Region: "South", Status: "completed"},
		{Name: "p3", Region: "North", Status: "completed"},
	}

	got := Apply(projects, Filter[synth.Project]{Region("north"), Status("completed")}, nil)
	require.Len(t, got, 1)
	require.Equal(t, "p3", got[0].Name)

	require.Len(t, Apply(projects, Filter[synth.Project]{Region(All), Status("")}, nil), 3)
}

func TestDateRange(t *testing.T) {
	var history []synth.Snapshot
	for year := 2015; year <= 2025; year++ {
		history = append(history, synth.Snapshot{
			Year: year,
			Date: time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		})
	}

	got := Apply(history, Filter[synth.Snapshot]{YearRange(2018, 2020)}, nil)
	require.Len(t, got, 3)
	require.Equal(t, 2018, got[0].Year)
	require.Equal(t, 2020, got[2].Year)

	got = Apply(history, Filter[synth.Snapshot]{YearRange(2023, 0)}, nil)
	require.Len(t, got, 3)

	require.Nil(t, YearRange(0, 0))
}
