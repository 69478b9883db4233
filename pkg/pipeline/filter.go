// Package pipeline filters and orders provider and derived-row collections.
// Every operation is a pure function of its arguments; no state is kept
// between calls and inputs are never modified.
package pipeline

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ChicagoDave/housingdash/pkg/provider"
	"github.com/ChicagoDave/housingdash/pkg/synth"
)

// All is the sentinel value that disables a predicate.
const All = "All"

// Predicate reports whether a row passes.
type Predicate[T any] func(T) bool

// Filter is a conjunction of predicates. Nil entries are skipped, so a
// constructor can return nil for "no filtering on this dimension".
type Filter[T any] []Predicate[T]

// Match reports whether v passes every non-nil predicate.
func (f Filter[T]) Match(v T) bool {
	for _, p := range f {
		if p != nil && !p(v) {
			return false
		}
	}
	return true
}

// Active reports whether any predicate would filter.
func (f Filter[T]) Active() bool {
	for _, p := range f {
		if p != nil {
			return true
		}
	}
	return false
}

func disabled(v string) bool {
	return v == "" || v == All
}

// StructureType keeps providers whose legal structure equals v.
func StructureType(v string) Predicate[provider.Provider] {
	if disabled(v) {
		return nil
	}
	return func(p provider.Provider) bool { return p.Type == v }
}

// PerformanceTier keeps providers rated v. The name must be a known tier
// unless it is All.
func PerformanceTier(v string) (Predicate[provider.Provider], error) {
	if disabled(v) {
		return nil, nil
	}
	tier, err := provider.ParseTier(v)
	if err != nil {
		return nil, err
	}
	return func(p provider.Provider) bool { return p.Tier == tier }, nil
}

// Named keeps providers whose name is listed. No names means no filtering.
func Named(names ...string) Predicate[provider.Provider] {
	return ProvidersOf(func(p provider.Provider) string { return p.Name }, names...)
}

// ProviderFilter builds the structure-type and tier filter used by provider
// listings.
func ProviderFilter(structureType, tier string) (Filter[provider.Provider], error) {
	byTier, err := PerformanceTier(tier)
	if err != nil {
		return nil, fmt.Errorf("tier filter: %w", err)
	}
	return Filter[provider.Provider]{StructureType(structureType), byTier}, nil
}

// OneOf keeps rows whose key, read by get, is one of values. Empty values
// and All are ignored; if none remain the predicate is nil.
func OneOf[T any](get func(T) string, values ...string) Predicate[T] {
	values = compact(values)
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(v T) bool {
		_, ok := set[get(v)]
		return ok
	}
}

// ProvidersOf keeps rows whose owning provider is listed.
func ProvidersOf[T any](owner func(T) string, names ...string) Predicate[T] {
	return OneOf(owner, names...)
}

// HousingTypes keeps segments of the listed housing types.
func HousingTypes(codes ...string) Predicate[synth.Segment] {
	return OneOf(func(s synth.Segment) string { return s.HousingType }, codes...)
}

// Region keeps projects located in region v.
func Region(v string) Predicate[synth.Project] {
	if disabled(v) {
		return nil
	}
	return func(p synth.Project) bool { return strings.EqualFold(p.Region, v) }
}

// Status keeps projects with status v.
func Status(v string) Predicate[synth.Project] {
	if disabled(v) {
		return nil
	}
	return func(p synth.Project) bool { return strings.EqualFold(p.Status, v) }
}

// DateRange keeps rows whose date falls in [from, to]. A zero bound is open.
func DateRange[T any](get func(T) time.Time, from, to time.Time) Predicate[T] {
	if from.IsZero() && to.IsZero() {
		return nil
	}
	return func(v T) bool {
		d := get(v)
		if !from.IsZero() && d.Before(from) {
			return false
		}
		if !to.IsZero() && d.After(to) {
			return false
		}
		return true
	}
}

// YearRange keeps snapshots dated in years [from, to]. Zero means open.
func YearRange(from, to int) Predicate[synth.Snapshot] {
	var lo, hi time.Time
	if from != 0 {
		lo = time.Date(from, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	if to != 0 {
		hi = time.Date(to, time.December, 31, 23, 59, 59, 0, time.UTC)
	}
	return DateRange(func(s synth.Snapshot) time.Time { return s.Date }, lo, hi)
}

// compact drops empty values and the All sentinel.
func compact(values []string) []string {
	return slices.DeleteFunc(slices.Clone(values), disabled)
}
