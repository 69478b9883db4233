package pipeline

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/ChicagoDave/housingdash/pkg/provider"
)

// Order compares two rows. A nil Order keeps load order.
type Order[T any] func(a, b T) int

// Reverse inverts o. Ties still keep load order.
func (o Order[T]) Reverse() Order[T] {
	if o == nil {
		return nil
	}
	return func(a, b T) int { return o(b, a) }
}

// Then breaks ties in o with next.
func (o Order[T]) Then(next Order[T]) Order[T] {
	if o == nil {
		return next
	}
	if next == nil {
		return o
	}
	return func(a, b T) int {
		if c := o(a, b); c != 0 {
			return c
		}
		return next(a, b)
	}
}

// Descending orders rows by key, largest first.
func Descending[T any](key func(T) float64) Order[T] {
	return func(a, b T) int { return cmp.Compare(key(b), key(a)) }
}

// ByField orders providers by a numeric field, largest first.
func ByField(field provider.Field) Order[provider.Provider] {
	return Descending(field.Value)
}

// ByTier orders providers by performance tier rank, best first.
func ByTier() Order[provider.Provider] {
	return Descending(func(p provider.Provider) float64 { return float64(p.Tier.Rank()) })
}

// ParseProviderOrder resolves a sort key name. "performance" and "tier"
// select ByTier; any other name is resolved as a provider field. An empty
// name keeps load order.
func ParseProviderOrder(s string) (Order[provider.Provider], error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "", "load":
		return nil, nil
	case "performance", "tier":
		return ByTier(), nil
	}
	field, err := provider.ParseField(key)
	if err != nil {
		return nil, fmt.Errorf("sort key: %w", err)
	}
	return ByField(field), nil
}

// Apply returns the rows of in that pass filter, ordered by order. Equal
// rows keep their relative input order. The input is never modified.
func Apply[T any](in []T, filter Filter[T], order Order[T]) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if filter.Match(v) {
			out = append(out, v)
		}
	}
	if order != nil {
		slices.SortStableFunc(out, order)
	}
	return out
}
