package analytics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// AggFunc reduces a group's values to one number.
type AggFunc string

const (
	Sum   AggFunc = "sum"
	Avg   AggFunc = "mean"
	Count AggFunc = "count"
	Min   AggFunc = "min"
	Max   AggFunc = "max"
)

// Agg names one output column of a grouping: the aggregation applied to
// Value over every row in the group. Value is ignored for Count.
type Agg[T any] struct {
	Name  string
	Func  AggFunc
	Value func(T) float64
}

// Group is one output row of GroupBy.
type Group struct {
	Key    string             `json:"key"`
	Rows   int                `json:"rows"`
	Values map[string]float64 `json:"values"`
}

// Value returns the named aggregate, or 0 if it was not computed.
func (g Group) Value(name string) float64 {
	return g.Values[name]
}

// GroupBy partitions rows by key and applies each aggregation per group.
// Groups are returned in order of each key's first appearance.
func GroupBy[T any](rows []T, key func(T) string, aggs ...Agg[T]) ([]Group, error) {
	for _, a := range aggs {
		switch a.Func {
		case Sum, Avg, Min, Max:
			if a.Value == nil {
				return nil, fmt.Errorf("aggregation %q: %s needs a value function", a.Name, a.Func)
			}
		case Count:
		default:
			return nil, fmt.Errorf("aggregation %q: unknown function %q", a.Name, a.Func)
		}
	}

	var order []string
	members := make(map[string][]T)
	for _, r := range rows {
		k := key(r)
		if _, seen := members[k]; !seen {
			order = append(order, k)
		}
		members[k] = append(members[k], r)
	}

	groups := make([]Group, 0, len(order))
	for _, k := range order {
		rs := members[k]
		g := Group{Key: k, Rows: len(rs), Values: make(map[string]float64, len(aggs))}
		for _, a := range aggs {
			g.Values[a.Name] = apply(a, rs)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func apply[T any](a Agg[T], rows []T) float64 {
	if a.Func == Count {
		return float64(len(rows))
	}
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = a.Value(r)
	}
	switch a.Func {
	case Sum:
		return floats.Sum(values)
	case Avg:
		return stat.Mean(values, nil)
	case Min:
		return floats.Min(values)
	case Max:
		return floats.Max(values)
	}
	return 0
}
