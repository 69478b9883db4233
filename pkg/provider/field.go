package provider

import (
	"fmt"
	"strings"
)

// Field names a numeric provider attribute that can be totalled, ranked or
// used as a sort key.
type Field string

const (
	FieldTotalStock            Field = "total_stock"
	FieldManagedUnits          Field = "managed_units"
	FieldAnnualConstruction    Field = "annual_construction"
	FieldRevenue               Field = "revenue_m"
	FieldHeadcount             Field = "headcount"
	FieldTurnoverRate          Field = "turnover_rate"
	FieldArrearsRate           Field = "arrears_rate"
	FieldDebtPerUnit           Field = "debt_per_unit"
	FieldInvestment            Field = "investment_m"
	FieldPriorityNeighborhoods Field = "priority_neighborhoods"
	FieldEnergyRenovationRate  Field = "energy_renovation_rate"
	FieldFounded               Field = "founded"
)

var fieldGetters = map[Field]func(Provider) float64{
	FieldTotalStock:            func(p Provider) float64 { return float64(p.TotalStock) },
	FieldManagedUnits:          func(p Provider) float64 { return float64(p.ManagedUnits) },
	FieldAnnualConstruction:    func(p Provider) float64 { return float64(p.AnnualConstruction) },
	FieldRevenue:               func(p Provider) float64 { return p.RevenueM },
	FieldHeadcount:             func(p Provider) float64 { return float64(p.Headcount) },
	FieldTurnoverRate:          func(p Provider) float64 { return p.TurnoverRate },
	FieldArrearsRate:           func(p Provider) float64 { return p.ArrearsRate },
	FieldDebtPerUnit:           func(p Provider) float64 { return p.DebtPerUnit },
	FieldInvestment:            func(p Provider) float64 { return p.InvestmentM },
	FieldPriorityNeighborhoods: func(p Provider) float64 { return float64(p.PriorityNeighborhoods) },
	FieldEnergyRenovationRate:  func(p Provider) float64 { return p.EnergyRenovationRate },
	FieldFounded:               func(p Provider) float64 { return float64(p.Founded) },
}

// fieldAliases maps the short names used on the command line and in query
// strings to fields.
var fieldAliases = map[string]Field{
	"stock":        FieldTotalStock,
	"parc_total":   FieldTotalStock,
	"construction": FieldAnnualConstruction,
	"revenue":      FieldRevenue,
	"ca":           FieldRevenue,
	"investment":   FieldInvestment,
	"arrears":      FieldArrearsRate,
	"turnover":     FieldTurnoverRate,
	"debt":         FieldDebtPerUnit,
	"renovation":   FieldEnergyRenovationRate,
}

// Value returns the field's value for p. Unknown fields yield 0.
func (f Field) Value(p Provider) float64 {
	if get, ok := fieldGetters[f]; ok {
		return get(p)
	}
	return 0
}

// Valid reports whether f names a known numeric attribute.
func (f Field) Valid() bool {
	_, ok := fieldGetters[f]
	return ok
}

// ParseField resolves a field name or alias.
func ParseField(s string) (Field, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if f := Field(key); f.Valid() {
		return f, nil
	}
	if f, ok := fieldAliases[key]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown field %q", ErrInvalidInput, s)
}
