package provider

import (
	"encoding/json"
	"errors"
	"testing"
)

func sampleProviders() []Provider {
	return []Provider{
		{Name: "A", Type: "Group", TotalStock: 100, ManagedUnits: 100, Tier: TierHigh},
		{Name: "B", Type: "SEM", TotalStock: 50, ManagedUnits: 50, Tier: TierExcellent},
		{Name: "C", Type: "SEM", TotalStock: 75, ManagedUnits: 75, Tier: TierLow},
	}
}

func TestNewStoreAndGet(t *testing.T) {
	s, err := NewStore(sampleProviders())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}

	p, err := s.Get("B")
	if err != nil {
		t.Fatalf("Get(B) failed: %v", err)
	}
	if p.TotalStock != 50 {
		t.Errorf("B stock = %d, want 50", p.TotalStock)
	}
	if s.Index("C") != 2 {
		t.Errorf("Index(C) = %d, want 2", s.Index("C"))
	}
	if s.Index("Z") != -1 {
		t.Errorf("Index(Z) = %d, want -1", s.Index("Z"))
	}
}

func TestGetNotFound(t *testing.T) {
	s, _ := NewStore(sampleProviders())
	_, err := s.Get("Nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(Nope) error = %v, want ErrNotFound", err)
	}
}

func TestLoadReturnsCopyInOrder(t *testing.T) {
	s, _ := NewStore(sampleProviders())
	got := s.Load()
	got[0].Name = "mutated"

	again := s.Load()
	names := Names(again)
	want := []string{"A", "B", "C"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Load()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestNewStoreRejects(t *testing.T) {
	tests := []struct {
		name      string
		providers []Provider
	}{
		{"empty", nil},
		{"duplicate", []Provider{
			{Name: "A", TotalStock: 1, ManagedUnits: 1, Tier: TierLow},
			{Name: "A", TotalStock: 1, ManagedUnits: 1, Tier: TierLow},
		}},
		{"unnamed", []Provider{{TotalStock: 1, ManagedUnits: 1, Tier: TierLow}}},
		{"stock mismatch", []Provider{{Name: "A", TotalStock: 10, ManagedUnits: 9, Tier: TierLow}}},
		{"missing tier", []Provider{{Name: "A", TotalStock: 1, ManagedUnits: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStore(tt.providers)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("NewStore error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestTierRank(t *testing.T) {
	want := map[Tier]int{TierLow: 1, TierMedium: 2, TierHigh: 3, TierExcellent: 4}
	for tier, rank := range want {
		if tier.Rank() != rank {
			t.Errorf("%v.Rank() = %d, want %d", tier, tier.Rank(), rank)
		}
	}
	if Tier(0).Rank() != 0 {
		t.Error("invalid tier should rank 0")
	}
}

func TestParseTier(t *testing.T) {
	for _, tier := range Tiers {
		got, err := ParseTier(tier.String())
		if err != nil || got != tier {
			t.Errorf("ParseTier(%q) = %v, %v", tier.String(), got, err)
		}
	}
	if _, err := ParseTier("excellent"); !errors.Is(err, ErrUnknownTier) {
		t.Errorf("ParseTier is case sensitive; got err %v", err)
	}
}

func TestTierJSON(t *testing.T) {
	data, err := json.Marshal(TierExcellent)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"Excellent"` {
		t.Errorf("marshal = %s", data)
	}

	var tier Tier
	if err := json.Unmarshal([]byte(`"Bogus"`), &tier); !errors.Is(err, ErrUnknownTier) {
		t.Errorf("unmarshal Bogus error = %v, want ErrUnknownTier", err)
	}
	if _, err := json.Marshal(Tier(9)); err == nil {
		t.Error("expected marshal error for invalid tier")
	}
}

func TestParseField(t *testing.T) {
	tests := map[string]Field{
		"total_stock": FieldTotalStock,
		"stock":       FieldTotalStock,
		"parc_total":  FieldTotalStock,
		"Investment":  FieldInvestment,
		"revenue":     FieldRevenue,
	}
	for in, want := range tests {
		got, err := ParseField(in)
		if err != nil || got != want {
			t.Errorf("ParseField(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseField("colour"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParseField(colour) error = %v, want ErrInvalidInput", err)
	}
}

func TestFieldValue(t *testing.T) {
	p := Provider{TotalStock: 10, InvestmentM: 2.5, ArrearsRate: 1.5}
	if FieldTotalStock.Value(p) != 10 {
		t.Error("total_stock value")
	}
	if FieldInvestment.Value(p) != 2.5 {
		t.Error("investment value")
	}
	if Field("nope").Value(p) != 0 {
		t.Error("unknown field should be 0")
	}
}
