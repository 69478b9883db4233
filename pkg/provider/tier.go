package provider

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Tier is the ordered management-performance rating of a provider.
// The zero value is not a valid tier.
type Tier int

const (
	TierLow Tier = iota + 1
	TierMedium
	TierHigh
	TierExcellent
)

// Tiers lists every valid tier in ascending rank order.
var Tiers = []Tier{TierLow, TierMedium, TierHigh, TierExcellent}

var tierNames = map[Tier]string{
	TierLow:       "Low",
	TierMedium:    "Medium",
	TierHigh:      "High",
	TierExcellent: "Excellent",
}

// Rank returns the ordinal used for sorting: Low=1 ... Excellent=4.
func (t Tier) Rank() int {
	if !t.Valid() {
		return 0
	}
	return int(t)
}

// Valid reports whether t is one of the four defined tiers.
func (t Tier) Valid() bool {
	_, ok := tierNames[t]
	return ok
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// ParseTier converts a tier name into a Tier.
func ParseTier(s string) (Tier, error) {
	for t, name := range tierNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

func (t Tier) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTier, int(t))
	}
	return json.Marshal(t.String())
}

func (t *Tier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTier(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t *Tier) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseTier(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*t = parsed
	return nil
}

func (t Tier) MarshalYAML() (any, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTier, int(t))
	}
	return t.String(), nil
}
