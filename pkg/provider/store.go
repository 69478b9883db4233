package provider

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNotFound indicates no loaded provider has the requested name.
	ErrNotFound = errors.New("provider not found")
	// ErrInvalidInput indicates a malformed provider collection.
	ErrInvalidInput = errors.New("invalid provider input")
	// ErrUnknownTier indicates a performance tier outside Low/Medium/High/Excellent.
	ErrUnknownTier = errors.New("unknown performance tier")
)

// Store holds the authoritative provider records in load order.
// It is read-only after construction and safe for concurrent use.
type Store struct {
	providers []Provider
	index     map[string]int
}

// NewStore validates providers and returns a store over a private copy.
func NewStore(providers []Provider) (*Store, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("%w: no providers", ErrInvalidInput)
	}

	s := &Store{
		providers: slices.Clone(providers),
		index:     make(map[string]int, len(providers)),
	}
	for i, p := range s.providers {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: provider %d has no name", ErrInvalidInput, i)
		}
		if _, dup := s.index[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate provider %q", ErrInvalidInput, p.Name)
		}
		if !p.Tier.Valid() {
			return nil, fmt.Errorf("%w: provider %q: %w", ErrInvalidInput, p.Name, ErrUnknownTier)
		}
		if p.TotalStock != p.ManagedUnits {
			return nil, fmt.Errorf("%w: provider %q: total stock %d differs from managed units %d",
				ErrInvalidInput, p.Name, p.TotalStock, p.ManagedUnits)
		}
		s.index[p.Name] = i
	}
	return s, nil
}

// Load returns every provider in load order. The slice is a copy.
func (s *Store) Load() []Provider {
	return slices.Clone(s.providers)
}

// Get returns the provider with the given name.
func (s *Store) Get(name string) (Provider, error) {
	i, ok := s.index[name]
	if !ok {
		return Provider{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return s.providers[i], nil
}

// Index returns the load-order position of name, or -1.
func (s *Store) Index(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// Len returns the number of providers.
func (s *Store) Len() int {
	return len(s.providers)
}
