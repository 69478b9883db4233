package synth

import (
	"hash/fnv"
	"math/rand/v2"
)

// SeedVersion identifies the identity-hash scheme. Changing Seed or the
// second PCG word changes every generated segment and must bump it.
const SeedVersion = 1

// seedStream is XORed into the identity hash to form the second PCG word.
const seedStream = 0x9e3779b97f4a7c15

// Seed returns the FNV-1a 64-bit hash of identity.
func Seed(identity string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(identity))
	return h.Sum64()
}

// SeededRand returns a random source whose stream depends only on identity.
func SeededRand(identity string) *rand.Rand {
	seed := Seed(identity)
	return rand.New(rand.NewPCG(seed, seed^seedStream))
}
