package catalog

import (
	"math"
	"math/rand/v2"
)

// Rand is the source of placeholder randomness (ratings, review counts, tips).
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// DefaultRand draws from the math/rand/v2 global source, which is safe for
// concurrent use.
var DefaultRand Rand = globalRand{}

// ProviderRating is the placeholder rating given to provider results, in [4.0, 4.7].
func ProviderRating(r Rand) float64 {
	return Round1(4.0 + r.Float64()*0.7)
}

// KeywordRating is the placeholder rating used by keyword searches, in [4.0, 5.0].
func KeywordRating(r Rand) float64 {
	return 4.0 + Round1(r.Float64())
}

// IntBetween returns a value in [lo, hi].
func IntBetween(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
