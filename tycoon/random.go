package tycoon

import (
	"math/rand/v2"
	"time"
)

// Source is the randomness seam for entity generation. IntN returns a value
// in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a PCG-backed source. A zero seed is replaced by the
// current time so every process plays different games.
func NewSource(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// IntRange is an inclusive integer range.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Span returns a range covering [lo, hi].
func Span(lo, hi int) IntRange {
	return IntRange{Min: lo, Max: hi}
}

// Sample draws uniformly from the range.
func (r IntRange) Sample(src Source) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + src.IntN(r.Max-r.Min+1)
}

// Contains reports whether v lies in the range.
func (r IntRange) Contains(v int) bool {
	return r.Min <= v && v <= r.Max
}

// Valid reports whether Min <= Max.
func (r IntRange) Valid() bool {
	return r.Min <= r.Max
}
