// Package sample draws uniform subsets without replacement.
package sample

import "math/rand/v2"

// Source draws random indices. A nil *rand.Rand uses the process-wide,
// unseeded generator.
type Source struct {
	rng *rand.Rand
}

// Unseeded returns a Source backed by the global generator.
func Unseeded() *Source { return &Source{} }

// Seeded returns a reproducible Source.
func Seeded(seed uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// New returns Seeded(*seed) when seed is set and Unseeded otherwise.
func New(seed *uint64) *Source {
	if seed == nil {
		return Unseeded()
	}
	return Seeded(*seed)
}

func (s *Source) intN(n int) int {
	if s == nil || s.rng == nil {
		return rand.IntN(n)
	}
	return s.rng.IntN(n)
}

// Pick returns n items of items chosen uniformly without replacement, in
// draw order. If n <= 0 or n >= len(items) the input is returned unchanged.
func Pick[T any](src *Source, items []T, n int) []T {
	if n <= 0 || n >= len(items) {
		return items
	}
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	out := make([]T, n)
	for i := 0; i < n; i++ {
		j := i + src.intN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = items[idx[i]]
	}
	return out
}
