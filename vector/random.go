package vector

import "math/rand/v2"

// Source supplies uniformly distributed 32-bit values.
type Source interface {
	Uint32() uint32
}

// SourceFunc adapts a function to Source.
type SourceFunc func() uint32

// Uint32 calls f.
func (f SourceFunc) Uint32() uint32 { return f() }

// DefaultSource draws from the runtime-seeded math/rand/v2 generator.
var DefaultSource Source = SourceFunc(rand.Uint32)

// NewSeededSource returns a deterministic PCG source.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// randIndex returns a uniform value in [0, n) without modulo bias: draws at or
// above the largest multiple of n that fits the 32-bit range are rejected.
func randIndex(src Source, n int) int {
	bound := uint64(n)
	end := (uint64(1) << 32) / bound * bound
	r := uint64(src.Uint32())
	for r >= end {
		r = uint64(src.Uint32())
	}
	return int(r % bound)
}
