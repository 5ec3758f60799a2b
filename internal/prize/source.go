package prize

import "math/rand/v2"

// RandomSource yields uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64()
}

// DefaultSource is backed by the goroutine-safe top-level math/rand/v2 generator.
func DefaultSource() RandomSource {
	return globalSource{}
}
