package colour

import (
	"math/rand/v2"
)

// SeedByFrequency returns the k most frequent colours.
func SeedByFrequency(byCount []Frequency, k int) []Color {
	k = min(k, len(byCount))
	centroids := make([]Color, k)
	for i := range k {
		centroids[i] = byCount[i].Value.Color()
	}
	return centroids
}

// SeedRandom draws k distinct colours from palette uniformly at random
// without replacement.
func SeedRandom(rng *rand.Rand, palette []Color, k int) []Color {
	k = min(k, len(palette))
	indices := make([]int, len(palette))
	for i := range indices {
		indices[i] = i
	}

	// Partial Fisher-Yates: the first k slots end up holding a uniform sample.
	centroids := make([]Color, k)
	for i := range k {
		j := i + rng.IntN(len(indices)-i)
		indices[i], indices[j] = indices[j], indices[i]
		centroids[i] = palette[indices[i]]
	}
	return centroids
}

// newRand returns the per-run generator for seed.
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
