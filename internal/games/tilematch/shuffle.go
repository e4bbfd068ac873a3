package tilematch

import "math/rand"

// Shuffle returns a uniformly permuted copy of items. The input is left
// untouched.
func Shuffle[T any](rng *rand.Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)

	// Fisher-Yates, walking down from the last index
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
