package conjugate

import "math/rand"

// rngSource adapts a *rand.Rand (which itself implements rand.Source) for
// the distributions package's constructors; nil is passed through so gonum
// falls back to its global source when no seed was requested.
func rngSource(rng *rand.Rand) rand.Source {
	if rng == nil {
		return nil
	}
	return rng
}
