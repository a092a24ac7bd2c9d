package mixture

import (
	"math"
	"math/rand"
)

// kMeansPlusPlusInit deterministically (given rng) seeds k component means
// via k-means++: the first center is drawn uniformly, subsequent centers
// are drawn with probability proportional to squared distance from the
// nearest existing center. Initial sigma_k is the pooled std / sqrt(k) for
// every component, per spec.md 4.D.
func kMeansPlusPlusInit(x []float64, k int, rng *rand.Rand) (means, sigmas []float64) {
	n := len(x)
	means = make([]float64, k)
	means[0] = x[rng.Intn(n)]

	dist2 := make([]float64, n)
	for c := 1; c < k; c++ {
		total := 0.0
		for i, v := range x {
			best := math.Inf(1)
			for j := 0; j < c; j++ {
				d := v - means[j]
				d2 := d * d
				if d2 < best {
					best = d2
				}
			}
			dist2[i] = best
			total += best
		}
		if total <= 0 {
			means[c] = x[rng.Intn(n)]
			continue
		}
		target := rng.Float64() * total
		cum := 0.0
		chosen := n - 1
		for i, d2 := range dist2 {
			cum += d2
			if cum >= target {
				chosen = i
				break
			}
		}
		means[c] = x[chosen]
	}

	pooledStd := math.Sqrt(variance(x))
	initSigma := pooledStd / math.Sqrt(float64(k))
	if initSigma <= 0 {
		initSigma = 1
	}
	sigmas = make([]float64, k)
	for i := range sigmas {
		sigmas[i] = initSigma
	}
	return means, sigmas
}
