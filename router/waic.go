package router

import (
	"context"
	"math"
	"math/rand"

	"github.com/MyVueCodeHub/bayesfit/bayeserrors"
	"github.com/MyVueCodeHub/bayesfit/distributions"
	"github.com/MyVueCodeHub/bayesfit/posterior"
)

// DefaultWAICDraws is S, the number of posterior parameter draws used to
// build the log-likelihood matrix of spec.md 4.G.
const DefaultWAICDraws = 1000

// waicYieldEvery is the batch granularity at which WAIC evaluation checks
// ctx for cancellation: every 1000 posterior draws while sampling, and every
// 1000 observations while filling the log-likelihood matrix.
const waicYieldEvery = 1000

// WAICResult is the outcome of spec.md 4.G: lppd, the effective parameter
// count p_WAIC, elpd, and WAIC = -2*(lppd - p_WAIC) on the observed data.
type WAICResult struct {
	LPPD        float64
	PWAIC       float64
	ELPD        float64
	WAIC        float64
	Draws       int
	Unavailable bool
	Reason      string
}

// EvaluateSimple computes WAIC for any posterior exposing ParamSampler over
// a flat observation vector (0/1 for Beta-Binomial, continuous values
// otherwise).
func EvaluateSimple(ctx context.Context, sampler posterior.ParamSampler, observations []float64, s int, rng *rand.Rand) (WAICResult, error) {
	if s <= 0 {
		s = DefaultWAICDraws
	}
	thetas := make([][]float64, 0, s)
	for len(thetas) < s {
		select {
		case <-ctx.Done():
			return WAICResult{}, bayeserrors.Cancelledf("waic evaluation cancelled after %d/%d draws", len(thetas), s)
		default:
		}
		batch := s - len(thetas)
		if batch > waicYieldEvery {
			batch = waicYieldEvery
		}
		thetas = append(thetas, sampler.DrawParamSamples(batch, rng)...)
	}

	n := len(observations)
	matrix := make([][]float64, n)
	for i, x := range observations {
		if i%waicYieldEvery == 0 {
			select {
			case <-ctx.Done():
				return WAICResult{}, bayeserrors.Cancelledf("waic evaluation cancelled at point %d/%d", i, n)
			default:
			}
		}
		row := make([]float64, s)
		for draw := 0; draw < s; draw++ {
			row[draw] = sampler.LogLikelihoodAt(x, thetas[draw])
		}
		matrix[i] = row
	}
	return FromMatrix(matrix, s), nil
}

// FromMatrix computes WAIC from a precomputed n x s log-likelihood matrix
// (row i = point i's log-likelihood under each of the s posterior draws).
func FromMatrix(matrix [][]float64, s int) WAICResult {
	n := len(matrix)
	if n == 0 {
		return WAICResult{Unavailable: true, Reason: "no observations", Draws: s}
	}

	var lppd, pWAIC float64
	bad := 0
	for _, row := range matrix {
		if len(row) == 0 {
			bad++
			continue
		}
		logMean := distributions.LogSumExp(row) - math.Log(float64(len(row)))
		v := sampleVariance(row)
		if math.IsNaN(logMean) || math.IsInf(logMean, 0) || math.IsNaN(v) || math.IsInf(v, 0) {
			bad++
			continue
		}
		lppd += logMean
		pWAIC += v
	}

	if bad == n {
		return WAICResult{Unavailable: true, Reason: "all points had non-finite log-likelihoods", Draws: s}
	}

	elpd := lppd - pWAIC
	result := WAICResult{LPPD: lppd, PWAIC: pWAIC, ELPD: elpd, WAIC: -2 * elpd, Draws: s}
	if bad > 0 {
		result.Unavailable = false
		result.Reason = "partial: some points excluded for non-finite log-likelihood"
	}
	return result
}

// sampleVariance is the unbiased (denominator S-1) sample variance of a
// single point's posterior-draw log-likelihoods, i.e. that point's p_WAIC
// contribution.
func sampleVariance(row []float64) float64 {
	s := len(row)
	if s < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range row {
		mean += v
	}
	mean /= float64(s)
	ss := 0.0
	for _, v := range row {
		d := v - mean
		ss += d * d
	}
	return ss / float64(s-1)
}

// AkaikeWeights converts a set of candidate WAIC values into normalized
// Akaike weights, per spec.md 4.F/8: w_k = exp(-0.5*delta_k) / sum_j
// exp(-0.5*delta_j), delta_k = WAIC_k - min(WAIC).
func AkaikeWeights(waics []float64) []float64 {
	n := len(waics)
	weights := make([]float64, n)
	if n == 0 {
		return weights
	}
	minWAIC := math.Inf(1)
	for _, w := range waics {
		if w < minWAIC {
			minWAIC = w
		}
	}
	terms := make([]float64, n)
	total := 0.0
	for i, w := range waics {
		terms[i] = math.Exp(-0.5 * (w - minWAIC))
		total += terms[i]
	}
	if total <= 0 {
		uniform := 1.0 / float64(n)
		for i := range weights {
			weights[i] = uniform
		}
		return weights
	}
	for i, t := range terms {
		weights[i] = t / total
	}
	return weights
}

// observationsFromBinomial expands {successes, trials} counts into a flat
// 0/1 vector for WAIC's per-point log-likelihood matrix.
func observationsFromBinomial(successes, trials int) []float64 {
	out := make([]float64, trials)
	for i := 0; i < successes; i++ {
		out[i] = 1
	}
	return out
}
