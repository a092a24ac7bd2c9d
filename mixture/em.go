// Package mixture implements the shared K-component Normal EM engine of
// spec.md 4.D, and the Normal/LogNormal mixture engines built on it.
package mixture

import (
	"context"
	"math"
	"math/rand"

	"github.com/MyVueCodeHub/bayesfit/bayeserrors"
	"github.com/MyVueCodeHub/bayesfit/distributions"
	"github.com/MyVueCodeHub/bayesfit/internal/bflog"
	"github.com/MyVueCodeHub/bayesfit/posterior"
)

// BatchSize is the cooperative-yield granularity within an E-step, per
// spec.md 5 ("EM yields every batch of batch_size = 64 data points").
const BatchSize = 64

const (
	defaultTol     = 1e-6
	defaultMaxIter = 200
	varianceFloor  = 1e-6
	weightFloor    = 1.0 / 10 // multiplied by 1/n below
)

// Diagnostics reports EM convergence per spec.md 4.D/7: NonConvergence is a
// diagnostic, not a returned error -- the posterior is still usable.
type Diagnostics struct {
	Converged          bool
	Iterations         int
	FinalLogLikelihood float64
}

// Result is the fitted component list plus convergence diagnostics.
type Result struct {
	Components []posterior.Component
	Diagnostics
}

// Fit runs the shared EM algorithm over x (already in the space the caller
// wants fit -- log-space for a lognormal mixture, raw for a normal mixture)
// with k components, seeded deterministically by rng. It cooperatively
// checks ctx at BatchSize-point boundaries within each E-step and at the end
// of every iteration (spec.md 5).
func Fit(ctx context.Context, x []float64, k int, rng *rand.Rand) (Result, error) {
	n := len(x)
	if n < k {
		return Result{}, bayeserrors.NotEnoughDataf("mixture fit requires n >= k, got n=%d k=%d", n, k)
	}
	if k < 1 {
		return Result{}, bayeserrors.InvalidParams("mixture component count must be >= 1, got %d", k)
	}

	means, sigmas := kMeansPlusPlusInit(x, k, rng)
	weights := make([]float64, k)
	for i := range weights {
		weights[i] = 1.0 / float64(k)
	}

	totalVar := variance(x)
	floor := varianceFloor * totalVar
	if floor <= 0 {
		floor = varianceFloor
	}
	globalStd := math.Sqrt(totalVar)

	resp := make([][]float64, n)
	for i := range resp {
		resp[i] = make([]float64, k)
	}

	prevLL := math.Inf(-1)
	converged := false
	iterations := 0

	for iter := 0; iter < defaultMaxIter; iter++ {
		iterations = iter + 1

		ll, err := eStep(ctx, x, means, sigmas, weights, resp)
		if err != nil {
			return Result{}, err
		}

		mStep(x, resp, means, sigmas, weights, floor, globalStd, rng)

		select {
		case <-ctx.Done():
			return Result{}, bayeserrors.Cancelledf("mixture fit cancelled at end of iteration %d", iter)
		default:
		}

		if math.Abs(ll-prevLL) < defaultTol*math.Max(1, math.Abs(ll)) {
			converged = true
			prevLL = ll
			break
		}
		prevLL = ll
	}

	if !converged {
		bflog.Logger.Warn().Int("k", k).Int("n", n).Int("iterations", iterations).
			Msg("mixture EM did not converge within max iterations")
	}

	components := make([]posterior.Component, k)
	for i := 0; i < k; i++ {
		components[i] = posterior.Component{Mean: means[i], Variance: sigmas[i] * sigmas[i], Weight: weights[i]}
	}
	sortComponents(components)

	return Result{
		Components: components,
		Diagnostics: Diagnostics{
			Converged:          converged,
			Iterations:         iterations,
			FinalLogLikelihood: prevLL,
		},
	}, nil
}

func eStep(ctx context.Context, x []float64, means, sigmas, weights []float64, resp [][]float64) (float64, error) {
	n, k := len(x), len(means)
	terms := make([]float64, k)
	totalLL := 0.0
	for i := 0; i < n; i++ {
		if i > 0 && i%BatchSize == 0 {
			select {
			case <-ctx.Done():
				return 0, bayeserrors.Cancelledf("mixture fit cancelled mid-batch at point %d", i)
			default:
			}
		}
		for kk := 0; kk < k; kk++ {
			terms[kk] = math.Log(weights[kk]) + normalLogPdf(x[i], means[kk], sigmas[kk])
		}
		logNorm := distributions.LogSumExp(terms)
		totalLL += logNorm
		for kk := 0; kk < k; kk++ {
			resp[i][kk] = math.Exp(terms[kk] - logNorm)
		}
	}
	return totalLL, nil
}

func mStep(x []float64, resp [][]float64, means, sigmas, weights []float64, floor, globalStd float64, rng *rand.Rand) {
	n, k := len(x), len(means)
	nk := make([]float64, k)
	newMeans := make([]float64, k)
	for i := 0; i < n; i++ {
		for kk := 0; kk < k; kk++ {
			nk[kk] += resp[i][kk]
			newMeans[kk] += resp[i][kk] * x[i]
		}
	}
	for kk := 0; kk < k; kk++ {
		if nk[kk] > 0 {
			newMeans[kk] /= nk[kk]
		} else {
			newMeans[kk] = means[kk]
		}
	}

	newVar := make([]float64, k)
	for i := 0; i < n; i++ {
		for kk := 0; kk < k; kk++ {
			d := x[i] - newMeans[kk]
			newVar[kk] += resp[i][kk] * d * d
		}
	}
	for kk := 0; kk < k; kk++ {
		if nk[kk] > 0 {
			newVar[kk] /= nk[kk]
		}
		if newVar[kk] < floor {
			newVar[kk] = floor
		}
		weights[kk] = nk[kk] / float64(n)
		means[kk] = newMeans[kk]
		sigmas[kk] = math.Sqrt(newVar[kk])
	}

	minWeight := weightFloor / float64(n)
	for kk := 0; kk < k; kk++ {
		if weights[kk] < minWeight {
			means[kk] = x[rng.Intn(n)]
			sigmas[kk] = globalStd
		}
	}
}

func normalLogPdf(x, mu, sigma float64) float64 {
	if sigma <= 0 {
		if x == mu {
			return math.Inf(1)
		}
		return math.Inf(-1)
	}
	z := (x - mu) / sigma
	return -0.5*z*z - math.Log(sigma) - 0.5*math.Log(2*math.Pi)
}

func variance(x []float64) float64 {
	n := float64(len(x))
	if n == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= n
	s := 0.0
	for _, v := range x {
		d := v - mean
		s += d * d
	}
	return s / n
}

func sortComponents(c []posterior.Component) {
	for i := 1; i < len(c); i++ {
		for j := i; j > 0 && c[j].Mean < c[j-1].Mean; j-- {
			c[j], c[j-1] = c[j-1], c[j]
		}
	}
}

// BalanceScore measures how uniform a weight vector is -- sum((w_k -
// 1/K)^2) -- used by the router to break ties between equally scored
// candidates by preferring the more balanced configuration (spec.md 4.D).
func BalanceScore(weights []float64) float64 {
	k := float64(len(weights))
	score := 0.0
	for _, w := range weights {
		d := w - 1/k
		score += d * d
	}
	return score
}
