package posterior

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Component is one mixture component's fitted parameters, reported in the
// space the EM algorithm actually fit in: data space for a normal mixture,
// log space for a lognormal mixture (spec.md 4.D: "all statistics live in
// log-space").
type Component struct {
	Mean     float64
	Variance float64
	Weight   float64
}

// MixturePosterior is the posterior produced by the EM engines in the
// mixture package: a weighted sum of Normal components, optionally
// exponentiated back into data space for a LogNormal mixture.
type MixturePosterior struct {
	family     string
	components []Component // sorted by increasing Mean
	logSpace   bool         // true for lognormal-mixture: Sample()/LogPdf() work in exp-space
	rng        *rand.Rand
	cache      *MCCache
}

// NewMixturePosterior builds a mixture posterior over the given components
// (already sorted by increasing mean), exponentiating sampled draws back to
// data space when logSpace is set.
func NewMixturePosterior(family string, components []Component, logSpace bool, rng *rand.Rand) *MixturePosterior {
	m := &MixturePosterior{family: family, components: components, logSpace: logSpace, rng: rng}
	m.cache = NewMCCache(DefaultCacheSize, m.drawRaw)
	return m
}

// Components returns the fitted components, sorted by increasing mean.
func (m *MixturePosterior) Components() []Component { return m.components }

func (m *MixturePosterior) Family() string { return m.family }

func (m *MixturePosterior) drawRaw(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = m.drawOne()
	}
	return out
}

func (m *MixturePosterior) drawOne() float64 {
	k := m.pickComponent()
	c := m.components[k]
	z := c.Mean + math.Sqrt(c.Variance)*m.rng.NormFloat64()
	if m.logSpace {
		return math.Exp(z)
	}
	return z
}

func (m *MixturePosterior) pickComponent() int {
	u := m.rng.Float64()
	cum := 0.0
	for i, c := range m.components {
		cum += c.Weight
		if u <= cum {
			return i
		}
	}
	return len(m.components) - 1
}

func (m *MixturePosterior) Mean() []float64     { return []float64{m.cache.Mean()} }
func (m *MixturePosterior) Variance() []float64 { return []float64{m.cache.Variance()} }

func (m *MixturePosterior) CredibleInterval(level float64) [][2]float64 {
	return [][2]float64{m.cache.CredibleInterval(level)}
}

func (m *MixturePosterior) Sample(n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = []float64{m.drawOne()}
	}
	return out
}

// LogPdf evaluates the mixture log-density at x, applying the log-space
// Jacobian correction (-log x) when this is a lognormal mixture.
func (m *MixturePosterior) LogPdf(x float64) float64 {
	y := x
	jacobian := 0.0
	if m.logSpace {
		if x <= 0 {
			return math.Inf(-1)
		}
		y = math.Log(x)
		jacobian = -math.Log(x)
	}
	terms := make([]float64, len(m.components))
	for i, c := range m.components {
		sigma := math.Sqrt(c.Variance)
		terms[i] = math.Log(c.Weight) + normalLogPdf(y, c.Mean, sigma)
	}
	return floats.LogSumExp(terms) + jacobian
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

// DrawParamSamples implements posterior.ParamSampler as a point-mass
// simplification: the EM fit has no posterior over its own parameters, so
// every draw returns the same fitted component list flattened as
// [mean_0, var_0, weight_0, mean_1, var_1, weight_1, ...].
func (m *MixturePosterior) DrawParamSamples(s int, rng *rand.Rand) [][]float64 {
	theta := make([]float64, 0, len(m.components)*3)
	for _, c := range m.components {
		theta = append(theta, c.Mean, c.Variance, c.Weight)
	}
	out := make([][]float64, s)
	for i := range out {
		out[i] = theta
	}
	return out
}

// LogLikelihoodAt ignores theta (see DrawParamSamples) and evaluates the
// fixed fitted mixture density.
func (m *MixturePosterior) LogLikelihoodAt(x float64, theta []float64) float64 {
	return m.LogPdf(x)
}
