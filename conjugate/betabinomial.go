// Package conjugate implements the closed-form conjugate update engines of
// spec.md 4.C: Beta-Binomial, Gamma-Exponential, and LogNormal-NIG.
package conjugate

import (
	"math"
	"math/rand"

	"github.com/MyVueCodeHub/bayesfit/bayeserrors"
	"github.com/MyVueCodeHub/bayesfit/data"
	"github.com/MyVueCodeHub/bayesfit/distributions"
	"github.com/MyVueCodeHub/bayesfit/posterior"
)

// DefaultBetaPrior is Beta(1,1), the uniform default prior for a conversion
// rate.
var DefaultBetaPrior = [2]float64{1, 1}

// BetaBinomialPosterior is the Beta(alpha, beta) posterior over a binomial
// success probability.
type BetaBinomialPosterior struct {
	Alpha, Beta float64
	dist        *distributions.Beta
	rng         *rand.Rand
	cache       *posterior.MCCache
}

var (
	_ posterior.Posterior    = (*BetaBinomialPosterior)(nil)
	_ posterior.ParamSampler = (*BetaBinomialPosterior)(nil)
)

// FitBetaBinomial fits Beta(alpha0+s, beta0+n-s) from Binomial StandardData.
// alpha0/beta0 default to (1,1) when prior is the zero value.
func FitBetaBinomial(d data.StandardData, prior [2]float64, rng *rand.Rand) (*BetaBinomialPosterior, error) {
	if prior == ([2]float64{}) {
		prior = DefaultBetaPrior
	}
	if prior[0] <= 0 || prior[1] <= 0 {
		return nil, bayeserrors.InvalidParams("beta prior alpha=%v beta=%v must both be > 0", prior[0], prior[1])
	}
	if d.Shape != data.ShapeBinomial {
		return nil, bayeserrors.ModelMismatchf("beta-binomial requires Binomial data, got shape %v", d.Shape)
	}
	s, n := float64(d.Successes), float64(d.Trials)
	p := &BetaBinomialPosterior{
		Alpha: prior[0] + s,
		Beta:  prior[1] + (n - s),
		rng:   rng,
	}
	p.dist = distributions.NewBeta(p.Alpha, p.Beta, rngSource(rng))
	p.cache = posterior.NewMCCache(posterior.DefaultCacheSize, func(m int) []float64 { return p.dist.SampleN(m) })
	return p, nil
}

func (p *BetaBinomialPosterior) Family() string { return "beta-binomial" }

func (p *BetaBinomialPosterior) Mean() []float64 { return []float64{p.dist.Mean()} }

func (p *BetaBinomialPosterior) Variance() []float64 { return []float64{p.dist.Variance()} }

func (p *BetaBinomialPosterior) CredibleInterval(level float64) [][2]float64 {
	alpha := (1 - level) / 2
	return [][2]float64{{p.dist.Quantile(alpha), p.dist.Quantile(1 - alpha)}}
}

func (p *BetaBinomialPosterior) Sample(n int) [][]float64 {
	draws := p.dist.SampleN(n)
	out := make([][]float64, n)
	for i, v := range draws {
		out[i] = []float64{v}
	}
	return out
}

// LogPdf returns the marginal log-likelihood of observing x in {0,1} under
// the posterior predictive, i.e. log(mean success prob) for x=1 and
// log(1-mean) for x=0.
func (p *BetaBinomialPosterior) LogPdf(x float64) float64 {
	mean := p.dist.Mean()
	if x > 0 {
		return math.Log(mean)
	}
	return math.Log(1 - mean)
}

// DrawParamSamples draws s posterior success-probability values.
func (p *BetaBinomialPosterior) DrawParamSamples(s int, rng *rand.Rand) [][]float64 {
	out := make([][]float64, s)
	for i := 0; i < s; i++ {
		out[i] = []float64{p.dist.Sample()}
	}
	return out
}

// LogLikelihoodAt evaluates the Bernoulli log-likelihood of x (0 or 1) given
// success probability theta[0].
func (p *BetaBinomialPosterior) LogLikelihoodAt(x float64, theta []float64) float64 {
	prob := theta[0]
	if x > 0 {
		return math.Log(prob)
	}
	return math.Log(1 - prob)
}
