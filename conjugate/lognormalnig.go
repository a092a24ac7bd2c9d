package conjugate

import (
	"math"
	"math/rand"

	"github.com/MyVueCodeHub/bayesfit/bayeserrors"
	"github.com/MyVueCodeHub/bayesfit/data"
	"github.com/MyVueCodeHub/bayesfit/distributions"
	"github.com/MyVueCodeHub/bayesfit/posterior"
)

// NIGPrior is a Normal-Inverse-Gamma prior (mu0, lambda, a, b) over (mu,
// sigma^2) for log X ~ Normal(mu, sigma^2), per spec.md 4.C.
type NIGPrior struct {
	Mu0    float64
	Lambda float64
	A      float64
	B      float64
}

// LogNormalNIGPosterior is the NIG posterior fit over log-space sufficient
// statistics, with an exact sampler and a Student-t posterior predictive.
type LogNormalNIGPosterior struct {
	Mu, Lambda, A, B float64 // posterior parameters (mu', lambda', a', b')
	rng              *rand.Rand
	predictive       *distributions.StudentsT // Student-t predictive of log X
	cache            *posterior.MCCache        // caches X = exp(sampled log X), data space
}

var (
	_ posterior.Posterior    = (*LogNormalNIGPosterior)(nil)
	_ posterior.ParamSampler = (*LogNormalNIGPosterior)(nil)
)

// DefaultNIGPrior derives a weakly informative prior centered on the
// empirical log-mean/variance of the data, per spec.md 4.C.
func DefaultNIGPrior(logValues []float64) NIGPrior {
	n := float64(len(logValues))
	if n == 0 {
		return NIGPrior{Mu0: 0, Lambda: 1, A: 2, B: 2}
	}
	mean := 0.0
	for _, v := range logValues {
		mean += v
	}
	mean /= n
	variance := 0.0
	for _, v := range logValues {
		d := v - mean
		variance += d * d
	}
	if n > 1 {
		variance /= n - 1
	}
	return NIGPrior{Mu0: mean, Lambda: 1, A: 2, B: 2 * variance}
}

// FitLogNormalNIG fits the NIG posterior from Continuous StandardData
// (values must be > 0; log is taken internally).
func FitLogNormalNIG(d data.StandardData, prior *NIGPrior, rng *rand.Rand) (*LogNormalNIGPosterior, error) {
	if d.Shape != data.ShapeContinuous {
		return nil, bayeserrors.ModelMismatchf("lognormal-nig requires Continuous data, got shape %v", d.Shape)
	}
	logValues := make([]float64, len(d.Values))
	for i, x := range d.Values {
		if x <= 0 {
			return nil, bayeserrors.InvalidDataf("lognormal-nig requires x > 0, got %v", x)
		}
		logValues[i] = math.Log(x)
	}
	if len(logValues) < 2 {
		return nil, bayeserrors.NotEnoughDataf("lognormal-nig requires at least 2 observations")
	}
	if prior == nil {
		p := DefaultNIGPrior(logValues)
		prior = &p
	}

	n := float64(len(logValues))
	var sx, sxx float64
	for _, y := range logValues {
		sx += y
		sxx += y * y
	}
	return fitNIG(n, sx, sxx, *prior, rng)
}

// FitLogNormalNIGWeighted fits from weighted sufficient statistics
// (n_eff, sum w*log x, sum w*(log x)^2), identical formulas with n -> n_eff
// per spec.md 4.C.
func FitLogNormalNIGWeighted(nEff, sumWLogX, sumWLogX2 float64, prior NIGPrior, rng *rand.Rand) (*LogNormalNIGPosterior, error) {
	if nEff <= 0 {
		return nil, bayeserrors.NotEnoughDataf("weighted lognormal-nig requires n_eff > 0, got %v", nEff)
	}
	return fitNIG(nEff, sumWLogX, sumWLogX2, prior, rng)
}

func fitNIG(n, sx, sxx float64, prior NIGPrior, rng *rand.Rand) (*LogNormalNIGPosterior, error) {
	if prior.Lambda <= 0 || prior.A <= 0 || prior.B <= 0 {
		return nil, bayeserrors.InvalidParams("NIG prior lambda=%v a=%v b=%v must all be > 0", prior.Lambda, prior.A, prior.B)
	}
	xbar := sx / n
	lambdaPost := prior.Lambda + n
	muPost := (prior.Lambda*prior.Mu0 + n*xbar) / lambdaPost
	aPost := prior.A + n/2
	bPost := prior.B + 0.5*(sxx-n*xbar*xbar) + 0.5*(prior.Lambda*n/lambdaPost)*(xbar-prior.Mu0)*(xbar-prior.Mu0)

	p := &LogNormalNIGPosterior{Mu: muPost, Lambda: lambdaPost, A: aPost, B: bPost, rng: rng}
	scale := math.Sqrt(bPost * (lambdaPost + 1) / (aPost * lambdaPost))
	p.predictive = distributions.NewStudentsT(muPost, scale, 2*aPost, rngSource(rng))
	p.cache = posterior.NewMCCache(posterior.DefaultCacheSize, func(m int) []float64 { return p.sampleDataSpace(m) })
	return p, nil
}

// sampleDataSpace draws exact posterior-predictive X values: sigma^2 ~
// InverseGamma(a', b'), mu ~ N(mu', sigma^2/lambda'), X = exp(N(mu, sigma^2)).
func (p *LogNormalNIGPosterior) sampleDataSpace(n int) []float64 {
	rng := p.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	ig := distributions.NewInverseGamma(p.A, p.B, rng)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		sigma2 := ig.Sample()
		mu := p.Mu + math.Sqrt(sigma2/p.Lambda)*rng.NormFloat64()
		logX := mu + math.Sqrt(sigma2)*rng.NormFloat64()
		out[i] = math.Exp(logX)
	}
	return out
}

func (p *LogNormalNIGPosterior) Family() string { return "lognormal" }

func (p *LogNormalNIGPosterior) Mean() []float64 { return []float64{p.cache.Mean()} }

func (p *LogNormalNIGPosterior) Variance() []float64 { return []float64{p.cache.Variance()} }

func (p *LogNormalNIGPosterior) CredibleInterval(level float64) [][2]float64 {
	return [][2]float64{p.cache.CredibleInterval(level)}
}

func (p *LogNormalNIGPosterior) Sample(n int) [][]float64 {
	draws := p.sampleDataSpace(n)
	out := make([][]float64, n)
	for i, v := range draws {
		out[i] = []float64{v}
	}
	return out
}

// LogPdf evaluates the closed-form Student-t predictive density of log X at
// log(x), with the exp-Jacobian correction to return a data-space density.
func (p *LogNormalNIGPosterior) LogPdf(x float64) float64 {
	if x <= 0 {
		return math.Inf(-1)
	}
	return p.predictive.LogPDF(math.Log(x)) - math.Log(x)
}

// Median returns exp(mu'), the closed-form median of the predictive.
func (p *LogNormalNIGPosterior) Median() float64 { return math.Exp(p.Mu) }

// DrawParamSamples draws s (mu, sigma^2) pairs from the NIG posterior.
func (p *LogNormalNIGPosterior) DrawParamSamples(s int, rng *rand.Rand) [][]float64 {
	if rng == nil {
		rng = p.rng
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	ig := distributions.NewInverseGamma(p.A, p.B, rng)
	out := make([][]float64, s)
	for i := 0; i < s; i++ {
		sigma2 := ig.Sample()
		mu := p.Mu + math.Sqrt(sigma2/p.Lambda)*rng.NormFloat64()
		out[i] = []float64{mu, sigma2}
	}
	return out
}

// LogLikelihoodAt evaluates the Normal(mu, sigma^2) log-density of log(x),
// with the exp-Jacobian correction, given theta = [mu, sigma2].
func (p *LogNormalNIGPosterior) LogLikelihoodAt(x float64, theta []float64) float64 {
	if x <= 0 {
		return math.Inf(-1)
	}
	mu, sigma2 := theta[0], theta[1]
	y := math.Log(x)
	z := y - mu
	return -0.5*z*z/sigma2 - 0.5*math.Log(2*math.Pi*sigma2) - y
}
