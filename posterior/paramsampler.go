package posterior

import "math/rand"

// ParamSampler is implemented by posteriors that can draw explicit parameter
// vectors theta_s and evaluate the data likelihood at a specific theta, as
// spec.md 4.G's WAIC evaluator requires ("L[i][s] = posterior.logPdfAtParam
// (x_i, theta_s)"). This is distinct from Posterior.LogPdf, which reports
// the marginal (posterior-averaged) density.
//
// Conjugate posteriors draw genuine parameter uncertainty (e.g. p ~
// Beta(a,b)). Mixture posteriors have no posterior over their EM point
// estimate, so they implement this by returning the same fitted parameters
// for every s -- a deliberate point-mass simplification (see DESIGN.md);
// the resulting p_WAIC contribution from those points is then ~0, which is
// the correct degenerate-posterior answer rather than an approximation
// error.
type ParamSampler interface {
	// DrawParamSamples draws s parameter vectors theta_1..theta_s.
	DrawParamSamples(s int, rng *rand.Rand) [][]float64
	// LogLikelihoodAt evaluates log p(x|theta) for one data point.
	LogLikelihoodAt(x float64, theta []float64) float64
}
