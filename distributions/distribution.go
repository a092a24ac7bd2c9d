// Package distributions provides the probability-distribution primitives
// used throughout bayesfit: PDFs, log-PDFs, CDFs, quantiles and samplers for
// Beta, Gamma, Normal, LogNormal, Inverse-Gamma and Student's t.
package distributions

// Dist is the shared surface every primitive distribution exposes. The
// engines in conjugate/ hold this package's wrapper types rather than the
// gonum types directly.
type Dist interface {
	// PDF returns the probability density (or mass) at x.
	PDF(x float64) float64

	// LogPDF returns the log density at x. Implementations must stay in
	// log-space internally rather than taking math.Log(PDF(x)), so they
	// remain finite far into the tails.
	LogPDF(x float64) float64

	// CDF returns the cumulative probability at x.
	CDF(x float64) float64

	// Quantile returns the inverse CDF at p.
	Quantile(p float64) float64

	// Sample draws one value.
	Sample() float64

	// SampleN draws n i.i.d. values.
	SampleN(n int) []float64

	Mean() float64
	Variance() float64
	StdDev() float64
}
