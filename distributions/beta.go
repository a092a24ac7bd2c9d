package distributions

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Beta is the Beta(alpha, beta) distribution, the conjugate family for
// binomial success rates.
type Beta struct {
	Alpha float64
	Beta  float64
	dist  distuv.Beta
}

// NewBeta creates a Beta(alpha, beta) distribution. src may be nil, in which
// case gonum's global source is used.
func NewBeta(alpha, beta float64, src rand.Source) *Beta {
	return &Beta{
		Alpha: alpha,
		Beta:  beta,
		dist:  distuv.Beta{Alpha: alpha, Beta: beta, Src: src},
	}
}

func (b *Beta) PDF(x float64) float64    { return b.dist.Prob(x) }
func (b *Beta) LogPDF(x float64) float64 { return b.dist.LogProb(x) }
func (b *Beta) CDF(x float64) float64    { return b.dist.CDF(x) }
func (b *Beta) Quantile(p float64) float64 {
	return b.dist.Quantile(p)
}
func (b *Beta) Sample() float64 { return b.dist.Rand() }
func (b *Beta) SampleN(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = b.Sample()
	}
	return out
}
func (b *Beta) Mean() float64     { return b.dist.Mean() }
func (b *Beta) Variance() float64 { return b.dist.Variance() }
func (b *Beta) StdDev() float64   { return b.dist.StdDev() }

// Mode returns the mode(s) of the Beta distribution (bimodal at the domain
// boundary when both parameters are below 1).
func (b *Beta) Mode() []float64 {
	switch {
	case b.Alpha > 1 && b.Beta > 1:
		return []float64{(b.Alpha - 1) / (b.Alpha + b.Beta - 2)}
	case b.Alpha < 1 && b.Beta < 1:
		return []float64{0, 1}
	case b.Alpha < 1 && b.Beta >= 1:
		return []float64{0}
	default:
		return []float64{1}
	}
}
