package distributions

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Normal is the Normal(mu, sigma) distribution.
type Normal struct {
	Mu    float64
	Sigma float64
	dist  distuv.Normal
}

// NewNormal creates a Normal(mu, sigma) distribution.
func NewNormal(mu, sigma float64, src rand.Source) *Normal {
	return &Normal{
		Mu:    mu,
		Sigma: sigma,
		dist:  distuv.Normal{Mu: mu, Sigma: sigma, Src: src},
	}
}

func (n *Normal) PDF(x float64) float64      { return n.dist.Prob(x) }
func (n *Normal) LogPDF(x float64) float64   { return n.dist.LogProb(x) }
func (n *Normal) CDF(x float64) float64      { return n.dist.CDF(x) }
func (n *Normal) Quantile(p float64) float64 { return n.dist.Quantile(p) }
func (n *Normal) Sample() float64            { return n.dist.Rand() }
func (n *Normal) SampleN(count int) []float64 {
	out := make([]float64, count)
	for i := range out {
		out[i] = n.Sample()
	}
	return out
}
func (n *Normal) Mean() float64     { return n.dist.Mean() }
func (n *Normal) Variance() float64 { return n.dist.Variance() }
func (n *Normal) StdDev() float64   { return n.dist.StdDev() }
