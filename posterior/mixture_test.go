package posterior

import (
	"math"
	"math/rand"
	"testing"
)

func TestMixturePosteriorMeanMatchesWeightedComponents(t *testing.T) {
	components := []Component{
		{Mean: -5, Variance: 1, Weight: 0.5},
		{Mean: 5, Variance: 1, Weight: 0.5},
	}
	post := NewMixturePosterior("normal-mixture", components, false, rand.New(rand.NewSource(1)))
	mean := post.Mean()[0]
	if math.Abs(mean) > 0.5 {
		t.Errorf("Mean() = %v, want close to 0 for a symmetric mixture", mean)
	}
}

func TestMixturePosteriorLogNormalJacobian(t *testing.T) {
	components := []Component{{Mean: 0, Variance: 1, Weight: 1}}
	post := NewMixturePosterior("lognormal-mixture", components, true, rand.New(rand.NewSource(1)))
	if got := post.LogPdf(0); !math.IsInf(got, -1) {
		t.Errorf("LogPdf(0) = %v, want -Inf for a lognormal mixture", got)
	}
	if got := post.LogPdf(-1); !math.IsInf(got, -1) {
		t.Errorf("LogPdf(-1) = %v, want -Inf for a lognormal mixture", got)
	}
	if got := post.LogPdf(1); math.IsInf(got, 0) || math.IsNaN(got) {
		t.Errorf("LogPdf(1) = %v, want a finite value", got)
	}
}

func TestMixturePosteriorDrawParamSamplesIsPointMass(t *testing.T) {
	components := []Component{{Mean: 1, Variance: 2, Weight: 1}}
	post := NewMixturePosterior("normal-mixture", components, false, rand.New(rand.NewSource(1)))
	thetas := post.DrawParamSamples(5, rand.New(rand.NewSource(2)))
	if len(thetas) != 5 {
		t.Fatalf("len(thetas) = %d, want 5", len(thetas))
	}
	for _, theta := range thetas {
		if theta[0] != 1 || theta[1] != 2 || theta[2] != 1 {
			t.Errorf("theta = %v, want [1, 2, 1] for every draw", theta)
		}
	}
}

func TestMixturePosteriorComponentsRoundTrip(t *testing.T) {
	components := []Component{
		{Mean: -2, Variance: 1, Weight: 0.3},
		{Mean: 4, Variance: 1, Weight: 0.7},
	}
	post := NewMixturePosterior("normal-mixture", components, false, rand.New(rand.NewSource(1)))
	got := post.Components()
	if len(got) != 2 || got[0].Mean != -2 || got[1].Mean != 4 {
		t.Errorf("Components() = %v, want the components passed to NewMixturePosterior unchanged", got)
	}
}
