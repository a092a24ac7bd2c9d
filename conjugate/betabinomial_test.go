package conjugate

import (
	"math"
	"math/rand"
	"testing"

	"github.com/MyVueCodeHub/bayesfit/data"
)

func TestFitBetaBinomialPosteriorParams(t *testing.T) {
	d, err := data.Binomial(40, 100)
	if err != nil {
		t.Fatalf("Binomial() error = %v", err)
	}
	post, err := FitBetaBinomial(d, DefaultBetaPrior, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("FitBetaBinomial() error = %v", err)
	}
	if post.Alpha != 41 || post.Beta != 61 {
		t.Errorf("posterior = Beta(%v, %v), want Beta(41, 61)", post.Alpha, post.Beta)
	}
	wantMean := 41.0 / 102.0
	if math.Abs(post.Mean()[0]-wantMean) > 1e-9 {
		t.Errorf("Mean() = %v, want %v", post.Mean()[0], wantMean)
	}
}

func TestFitBetaBinomialRejectsWrongShape(t *testing.T) {
	d, _ := data.Continuous([]float64{1, 2, 3}, true)
	if _, err := FitBetaBinomial(d, DefaultBetaPrior, rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected an error for non-Binomial data")
	}
}

func TestFitBetaBinomialRejectsBadPrior(t *testing.T) {
	d, _ := data.Binomial(1, 2)
	if _, err := FitBetaBinomial(d, [2]float64{-1, 1}, rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected an error for a non-positive prior parameter")
	}
}

func TestFitBetaBinomialCredibleIntervalBracketsMean(t *testing.T) {
	d, _ := data.Binomial(30, 50)
	post, err := FitBetaBinomial(d, DefaultBetaPrior, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("FitBetaBinomial() error = %v", err)
	}
	ci := post.CredibleInterval(0.95)[0]
	mean := post.Mean()[0]
	if mean < ci[0] || mean > ci[1] {
		t.Errorf("mean %v not within CI [%v, %v]", mean, ci[0], ci[1])
	}
}
