package conjugate

import (
	"math"
	"math/rand"
	"testing"

	"github.com/MyVueCodeHub/bayesfit/data"
)

func TestFitLogNormalNIGMedianNearSampleMedian(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	values := make([]float64, 2000)
	for i := range values {
		values[i] = math.Exp(4 + 0.5*rng.NormFloat64())
	}
	d, err := data.Continuous(values, true)
	if err != nil {
		t.Fatalf("Continuous() error = %v", err)
	}
	post, err := FitLogNormalNIG(d, nil, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("FitLogNormalNIG() error = %v", err)
	}
	median := post.Median()
	wantMedian := math.Exp(4)
	if math.Abs(median-wantMedian)/wantMedian > 0.1 {
		t.Errorf("Median() = %v, want close to %v", median, wantMedian)
	}
}

func TestFitLogNormalNIGRequiresTwoObservations(t *testing.T) {
	d, _ := data.Continuous([]float64{1.0}, true)
	if _, err := FitLogNormalNIG(d, nil, rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected an error for n < 2")
	}
}

func TestFitLogNormalNIGRejectsNonPositive(t *testing.T) {
	d, _ := data.Continuous([]float64{1, 2}, false)
	if _, err := FitLogNormalNIG(d, nil, rand.New(rand.NewSource(1))); err != nil {
		t.Fatalf("unexpected error for valid positive input: %v", err)
	}
	bad, _ := data.Continuous([]float64{1, -2}, false)
	if _, err := FitLogNormalNIG(bad, nil, rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected an error for a non-positive observation")
	}
}

func TestDefaultNIGPriorEmptyFallback(t *testing.T) {
	prior := DefaultNIGPrior(nil)
	want := NIGPrior{Mu0: 0, Lambda: 1, A: 2, B: 2}
	if prior != want {
		t.Errorf("DefaultNIGPrior(nil) = %+v, want %+v", prior, want)
	}
}

func TestLogLikelihoodAtMatchesNormalLogPdf(t *testing.T) {
	d, _ := data.Continuous([]float64{1, 2, 3, 4, 5}, true)
	post, err := FitLogNormalNIG(d, nil, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("FitLogNormalNIG() error = %v", err)
	}
	theta := []float64{1.0, 0.25}
	x := 3.0
	got := post.LogLikelihoodAt(x, theta)
	y := math.Log(x)
	z := y - theta[0]
	want := -0.5*z*z/theta[1] - 0.5*math.Log(2*math.Pi*theta[1]) - y
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("LogLikelihoodAt() = %v, want %v", got, want)
	}
}
