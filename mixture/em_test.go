package mixture

import (
	"context"
	"math"
	"math/rand"
	"testing"
)

func TestFitRecoversTwoWellSeparatedComponents(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	x := make([]float64, 400)
	for i := range x {
		if i%2 == 0 {
			x[i] = -10 + rng.NormFloat64()
		} else {
			x[i] = 10 + rng.NormFloat64()
		}
	}

	result, err := Fit(context.Background(), x, 2, rng)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if len(result.Components) != 2 {
		t.Fatalf("len(Components) = %d, want 2", len(result.Components))
	}

	means := []float64{result.Components[0].Mean, result.Components[1].Mean}
	if math.Abs(means[0]-(-10)) > 1 || math.Abs(means[1]-10) > 1 {
		t.Errorf("component means = %v, want near [-10, 10]", means)
	}
}

func TestFitRejectsTooFewPoints(t *testing.T) {
	_, err := Fit(context.Background(), []float64{1, 2}, 5, rand.New(rand.NewSource(1)))
	if err == nil {
		t.Fatal("expected an error when n < k")
	}
}

func TestFitRejectsInvalidK(t *testing.T) {
	_, err := Fit(context.Background(), []float64{1, 2, 3}, 0, rand.New(rand.NewSource(1)))
	if err == nil {
		t.Fatal("expected an error for k < 1")
	}
}

func TestFitCancellationRespected(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	x := make([]float64, 200)
	rng := rand.New(rand.NewSource(1))
	for i := range x {
		x[i] = rng.NormFloat64()
	}

	if _, err := Fit(ctx, x, 2, rng); err == nil {
		t.Fatal("expected a cancellation error for an already-cancelled context")
	}
}

func TestBalanceScoreUniformIsZero(t *testing.T) {
	if got := BalanceScore([]float64{0.5, 0.5}); got != 0 {
		t.Errorf("BalanceScore(uniform) = %v, want 0", got)
	}
	if got := BalanceScore([]float64{0.9, 0.1}); got <= 0 {
		t.Errorf("BalanceScore(skewed) = %v, want > 0", got)
	}
}
