package router

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/MyVueCodeHub/bayesfit/conjugate"
	"github.com/MyVueCodeHub/bayesfit/data"
)

func TestFromMatrixBasicComputation(t *testing.T) {
	matrix := [][]float64{
		{-1, -1, -1, -1},
		{-2, -2, -2, -2},
	}
	result := FromMatrix(matrix, 4)
	if result.Unavailable {
		t.Fatal("Unavailable = true, want false")
	}
	wantLppd := -1.0 + -2.0
	if math.Abs(result.LPPD-wantLppd) > 1e-9 {
		t.Errorf("LPPD = %v, want %v", result.LPPD, wantLppd)
	}
	if result.PWAIC != 0 {
		t.Errorf("PWAIC = %v, want 0 for constant rows", result.PWAIC)
	}
	wantWAIC := -2 * (wantLppd - 0)
	if math.Abs(result.WAIC-wantWAIC) > 1e-9 {
		t.Errorf("WAIC = %v, want %v", result.WAIC, wantWAIC)
	}
}

func TestFromMatrixEmptyIsUnavailable(t *testing.T) {
	result := FromMatrix(nil, 100)
	if !result.Unavailable {
		t.Error("Unavailable = false, want true for an empty matrix")
	}
}

func TestFromMatrixAllNonFiniteIsUnavailable(t *testing.T) {
	matrix := [][]float64{
		{math.Inf(-1), math.Inf(-1)},
		{math.NaN(), math.NaN()},
	}
	result := FromMatrix(matrix, 2)
	if !result.Unavailable {
		t.Error("Unavailable = false, want true when every row is non-finite")
	}
}

func TestFromMatrixPartialNonFiniteMarksReason(t *testing.T) {
	matrix := [][]float64{
		{-1, -1},
		{math.NaN(), math.NaN()},
	}
	result := FromMatrix(matrix, 2)
	if result.Unavailable {
		t.Error("Unavailable = true, want false when at least one row is finite")
	}
	if result.Reason == "" {
		t.Error("Reason is empty, want a partial-exclusion note")
	}
}

func TestAkaikeWeightsSumToOne(t *testing.T) {
	weights := AkaikeWeights([]float64{100, 102, 110})
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("sum(weights) = %v, want 1", total)
	}
	if weights[0] <= weights[1] || weights[1] <= weights[2] {
		t.Errorf("weights = %v, want strictly decreasing with increasing WAIC", weights)
	}
}

func TestAkaikeWeightsEmpty(t *testing.T) {
	if got := AkaikeWeights(nil); len(got) != 0 {
		t.Errorf("AkaikeWeights(nil) = %v, want empty", got)
	}
}

func TestEvaluateSimpleAgainstBetaBinomial(t *testing.T) {
	d, err := data.Binomial(40, 100)
	if err != nil {
		t.Fatalf("Binomial() error = %v", err)
	}
	post, err := conjugate.FitBetaBinomial(d, conjugate.DefaultBetaPrior, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("FitBetaBinomial() error = %v", err)
	}
	observations := observationsFromBinomial(40, 100)
	result, err := EvaluateSimple(context.Background(), post, observations, 200, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("EvaluateSimple() error = %v", err)
	}
	if result.Unavailable {
		t.Fatal("Unavailable = true, want false for a well-posed beta-binomial fit")
	}
	if result.WAIC <= 0 {
		t.Errorf("WAIC = %v, want > 0", result.WAIC)
	}
}

func TestEvaluateSimpleCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d, _ := data.Binomial(5, 10)
	post, _ := conjugate.FitBetaBinomial(d, conjugate.DefaultBetaPrior, rand.New(rand.NewSource(1)))
	observations := make([]float64, waicYieldEvery*3)
	if _, err := EvaluateSimple(ctx, post, observations, 10, rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected a cancellation error for an already-cancelled context")
	}
}

func TestObservationsFromBinomial(t *testing.T) {
	got := observationsFromBinomial(3, 5)
	want := []float64{1, 1, 1, 0, 0}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
