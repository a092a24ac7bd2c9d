package distributions

import (
	"math"
	"math/rand"
	"testing"
)

func TestBetaMeanVariance(t *testing.T) {
	tests := []struct {
		name         string
		alpha, beta  float64
		wantMean     float64
		wantVariance float64
	}{
		{"Uniform", 1, 1, 0.5, 1.0 / 12},
		{"Skewed", 9, 1, 0.9, 9.0 / 1100},
		{"Symmetric", 5, 5, 0.5, 25.0 / 1100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBeta(tt.alpha, tt.beta, rand.NewSource(1))
			if math.Abs(b.Mean()-tt.wantMean) > 1e-9 {
				t.Errorf("Mean() = %v, want %v", b.Mean(), tt.wantMean)
			}
			if math.Abs(b.Variance()-tt.wantVariance) > 1e-9 {
				t.Errorf("Variance() = %v, want %v", b.Variance(), tt.wantVariance)
			}
		})
	}
}

func TestBetaSampleWithinRange(t *testing.T) {
	b := NewBeta(2, 5, rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		x := b.Sample()
		if x < 0 || x > 1 {
			t.Fatalf("Sample() = %v, want in [0,1]", x)
		}
	}
}

func TestBetaQuantileMonotone(t *testing.T) {
	b := NewBeta(2, 3, rand.NewSource(1))
	prev := b.Quantile(0.01)
	for _, p := range []float64{0.25, 0.5, 0.75, 0.99} {
		q := b.Quantile(p)
		if q < prev {
			t.Fatalf("Quantile(%v) = %v, not >= previous %v", p, q, prev)
		}
		prev = q
	}
}
