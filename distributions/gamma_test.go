package distributions

import (
	"math"
	"math/rand"
	"testing"
)

func TestGammaMeanVariance(t *testing.T) {
	g := NewGamma(3, 2, rand.NewSource(1))
	wantMean := 3.0 / 2
	wantVar := 3.0 / 4
	if math.Abs(g.Mean()-wantMean) > 1e-9 {
		t.Errorf("Mean() = %v, want %v", g.Mean(), wantMean)
	}
	if math.Abs(g.Variance()-wantVar) > 1e-9 {
		t.Errorf("Variance() = %v, want %v", g.Variance(), wantVar)
	}
}

func TestGammaSamplePositive(t *testing.T) {
	g := NewGamma(2, 5, rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		if x := g.Sample(); x <= 0 {
			t.Fatalf("Sample() = %v, want > 0", x)
		}
	}
}
