package distributions

import (
	"math"
	"math/rand"
	"testing"
)

func TestStudentsTQuantileSymmetric(t *testing.T) {
	st := NewStudentsT(0, 1, 5, rand.NewSource(1))
	median := st.Quantile(0.5)
	if math.Abs(median) > 1e-6 {
		t.Errorf("Quantile(0.5) = %v, want ~0", median)
	}

	lo := st.Quantile(0.1)
	hi := st.Quantile(0.9)
	if math.Abs(lo+hi) > 1e-6 {
		t.Errorf("Quantile(0.1)=%v and Quantile(0.9)=%v are not symmetric around 0", lo, hi)
	}
}

func TestStudentsTQuantileMonotone(t *testing.T) {
	st := NewStudentsT(2, 3, 10, rand.NewSource(1))
	prev := st.Quantile(0.05)
	for _, p := range []float64{0.25, 0.5, 0.75, 0.95} {
		q := st.Quantile(p)
		if q < prev {
			t.Fatalf("Quantile(%v) = %v, not >= previous %v", p, q, prev)
		}
		prev = q
	}
}

func TestStudentsTLocationShift(t *testing.T) {
	st := NewStudentsT(10, 2, 5, rand.NewSource(1))
	median := st.Quantile(0.5)
	if math.Abs(median-10) > 1e-6 {
		t.Errorf("Quantile(0.5) = %v, want ~10", median)
	}
}
