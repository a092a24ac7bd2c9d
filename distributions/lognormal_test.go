package distributions

import (
	"math"
	"math/rand"
	"testing"
)

func TestLogNormalMeanVariance(t *testing.T) {
	ln := NewLogNormal(0, 1, rand.NewSource(1))
	wantMean := math.Exp(0.5)
	if math.Abs(ln.Mean()-wantMean) > 1e-9 {
		t.Errorf("Mean() = %v, want %v", ln.Mean(), wantMean)
	}
}

func TestLogNormalDegenerate(t *testing.T) {
	ln := NewLogNormal(2, 0, rand.NewSource(1))
	want := math.Exp(2)
	if ln.Mean() != want {
		t.Errorf("degenerate Mean() = %v, want %v", ln.Mean(), want)
	}
	if ln.Variance() != 0 {
		t.Errorf("degenerate Variance() = %v, want 0", ln.Variance())
	}
	if ln.Sample() != want {
		t.Errorf("degenerate Sample() = %v, want %v", ln.Sample(), want)
	}
	if got := ln.PDF(want); !math.IsInf(got, 1) {
		t.Errorf("degenerate PDF(mode) = %v, want +Inf", got)
	}
	if got := ln.PDF(want + 1); got != 0 {
		t.Errorf("degenerate PDF(off-mode) = %v, want 0", got)
	}
}

func TestNewLogNormalFromMoments(t *testing.T) {
	ln := NewLogNormalFromMoments(10, 4, rand.NewSource(1))
	if math.Abs(ln.Mean()-10) > 1e-6 {
		t.Errorf("Mean() = %v, want 10", ln.Mean())
	}
	if math.Abs(ln.Variance()-4) > 1e-6 {
		t.Errorf("Variance() = %v, want 4", ln.Variance())
	}
}
