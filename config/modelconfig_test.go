package config

import "testing"

func TestSimpleName(t *testing.T) {
	if got := Simple(FamilyBeta).Name(); got != "beta-binomial" {
		t.Errorf("Simple(beta).Name() = %q, want beta-binomial", got)
	}
	if got := Simple(FamilyGamma).Name(); got != "gamma" {
		t.Errorf("Simple(gamma).Name() = %q, want gamma", got)
	}
}

func TestMixtureName(t *testing.T) {
	if got := Mixture(FamilyLogNormalMixture, 3).Name(); got != "lognormal-mixture" {
		t.Errorf("Mixture(lognormal-mixture, 3).Name() = %q, want lognormal-mixture", got)
	}
}

func TestCompoundName(t *testing.T) {
	cfg := Compound(Simple(FamilyBeta), Mixture(FamilyLogNormalMixture, 2))
	if got := cfg.Name(); got != "compound-beta-lognormalmixture" {
		t.Errorf("Compound(...).Name() = %q, want compound-beta-lognormalmixture", got)
	}
	cfg2 := Compound(Simple(FamilyBeta), Simple(FamilyGamma))
	if got := cfg2.Name(); got != "compound-beta-gamma" {
		t.Errorf("Compound(beta, gamma).Name() = %q, want compound-beta-gamma", got)
	}
}

func TestUseWAICOrDefaultTrueWhenUnset(t *testing.T) {
	if !(Options{}).UseWAICOrDefault() {
		t.Error("UseWAICOrDefault() = false, want true for zero-value Options")
	}
	no := false
	if (Options{UseWAIC: &no}).UseWAICOrDefault() {
		t.Error("UseWAICOrDefault() = true, want false when explicitly disabled")
	}
}

func TestMaxComponentsOrDefaultClamps(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 4},
		{1, 2},
		{5, 5},
		{20, 8},
	}
	for _, tt := range tests {
		if got := (Options{MaxComponents: tt.in}).MaxComponentsOrDefault(); got != tt.want {
			t.Errorf("MaxComponentsOrDefault(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
