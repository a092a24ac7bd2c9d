package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultPriorsMissingFileIsNotError(t *testing.T) {
	defaults, err := LoadDefaultPriors(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("LoadDefaultPriors(missing file) error = %v, want nil", err)
	}
	if defaults != (PriorDefaults{}) {
		t.Errorf("LoadDefaultPriors(missing file) = %+v, want the zero value", defaults)
	}
}

func TestLoadDefaultPriorsParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "priors.toml")
	contents := "[beta]\nalpha = 2.0\nbeta = 3.0\n\n[gamma]\nshape = 1.5\nrate = 0.2\n\n[nig]\nmu0 = 0.5\nlambda = 1.0\na = 2.0\nb = 3.0\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	defaults, err := LoadDefaultPriors(path)
	if err != nil {
		t.Fatalf("LoadDefaultPriors() error = %v", err)
	}
	if defaults.Beta.Alpha != 2.0 || defaults.Beta.Beta != 3.0 {
		t.Errorf("Beta = %+v, want {Alpha:2 Beta:3}", defaults.Beta)
	}
	if defaults.Gamma.Shape != 1.5 || defaults.Gamma.Rate != 0.2 {
		t.Errorf("Gamma = %+v, want {Shape:1.5 Rate:0.2}", defaults.Gamma)
	}
	if defaults.NIG.Mu0 != 0.5 || defaults.NIG.Lambda != 1.0 || defaults.NIG.A != 2.0 || defaults.NIG.B != 3.0 {
		t.Errorf("NIG = %+v, want {Mu0:0.5 Lambda:1 A:2 B:3}", defaults.NIG)
	}
}

func TestLoadDefaultPriorsRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("not [ valid toml"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := LoadDefaultPriors(path); err == nil {
		t.Fatal("expected an error for malformed TOML")
	}
}
