package config

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/MyVueCodeHub/bayesfit/bayeserrors"
)

// PriorDefaults overrides the engines' built-in default prior parameters
// (Beta(1,1), Gamma(1,0.1), NIG(mu0=empirical,1,2,2*empirical-var)) without
// a code change. Grounded on stockparfait's apps/sharadar/main.go TOML
// config loading.
type PriorDefaults struct {
	Beta struct {
		Alpha float64 `toml:"alpha"`
		Beta  float64 `toml:"beta"`
	} `toml:"beta"`
	Gamma struct {
		Shape float64 `toml:"shape"`
		Rate  float64 `toml:"rate"`
	} `toml:"gamma"`
	NIG struct {
		Mu0    float64 `toml:"mu0"`
		Lambda float64 `toml:"lambda"`
		A      float64 `toml:"a"`
		B      float64 `toml:"b"`
	} `toml:"nig"`
}

// LoadDefaultPriors reads a TOML file of default prior parameters. A
// missing file is not an error -- callers get the zero-value PriorDefaults
// and fall back to each engine's own built-in defaults.
func LoadDefaultPriors(path string) (PriorDefaults, error) {
	var defaults PriorDefaults
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return defaults, bayeserrors.InvalidDataf("cannot open prior defaults file %q: %v", path, err)
	}
	defer f.Close()

	if err := toml.NewDecoder(f).Decode(&defaults); err != nil {
		return defaults, bayeserrors.InvalidDataf("cannot parse prior defaults file %q: %v", path, err)
	}
	return defaults, nil
}
