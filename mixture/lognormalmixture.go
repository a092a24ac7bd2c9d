package mixture

import (
	"context"
	"math"
	"math/rand"

	"github.com/MyVueCodeHub/bayesfit/bayeserrors"
	"github.com/MyVueCodeHub/bayesfit/data"
	"github.com/MyVueCodeHub/bayesfit/posterior"
)

// FitLogNormalMixture fits a K-component mixture in log-space on Continuous
// StandardData (values must be > 0), per spec.md 4.D ("LogNormal mixture
// transforms to y_i = log x_i first; all statistics live in log-space").
func FitLogNormalMixture(ctx context.Context, d data.StandardData, k int, rng *rand.Rand) (*posterior.MixturePosterior, Diagnostics, error) {
	if d.Shape != data.ShapeContinuous {
		return nil, Diagnostics{}, bayeserrors.ModelMismatchf("lognormal-mixture requires Continuous data, got shape %v", d.Shape)
	}
	logValues := make([]float64, len(d.Values))
	for i, x := range d.Values {
		if x <= 0 {
			return nil, Diagnostics{}, bayeserrors.InvalidDataf("lognormal-mixture requires x > 0, got %v", x)
		}
		logValues[i] = math.Log(x)
	}
	result, err := Fit(ctx, logValues, k, rng)
	if err != nil {
		return nil, Diagnostics{}, err
	}
	post := posterior.NewMixturePosterior("lognormal-mixture", result.Components, true, rng)
	return post, result.Diagnostics, nil
}
