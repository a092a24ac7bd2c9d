package mixture

import (
	"context"
	"math/rand"

	"github.com/MyVueCodeHub/bayesfit/data"
	"github.com/MyVueCodeHub/bayesfit/posterior"
)

// FitNormalMixture fits a K-component Normal mixture on Continuous
// StandardData and returns the resulting mixture posterior plus EM
// diagnostics.
func FitNormalMixture(ctx context.Context, d data.StandardData, k int, rng *rand.Rand) (*posterior.MixturePosterior, Diagnostics, error) {
	result, err := Fit(ctx, d.Values, k, rng)
	if err != nil {
		return nil, Diagnostics{}, err
	}
	post := posterior.NewMixturePosterior("normal-mixture", result.Components, false, rng)
	return post, result.Diagnostics, nil
}
