// Package compound implements the frequency x severity joint engine of
// spec.md 4.E: an independent Beta-Binomial conversion-probability posterior
// combined with a continuous severity posterior (gamma, lognormal, or a
// lognormal/normal mixture), whose product is the per-user value posterior.
package compound

import (
	"context"
	"math/rand"

	"github.com/MyVueCodeHub/bayesfit/bayeserrors"
	"github.com/MyVueCodeHub/bayesfit/conjugate"
	"github.com/MyVueCodeHub/bayesfit/config"
	"github.com/MyVueCodeHub/bayesfit/data"
	"github.com/MyVueCodeHub/bayesfit/mixture"
	"github.com/MyVueCodeHub/bayesfit/posterior"
)

// Diagnostics reports whatever convergence information the severity fit
// produced; conjugate severity families always converge in closed form.
type Diagnostics struct {
	Converged          bool
	Iterations         int
	FinalLogLikelihood float64
}

// Priors bundles the optional prior overrides for the frequency and
// severity sub-fits; a nil/zero field falls back to that engine's own
// built-in default.
type Priors struct {
	Frequency [2]float64
	Gamma     [2]float64
	NIG       *conjugate.NIGPrior
}

// Fit builds the frequency and severity samples from UserLevel
// StandardData, fits each independently, and returns the joint
// CompoundPosterior of spec.md 4.E. severity selects the continuous family
// (and, for mixtures, the component count) the caller or router chose.
func Fit(ctx context.Context, d data.StandardData, severity config.ModelConfig, priors Priors, rng *rand.Rand) (*posterior.CompoundPosterior, Diagnostics, error) {
	if d.Shape != data.ShapeUserLevel {
		return nil, Diagnostics{}, bayeserrors.ModelMismatchf("compound model requires UserLevel data, got shape %v", d.Shape)
	}

	successes, trials := d.ConversionCounts()
	freqData, err := data.Binomial(successes, trials)
	if err != nil {
		return nil, Diagnostics{}, err
	}
	freqPost, err := conjugate.FitBetaBinomial(freqData, priors.Frequency, rng)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	values := d.ConvertedValues()
	if len(values) == 0 {
		return nil, Diagnostics{}, bayeserrors.NotEnoughDataf("compound model requires at least one converted user with a positive value")
	}
	sevData, err := data.Continuous(values, true)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	sevPost, diag, err := fitSeverity(ctx, sevData, severity, priors, rng)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	family := "compound-beta-" + severityName(severity)
	return posterior.NewCompoundPosterior(family, freqPost, sevPost, rng), diag, nil
}

func fitSeverity(ctx context.Context, d data.StandardData, severity config.ModelConfig, priors Priors, rng *rand.Rand) (posterior.Posterior, Diagnostics, error) {
	switch severity.Kind {
	case config.KindSimple:
		switch severity.Family {
		case config.FamilyGamma:
			p, err := conjugate.FitGammaExponential(d, priors.Gamma, rng)
			if err != nil {
				return nil, Diagnostics{}, err
			}
			return p, Diagnostics{Converged: true}, nil
		case config.FamilyLogNormal:
			p, err := conjugate.FitLogNormalNIG(d, priors.NIG, rng)
			if err != nil {
				return nil, Diagnostics{}, err
			}
			return p, Diagnostics{Converged: true}, nil
		default:
			return nil, Diagnostics{}, bayeserrors.InvalidParams("unsupported compound severity family %q", severity.Family)
		}
	case config.KindMixture:
		switch severity.Family {
		case config.FamilyLogNormalMixture:
			p, mixDiag, err := mixture.FitLogNormalMixture(ctx, d, severity.Components, rng)
			if err != nil {
				return nil, Diagnostics{}, err
			}
			return p, Diagnostics{Converged: mixDiag.Converged, Iterations: mixDiag.Iterations, FinalLogLikelihood: mixDiag.FinalLogLikelihood}, nil
		case config.FamilyNormalMixture:
			p, mixDiag, err := mixture.FitNormalMixture(ctx, d, severity.Components, rng)
			if err != nil {
				return nil, Diagnostics{}, err
			}
			return p, Diagnostics{Converged: mixDiag.Converged, Iterations: mixDiag.Iterations, FinalLogLikelihood: mixDiag.FinalLogLikelihood}, nil
		default:
			return nil, Diagnostics{}, bayeserrors.InvalidParams("unsupported compound severity mixture family %q", severity.Family)
		}
	default:
		return nil, Diagnostics{}, bayeserrors.InvalidParams("compound severity config must be Simple or Mixture, got Kind=%v", severity.Kind)
	}
}

func severityName(c config.ModelConfig) string {
	switch c.Kind {
	case config.KindMixture:
		if c.Family == config.FamilyLogNormalMixture {
			return "lognormalmixture"
		}
		return "normalmixture"
	default:
		return string(c.Family)
	}
}
