// Package bayesfit is a Bayesian inference engine for A/B-test style
// business-metric analysis: conversion rates, revenue per user, waiting
// times, and compound frequency x severity combinations thereof. Fit is
// the single entry point; it accepts a data sample plus an optional model
// hint and returns a posterior satisfying the Posterior protocol, together
// with diagnostics and, when the router ran and Options.ReturnRouteInfo is
// set, a model-comparison report.
package bayesfit

import (
	"context"
	"math/rand"
	"time"

	"github.com/MyVueCodeHub/bayesfit/bayeserrors"
	"github.com/MyVueCodeHub/bayesfit/compound"
	"github.com/MyVueCodeHub/bayesfit/conjugate"
	"github.com/MyVueCodeHub/bayesfit/config"
	"github.com/MyVueCodeHub/bayesfit/data"
	"github.com/MyVueCodeHub/bayesfit/mixture"
	"github.com/MyVueCodeHub/bayesfit/posterior"
	"github.com/MyVueCodeHub/bayesfit/router"
)

// Options is re-exported from config so callers only need to import the
// root package for everyday use.
type Options = config.Options

// Diagnostics is the caller-facing convergence report of spec.md 6.
type Diagnostics struct {
	Converged     bool
	Iterations    int
	RuntimeMS     float64
	ModelType     string
	LogLikelihood *float64
}

// FitResult bundles the selected posterior with its diagnostics and,
// when the router was invoked with Options.ReturnRouteInfo set, its
// model-comparison report.
type FitResult struct {
	Posterior   posterior.Posterior
	Diagnostics Diagnostics
	RouteInfo   *router.Report
}

// Fit canonicalizes input, resolves modelHint ("auto" or an explicit model
// name) to a concrete engine, fits it, and returns the resulting posterior.
// A non-"auto" hint bypasses the router entirely, per spec.md 6.
func Fit(ctx context.Context, modelHint string, input any, opts config.Options) (FitResult, error) {
	started := time.Now()

	d, err := data.Canonicalize(input)
	if err != nil {
		return FitResult{}, err
	}

	rng := posterior.Seeded(opts.Seed, 0)

	if modelHint == "" || modelHint == "auto" {
		result, err := router.Route(ctx, d, opts)
		if err != nil {
			return FitResult{}, err
		}
		diag := Diagnostics{
			Converged:  result.Diagnostics.Converged,
			Iterations: result.Diagnostics.Iterations,
			RuntimeMS:  elapsedMS(started),
			ModelType:  result.Report.Config.Name(),
		}
		if result.Diagnostics.FinalLogLikelihood != 0 {
			ll := result.Diagnostics.FinalLogLikelihood
			diag.LogLikelihood = &ll
		}
		fr := FitResult{Posterior: result.Posterior, Diagnostics: diag}
		if opts.ReturnRouteInfo {
			fr.RouteInfo = &result.Report
		}
		return fr, nil
	}

	post, diag, err := fitHinted(ctx, modelHint, d, opts, rng)
	if err != nil {
		return FitResult{}, err
	}
	diag.RuntimeMS = elapsedMS(started)
	diag.ModelType = modelHint
	return FitResult{Posterior: post, Diagnostics: diag}, nil
}

func elapsedMS(started time.Time) float64 {
	return float64(time.Since(started)) / float64(time.Millisecond)
}

// fitHinted dispatches an explicit model-hint string to its engine,
// bypassing shape detection and candidate scoring.
func fitHinted(ctx context.Context, hint string, d data.StandardData, opts config.Options, rng *rand.Rand) (posterior.Posterior, Diagnostics, error) {
	switch hint {
	case "beta-binomial":
		bd, err := toBinomial(d)
		if err != nil {
			return nil, Diagnostics{}, err
		}
		p, err := conjugate.FitBetaBinomial(bd, priorFromOptions(opts), rng)
		if err != nil {
			return nil, Diagnostics{}, err
		}
		return p, Diagnostics{Converged: true}, nil
	case "gamma":
		p, err := conjugate.FitGammaExponential(d, gammaPriorFromOptions(opts), rng)
		if err != nil {
			return nil, Diagnostics{}, err
		}
		return p, Diagnostics{Converged: true}, nil
	case "lognormal":
		p, err := conjugate.FitLogNormalNIG(d, nigPriorFromOptions(opts), rng)
		if err != nil {
			return nil, Diagnostics{}, err
		}
		return p, Diagnostics{Converged: true}, nil
	case "normal-mixture":
		p, diag, err := mixture.FitNormalMixture(ctx, d, mixtureK(opts), rng)
		if err != nil {
			return nil, Diagnostics{}, err
		}
		return p, Diagnostics{Converged: diag.Converged, Iterations: diag.Iterations}, nil
	case "lognormal-mixture":
		p, diag, err := mixture.FitLogNormalMixture(ctx, d, mixtureK(opts), rng)
		if err != nil {
			return nil, Diagnostics{}, err
		}
		return p, Diagnostics{Converged: diag.Converged, Iterations: diag.Iterations}, nil
	case "compound-beta-gamma":
		priors := compound.Priors{Frequency: priorFromOptions(opts), Gamma: gammaPriorFromOptions(opts)}
		p, diag, err := compound.Fit(ctx, d, config.Simple(config.FamilyGamma), priors, rng)
		if err != nil {
			return nil, Diagnostics{}, err
		}
		return p, Diagnostics{Converged: diag.Converged, Iterations: diag.Iterations}, nil
	case "compound-beta-lognormal":
		priors := compound.Priors{Frequency: priorFromOptions(opts), NIG: nigPriorFromOptions(opts)}
		p, diag, err := compound.Fit(ctx, d, config.Simple(config.FamilyLogNormal), priors, rng)
		if err != nil {
			return nil, Diagnostics{}, err
		}
		return p, Diagnostics{Converged: diag.Converged, Iterations: diag.Iterations}, nil
	case "compound-beta-lognormalmixture":
		sev := config.Mixture(config.FamilyLogNormalMixture, mixtureK(opts))
		priors := compound.Priors{Frequency: priorFromOptions(opts)}
		p, diag, err := compound.Fit(ctx, d, sev, priors, rng)
		if err != nil {
			return nil, Diagnostics{}, err
		}
		return p, Diagnostics{Converged: diag.Converged, Iterations: diag.Iterations}, nil
	case "compound-beta-normalmixture":
		sev := config.Mixture(config.FamilyNormalMixture, mixtureK(opts))
		priors := compound.Priors{Frequency: priorFromOptions(opts)}
		p, diag, err := compound.Fit(ctx, d, sev, priors, rng)
		if err != nil {
			return nil, Diagnostics{}, err
		}
		return p, Diagnostics{Converged: diag.Converged, Iterations: diag.Iterations}, nil
	default:
		return nil, Diagnostics{}, bayeserrors.InvalidParams("unrecognized model hint %q", hint)
	}
}

func mixtureK(opts config.Options) int {
	k := opts.MaxComponentsOrDefault()
	if k < 2 {
		return 2
	}
	return k
}

func toBinomial(d data.StandardData) (data.StandardData, error) {
	if d.Shape == data.ShapeBinomial {
		return d, nil
	}
	successes, trials := 0, len(d.Values)
	for _, v := range d.Values {
		if v == 1 {
			successes++
		}
	}
	return data.Binomial(successes, trials)
}

// priorFromOptions resolves the beta prior in three tiers: an explicit
// PriorParams override, then the deployment's TOML DefaultPriors, then the
// zero-value sentinel that tells conjugate.FitBetaBinomial to use its own
// built-in Beta(1,1).
func priorFromOptions(opts config.Options) [2]float64 {
	if opts.PriorParams != nil && opts.PriorParams.Type == "beta" && len(opts.PriorParams.Params) == 2 {
		return [2]float64{opts.PriorParams.Params[0], opts.PriorParams.Params[1]}
	}
	if opts.DefaultPriors != nil && opts.DefaultPriors.Beta.Alpha > 0 && opts.DefaultPriors.Beta.Beta > 0 {
		return [2]float64{opts.DefaultPriors.Beta.Alpha, opts.DefaultPriors.Beta.Beta}
	}
	return [2]float64{}
}

// gammaPriorFromOptions resolves the gamma prior the same three-tier way:
// explicit override, then TOML default, then the zero-value sentinel that
// tells conjugate.FitGammaExponential to use DefaultGammaPrior.
func gammaPriorFromOptions(opts config.Options) [2]float64 {
	if opts.PriorParams != nil && opts.PriorParams.Type == "gamma" && len(opts.PriorParams.Params) == 2 {
		return [2]float64{opts.PriorParams.Params[0], opts.PriorParams.Params[1]}
	}
	if opts.DefaultPriors != nil && opts.DefaultPriors.Gamma.Shape > 0 && opts.DefaultPriors.Gamma.Rate > 0 {
		return [2]float64{opts.DefaultPriors.Gamma.Shape, opts.DefaultPriors.Gamma.Rate}
	}
	return [2]float64{}
}

// nigPriorFromOptions resolves the Normal-Inverse-Gamma prior the same
// three-tier way; nil tells conjugate.FitLogNormalNIG to derive
// DefaultNIGPrior from the data itself.
func nigPriorFromOptions(opts config.Options) *conjugate.NIGPrior {
	if opts.PriorParams != nil && opts.PriorParams.Type == "normal-inverse-gamma" && len(opts.PriorParams.Params) == 4 {
		p := opts.PriorParams.Params
		return &conjugate.NIGPrior{Mu0: p[0], Lambda: p[1], A: p[2], B: p[3]}
	}
	if opts.DefaultPriors != nil && opts.DefaultPriors.NIG.Lambda > 0 && opts.DefaultPriors.NIG.A > 0 && opts.DefaultPriors.NIG.B > 0 {
		n := opts.DefaultPriors.NIG
		return &conjugate.NIGPrior{Mu0: n.Mu0, Lambda: n.Lambda, A: n.A, B: n.B}
	}
	return nil
}
