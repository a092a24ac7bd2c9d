// Package router implements the model router of spec.md 4.F: data-shape
// detection, candidate enumeration, WAIC-based scoring, and selection,
// plus the WAIC evaluator of spec.md 4.G.
package router

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"sort"

	"github.com/MyVueCodeHub/bayesfit/bayeserrors"
	"github.com/MyVueCodeHub/bayesfit/compound"
	"github.com/MyVueCodeHub/bayesfit/conjugate"
	"github.com/MyVueCodeHub/bayesfit/config"
	"github.com/MyVueCodeHub/bayesfit/data"
	"github.com/MyVueCodeHub/bayesfit/internal/bflog"
	"github.com/MyVueCodeHub/bayesfit/mixture"
	"github.com/MyVueCodeHub/bayesfit/posterior"

	spparallel "github.com/stockparfait/parallel"
)

// smallSampleThreshold is n < 20, below which WAIC scoring is skipped in
// favor of the shape-detected default (spec.md 4.F).
const smallSampleThreshold = 20

// mixtureComplexityUnits is the WAIC-unit penalty per extra mixture
// component beyond K=1 (spec.md 4.F).
const mixtureComplexityUnits = 5.0

// Candidate is one enumerated model configuration awaiting fit and score.
type Candidate struct {
	Config config.ModelConfig
}

// CandidateResult is a scored (or failed) candidate.
type CandidateResult struct {
	Config      config.ModelConfig
	Posterior   posterior.Posterior
	Diagnostics Diagnostics
	WAIC        *WAICResult
	Penalty     float64
	Score       float64 // WAIC + Penalty; lower is better
	Unavailable bool
	Reason      string
}

// Diagnostics mirrors the convergence info a candidate's engine produced.
type Diagnostics struct {
	Converged          bool
	Iterations         int
	FinalLogLikelihood float64
}

// Alternative is one ranked entry of Report.Alternatives.
type Alternative struct {
	Config       config.ModelConfig
	DeltaWAIC    float64
	AkaikeWeight float64
}

// Report is the router's terminal output (spec.md 4.F.3).
type Report struct {
	Config       config.ModelConfig
	Confidence   string // "high" | "low"
	Reasoning    []string
	Alternatives []Alternative
}

// Result bundles the selected posterior, its diagnostics, and the report.
type Result struct {
	Posterior   posterior.Posterior
	Diagnostics Diagnostics
	Report      Report
}

// Route runs the {Detect -> Enumerate -> (Fit, Score)* -> Select -> Report}
// pipeline of spec.md 4.F over already-canonicalized data.
func Route(ctx context.Context, d data.StandardData, opts config.Options) (Result, error) {
	candidates, reasoning := Enumerate(d, opts)
	if len(candidates) == 0 {
		return Result{}, bayeserrors.ModelMismatchf("no router candidate applies to data shape %v", d.Shape)
	}

	n := d.Len()
	useWAIC := opts.UseWAICOrDefault() && len(candidates) > 1 && n >= smallSampleThreshold

	results := fitAndScore(ctx, d, candidates, useWAIC, opts)

	available := make([]*CandidateResult, 0, len(results))
	for i := range results {
		if !results[i].Unavailable {
			available = append(available, &results[i])
		}
	}
	if len(available) == 0 {
		return Result{}, bayeserrors.ModelMismatchf("all %d router candidates failed to fit", len(results))
	}

	confidence := "high"
	if !useWAIC {
		confidence = "low"
		reasoning = append(reasoning, "sample size below WAIC threshold or a single candidate; using shape-detected default")
	}

	sort.SliceStable(available, func(i, j int) bool { return available[i].Score < available[j].Score })
	best := available[0]

	alternatives := buildAlternatives(available)

	report := Report{
		Config:       best.Config,
		Confidence:   confidence,
		Reasoning:    reasoning,
		Alternatives: alternatives,
	}
	return Result{Posterior: best.Posterior, Diagnostics: best.Diagnostics, Report: report}, nil
}

// Enumerate implements spec.md 4.F.1: shape-driven candidate generation.
func Enumerate(d data.StandardData, opts config.Options) ([]Candidate, []string) {
	maxK := opts.MaxComponentsOrDefault()

	switch d.Shape {
	case data.ShapeBinomial:
		return []Candidate{{Config: config.Simple(config.FamilyBeta)}}, []string{"binomial data: beta-binomial is the only applicable model"}

	case data.ShapeUserLevel:
		values := d.ConvertedValues()
		sevCandidates, reasoning := continuousCandidates(values, maxK)
		out := make([]Candidate, 0, len(sevCandidates))
		for _, c := range sevCandidates {
			out = append(out, Candidate{Config: config.Compound(config.Simple(config.FamilyBeta), c.Config)})
		}
		reasoning = append([]string{"user-level data: compound beta x severity over converted positive values"}, reasoning...)
		return out, reasoning

	case data.ShapeContinuous:
		if allBinary(d.Values) {
			return []Candidate{{Config: config.Simple(config.FamilyBeta)}}, []string{"continuous data is all {0,1}: treating as binomial"}
		}
		return continuousCandidates(d.Values, maxK)

	default:
		return nil, nil
	}
}

// continuousCandidates implements the positive-continuous branch of
// spec.md 4.F.1, shared between the Continuous and UserLevel (severity)
// paths.
func continuousCandidates(values []float64, maxK int) ([]Candidate, []string) {
	if len(values) == 0 || !allPositive(values) {
		return []Candidate{{Config: config.Mixture(config.FamilyNormalMixture, 1)}}, []string{"values are not all positive: defaulting to normal-mixture(K=1)"}
	}

	mean, sd := meanStd(values)
	cv := math.Inf(1)
	if mean != 0 {
		cv = sd / mean
	}

	// Only one simple candidate is enumerated per cv bucket: gamma below the
	// cv<=1 cutoff, lognormal above it. Positive-continuous data with cv<=1
	// therefore never reaches a lognormal (or compound-beta-lognormal) fit
	// through this path, even when its generating distribution was in fact
	// lognormal with low dispersion -- the bucket is an approximation of the
	// family, not a guarantee of recovering it.
	var out []Candidate
	var reasoning []string
	if cv <= 1 {
		out = append(out, Candidate{Config: config.Simple(config.FamilyGamma)})
		reasoning = append(reasoning, "cv <= 1: gamma is the preferred conjugate family")
	} else {
		out = append(out, Candidate{Config: config.Simple(config.FamilyLogNormal)})
		reasoning = append(reasoning, "cv > 1: lognormal is the preferred conjugate family")
	}

	if maxK > 1 {
		for k := 2; k <= maxK; k++ {
			out = append(out, Candidate{Config: config.Mixture(config.FamilyLogNormalMixture, k)})
			out = append(out, Candidate{Config: config.Mixture(config.FamilyNormalMixture, k)})
		}
		reasoning = append(reasoning, "enumerating lognormal-mixture and normal-mixture for K=2..maxComponents")
	}
	return out, reasoning
}

func allBinary(values []float64) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if v != 0 && v != 1 {
			return false
		}
	}
	return true
}

func allPositive(values []float64) bool {
	for _, v := range values {
		if v <= 0 {
			return false
		}
	}
	return true
}

func meanStd(values []float64) (mean, sd float64) {
	n := float64(len(values))
	for _, v := range values {
		mean += v
	}
	mean /= n
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	if n > 1 {
		sd = math.Sqrt(ss / (n - 1))
	}
	return mean, sd
}

// fitAndScore runs the (Fit, Score)* stage, optionally fanning candidates
// out across a worker pool (spec.md 5 "Parallelism (optional)"); results
// are always combined back in enumeration order regardless of scheduling.
func fitAndScore(ctx context.Context, d data.StandardData, candidates []Candidate, useWAIC bool, opts config.Options) []CandidateResult {
	results := make([]CandidateResult, len(candidates))

	fitOne := func(i int) {
		rng := posterior.Seeded(opts.Seed, i)
		results[i] = fitCandidate(ctx, d, candidates[i], useWAIC, opts, rng)
	}

	if opts.Parallel && len(candidates) > 1 {
		workers := 2 * runtime.NumCPU()
		if workers > len(candidates) {
			workers = len(candidates)
		}
		iter := &candidateJobsIter{n: len(candidates), run: fitOne}
		m := spparallel.Map(ctx, workers, iter)
		for {
			_, err := m.Next()
			if err != nil {
				break // can only be parallel.Done
			}
		}
		return results
	}

	for i := range candidates {
		fitOne(i)
	}
	return results
}

// candidateJobsIter fans fitAndScore's per-candidate work out across
// stockparfait/parallel's worker pool; each job writes directly into the
// shared results slice at its own index, so no merge step is needed.
type candidateJobsIter struct {
	n   int
	run func(i int)
	i   int
}

var _ spparallel.JobsIter = &candidateJobsIter{}

func (c *candidateJobsIter) Next() (spparallel.Job, error) {
	if c.i >= c.n {
		return nil, spparallel.Done
	}
	i := c.i
	c.i++
	job := func() interface{} {
		c.run(i)
		return nil
	}
	return job, nil
}

func fitCandidate(ctx context.Context, d data.StandardData, cand Candidate, useWAIC bool, opts config.Options, rng *rand.Rand) CandidateResult {
	result := CandidateResult{Config: cand.Config}

	post, diag, observations, sampler, err := fitByConfig(ctx, d, cand.Config, opts, rng)
	if err != nil {
		result.Unavailable = true
		result.Reason = err.Error()
		return result
	}
	result.Posterior = post
	result.Diagnostics = diag
	result.Penalty = complexityPenalty(cand.Config, opts.PreferSimple)

	if !useWAIC {
		result.Score = result.Penalty
		return result
	}
	if cand.Config.Kind != config.KindCompound && sampler == nil {
		result.Score = result.Penalty
		return result
	}

	waic, werr := evaluateCandidateWAIC(ctx, cand.Config, post, sampler, observations, d, rng)
	if werr != nil || waic.Unavailable {
		// WAICUnavailable degrades the router quietly: fall back to the
		// complexity penalty alone rather than failing the candidate.
		bflog.Logger.Warn().Str("candidate", cand.Config.Name()).Msg("WAIC unavailable for candidate, scoring by complexity penalty alone")
		result.Score = result.Penalty
		return result
	}
	result.WAIC = &waic
	result.Score = waic.WAIC + result.Penalty
	return result
}

// fitByConfig fits a single candidate's posterior and, where the family
// supports it, returns the flat observation vector and ParamSampler needed
// for WAIC.
func fitByConfig(ctx context.Context, d data.StandardData, cfg config.ModelConfig, opts config.Options, rng *rand.Rand) (posterior.Posterior, Diagnostics, []float64, posterior.ParamSampler, error) {
	switch cfg.Kind {
	case config.KindSimple:
		switch cfg.Family {
		case config.FamilyBeta:
			bd, err := toBinomial(d)
			if err != nil {
				return nil, Diagnostics{}, nil, nil, err
			}
			p, err := conjugate.FitBetaBinomial(bd, priorFromOptions(opts), rng)
			if err != nil {
				return nil, Diagnostics{}, nil, nil, err
			}
			return p, Diagnostics{Converged: true}, observationsFromBinomial(bd.Successes, bd.Trials), p, nil
		case config.FamilyGamma:
			p, err := conjugate.FitGammaExponential(d, gammaPriorFromOptions(opts), rng)
			if err != nil {
				return nil, Diagnostics{}, nil, nil, err
			}
			return p, Diagnostics{Converged: true}, d.Values, p, nil
		case config.FamilyLogNormal:
			p, err := conjugate.FitLogNormalNIG(d, nigPriorFromOptions(opts), rng)
			if err != nil {
				return nil, Diagnostics{}, nil, nil, err
			}
			return p, Diagnostics{Converged: true}, d.Values, p, nil
		}
	case config.KindMixture:
		switch cfg.Family {
		case config.FamilyLogNormalMixture:
			p, diag, err := mixture.FitLogNormalMixture(ctx, d, cfg.Components, rng)
			if err != nil {
				return nil, Diagnostics{}, nil, nil, err
			}
			return p, Diagnostics{Converged: diag.Converged, Iterations: diag.Iterations, FinalLogLikelihood: diag.FinalLogLikelihood}, d.Values, p, nil
		case config.FamilyNormalMixture:
			p, diag, err := mixture.FitNormalMixture(ctx, d, cfg.Components, rng)
			if err != nil {
				return nil, Diagnostics{}, nil, nil, err
			}
			return p, Diagnostics{Converged: diag.Converged, Iterations: diag.Iterations, FinalLogLikelihood: diag.FinalLogLikelihood}, d.Values, p, nil
		}
	case config.KindCompound:
		priors := compoundPriorsFromOptions(opts, *cfg.Severity)
		post, diag, err := compound.Fit(ctx, d, *cfg.Severity, priors, rng)
		if err != nil {
			return nil, Diagnostics{}, nil, nil, err
		}
		return post, Diagnostics{Converged: diag.Converged, Iterations: diag.Iterations, FinalLogLikelihood: diag.FinalLogLikelihood}, nil, nil, nil
	}
	return nil, Diagnostics{}, nil, nil, bayeserrors.InvalidParams("unrecognized candidate config %+v", cfg)
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

// compoundPriorsFromOptions builds the compound.Priors for a candidate's
// severity leg: the gamma/NIG override only applies when the severity
// family can actually consume it (a single gamma or lognormal component,
// not a mixture).
func compoundPriorsFromOptions(opts config.Options, severity config.ModelConfig) compound.Priors {
	priors := compound.Priors{Frequency: priorFromOptions(opts)}
	if severity.Kind != config.KindSimple {
		return priors
	}
	switch severity.Family {
	case config.FamilyGamma:
		priors.Gamma = gammaPriorFromOptions(opts)
	case config.FamilyLogNormal:
		priors.NIG = nigPriorFromOptions(opts)
	}
	return priors
}

// evaluateCandidateWAIC dispatches to the simple or compound WAIC path.
func evaluateCandidateWAIC(ctx context.Context, cfg config.ModelConfig, post posterior.Posterior, sampler posterior.ParamSampler, observations []float64, d data.StandardData, rng *rand.Rand) (WAICResult, error) {
	if cfg.Kind == config.KindCompound {
		cp, ok := post.(*posterior.CompoundPosterior)
		if !ok {
			return WAICResult{Unavailable: true, Reason: "compound posterior has unexpected type"}, nil
		}
		converted := make([]bool, 0, len(d.Users))
		values := make([]float64, 0, len(d.Users))
		for _, u := range d.Users {
			converted = append(converted, u.Converted)
			values = append(values, u.Value)
		}
		matrix, err := cp.DrawLogLikelihoods(converted, values, DefaultWAICDraws, rng)
		if err != nil {
			return WAICResult{Unavailable: true, Reason: err.Error()}, nil
		}
		return FromMatrix(matrix, DefaultWAICDraws), nil
	}
	return EvaluateSimple(ctx, sampler, observations, DefaultWAICDraws, rng)
}

// complexityPenalty implements spec.md 4.F.2: 5*(K-1) WAIC units per extra
// mixture component, doubled to 10*(K-1) when preferSimple is set.
func complexityPenalty(cfg config.ModelConfig, preferSimple bool) float64 {
	k := componentCount(cfg)
	if k <= 1 {
		return 0
	}
	penalty := mixtureComplexityUnits * float64(k-1)
	if preferSimple {
		penalty += mixtureComplexityUnits * float64(k-1)
	}
	return penalty
}

func componentCount(cfg config.ModelConfig) int {
	switch cfg.Kind {
	case config.KindMixture:
		return cfg.Components
	case config.KindCompound:
		return componentCount(*cfg.Severity)
	default:
		return 1
	}
}

func buildAlternatives(available []*CandidateResult) []Alternative {
	waics := make([]float64, len(available))
	for i, r := range available {
		waics[i] = r.Score
	}
	weights := AkaikeWeights(waics)
	minScore := waics[0]
	out := make([]Alternative, len(available))
	for i, r := range available {
		out[i] = Alternative{Config: r.Config, DeltaWAIC: r.Score - minScore, AkaikeWeight: weights[i]}
	}
	return out
}
