// Package models provides higher-level A/B-test workflows built on the
// bayesfit engine: accumulate control/treatment samples, fit posteriors via
// the model router, and derive the usual decision statistics (probability
// of improvement, expected loss, relative uplift).
package models

import (
	"context"
	"fmt"
	"sort"

	"github.com/MyVueCodeHub/bayesfit"
	"github.com/MyVueCodeHub/bayesfit/config"
	"github.com/MyVueCodeHub/bayesfit/posterior"
)

// ABTest accumulates control/treatment data and fits a posterior for each
// side on demand via bayesfit.Fit("auto", ...).
type ABTest struct {
	ModelHint     string // "" or "auto" routes; an explicit hint bypasses routing
	Options       config.Options
	ControlData   []float64
	TreatmentData []float64
	ControlPost   posterior.Posterior
	TreatmentPost posterior.Posterior
}

// NewABTest creates an A/B test that routes the model automatically.
func NewABTest() *ABTest {
	return &ABTest{ModelHint: "auto"}
}

// NewABTestWithHint creates an A/B test that always fits the named model
// (e.g. "beta-binomial"), bypassing the router.
func NewABTestWithHint(hint string, opts config.Options) *ABTest {
	return &ABTest{ModelHint: hint, Options: opts}
}

// AddControlData appends control-group observations and refits.
func (ab *ABTest) AddControlData(ctx context.Context, values []float64) error {
	ab.ControlData = append(ab.ControlData, values...)
	return ab.refit(ctx)
}

// AddTreatmentData appends treatment-group observations and refits.
func (ab *ABTest) AddTreatmentData(ctx context.Context, values []float64) error {
	ab.TreatmentData = append(ab.TreatmentData, values...)
	return ab.refit(ctx)
}

func (ab *ABTest) refit(ctx context.Context) error {
	if len(ab.ControlData) > 0 {
		result, err := bayesfit.Fit(ctx, ab.ModelHint, ab.ControlData, ab.Options)
		if err != nil {
			return fmt.Errorf("control fit: %w", err)
		}
		ab.ControlPost = result.Posterior
	}
	if len(ab.TreatmentData) > 0 {
		result, err := bayesfit.Fit(ctx, ab.ModelHint, ab.TreatmentData, ab.Options)
		if err != nil {
			return fmt.Errorf("treatment fit: %w", err)
		}
		ab.TreatmentPost = result.Posterior
	}
	return nil
}

// ProbabilityOfImprovement estimates P(treatment > control) via Monte Carlo.
func (ab *ABTest) ProbabilityOfImprovement() float64 {
	if ab.ControlPost == nil || ab.TreatmentPost == nil {
		return 0.5
	}

	n := 10000
	controlSamples := flatten(ab.ControlPost.Sample(n))
	treatmentSamples := flatten(ab.TreatmentPost.Sample(n))

	wins := 0
	for i := 0; i < n; i++ {
		if treatmentSamples[i] > controlSamples[i] {
			wins++
		}
	}
	return float64(wins) / float64(n)
}

// ExpectedLoss returns the expected loss for each variant under a linear
// loss on the difference: the mean amount by which choosing that variant
// falls short of the other, averaged over all draws.
func (ab *ABTest) ExpectedLoss() (controlLoss, treatmentLoss float64) {
	if ab.ControlPost == nil || ab.TreatmentPost == nil {
		return 0, 0
	}

	n := 10000
	controlSamples := flatten(ab.ControlPost.Sample(n))
	treatmentSamples := flatten(ab.TreatmentPost.Sample(n))

	for i := 0; i < n; i++ {
		diff := treatmentSamples[i] - controlSamples[i]
		if diff > 0 {
			controlLoss += diff
		} else {
			treatmentLoss -= diff
		}
	}
	controlLoss /= float64(n)
	treatmentLoss /= float64(n)
	return
}

// CredibleIntervalDifference returns the credible interval for
// treatment - control at the given confidence level.
func (ab *ABTest) CredibleIntervalDifference(confidence float64) (lower, upper float64) {
	if ab.ControlPost == nil || ab.TreatmentPost == nil {
		return 0, 0
	}

	n := 10000
	controlSamples := flatten(ab.ControlPost.Sample(n))
	treatmentSamples := flatten(ab.TreatmentPost.Sample(n))

	differences := make([]float64, n)
	for i := 0; i < n; i++ {
		differences[i] = treatmentSamples[i] - controlSamples[i]
	}
	sort.Float64s(differences)

	alpha := (1 - confidence) / 2
	lowerIdx := int(alpha * float64(n))
	upperIdx := int((1 - alpha) * float64(n))
	if upperIdx >= n {
		upperIdx = n - 1
	}
	return differences[lowerIdx], differences[upperIdx]
}

// RelativeUplift returns the mean and 95% credible interval of
// (treatment - control) / control.
func (ab *ABTest) RelativeUplift() (mean, lower, upper float64) {
	if ab.ControlPost == nil || ab.TreatmentPost == nil {
		return 0, 0, 0
	}

	n := 10000
	controlSamples := flatten(ab.ControlPost.Sample(n))
	treatmentSamples := flatten(ab.TreatmentPost.Sample(n))

	uplifts := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if controlSamples[i] > 0 {
			uplifts = append(uplifts, (treatmentSamples[i]-controlSamples[i])/controlSamples[i])
		}
	}
	sort.Float64s(uplifts)
	if len(uplifts) == 0 {
		return 0, 0, 0
	}

	sum := 0.0
	for _, u := range uplifts {
		sum += u
	}
	mean = sum / float64(len(uplifts))
	lowerIdx := int(0.025 * float64(len(uplifts)))
	upperIdx := int(0.975 * float64(len(uplifts)))
	if upperIdx >= len(uplifts) {
		upperIdx = len(uplifts) - 1
	}
	return mean, uplifts[lowerIdx], uplifts[upperIdx]
}

// Summary returns a human-readable report of the test results.
func (ab *ABTest) Summary() string {
	if ab.ControlPost == nil || ab.TreatmentPost == nil {
		return "Insufficient data for analysis"
	}

	prob := ab.ProbabilityOfImprovement()
	controlLoss, treatmentLoss := ab.ExpectedLoss()
	lower, upper := ab.CredibleIntervalDifference(0.95)
	upliftMean, upliftLower, upliftUpper := ab.RelativeUplift()

	return fmt.Sprintf(`
A/B Test Results:
=================
Control:    n=%d, mean=%.4f
Treatment:  n=%d, mean=%.4f

Probability of Improvement: %.2f%%
Expected Loss:
  - Control:   %.4f
  - Treatment: %.4f

95%% Credible Interval for Difference: [%.4f, %.4f]
Relative Uplift: %.2f%% [%.2f%%, %.2f%%]

Recommendation: %s
`,
		len(ab.ControlData),
		ab.ControlPost.Mean()[0],
		len(ab.TreatmentData),
		ab.TreatmentPost.Mean()[0],
		prob*100,
		controlLoss,
		treatmentLoss,
		lower, upper,
		upliftMean*100, upliftLower*100, upliftUpper*100,
		recommendation(prob, treatmentLoss),
	)
}

func recommendation(prob, treatmentLoss float64) string {
	switch {
	case prob > 0.95 && treatmentLoss < 0.01:
		return "Strong evidence favors treatment. Recommend implementation."
	case prob > 0.80:
		return "Moderate evidence favors treatment. Consider implementation or continue testing."
	case prob < 0.20:
		return "Evidence favors control. Treatment likely inferior."
	default:
		return "Insufficient evidence to make a recommendation. Continue testing."
	}
}

// flatten takes the first column of a Posterior.Sample() matrix, the scalar
// draw for every simple (non-compound) posterior.
func flatten(rows [][]float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = row[0]
	}
	return out
}
