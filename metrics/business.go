// Package metrics provides Bayesian estimates for common business metrics,
// built on top of the bayesfit engine's conjugate and router-selected
// posteriors.
package metrics

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/MyVueCodeHub/bayesfit"
	"github.com/MyVueCodeHub/bayesfit/config"
)

// MetricEstimate is a business metric with full uncertainty quantification.
type MetricEstimate struct {
	Mean    float64
	Median  float64
	CI95    [2]float64
	CI99    [2]float64
	Samples []float64
}

// BusinessMetrics fits common business metrics via bayesfit.Fit.
type BusinessMetrics struct {
	Options config.Options
}

// NewBusinessMetrics creates a BusinessMetrics instance with default options.
func NewBusinessMetrics() *BusinessMetrics {
	return &BusinessMetrics{}
}

func summarize(samples []float64) MetricEstimate {
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	n := len(sorted)
	return MetricEstimate{
		Mean:    stat.Mean(samples, nil),
		Median:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		CI95:    [2]float64{sorted[int(0.025*float64(n))], sorted[min(n-1, int(0.975*float64(n)))]},
		CI99:    [2]float64{sorted[int(0.005*float64(n))], sorted[min(n-1, int(0.995*float64(n)))]},
		Samples: samples,
	}
}

// ConversionRate estimates a conversion rate from successes/trials via the
// beta-binomial engine.
func (bm *BusinessMetrics) ConversionRate(ctx context.Context, successes, trials int) (MetricEstimate, error) {
	result, err := bayesfit.Fit(ctx, "beta-binomial", map[string]any{"successes": successes, "trials": trials}, bm.Options)
	if err != nil {
		return MetricEstimate{}, err
	}
	samples := flattenScalar(result.Posterior.Sample(10000))
	return summarize(samples), nil
}

// AverageOrderValue estimates average order value from a sample of order
// totals via the lognormal engine.
func (bm *BusinessMetrics) AverageOrderValue(ctx context.Context, orders []float64) (MetricEstimate, error) {
	result, err := bayesfit.Fit(ctx, "lognormal", orders, bm.Options)
	if err != nil {
		return MetricEstimate{}, err
	}
	samples := flattenScalar(result.Posterior.Sample(10000))
	return summarize(samples), nil
}

// RetentionRate estimates per-period retention from cohort data.
// cohortData[i][j] is the number of users from cohort i active in period j.
func (bm *BusinessMetrics) RetentionRate(ctx context.Context, cohortData [][]int) ([]MetricEstimate, error) {
	if len(cohortData) == 0 {
		return nil, nil
	}
	periods := len(cohortData[0])
	results := make([]MetricEstimate, periods)

	for period := 0; period < periods; period++ {
		totalUsers := 0
		activeUsers := 0
		for cohort := range cohortData {
			if period >= len(cohortData[cohort]) {
				continue
			}
			if period == 0 {
				totalUsers += cohortData[cohort][0]
			} else if cohort+period < len(cohortData) {
				totalUsers += cohortData[cohort][0]
				activeUsers += cohortData[cohort][period]
			}
		}
		if totalUsers > 0 {
			est, err := bm.ConversionRate(ctx, activeUsers, totalUsers)
			if err != nil {
				return nil, err
			}
			results[period] = est
		}
	}
	return results, nil
}

// ChurnProbability estimates the probability a customer churns.
func (bm *BusinessMetrics) ChurnProbability(ctx context.Context, activeCustomers, churnedCustomers int) (MetricEstimate, error) {
	return bm.ConversionRate(ctx, churnedCustomers, activeCustomers+churnedCustomers)
}

// CustomerLifetimeValue propagates uncertainty through
// CLV = AOV * PurchaseFrequency * (1 / ChurnRate) via Monte Carlo.
func (bm *BusinessMetrics) CustomerLifetimeValue(avgOrderValue, purchaseFrequency, churnRate MetricEstimate) MetricEstimate {
	n := len(avgOrderValue.Samples)
	if n == 0 {
		return MetricEstimate{}
	}
	clvSamples := make([]float64, n)
	for i := 0; i < n; i++ {
		aov := avgOrderValue.Samples[i]
		freq := purchaseFrequency.Samples[i%len(purchaseFrequency.Samples)]
		churn := churnRate.Samples[i%len(churnRate.Samples)]
		if churn > 0 {
			clvSamples[i] = aov * freq * (1.0 / churn)
		} else {
			clvSamples[i] = aov * freq * 100
		}
	}
	return summarize(clvSamples)
}

// RevenueProjection projects future revenue via Bayesian linear regression
// on historical revenue, widening the prediction interval with distance
// from the observed data.
func (bm *BusinessMetrics) RevenueProjection(historicalRevenue []float64, periods int) []MetricEstimate {
	n := float64(len(historicalRevenue))
	x := make([]float64, len(historicalRevenue))
	for i := range x {
		x[i] = float64(i)
	}

	meanX := stat.Mean(x, nil)
	meanY := stat.Mean(historicalRevenue, nil)

	var num, den float64
	for i := range x {
		num += (x[i] - meanX) * (historicalRevenue[i] - meanY)
		den += (x[i] - meanX) * (x[i] - meanX)
	}
	slope := num / den
	intercept := meanY - slope*meanX

	var residualSS float64
	for i := range x {
		pred := intercept + slope*x[i]
		residualSS += math.Pow(historicalRevenue[i]-pred, 2)
	}
	sigma := math.Sqrt(residualSS / (n - 2))

	projections := make([]MetricEstimate, periods)
	for t := 0; t < periods; t++ {
		futureX := n + float64(t)
		meanPred := intercept + slope*futureX
		predSE := sigma * math.Sqrt(1+1/n+math.Pow(futureX-meanX, 2)/den)

		samples := make([]float64, 10000)
		for i := range samples {
			samples[i] = math.Max(0, meanPred+predSE*rand.NormFloat64())
		}
		projections[t] = summarize(samples)
	}
	return projections
}

func flattenScalar(rows [][]float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = row[0]
	}
	return out
}
