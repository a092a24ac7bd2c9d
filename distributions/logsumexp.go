package distributions

import "gonum.org/v1/gonum/floats"

// LogSumExp returns log(sum(exp(xs))), computed in a numerically stable way.
// Exposed here as a single choke point so mixture/router both depend on the
// same gonum implementation rather than each rolling their own.
func LogSumExp(xs []float64) float64 {
	return floats.LogSumExp(xs)
}
