// Package data canonicalizes loosely typed input (plain number slices,
// {successes,trials} records, {converted,value} user records) into the
// StandardData tagged form every downstream component operates on.
package data

import (
	"math"
	"sort"

	"github.com/MyVueCodeHub/bayesfit/bayeserrors"
)

// Shape tags which variant a StandardData value carries.
type Shape int

const (
	// ShapeBinomial carries aggregate successes/trials counts.
	ShapeBinomial Shape = iota
	// ShapeContinuous carries an ordered sequence of real values.
	ShapeContinuous
	// ShapeUserLevel carries per-user converted/value records.
	ShapeUserLevel
	// ShapeSummary carries sufficient statistics only (n, sum, sum_sq).
	ShapeSummary
)

// User is one {converted, value} record of UserLevel data.
type User struct {
	Converted bool
	Value     float64
}

// StandardData is the canonical, immutable input representation every
// engine and the router consume. Exactly one of the per-shape fields is
// meaningful, selected by Shape.
type StandardData struct {
	Shape Shape

	// Binomial
	Successes int
	Trials    int

	// Continuous
	Values       []float64
	PositiveOnly bool

	// UserLevel
	Users []User

	// Summary
	N     int
	Sum   float64
	SumSq float64
}

// Binomial constructs a Binomial StandardData, validating successes <= trials.
func Binomial(successes, trials int) (StandardData, error) {
	if trials < 0 || successes < 0 {
		return StandardData{}, bayeserrors.InvalidDataf("trials and successes must be non-negative, got successes=%d trials=%d", successes, trials)
	}
	if successes > trials {
		return StandardData{}, bayeserrors.InvalidDataf("trials (%d) must be >= successes (%d)", trials, successes)
	}
	return StandardData{Shape: ShapeBinomial, Successes: successes, Trials: trials}, nil
}

// Continuous constructs a Continuous StandardData from an ordered sequence
// of real values, rejecting NaN/Inf and, when positiveOnly is set, any
// non-positive value.
func Continuous(values []float64, positiveOnly bool) (StandardData, error) {
	out := make([]float64, len(values))
	copy(out, values)
	for _, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return StandardData{}, bayeserrors.InvalidDataf("continuous data must not contain NaN/Inf, got %v", v)
		}
		if positiveOnly && v <= 0 {
			return StandardData{}, bayeserrors.InvalidDataf("positive-only continuous data must be > 0, got %v", v)
		}
	}
	return StandardData{Shape: ShapeContinuous, Values: out, PositiveOnly: positiveOnly}, nil
}

// UserLevel constructs a UserLevel StandardData, validating
// !converted => value == 0 and value >= 0.
func UserLevel(users []User) (StandardData, error) {
	out := make([]User, len(users))
	for i, u := range users {
		if math.IsNaN(u.Value) || math.IsInf(u.Value, 0) {
			return StandardData{}, bayeserrors.InvalidDataf("user[%d].value must not be NaN/Inf, got %v", i, u.Value)
		}
		if u.Value < 0 {
			return StandardData{}, bayeserrors.InvalidDataf("user[%d].value must be >= 0, got %v", i, u.Value)
		}
		if !u.Converted && u.Value != 0 {
			return StandardData{}, bayeserrors.InvalidDataf("user[%d] has converted=false but value=%v (must be 0)", i, u.Value)
		}
		out[i] = u
	}
	return StandardData{Shape: ShapeUserLevel, Users: out}, nil
}

// Summary constructs a Summary StandardData for conjugate shortcuts.
func Summary(n int, sum, sumSq float64) (StandardData, error) {
	if n <= 0 {
		return StandardData{}, bayeserrors.NotEnoughDataf("summary requires n > 0, got %d", n)
	}
	if math.IsNaN(sum) || math.IsNaN(sumSq) || math.IsInf(sum, 0) || math.IsInf(sumSq, 0) {
		return StandardData{}, bayeserrors.InvalidDataf("summary sum/sum_sq must not be NaN/Inf")
	}
	return StandardData{Shape: ShapeSummary, N: n, Sum: sum, SumSq: sumSq}, nil
}

// Canonicalize detects the structural shape of untyped input and builds the
// matching StandardData. Supported shapes: map[string]any{"successes",
// "trials"}; []float64 or []int (Continuous); []bool, []map[string]any{
// "converted", "value"} or []User (UserLevel); an existing StandardData.
func Canonicalize(input any) (StandardData, error) {
	switch v := input.(type) {
	case StandardData:
		if v.Shape == ShapeSummary {
			return Summary(v.N, v.Sum, v.SumSq)
		}
		return Canonicalize(v.raw())
	case map[string]any:
		successes, hasS := v["successes"]
		trials, hasT := v["trials"]
		if hasS && hasT {
			s, err := toInt(successes)
			if err != nil {
				return StandardData{}, bayeserrors.InvalidDataf("successes must be numeric: %v", err)
			}
			t, err := toInt(trials)
			if err != nil {
				return StandardData{}, bayeserrors.InvalidDataf("trials must be numeric: %v", err)
			}
			return Binomial(s, t)
		}
		return StandardData{}, bayeserrors.InvalidDataf("unrecognized object input, expected successes/trials keys")
	case []float64:
		return continuousOrBinomial(v)
	case []int:
		fv := make([]float64, len(v))
		for i, x := range v {
			fv[i] = float64(x)
		}
		return continuousOrBinomial(fv)
	case []bool:
		users := make([]User, len(v))
		for i, b := range v {
			users[i] = User{Converted: b}
		}
		return UserLevel(users)
	case []User:
		return UserLevel(v)
	case []map[string]any:
		users := make([]User, len(v))
		for i, rec := range v {
			conv, _ := rec["converted"].(bool)
			val := 0.0
			if raw, ok := rec["value"]; ok {
				fv, err := toFloat(raw)
				if err != nil {
					return StandardData{}, bayeserrors.InvalidDataf("user[%d].value must be numeric: %v", i, err)
				}
				val = fv
			}
			users[i] = User{Converted: conv, Value: val}
		}
		return UserLevel(users)
	default:
		return StandardData{}, bayeserrors.InvalidDataf("unrecognized input type %T", input)
	}
}

// continuousOrBinomial treats an all-{0,1} slice as already-binomial-shaped
// continuous data; the router (not this package) decides whether to model
// it as Beta-Binomial. Canonicalize only builds the Continuous variant here
// -- the router performs the {0,1}-detection per spec.md 4.F step 1.
func continuousOrBinomial(values []float64) (StandardData, error) {
	positiveOnly := true
	for _, v := range values {
		if v <= 0 {
			positiveOnly = false
			break
		}
	}
	return Continuous(values, positiveOnly)
}

// raw reconstructs an input suitable for re-canonicalization, used by the
// round-trip property canonicalize(canonicalize(x)) == canonicalize(x).
func (d StandardData) raw() any {
	switch d.Shape {
	case ShapeBinomial:
		return map[string]any{"successes": d.Successes, "trials": d.Trials}
	case ShapeContinuous:
		return append([]float64(nil), d.Values...)
	case ShapeUserLevel:
		return append([]User(nil), d.Users...)
	default:
		return d
	}
}

// Len returns the effective sample size of the data, regardless of shape.
func (d StandardData) Len() int {
	switch d.Shape {
	case ShapeBinomial:
		return d.Trials
	case ShapeContinuous:
		return len(d.Values)
	case ShapeUserLevel:
		return len(d.Users)
	case ShapeSummary:
		return d.N
	default:
		return 0
	}
}

// ConvertedValues returns the positive values of converted users, i.e. the
// severity sample a compound model fits on (spec.md 4.E).
func (d StandardData) ConvertedValues() []float64 {
	if d.Shape != ShapeUserLevel {
		return nil
	}
	out := make([]float64, 0, len(d.Users))
	for _, u := range d.Users {
		if u.Converted && u.Value > 0 {
			out = append(out, u.Value)
		}
	}
	return out
}

// ConversionCounts returns the {successes, trials} implied by UserLevel
// data, i.e. the frequency sample a compound model fits on.
func (d StandardData) ConversionCounts() (successes, trials int) {
	if d.Shape != ShapeUserLevel {
		return 0, 0
	}
	for _, u := range d.Users {
		trials++
		if u.Converted {
			successes++
		}
	}
	return
}

// SortedCopy returns a sorted copy of Values, used by shape-detection and
// quantile-style operations that need an ordered view.
func (d StandardData) SortedCopy() []float64 {
	out := make([]float64, len(d.Values))
	copy(out, d.Values)
	sort.Float64s(out)
	return out
}
