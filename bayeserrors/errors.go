// Package bayeserrors defines the error taxonomy that every bayesfit
// component reports: parameter/data errors surfaced immediately at the API
// boundary, convergence and WAIC issues surfaced as diagnostics rather than
// errors (see router and mixture packages).
package bayeserrors

import "github.com/stockparfait/errors"

// Kind identifies which taxonomy bucket an error belongs to.
type Kind int

const (
	// InvalidParameters: prior or posterior parameters out of domain
	// (e.g. alpha <= 0).
	InvalidParameters Kind = iota
	// InvalidData: shape/type/constraint violation in the input sample.
	InvalidData
	// NotEnoughData: n < 2 where variance is required, or n == 0.
	NotEnoughData
	// ModelMismatch: explicit model hint incompatible with detected shape.
	ModelMismatch
	// NonConvergence: EM did not converge within max_iter. Not normally
	// constructed as an `error` value returned to the caller; recorded in
	// Diagnostics instead. Kept here so callers that do want to treat it
	// as an error (e.g. strict test harnesses) have a comparable sentinel.
	NonConvergence
	// WAICUnavailable: logPdf could not be evaluated for one or more data
	// points; the router falls back to a shape-based pick.
	WAICUnavailable
	// Cancelled: a cooperative cancellation signal was observed.
	Cancelled
)

func (k Kind) String() string {
	switch k {
	case InvalidParameters:
		return "InvalidParameters"
	case InvalidData:
		return "InvalidData"
	case NotEnoughData:
		return "NotEnoughData"
	case ModelMismatch:
		return "ModelMismatch"
	case NonConvergence:
		return "NonConvergence"
	case WAICUnavailable:
		return "WAICUnavailable"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Error wraps a Kind with the stockparfait/errors chain so callers retain
// both the taxonomy bucket (via Kind()) and a readable annotated message
// (via Error()/Unwrap()).
type Error struct {
	kind Kind
	err  error
}

func (e *Error) Error() string { return e.err.Error() }
func (e *Error) Unwrap() error { return e.err }
func (e *Error) Kind() Kind    { return e.kind }

func newKind(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, err: errors.Reason(format, args...)}
}

func wrapKind(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{kind: kind, err: errors.Annotate(cause, format, args...)}
}

// InvalidParams builds an InvalidParameters error.
func InvalidParams(format string, args ...interface{}) *Error {
	return newKind(InvalidParameters, format, args...)
}

// InvalidDataf builds an InvalidData error.
func InvalidDataf(format string, args ...interface{}) *Error {
	return newKind(InvalidData, format, args...)
}

// NotEnoughDataf builds a NotEnoughData error.
func NotEnoughDataf(format string, args ...interface{}) *Error {
	return newKind(NotEnoughData, format, args...)
}

// ModelMismatchf builds a ModelMismatch error.
func ModelMismatchf(format string, args ...interface{}) *Error {
	return newKind(ModelMismatch, format, args...)
}

// WAICUnavailablef builds a WAICUnavailable error (propagated as a
// diagnostic by the router, not returned to Fit's caller).
func WAICUnavailablef(cause error, format string, args ...interface{}) *Error {
	if cause == nil {
		return newKind(WAICUnavailable, format, args...)
	}
	return wrapKind(WAICUnavailable, cause, format, args...)
}

// NonConvergencef builds a NonConvergence error (propagated as a diagnostic
// by mixture engines, not returned to Fit's caller).
func NonConvergencef(format string, args ...interface{}) *Error {
	return newKind(NonConvergence, format, args...)
}

// Cancelledf builds a Cancelled error for cooperative cancellation.
func Cancelledf(format string, args ...interface{}) *Error {
	return newKind(Cancelled, format, args...)
}

// Is reports whether the first *Error found in err's Unwrap chain has the
// given kind, so callers can test bayeserrors.Is(err, InvalidData) without
// errors.As or a type switch.
func Is(err error, kind Kind) bool {
	var e *Error
	if as(err, &e) {
		return e.kind == kind
	}
	return false
}

func as(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
