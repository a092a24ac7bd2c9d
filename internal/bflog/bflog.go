// Package bflog is the package-level diagnostic logger: convergence
// warnings, WAIC degradations, and router decisions are logged here rather
// than returned as errors, per the diagnostics-not-errors policy of
// spec.md 8.
package bflog

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the package-wide logger. Library code should never force a
// process-global sink or exit on logging setup, so this defaults to a
// quiet (warn-level) console writer and is safe to leave untouched; callers
// embedding this module in a service can call SetLogger to route
// diagnostics into their own sink.
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.WarnLevel)

// SetLogger replaces the package-wide logger, e.g. so a host application
// can route bayesfit's diagnostics into its own structured log sink.
func SetLogger(l zerolog.Logger) {
	Logger = l
}
