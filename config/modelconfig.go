// Package config defines the router's decision type (ModelConfig) and the
// caller-facing Options of spec.md 3/6, plus optional TOML-file default
// prior loading.
package config

// Family names a distribution family at the model-selection level.
type Family string

const (
	FamilyBeta             Family = "beta"
	FamilyGamma            Family = "gamma"
	FamilyLogNormal        Family = "lognormal"
	FamilyNormal           Family = "normal"
	FamilyNormalMixture    Family = "normal-mixture"
	FamilyLogNormalMixture Family = "lognormal-mixture"
)

// Kind tags which ModelConfig variant is populated.
type Kind int

const (
	KindSimple Kind = iota
	KindMixture
	KindCompound
)

// ModelConfig is the router's decision (spec.md 3): a tagged sum of Simple,
// Mixture, or Compound. Exactly the fields matching Kind are meaningful.
type ModelConfig struct {
	Kind Kind

	// Simple / Mixture
	Family     Family
	Components int // 1 for Simple, >= 2 for Mixture

	// Compound
	Frequency *ModelConfig
	Severity  *ModelConfig
}

// Simple builds a Kind=Simple, Components=1 config.
func Simple(family Family) ModelConfig {
	return ModelConfig{Kind: KindSimple, Family: family, Components: 1}
}

// Mixture builds a Kind=Mixture config with the given component count.
func Mixture(family Family, components int) ModelConfig {
	return ModelConfig{Kind: KindMixture, Family: family, Components: components}
}

// Compound builds a Kind=Compound config from a frequency and severity
// sub-config.
func Compound(frequency, severity ModelConfig) ModelConfig {
	return ModelConfig{Kind: KindCompound, Frequency: &frequency, Severity: &severity}
}

// Name renders the boundary model-name string for this config, matching the
// strings enumerated in spec.md 6 where applicable.
func (c ModelConfig) Name() string {
	switch c.Kind {
	case KindSimple:
		if c.Family == FamilyBeta {
			return "beta-binomial"
		}
		return string(c.Family)
	case KindMixture:
		return string(c.Family)
	case KindCompound:
		return "compound-beta-" + severityName(*c.Severity)
	default:
		return "unknown"
	}
}

func severityName(c ModelConfig) string {
	switch c.Kind {
	case KindMixture:
		if c.Family == FamilyLogNormalMixture {
			return "lognormalmixture"
		}
		return "normalmixture"
	default:
		return string(c.Family)
	}
}

// BusinessContext biases router tie-breaks (spec.md 6).
type BusinessContext string

const (
	ContextRevenue    BusinessContext = "revenue"
	ContextConversion BusinessContext = "conversion"
	ContextEngagement BusinessContext = "engagement"
	ContextOther      BusinessContext = "other"
)

// PriorParams is the tagged prior-parameter override of spec.md 6.
type PriorParams struct {
	Type   string // "beta" | "gamma" | "normal-inverse-gamma"
	Params []float64
}

// Options are the caller-facing Fit options of spec.md 6.
type Options struct {
	PriorParams     *PriorParams
	DefaultPriors   *PriorDefaults // deployment-wide TOML fallback, consulted when PriorParams is nil
	BusinessContext BusinessContext
	MaxComponents   int // default 4, range [2,8]
	PreferSimple    bool
	UseWAIC         *bool // default true; pointer so zero-value Options still defaults on
	ReturnRouteInfo bool
	Seed            uint64
	Parallel        bool // optional worker-pool fan-out across router candidates (ambient addition, see SPEC_FULL.md 9)
}

// UseWAICOrDefault returns the effective UseWAIC value, defaulting to true.
func (o Options) UseWAICOrDefault() bool {
	if o.UseWAIC == nil {
		return true
	}
	return *o.UseWAIC
}

// MaxComponentsOrDefault returns the effective MaxComponents, defaulting to
// 4 and clamping to [2,8] per spec.md 6.
func (o Options) MaxComponentsOrDefault() int {
	m := o.MaxComponents
	if m == 0 {
		m = 4
	}
	if m < 2 {
		m = 2
	}
	if m > 8 {
		m = 8
	}
	return m
}
